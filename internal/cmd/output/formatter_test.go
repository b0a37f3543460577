package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/pkg/render"
)

var sample = []libhours.Location{
	{Key: "maryi", LID: 8552, Name: "Mary <Idema>", Hours: ": 7am - 2am", Resolved: true, InChart: true},
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatLocationsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatLocations(&buf, sample, FormatJSON))

	assert.Contains(t, buf.String(), `"key": "maryi"`)
	assert.Contains(t, buf.String(), `"name": "Mary <Idema>"`)
}

func TestFormatLocationsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatLocations(&buf, sample, FormatYAML))

	assert.Contains(t, buf.String(), "- key: maryi")
	assert.Contains(t, buf.String(), "lid: 8552")
}

func TestFormatLocationsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatLocations(&buf, sample, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Mary <Idema>")
	assert.Contains(t, out, "7am - 2am")
	assert.Contains(t, strings.ToUpper(out), "HOURS")
}

func TestFormatReport(t *testing.T) {
	report := &render.Report{
		Date:         "Oct. 19",
		Placeholders: []render.Result{{Marker: "libhours-a", Token: "a", Outcome: render.OutcomeFilled}},
		Diagnostics:  []render.Diagnostic{{Kind: render.FetchFailure, Message: "down"}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatReport(&buf, report, FormatJSON))
	assert.Contains(t, buf.String(), `"outcome": "filled"`)
	assert.Contains(t, buf.String(), `"kind": "fetch_failure"`)

	buf.Reset()
	require.NoError(t, FormatReport(&buf, report, FormatTable))
	assert.Contains(t, buf.String(), "libhours-a")
	assert.Contains(t, buf.String(), "fetch_failure")
}

func TestTableFormatterStructSlice(t *testing.T) {
	type row struct {
		Key   string `json:"key"`
		Count int    `json:"item_count"`
	}
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []row{{"a", 1}}))
	assert.Contains(t, strings.ToUpper(buf.String()), "ITEM COUNT")
}
