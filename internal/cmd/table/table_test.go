package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/render"
)

func TestLocationsToTableData(t *testing.T) {
	locs := []libhours.Location{
		{Key: "maryi", LID: 8552, Name: "Mary Idema Pew", Hours: ": 7am - 2am", CalendarURL: "c", DetailURL: "d", Resolved: true, InChart: true},
		{Key: "law", Name: "Law", Hours: ": 8am", Manual: true},
	}

	data := LocationsToTableData(locs, false)
	assert.Equal(t, []string{"Key", "LID", "Name", "Hours", "Chart"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"maryi", "8552", "Mary Idema Pew", "7am - 2am", "✓"}, data.Rows[0])
	assert.Equal(t, []string{"law", "-", "Law", "8am (manual)", ""}, data.Rows[1])

	wide := LocationsToTableData(locs, true)
	assert.Len(t, wide.Headers, 7)
	assert.Equal(t, "d", wide.Rows[0][6])
	assert.Len(t, wide.ColumnAlignment, 7)
}

func TestPlaceholdersToTableData(t *testing.T) {
	data := PlaceholdersToTableData([]render.Result{
		{Marker: "libhours-chart", Outcome: render.OutcomeChart, Entries: 6},
		{Marker: "libhours-x", Outcome: render.OutcomeUnknownKey, Err: errors.NewNotFoundError("location", "x")},
	})
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"libhours-chart", "chart", "6 entries"}, data.Rows[0])
	assert.Equal(t, "location with ID x not found", data.Rows[1][2])
}

func TestDiagnosticsToTableData(t *testing.T) {
	data := DiagnosticsToTableData([]render.Diagnostic{
		{Kind: render.UnmatchedRemoteRecord, RemoteID: 77, Message: "unknown"},
	})
	assert.Equal(t, [][]string{{"unmatched_remote_record", "", "77", "unknown"}}, data.Rows)
}
