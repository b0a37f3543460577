package locations

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/cmd/application"
	"github.com/upenn-libraries/libhours/pkg/hours"
)

func run(t *testing.T, format string, args ...string) []libhours.Location {
	t.Helper()
	app := &application.Mock{
		ClientFunc: func(opts ...libhours.Option) (libhours.Client, error) {
			return libhours.New(append(opts, libhours.WithFetcher(hours.Static(
				hours.Record{RemoteID: 8552, Name: "Mary Idema Pew", Rendered: "7:30am - 2am"},
				hours.Record{RemoteID: 19433, Name: "Virtual", Rendered: "24 hours"},
			)))...)
		},
		OutputFormatFunc: func() string { return format },
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	var locs []libhours.Location
	require.NoError(t, json.Unmarshal(out.Bytes(), &locs))
	return locs
}

func TestLocationsListsRegistryOrder(t *testing.T) {
	locs := run(t, "json")

	require.Len(t, locs, 6)
	keys := make([]string, len(locs))
	for i, l := range locs {
		keys[i] = l.Key
	}
	assert.Equal(t, []string{"maryi", "steelcase", "frey", "virtual", "seidman", "cml"}, keys)

	assert.True(t, locs[0].Resolved)
	assert.Equal(t, "Mary Idema Pew", locs[0].Name)
	assert.False(t, locs[1].Resolved)
}

func TestLocationsFilters(t *testing.T) {
	unresolved := run(t, "json", "--unresolved")
	require.Len(t, unresolved, 4)
	for _, l := range unresolved {
		assert.False(t, l.Resolved, l.Key)
	}

	chart := run(t, "json", "--chart", "--unresolved")
	assert.Len(t, chart, 4)
}

func TestLocationsTable(t *testing.T) {
	app := &application.Mock{
		ClientFunc: func(opts ...libhours.Option) (libhours.Client, error) {
			return libhours.New(append(opts, libhours.WithFetcher(hours.Static()))...)
		},
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "maryi")
	assert.Contains(t, out.String(), "hours unavailable")
}
