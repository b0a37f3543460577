package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

const validYAML = `
institution: 1647
chart: [8552, 8738]
more_info_url: https://example.edu/locations
locations:
  - key: maryi
    lid: 8552
    calendar_url: https://example.edu/maryi
  - key: steelcase
    lid: 8738
    calendar_url: https://example.edu/steelcase
    display_name: Steelcase Library
  - key: biddle
    calendar_url: https://example.edu/law
    manual:
      name: Biddle Law Library
      hours: 8am - 11pm
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML), "locations.yaml")
	require.NoError(t, err)

	assert.Equal(t, 1647, cfg.Institution)
	assert.Equal(t, []int{8552, 8738}, cfg.Chart)
	assert.Equal(t, "https://example.edu/locations", cfg.MoreInfo())
	require.Len(t, cfg.Locations, 3)
	assert.Equal(t, "steelcase", cfg.Locations[1].Key)
	assert.Equal(t, "Steelcase Library", cfg.Locations[1].DisplayName)
	require.NotNil(t, cfg.Locations[2].Manual)
	assert.Nil(t, cfg.Locations[2].LID)

	reg, err := cfg.NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())
}

func TestNewRegistryIsFreshPerCall(t *testing.T) {
	cfg, err := Parse([]byte(validYAML), "")
	require.NoError(t, err)

	first, err := cfg.NewRegistry()
	require.NoError(t, err)
	e, _ := first.Lookup("maryi")
	require.NoError(t, e.Resolve(Resolved{DisplayName: "Mary I"}))

	second, err := cfg.NewRegistry()
	require.NoError(t, err)
	e, _ = second.Lookup("maryi")
	_, ok := e.Resolved()
	assert.False(t, ok)
}

func TestMoreInfoDefault(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, constants.DefaultMoreInfoURL, cfg.MoreInfo())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "malformed yaml",
			yaml: "locations: [",
			want: []string{"yaml"},
		},
		{
			name: "unknown field",
			yaml: "institution: 1\nlocaitons: []\n",
			want: []string{"locaitons"},
		},
		{
			name: "no locations",
			yaml: "institution: 1\n",
			want: []string{"locations"},
		},
		{
			name: "missing calendar url",
			yaml: "locations:\n  - key: a\n    lid: 1\n",
			want: []string{"locations[0].calendar_url", "is required"},
		},
		{
			name: "bad url",
			yaml: "locations:\n  - key: a\n    lid: 1\n    calendar_url: not a url\n",
			want: []string{"locations[0].calendar_url", "must be a URL"},
		},
		{
			name: "dash in key",
			yaml: "locations:\n  - key: van-pelt\n    lid: 1\n    calendar_url: https://x.edu\n",
			want: []string{"locations[0].key", "'-'"},
		},
		{
			name: "reserved key",
			yaml: "locations:\n  - key: chart\n    lid: 1\n    calendar_url: https://x.edu\n",
			want: []string{"reserved"},
		},
		{
			name: "neither lid nor manual",
			yaml: "locations:\n  - key: a\n    calendar_url: https://x.edu\n",
			want: []string{"needs either lid or manual hours"},
		},
		{
			name: "duplicate key and lid",
			yaml: `locations:
  - key: a
    lid: 1
    calendar_url: https://x.edu
  - key: a
    lid: 1
    calendar_url: https://y.edu
`,
			want: []string{"duplicates locations[0]", "already used by a"},
		},
		{
			name: "chart references unknown lid",
			yaml: "chart: [2]\nlocations:\n  - key: a\n    lid: 1\n    calendar_url: https://x.edu\n",
			want: []string{"chart[0]", "no location has this lid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "test.yaml")
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestValidationErrorsAreTyped(t *testing.T) {
	_, err := Parse([]byte("locations:\n  - key: a\n    calendar_url: https://x.edu\n"), "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), constants.FilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Locations, 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
