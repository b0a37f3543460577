package libcal

import (
	"context"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/hours"
	"github.com/upenn-libraries/libhours/pkg/logging"
)

// Parse reads the "locations" collection of an hours payload. Locations
// without a usable lid are skipped. The collection may be an array or an
// object keyed by anything.
func Parse(ctx context.Context, body []byte) ([]hours.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.NewParseError("json", "", "hours payload is not valid JSON", nil)
	}

	locations := gjson.GetBytes(body, "locations")
	if !locations.Exists() {
		return nil, errors.NewParseError("json", "", "hours payload has no locations", nil)
	}
	if !locations.IsArray() && !locations.IsObject() {
		return nil, errors.NewParseError("json", "", "locations is not a collection", nil)
	}

	logger := logging.FromContext(ctx)
	var records []hours.Record
	locations.ForEach(func(_, loc gjson.Result) bool {
		lid, ok := parseLID(loc.Get("lid"))
		if !ok {
			logger.Debug().
				Str("lid", loc.Get("lid").Raw).
				Str("name", loc.Get("name").String()).
				Msg("Skipping location without a numeric lid")
			return true
		}
		records = append(records, hours.Record{
			RemoteID: lid,
			Name:     loc.Get("name").String(),
			Rendered: loc.Get("rendered").String(),
			URL:      loc.Get("url").String(),
		})
		return true
	})
	return records, nil
}

// parseLID accepts a JSON number or a numeric string.
func parseLID(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if v.Num != float64(int(v.Num)) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
