package libhours

import (
	"context"

	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/render"
)

// Location is a registry entry with its hours for today.
type Location struct {
	Key         string `json:"key" yaml:"key"`
	LID         int    `json:"lid,omitempty" yaml:"lid,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Hours       string `json:"hours" yaml:"hours"`
	CalendarURL string `json:"calendar_url" yaml:"calendar_url"`
	DetailURL   string `json:"detail_url" yaml:"detail_url"`
	Resolved    bool   `json:"resolved" yaml:"resolved"`
	Manual      bool   `json:"manual,omitempty" yaml:"manual,omitempty"`
	InChart     bool   `json:"in_chart" yaml:"in_chart"`
}

// Locations fetches hours once and returns every registry entry in
// definition order. Unresolved entries carry the unavailable hours text.
func (c *client) Locations(ctx context.Context) ([]Location, *render.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = logging.WithOperation(logging.WithRunID(ctx), "locations")
	report := &render.Report{RunID: logging.RunID(ctx)}

	reg, err := c.prepare(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	report.Date = render.FormatDate(c.options.now())

	chart := make(map[int]bool, len(c.options.config.Chart))
	for _, id := range c.options.config.Chart {
		chart[id] = true
	}

	out := make([]Location, 0, reg.Len())
	for _, e := range reg.Entries() {
		ce := render.NewChartEntry(e)
		loc := Location{
			Key:         e.Key,
			LID:         e.LID(),
			Name:        ce.DisplayName,
			Hours:       ce.HoursText,
			CalendarURL: e.CalendarURL,
			DetailURL:   ce.DetailURL,
			Resolved:    ce.Resolved,
			Manual:      e.Manual,
			InChart:     e.Tracked() && chart[e.LID()],
		}
		if !ce.Resolved {
			report.Add(render.Diagnostic{Kind: render.UnresolvedEntry, Key: e.Key, RemoteID: e.LID(), Message: "hours data unavailable"})
		}
		out = append(out, loc)
	}

	c.hooks.trigger(report)
	return out, report, nil
}
