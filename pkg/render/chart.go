package render

import (
	"context"

	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/registry"
)

// ChartEntry is one chart row, built from a registry entry for one pass.
type ChartEntry struct {
	Key         string `json:"key" yaml:"key"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	DetailURL   string `json:"detail_url" yaml:"detail_url"`
	HoursText   string `json:"hours_text" yaml:"hours_text"`
	CalendarURL string `json:"calendar_url" yaml:"calendar_url"`
	Resolved    bool   `json:"resolved" yaml:"resolved"`
}

// NewChartEntry builds a row for e. Unresolved entries fall back to the
// override or the key for the name, the calendar for the detail link, and
// unavailable hours.
func NewChartEntry(e *registry.LocationEntry) ChartEntry {
	ce := ChartEntry{
		Key:         e.Key,
		DisplayName: e.DisplayName(),
		DetailURL:   e.CalendarURL,
		HoursText:   UnavailableHours,
		CalendarURL: e.CalendarURL,
	}
	if res, ok := e.Resolved(); ok {
		ce.Resolved = true
		ce.HoursText = res.HoursText
		if res.DetailURL != "" {
			ce.DetailURL = res.DetailURL
		}
	}
	if ce.DisplayName == "" {
		ce.DisplayName = e.Key
	}
	return ce
}

// ChartEntries returns the chart rows in registry order, keeping only
// entries whose remote id is a chart member.
func (r *Renderer) ChartEntries() []ChartEntry {
	var out []ChartEntry
	for _, e := range r.registry.Entries() {
		if !e.Tracked() {
			continue
		}
		if _, ok := r.chart[e.LID()]; !ok {
			continue
		}
		out = append(out, NewChartEntry(e))
	}
	return out
}

// buildChart replaces the placeholder with the chart container, keeps it
// hidden while the columns are laid out and reveals it when done.
func (p *pass) buildChart(ctx context.Context, ph Placeholder) Result {
	logger := logging.FromContext(ctx)

	p.charts++
	if p.charts > 1 {
		logger.Warn().Int("chart", p.charts).Msg("Building additional chart; container id repeats")
		p.report.Add(Diagnostic{Kind: DuplicateChart, Message: "more than one chart placeholder in document"})
	}

	container, err := ph.Element.ReplaceWith(Container)
	if err != nil {
		return p.failed(ctx, ph, "replace", err)
	}
	if err := container.SetVisible(false); err != nil {
		return p.failed(ctx, ph, "hide", err)
	}

	entries := p.ChartEntries()
	for _, e := range entries {
		if e.Resolved {
			continue
		}
		err := &errors.UnresolvedError{Key: e.Key}
		if entry, ok := p.registry.Lookup(e.Key); ok {
			err.RemoteID = entry.LID()
		}
		logger.Warn().Err(err).Msg("Chart row has unavailable hours")
		p.report.Add(Diagnostic{Kind: UnresolvedEntry, Key: e.Key, RemoteID: err.RemoteID, Message: err.Error()})
	}

	if len(entries) > 0 {
		list, ok := container.FirstChild()
		if !ok {
			return p.failed(ctx, ph, "layout", errors.NewNotFoundError("element", "ul.homeul.left"))
		}
		if _, err := list.ReplaceWith(ColumnsMarkup(Split(entries), p.moreInfoURL)); err != nil {
			return p.failed(ctx, ph, "layout", err)
		}
	}

	if err := container.SetVisible(true); err != nil {
		return p.failed(ctx, ph, "reveal", err)
	}

	logger.Debug().Int("entries", len(entries)).Msg("Built hours chart")
	return Result{Marker: ph.Class, Token: ph.Marker.Token, Outcome: OutcomeChart, Entries: len(entries)}
}
