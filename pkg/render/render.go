// Package render fills hours placeholders in a document.
//
// A pass scans the document once, then fills each single-location
// placeholder and builds each chart placeholder. Placeholders are handled
// independently: a failure on one is recorded in the Report and the pass
// moves on. Filled placeholders carry a "-filled" marker suffix, so running
// a second pass over the same document changes nothing.
package render

import (
	"context"
	"time"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/registry"
)

// Renderer applies a registry to documents.
type Renderer struct {
	registry    *registry.Registry
	chart       map[int]struct{}
	namespace   string
	moreInfoURL string
	now         func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithChart sets the remote ids shown in the chart. Only membership
// matters; rows follow registry order.
func WithChart(ids []int) Option {
	return func(r *Renderer) {
		r.chart = make(map[int]struct{}, len(ids))
		for _, id := range ids {
			r.chart[id] = struct{}{}
		}
	}
}

// WithNamespace sets the marker namespace.
func WithNamespace(ns string) Option {
	return func(r *Renderer) {
		if ns != "" {
			r.namespace = ns
		}
	}
}

// WithMoreInfoURL sets the target of the chart's "more info" row.
func WithMoreInfoURL(url string) Option {
	return func(r *Renderer) {
		if url != "" {
			r.moreInfoURL = url
		}
	}
}

// WithClock sets the source of today's date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Renderer for reg.
func New(reg *registry.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		registry:    reg,
		chart:       map[int]struct{}{},
		namespace:   constants.DefaultNamespace,
		moreInfoURL: constants.DefaultMoreInfoURL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Namespace returns the marker namespace.
func (r *Renderer) Namespace() string {
	return r.namespace
}

// Render runs one pass over doc.
func (r *Renderer) Render(ctx context.Context, doc document.Document) (*Report, error) {
	report := &Report{}
	if err := r.RenderInto(ctx, doc, report); err != nil {
		return nil, err
	}
	return report, nil
}

// RenderInto runs one pass over doc and records results in report,
// keeping diagnostics already present.
func (r *Renderer) RenderInto(ctx context.Context, doc document.Document, report *Report) error {
	if doc == nil {
		return errors.NewValidationError("document", nil, "is required")
	}
	if r.registry == nil {
		return errors.NewValidationError("registry", nil, "is required")
	}

	p := &pass{
		Renderer: r,
		date:     FormatDate(r.now()),
		report:   report,
	}
	report.Date = p.date

	logger := logging.FromContext(ctx)
	placeholders := Scan(doc, r.namespace)
	logger.Debug().
		Int("placeholders", len(placeholders)).
		Str("namespace", r.namespace).
		Str("date", p.date).
		Msg("Scanned document")

	for _, ph := range placeholders {
		report.Placeholders = append(report.Placeholders, p.dispatch(ctx, ph))
	}
	return nil
}

// pass holds the state of one render pass.
type pass struct {
	*Renderer
	date   string
	report *Report
	charts int
}

func (p *pass) dispatch(ctx context.Context, ph Placeholder) Result {
	ctx = logging.WithMarker(ctx, ph.Class)

	switch ph.Kind() {
	case KindInvalid:
		logging.FromContext(ctx).Warn().Err(ph.Err).Msg("Ignoring malformed marker")
		p.report.Add(Diagnostic{Kind: InvalidMarker, Message: ph.Err.Error()})
		return Result{Marker: ph.Class, Outcome: OutcomeInvalid, Err: ph.Err}
	case KindChart:
		return p.buildChart(ctx, ph)
	case KindFilled:
		return Result{Marker: ph.Class, Token: ph.Marker.Token, Outcome: OutcomeSkipped}
	default:
		return p.fill(ctx, ph)
	}
}

func (p *pass) failed(ctx context.Context, ph Placeholder, op string, err error) Result {
	err = errors.WrapResource(op, "placeholder", ph.Class, err)
	logging.FromContext(ctx).Error().Err(err).Msg("Placeholder edit failed")
	p.report.Add(Diagnostic{Kind: ElementFailure, Key: ph.Marker.Token, Message: err.Error()})
	return Result{Marker: ph.Class, Token: ph.Marker.Token, Outcome: OutcomeFailed, Err: err}
}
