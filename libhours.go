// Package libhours decorates HTML pages with today's opening hours.
//
// A Client holds a location registry configuration and an hours Fetcher.
// Each call to Render builds a fresh registry, fetches hours once,
// reconciles the records into the registry and fills every placeholder of
// the document. Placeholders are elements whose class starts with the
// marker namespace ("libhours-" by default):
//
//	<span class="libhours-maryi"></span>   single location line
//	<div class="libhours-chart"></div>     two-column hours chart
//
// Example usage:
//
//	client, err := libhours.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := htmldoc.Parse(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := client.Render(ctx, doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = doc.Render(w)
//
//	// Observe placeholders and diagnostics as they are recorded
//	client.OnDiagnostic(func(d render.Diagnostic) {
//	    log.Printf("%s: %s", d.Kind, d.Message)
//	})
package libhours

import (
	"context"
	"sync"

	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/reconciler"
	"github.com/upenn-libraries/libhours/pkg/registry"
	"github.com/upenn-libraries/libhours/pkg/render"
)

// Renderer fills the placeholders of a document.
type Renderer interface {
	Render(ctx context.Context, doc document.Document) (*render.Report, error)
}

// Inspector lists locations with their hours for today.
type Inspector interface {
	Locations(ctx context.Context) ([]Location, *render.Report, error)
}

// Client renders hours into documents.
type Client interface {
	// Renderer runs one full pass over a document
	Renderer

	// Inspector exposes the reconciled registry
	Inspector

	// Hooks provides access to event callback registration
	Hooks

	// Config returns the registry configuration in use
	Config() *registry.Config
}

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	hooks   *hooks

	// mu serializes passes; a pass owns its registry and document.
	mu sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if err := o.config.Validate(); err != nil {
		return nil, errors.NewConfigError("registry", "invalid registry", err)
	}
	return &client{options: o, hooks: newHooks()}, nil
}

// Config returns the registry configuration.
func (c *client) Config() *registry.Config {
	return c.options.config
}

// Render runs one pass over doc: fetch, reconcile, then fill placeholders.
// Per-placeholder problems are recorded in the report. An error is returned
// only when the pass cannot start.
func (c *client) Render(ctx context.Context, doc document.Document) (*render.Report, error) {
	if doc == nil {
		return nil, errors.NewValidationError("document", nil, "is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = logging.WithOperation(logging.WithRunID(ctx), "render")
	report := &render.Report{RunID: logging.RunID(ctx)}

	reg, err := c.prepare(ctx, report)
	if err != nil {
		return nil, err
	}

	r := render.New(reg,
		render.WithChart(c.options.config.Chart),
		render.WithNamespace(c.options.namespace),
		render.WithMoreInfoURL(c.options.moreInfoURL()),
		render.WithClock(c.options.now),
	)
	if err := r.RenderInto(ctx, doc, report); err != nil {
		return nil, err
	}

	c.hooks.trigger(report)

	logging.FromContext(ctx).Info().
		Int("placeholders", len(report.Placeholders)).
		Int("diagnostics", len(report.Diagnostics)).
		Msg("Rendered hours")
	return report, nil
}

// prepare builds the registry for one pass and fills it with fetched
// hours. A fetch failure is recorded and leaves tracked entries unresolved.
func (c *client) prepare(ctx context.Context, report *render.Report) (*registry.Registry, error) {
	logger := logging.FromContext(ctx)

	reg, err := c.options.config.NewRegistry()
	if err != nil {
		return nil, errors.NewConfigError("registry", "cannot build registry", err)
	}

	institution := c.options.institution()
	records, err := c.options.fetcher.Fetch(ctx, institution)
	if err != nil {
		logger.Error().Err(err).Int("institution", institution).Msg("LibCalJSON: HTTP-GET failure")
		report.Add(render.Diagnostic{Kind: render.FetchFailure, Message: err.Error()})
		records = nil
	}

	result := reconciler.Reconcile(ctx, reg, records)
	for _, rec := range result.Unmatched {
		report.Add(render.Diagnostic{
			Kind:     render.UnmatchedRemoteRecord,
			RemoteID: rec.RemoteID,
			Message:  "unknown location in hours data: " + rec.Name,
		})
	}
	return reg, nil
}
