package libhours

import (
	"sync"

	"github.com/upenn-libraries/libhours/pkg/render"
)

// Hook function types for render events
type (
	// DiagnosticHook is called for each diagnostic of a pass
	DiagnosticHook func(d render.Diagnostic)

	// PlaceholderHook is called for each placeholder handled by a pass
	PlaceholderHook func(r render.Result)
)

// Hooks registers callbacks that run after each pass.
type Hooks interface {
	// OnDiagnostic registers a callback for diagnostics
	OnDiagnostic(DiagnosticHook)

	// OnPlaceholder registers a callback for handled placeholders
	OnPlaceholder(PlaceholderHook)
}

// hooks manages event callbacks for render passes
type hooks struct {
	mu            sync.RWMutex
	onDiagnostic  []DiagnosticHook
	onPlaceholder []PlaceholderHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDiagnostic registers a callback for diagnostics
func (c *client) OnDiagnostic(fn DiagnosticHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onDiagnostic = append(c.hooks.onDiagnostic, fn)
}

// OnPlaceholder registers a callback for handled placeholders
func (c *client) OnPlaceholder(fn PlaceholderHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onPlaceholder = append(c.hooks.onPlaceholder, fn)
}

// trigger replays a finished report to the registered hooks, in order
func (h *hooks) trigger(report *render.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, p := range report.Placeholders {
		for _, hook := range h.onPlaceholder {
			hook(p)
		}
	}
	for _, d := range report.Diagnostics {
		for _, hook := range h.onDiagnostic {
			hook(d)
		}
	}
}
