package render

// DiagnosticKind classifies a problem found during a render pass.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// FetchFailure means the hours service could not be read. Every
	// tracked location falls back to unavailable hours.
	FetchFailure DiagnosticKind = "fetch_failure"

	// UnknownKey means a placeholder names a key the registry lacks.
	UnknownKey DiagnosticKind = "unknown_key"

	// UnmatchedRemoteRecord means the hours service listed a location the
	// registry does not know. Never shown on the page.
	UnmatchedRemoteRecord DiagnosticKind = "unmatched_remote_record"

	// UnresolvedEntry means a referenced location has no hours data.
	UnresolvedEntry DiagnosticKind = "unresolved_entry"

	// InvalidMarker means a class carries the namespace but no token.
	InvalidMarker DiagnosticKind = "invalid_marker"

	// ElementFailure means the document rejected an edit.
	ElementFailure DiagnosticKind = "element_failure"

	// DuplicateChart means more than one chart placeholder was built.
	DuplicateChart DiagnosticKind = "duplicate_chart"
)

// Diagnostic is one advisory finding. Diagnostics never stop a pass.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Key      string         `json:"key,omitempty" yaml:"key,omitempty"`
	RemoteID int            `json:"lid,omitempty" yaml:"lid,omitempty"`
	Message  string         `json:"message" yaml:"message"`
}

// Outcome is what happened to one placeholder.
type Outcome string

// Placeholder outcomes.
const (
	OutcomeFilled     Outcome = "filled"
	OutcomeUnresolved Outcome = "unresolved"
	OutcomeUnknownKey Outcome = "unknown_key"
	OutcomeChart      Outcome = "chart"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeFailed     Outcome = "failed"
)

// Result records the handling of one placeholder.
type Result struct {
	Marker  string  `json:"marker" yaml:"marker"`
	Token   string  `json:"token,omitempty" yaml:"token,omitempty"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Entries is the number of chart rows, for chart placeholders.
	Entries int `json:"entries,omitempty" yaml:"entries,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Report summarizes a render pass.
type Report struct {
	RunID        string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Date         string       `json:"date" yaml:"date"`
	Placeholders []Result     `json:"placeholders" yaml:"placeholders"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Add appends a diagnostic.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Count returns how many diagnostics of kind were recorded.
func (r *Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Outcomes counts placeholders per outcome.
func (r *Report) Outcomes() map[Outcome]int {
	out := make(map[Outcome]int)
	for _, p := range r.Placeholders {
		out[p.Outcome]++
	}
	return out
}

// Failed reports whether any placeholder could not be edited.
func (r *Report) Failed() bool {
	for _, p := range r.Placeholders {
		if p.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}
