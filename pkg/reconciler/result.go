package reconciler

import "github.com/upenn-libraries/libhours/pkg/hours"

// Result represents the outcome of a reconciliation.
type Result struct {
	// Matched lists registry keys resolved from a record, in record order.
	Matched []string

	// Unmatched holds records with no registry entry.
	Unmatched []hours.Record

	// Duplicates holds records for an entry that was already resolved.
	Duplicates []hours.Record

	// Skipped holds records for manual entries.
	Skipped []hours.Record

	// Unresolved lists registry keys still without data, in definition order.
	Unresolved []string
}

// Complete reports whether every registry entry has data.
func (r *Result) Complete() bool {
	return len(r.Unresolved) == 0
}
