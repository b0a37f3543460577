// Package reconciler merges fetched hours records into a registry.
//
// Records are matched to entries by remote identifier. Records without a
// matching entry are dropped; the remote service routinely lists locations
// a page does not surface.
package reconciler

import (
	"context"

	"github.com/upenn-libraries/libhours/pkg/hours"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/registry"
)

// Reconcile sets the resolved data of every registry entry that a record
// matches. Manual entries and entries already resolved keep their data.
func Reconcile(ctx context.Context, reg *registry.Registry, records []hours.Record) *Result {
	logger := logging.FromContext(ctx)
	result := &Result{}

	for _, rec := range records {
		entry, ok := reg.ByRemoteID(rec.RemoteID)
		if !ok {
			logger.Debug().
				Int("lid", rec.RemoteID).
				Str("name", rec.Name).
				Msg("Unknown location in hours data")
			result.Unmatched = append(result.Unmatched, rec)
			continue
		}

		if entry.Manual {
			logger.Debug().
				Str("location", entry.Key).
				Int("lid", rec.RemoteID).
				Msg("Keeping manual hours")
			result.Skipped = append(result.Skipped, rec)
			continue
		}

		err := entry.Resolve(registry.Resolved{
			DisplayName: rec.Name,
			HoursText:   registry.HoursPrefix + rec.Rendered,
			DetailURL:   rec.URL,
		})
		if err != nil {
			logger.Warn().
				Err(err).
				Str("location", entry.Key).
				Int("lid", rec.RemoteID).
				Msg("Duplicate hours record ignored")
			result.Duplicates = append(result.Duplicates, rec)
			continue
		}
		result.Matched = append(result.Matched, entry.Key)
	}

	for _, entry := range reg.Entries() {
		if _, ok := entry.Resolved(); !ok {
			result.Unresolved = append(result.Unresolved, entry.Key)
		}
	}

	logger.Debug().
		Int("matched", len(result.Matched)).
		Int("unmatched", len(result.Unmatched)).
		Int("unresolved", len(result.Unresolved)).
		Msg("Reconciled hours data")

	return result
}
