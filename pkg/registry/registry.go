// Package registry holds the statically configured set of known locations.
//
// A Registry is built once per render pass from a Config. Its entries keep
// configuration order, which is the display order of the hours chart.
package registry

import (
	"fmt"
	"strconv"

	"github.com/upenn-libraries/libhours/internal/utils/ptr"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// Registry is an ordered, indexed set of locations.
type Registry struct {
	entries    []*LocationEntry
	byKey      map[string]*LocationEntry
	byRemoteID map[int]*LocationEntry
}

// New builds a Registry from location configs, keeping their order.
func New(locations []LocationConfig) (*Registry, error) {
	r := &Registry{
		entries:    make([]*LocationEntry, 0, len(locations)),
		byKey:      make(map[string]*LocationEntry, len(locations)),
		byRemoteID: make(map[int]*LocationEntry, len(locations)),
	}

	for i, loc := range locations {
		if err := r.add(loc); err != nil {
			return nil, fmt.Errorf("locations[%d]: %w", i, err)
		}
	}
	return r, nil
}

func (r *Registry) add(loc LocationConfig) error {
	if loc.Key == "" {
		return errors.NewValidationError("key", loc.Key, "is required")
	}
	if _, ok := r.byKey[loc.Key]; ok {
		return &errors.ResourceError{
			Operation: "add",
			Resource:  "location",
			ID:        loc.Key,
			Message:   "duplicate key",
			Err:       errors.ErrAlreadyExists,
		}
	}

	entry := &LocationEntry{
		Key:                 loc.Key,
		CalendarURL:         loc.CalendarURL,
		DisplayNameOverride: loc.DisplayName,
	}

	if loc.LID != nil {
		if other, ok := r.byRemoteID[*loc.LID]; ok {
			return &errors.ResourceError{
				Operation: "add",
				Resource:  "location",
				ID:        loc.Key,
				Message:   "lid " + strconv.Itoa(*loc.LID) + " already used by " + other.Key,
				Err:       errors.ErrAlreadyExists,
			}
		}
		entry.RemoteID = ptr.Clone(loc.LID)
		r.byRemoteID[*loc.LID] = entry
	}

	if loc.Manual != nil {
		entry.Manual = true
		entry.resolved = &Resolved{
			DisplayName: loc.Manual.Name,
			HoursText:   HoursPrefix + loc.Manual.Hours,
			DetailURL:   loc.Manual.URL,
		}
	}

	r.entries = append(r.entries, entry)
	r.byKey[loc.Key] = entry
	return nil
}

// HoursPrefix precedes every resolved hours string.
const HoursPrefix = ": "

// Lookup finds an entry by key.
func (r *Registry) Lookup(key string) (*LocationEntry, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// ByRemoteID finds an entry by its remote identifier.
func (r *Registry) ByRemoteID(id int) (*LocationEntry, bool) {
	e, ok := r.byRemoteID[id]
	return e, ok
}

// Entries returns the entries in definition order.
func (r *Registry) Entries() []*LocationEntry {
	out := make([]*LocationEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
