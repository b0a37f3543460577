package registry

import (
	"github.com/upenn-libraries/libhours/internal/utils/ptr"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// Resolved is the display data a location gets once hours are known.
type Resolved struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	HoursText   string `json:"hours_text" yaml:"hours_text"`
	DetailURL   string `json:"detail_url" yaml:"detail_url"`
}

// LocationEntry is a single registry record.
type LocationEntry struct {
	Key                 string
	RemoteID            *int
	CalendarURL         string
	DisplayNameOverride string

	// Manual entries carry their resolved data from configuration.
	Manual bool

	resolved *Resolved
}

// Tracked reports whether the remote hours service knows this location.
func (e *LocationEntry) Tracked() bool {
	return e.RemoteID != nil
}

// LID returns the remote identifier, or 0 for untracked entries.
func (e *LocationEntry) LID() int {
	return ptr.Value(e.RemoteID)
}

// Resolved returns the resolved data and whether it is set.
func (e *LocationEntry) Resolved() (Resolved, bool) {
	if e.resolved == nil {
		return Resolved{}, false
	}
	return *e.resolved, true
}

// Resolve sets the resolved data. It is write-once: a second call, or any
// call on a manual entry, fails with ErrAlreadyExists.
func (e *LocationEntry) Resolve(r Resolved) error {
	if e.resolved != nil {
		return &errors.ResourceError{
			Operation: "resolve",
			Resource:  "location",
			ID:        e.Key,
			Message:   "already resolved",
			Err:       errors.ErrAlreadyExists,
		}
	}
	e.resolved = &r
	return nil
}

// DisplayName prefers the configured override over the remote name.
func (e *LocationEntry) DisplayName() string {
	if e.DisplayNameOverride != "" {
		return e.DisplayNameOverride
	}
	if e.resolved != nil {
		return e.resolved.DisplayName
	}
	return ""
}
