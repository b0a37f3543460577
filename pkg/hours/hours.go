// Package hours defines the records returned by an hours service and the
// Fetcher contract that retrieves them.
package hours

import "context"

// Record is one location's hours for today as reported by the remote service.
type Record struct {
	RemoteID int    `json:"lid" yaml:"lid"`
	Name     string `json:"name" yaml:"name"`
	Rendered string `json:"rendered" yaml:"rendered"`
	URL      string `json:"url" yaml:"url"`
}

// Fetcher retrieves today's hours for every location of an institution.
// A Fetcher performs exactly one request per call and never retries.
type Fetcher interface {
	Fetch(ctx context.Context, institution int) ([]Record, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, institution int) ([]Record, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, institution int) ([]Record, error) {
	return f(ctx, institution)
}

// Static returns a Fetcher that always yields records.
func Static(records ...Record) Fetcher {
	return FetcherFunc(func(context.Context, int) ([]Record, error) {
		out := make([]Record, len(records))
		copy(out, records)
		return out, nil
	})
}

// Failing returns a Fetcher that always fails with err.
func Failing(err error) Fetcher {
	return FetcherFunc(func(context.Context, int) ([]Record, error) {
		return nil, err
	})
}
