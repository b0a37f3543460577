// Package libcal reads today's hours from the LibCal hours API.
package libcal

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/upenn-libraries/libhours/internal/transport"
	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/hours"
	"github.com/upenn-libraries/libhours/pkg/logging"
)

// Source fetches hours from a LibCal endpoint.
type Source struct {
	endpoint string
	client   *transport.Client
	timeout  time.Duration
	now      func() time.Time
}

var _ hours.Fetcher = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithEndpoint overrides the hours endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *Source) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithClock sets the clock used for the cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// WithClient replaces the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a LibCal source.
func New(opts ...Option) *Source {
	s := &Source{
		endpoint: constants.DefaultEndpoint,
		timeout:  constants.DefaultHTTPTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = transport.New(constants.ServiceName,
			transport.WithTimeout(s.timeout),
			transport.WithDecorators(&transport.CacheBuster{Now: s.now}),
		)
	}
	return s
}

// URL returns the request URL for an institution, without the cache buster.
func (s *Source) URL(institution int) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", errors.NewConfigError("endpoint", "invalid URL "+s.endpoint, err)
	}
	q := u.Query()
	q.Set("iid", strconv.Itoa(institution))
	q.Set("lid", "0")
	q.Set("format", "json")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs one request for every location's hours today.
func (s *Source) Fetch(ctx context.Context, institution int) ([]hours.Record, error) {
	logger := logging.FromContext(ctx)

	target, err := s.URL(institution)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.client.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	body, err := transport.ReadBody(ctx, s.client.Service(), resp)
	if err != nil {
		return nil, err
	}

	records, err := Parse(ctx, body)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("institution", institution).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched hours")
	return records, nil
}
