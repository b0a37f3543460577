package transport

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client performs single, unretried HTTP reads against a remote service.
type Client struct {
	service    string
	http       *http.Client
	decorators []Decorator
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithDecorators adds request decorators, applied in order.
func WithDecorators(d ...Decorator) Option {
	return func(c *Client) {
		c.decorators = append(c.decorators, d...)
	}
}

// New creates a new transport client for the named service.
func New(service string, opts ...Option) *Client {
	c := &Client{
		service: service,
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the service name used in errors.
func (c *Client) Service() string {
	return c.service
}

// Do performs an HTTP request with decorators applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for _, d := range c.decorators {
		d.Apply(req)
	}
	req.Header.Set("Accept", "application/json, text/javascript")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, c.classify(ctx, req, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// classify maps a transport failure to an APIError that matches
// ErrTimeout or ErrCanceled where it applies.
func (c *Client) classify(ctx context.Context, req *http.Request, err error) error {
	var netErr net.Error
	switch {
	case stderrors.Is(ctx.Err(), context.Canceled):
		err = fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.As(err, &netErr) && netErr.Timeout():
		err = fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}
	return &errors.APIError{
		Service:  c.service,
		Endpoint: redact(req),
		Message:  err.Error(),
		Err:      err,
	}
}

// redact drops the query, which may carry cache busters.
func redact(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
