package transport

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Decorator adjusts an outgoing request.
type Decorator interface {
	Apply(req *http.Request)
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(req *http.Request)

// Apply implements the Decorator interface.
func (f DecoratorFunc) Apply(req *http.Request) {
	f(req)
}

// UserAgent sets the User-Agent header.
type UserAgent string

// Apply implements the Decorator interface for UserAgent.
func (ua UserAgent) Apply(req *http.Request) {
	if ua != "" {
		req.Header.Set("User-Agent", string(ua))
	}
}

// HeaderDecorator sets a fixed header.
type HeaderDecorator struct {
	Header string
	Value  string
}

// Apply implements the Decorator interface for HeaderDecorator.
func (h *HeaderDecorator) Apply(req *http.Request) {
	req.Header.Set(h.Header, h.Value)
}

// QueryParam sets a fixed query parameter.
type QueryParam struct {
	Param string
	Value string
}

// Apply implements the Decorator interface for QueryParam.
func (q *QueryParam) Apply(req *http.Request) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(q.Param, q.Value)
	req.URL.RawQuery = query.Encode()
}

// CacheBuster adds a "_" query parameter holding the current Unix time in
// milliseconds so intermediaries never serve a stale copy. Values never
// repeat: a request in the same millisecond as the previous one, or under
// a clock that stands still, gets the previous value plus one.
type CacheBuster struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

// Apply implements the Decorator interface for CacheBuster.
func (cb *CacheBuster) Apply(req *http.Request) {
	(&QueryParam{Param: "_", Value: strconv.FormatInt(cb.next(), 10)}).Apply(req)
}

func (cb *CacheBuster) next() int64 {
	now := time.Now
	if cb.Now != nil {
		now = cb.Now
	}
	v := now().UnixMilli()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if v <= cb.last {
		v = cb.last + 1
	}
	cb.last = v
	return v
}
