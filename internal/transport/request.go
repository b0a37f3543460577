package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/upenn-libraries/libhours/pkg/constants"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
)

// ReadBody reads and closes a response body. Non-200 responses become an
// APIError carrying the (truncated) body. JSONP wrappers are removed.
func ReadBody(ctx context.Context, service string, resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.Host + resp.Request.URL.Path
		}
		return nil, &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    truncate(strings.TrimSpace(string(body)), 200),
		}
	}

	return StripJSONP(body), nil
}

// StripJSONP returns the argument of a "callback(...)" wrapper, or body
// unchanged when it is plain JSON.
func StripJSONP(body []byte) []byte {
	b := bytes.TrimSpace(body)
	b = bytes.TrimSpace(bytes.TrimPrefix(b, []byte("/**/")))
	if len(b) == 0 || b[0] == '{' || b[0] == '[' {
		return body
	}

	open := bytes.IndexByte(b, '(')
	if open <= 0 || !isCallback(b[:open]) {
		return body
	}

	rest := bytes.TrimRight(b[open+1:], "; \t\r\n")
	if len(rest) == 0 || rest[len(rest)-1] != ')' {
		return body
	}
	return bytes.TrimSpace(rest[:len(rest)-1])
}

func isCallback(name []byte) bool {
	for _, c := range bytes.TrimSpace(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '_', c == '$', c == '.':
		default:
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
