// Package marker parses and formats the class markers that tag placeholders.
//
// A marker has the form <namespace>-<token>[-<suffix>]. The token is either
// the chart token or a registry key; a present suffix means the placeholder
// has already been handled and must be skipped.
package marker

import (
	"strings"

	"github.com/upenn-libraries/libhours/pkg/errors"
)

const (
	// ChartToken selects the two-column chart.
	ChartToken = "chart"

	// FilledSuffix is appended to a marker once its placeholder is filled.
	FilledSuffix = "filled"

	separator = "-"
)

// Marker is a parsed placeholder marker.
type Marker struct {
	Namespace string
	Token     string
	Suffix    string
}

// Parse splits class into namespace, token and suffix. The class must start
// with namespace followed by a separator and carry a non-empty token.
func Parse(namespace, class string) (Marker, error) {
	prefix := namespace + separator
	if namespace == "" || !strings.HasPrefix(class, prefix) {
		return Marker{}, errors.NewValidationError("marker", class, "missing namespace "+prefix)
	}

	token, suffix, _ := strings.Cut(strings.TrimPrefix(class, prefix), separator)
	if token == "" {
		return Marker{}, errors.NewValidationError("marker", class, "empty token")
	}

	return Marker{Namespace: namespace, Token: token, Suffix: suffix}, nil
}

// Matches reports whether class is a candidate marker for namespace.
func Matches(namespace, class string) bool {
	return namespace != "" && strings.HasPrefix(class, namespace+separator)
}

// New returns the unfilled marker for token.
func New(namespace, token string) Marker {
	return Marker{Namespace: namespace, Token: token}
}

// IsChart reports whether the marker selects the chart. The chart check
// ignores any suffix.
func (m Marker) IsChart() bool {
	return m.Token == ChartToken
}

// Filled reports whether the marker carries a suffix.
func (m Marker) Filled() bool {
	return m.Suffix != ""
}

// MarkFilled returns the marker with the filled suffix.
func (m Marker) MarkFilled() Marker {
	m.Suffix = FilledSuffix
	return m
}

// String formats the marker back into its class form.
func (m Marker) String() string {
	s := m.Namespace + separator + m.Token
	if m.Suffix != "" {
		s += separator + m.Suffix
	}
	return s
}
