package render

import (
	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/marker"
)

// Kind is the role of a placeholder.
type Kind int

// Placeholder kinds.
const (
	KindInvalid Kind = iota
	KindChart
	KindFilled
	KindSingle
)

func (k Kind) String() string {
	switch k {
	case KindChart:
		return "chart"
	case KindFilled:
		return "filled"
	case KindSingle:
		return "single"
	default:
		return "invalid"
	}
}

// Placeholder is a page element tagged with a namespace marker.
type Placeholder struct {
	Element document.Element
	Class   string
	Marker  marker.Marker
	Err     error
}

// Kind classifies the placeholder. The chart token wins over a suffix.
func (p Placeholder) Kind() Kind {
	switch {
	case p.Err != nil:
		return KindInvalid
	case p.Marker.IsChart():
		return KindChart
	case p.Marker.Filled():
		return KindFilled
	default:
		return KindSingle
	}
}

// Scan returns every placeholder of doc in document order.
func Scan(doc document.Document, namespace string) []Placeholder {
	elements := doc.FindByMarker(namespace)
	out := make([]Placeholder, 0, len(elements))
	for _, el := range elements {
		class, ok := el.Marker(namespace)
		if !ok {
			continue
		}
		m, err := marker.Parse(namespace, class)
		out = append(out, Placeholder{Element: el, Class: class, Marker: m, Err: err})
	}
	return out
}
