package htmldoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

const hiddenStyle = "display:none"

// Element wraps an element node.
type Element struct {
	node *html.Node
}

var _ document.Element = (*Element)(nil)

// Marker returns the first class that starts with namespace followed by "-".
func (e *Element) Marker(namespace string) (string, bool) {
	return markerClass(e.node, namespace)
}

// SetMarker swaps one class for another.
func (e *Element) SetMarker(from, to string) error {
	classes := strings.Fields(attr(e.node, "class"))
	for i, c := range classes {
		if c == from {
			classes[i] = to
			setAttr(e.node, "class", strings.Join(classes, " "))
			return nil
		}
	}
	return errors.NewNotFoundError("class", from)
}

// Append parses markup in the element's context and adds it as trailing children.
func (e *Element) Append(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return errors.WrapParse("html", "", err)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// ReplaceWith parses markup in the parent's context and swaps it in.
func (e *Element) ReplaceWith(markup string) (document.Element, error) {
	parent := e.node.Parent
	if parent == nil {
		return nil, errors.NewValidationError("element", e.node.Data, "cannot replace a detached element")
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	var first *html.Node
	for _, n := range nodes {
		parent.InsertBefore(n, e.node)
		if first == nil && n.Type == html.ElementNode {
			first = n
		}
	}
	parent.RemoveChild(e.node)

	if first == nil {
		return nil, errors.NewValidationError("markup", markup, "contains no element")
	}
	return &Element{node: first}, nil
}

// FirstChild returns the first child element node.
func (e *Element) FirstChild() (document.Element, bool) {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return &Element{node: c}, true
		}
	}
	return nil, false
}

// SetVisible toggles an inline display:none.
func (e *Element) SetVisible(visible bool) error {
	var rules []string
	for _, r := range strings.Split(attr(e.node, "style"), ";") {
		r = strings.TrimSpace(r)
		if r == "" || strings.ReplaceAll(r, " ", "") == hiddenStyle {
			continue
		}
		rules = append(rules, r)
	}
	if !visible {
		rules = append(rules, hiddenStyle)
	}

	if len(rules) == 0 {
		removeAttr(e.node, "style")
		return nil
	}
	setAttr(e.node, "style", strings.Join(rules, ";"))
	return nil
}

// Visible reports whether the element has no inline display:none.
func (e *Element) Visible() bool {
	for _, r := range strings.Split(attr(e.node, "style"), ";") {
		if strings.ReplaceAll(strings.TrimSpace(r), " ", "") == hiddenStyle {
			return false
		}
	}
	return true
}

// Class returns the class attribute.
func (e *Element) Class() string {
	return attr(e.node, "class")
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) string {
	return attr(e.node, key)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}
