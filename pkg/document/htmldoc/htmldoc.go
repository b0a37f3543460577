// Package htmldoc implements document.Document over golang.org/x/net/html.
package htmldoc

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/marker"
)

// Document is a parsed HTML page or fragment.
type Document struct {
	root     *html.Node
	fragment bool
}

var _ document.Document = (*Document)(nil)

// Parse reads a complete HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}
	return &Document{root: root}, nil
}

// ParseFragment reads a body fragment. Render writes back only the fragment.
func ParseFragment(r io.Reader) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return &Document{root: body, fragment: true}, nil
}

// ParseString is ParseFragment for a string.
func ParseString(s string) (*Document, error) {
	return ParseFragment(strings.NewReader(s))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if !d.fragment {
		return html.Render(w, d.root)
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// FindByMarker walks the tree in document order.
func (d *Document) FindByMarker(namespace string) []document.Element {
	var found []document.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := markerClass(n, namespace); ok {
				found = append(found, &Element{node: n})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

// Query returns the elements that have the given class, in document order.
func (d *Document) Query(class string) []*Element {
	var found []*Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = append(found, &Element{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return found
}

// ByID returns the first element with the given id.
func (d *Document) ByID(id string) (*Element, bool) {
	var found *html.Node
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	if !walk(d.root) {
		return nil, false
	}
	return &Element{node: found}, true
}

func markerClass(n *html.Node, namespace string) (string, bool) {
	for _, class := range strings.Fields(attr(n, "class")) {
		if marker.Matches(namespace, class) {
			return class, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
