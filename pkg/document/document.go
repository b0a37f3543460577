// Package document defines the page capabilities the renderer depends on.
//
// The renderer never touches a concrete DOM. A backend only needs to find
// elements by marker namespace, read and rewrite an element's marker,
// append or replace markup, and toggle visibility.
package document

// Document is a mutable page.
type Document interface {
	// FindByMarker returns, in document order, every element carrying a
	// class that starts with namespace followed by "-".
	FindByMarker(namespace string) []Element
}

// Element is a handle to one element of a Document.
type Element interface {
	// Marker returns the first class of the element that starts with
	// namespace followed by "-".
	Marker(namespace string) (string, bool)

	// SetMarker replaces the class from with the class to, keeping any other classes.
	SetMarker(from, to string) error

	// Append parses markup and adds it after the element's existing content.
	Append(markup string) error

	// ReplaceWith parses markup, puts it where the element was and returns
	// the first element of the replacement.
	ReplaceWith(markup string) (Element, error)

	// FirstChild returns the first child element.
	FirstChild() (Element, bool)

	// SetVisible shows or hides the element.
	SetVisible(visible bool) error
}
