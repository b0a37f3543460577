package render

import (
	"strings"

	"github.com/upenn-libraries/libhours/pkg/document"
	"github.com/upenn-libraries/libhours/pkg/errors"
)

// fakeDoc is an in-memory document that records every edit.
type fakeDoc struct {
	elements []*fakeElement
}

func (d *fakeDoc) FindByMarker(namespace string) []document.Element {
	var out []document.Element
	for _, el := range d.elements {
		if _, ok := el.Marker(namespace); ok {
			out = append(out, el)
		}
	}
	return out
}

type fakeElement struct {
	classes  []string
	content  []string
	replaced []string
	children []*fakeElement
	visible  []bool

	failAppend  error
	failReplace error
	failMark    error
}

func newFakeElement(classes ...string) *fakeElement {
	return &fakeElement{classes: classes}
}

func (e *fakeElement) Marker(namespace string) (string, bool) {
	for _, c := range e.classes {
		if strings.HasPrefix(c, namespace+"-") {
			return c, true
		}
	}
	return "", false
}

func (e *fakeElement) SetMarker(from, to string) error {
	if e.failMark != nil {
		return e.failMark
	}
	for i, c := range e.classes {
		if c == from {
			e.classes[i] = to
			return nil
		}
	}
	return errors.NewNotFoundError("class", from)
}

func (e *fakeElement) Append(markup string) error {
	if e.failAppend != nil {
		return e.failAppend
	}
	e.content = append(e.content, markup)
	return nil
}

func (e *fakeElement) ReplaceWith(markup string) (document.Element, error) {
	if e.failReplace != nil {
		return nil, e.failReplace
	}
	e.replaced = append(e.replaced, markup)
	next := &fakeElement{}
	if markup == Container {
		next.children = []*fakeElement{{}}
	}
	e.children = append(e.children, next)
	return next, nil
}

func (e *fakeElement) FirstChild() (document.Element, bool) {
	if len(e.children) == 0 {
		return nil, false
	}
	return e.children[0], true
}

func (e *fakeElement) SetVisible(visible bool) error {
	e.visible = append(e.visible, visible)
	return nil
}
