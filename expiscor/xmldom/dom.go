// Package xmldom builds a minimal element tree from XML input. It exposes
// just what schema walking needs: element children in document order,
// attribute enumeration, and accumulated text content.
package xmldom

import "strings"

// Attr is one attribute name/value pair.
type Attr struct {
	Name  string
	Value string
}

// Element is one element node. Children holds element nodes only; character
// data is accumulated into Text.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr returns the named attribute's value, or the empty string.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// FindChild returns the first child element with the given name, or nil.
func (e *Element) FindChild(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child element with the given name, in
// document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the element's directly contained text with
// surrounding whitespace trimmed.
func (e *Element) TextContent() string {
	return strings.TrimSpace(e.Text)
}
