package placefile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

var (
	errNoElement     = errors.New("no element found")
	errJunkAfterRoot = errors.New("junk after document element")
)

// element is a minimal DOM node. Only what the validator needs is kept.
type element struct {
	tag      string
	attrs    map[string]string
	text     strings.Builder
	children []*element
}

func (e *element) attr(name string) string {
	return e.attrs[name]
}

// parseTree builds an element tree from data. The decoder runs in strict mode
// so unclosed and mismatched tags are reported as syntax errors.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var root *element
	var stack []*element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{tag: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errJunkAfterRoot
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if root != nil && len(bytes.TrimSpace(t)) > 0 {
				return nil, errJunkAfterRoot
			}
		}
	}

	if root == nil {
		return nil, errNoElement
	}
	return root, nil
}

// walk visits every descendant of e in document order, excluding e itself.
func (e *element) walk(fn func(*element) bool) bool {
	for _, c := range e.children {
		if !fn(c) {
			return false
		}
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
