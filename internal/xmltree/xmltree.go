// Package xmltree is a small ordered XML element tree.
//
// Element and attribute names are kept exactly as written, prefixes
// included, so a document decoded and re-encoded reproduces its root tag and
// namespace declarations verbatim. Child order is preserved.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRoot is returned for input without a root element.
var ErrNoRoot = errors.New("xml document has no root element")

// Attr is one attribute with its name as written.
type Attr struct {
	Name  string
	Value string
}

// Element is one XML element.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New returns an element with the given qualified name.
func New(name string) *Element {
	return &Element{Name: name}
}

// LocalName returns the name without its namespace prefix.
func (e *Element) LocalName() string {
	return localName(e.Name)
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Attr returns the value of the attribute matching name by qualified or
// local name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	for _, a := range e.Attrs {
		if localName(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Child returns the first child whose local name matches, preferring an
// exact match over a case-insensitive one.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name || c.LocalName() == name {
			return c
		}
	}
	for _, c := range e.Children {
		if strings.EqualFold(c.LocalName(), localName(name)) {
			return c
		}
	}
	return nil
}

// All returns every child whose local name matches case-insensitively.
func (e *Element) All(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if strings.EqualFold(c.LocalName(), localName(name)) {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the trimmed text of the named child, or "".
func (e *Element) ChildText(name string) string {
	if c := e.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// Add appends a new child and returns it.
func (e *Element) Add(name string) *Element {
	c := New(name)
	e.Children = append(e.Children, c)
	return c
}

// AddText appends a child holding text. Empty text adds nothing.
func (e *Element) AddText(name, text string) *Element {
	if text == "" {
		return nil
	}
	c := e.Add(name)
	c.Text = text
	return c
}

// Walk visits e and its descendants depth first.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Parse decodes the first root element of data. Text is trimmed and mixed
// content is concatenated.
func Parse(data []byte) (*Element, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "us-ascii") {
			return input, nil
		}
		return nil, fmt.Errorf("unsupported xml charset %q", label)
	}

	var (
		stack []*Element
		root  *Element
		texts []*strings.Builder
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := New(qualified(t.Name))
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			} else {
				return nil, errors.New("parse xml: multiple root elements")
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})
		case xml.EndElement:
			if len(stack) == 0 || stack[len(stack)-1].Name != qualified(t.Name) {
				return nil, fmt.Errorf("parse xml: unexpected end element %s", qualified(t.Name))
			}
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			}
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parse xml: unclosed element %s", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Marshal encodes root with an XML declaration and two space indentation.
func Marshal(root *Element) ([]byte, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	write(&buf, root, 0)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

func write(buf *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(strings.ToValidUTF8(a.Value, "\uFFFD")))
		buf.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	buf.WriteString(textEscaper.Replace(strings.ToValidUTF8(e.Text, "\uFFFD")))
	if len(e.Children) > 0 {
		for _, c := range e.Children {
			buf.WriteByte('\n')
			write(buf, c, depth+1)
		}
		buf.WriteByte('\n')
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}
