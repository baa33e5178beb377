package formats

import (
	"fmt"
	"strings"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
	"comicbox/internal/xmltree"
)

// parseXMLRoot parses raw and checks the root element's local name.
func parseXMLRoot(raw []byte, root string) (*xmltree.Element, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyDocument
	}
	el, err := xmltree.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(el.LocalName(), root) {
		return nil, fmt.Errorf("root element %q is not %q", el.Name, root)
	}
	return el, nil
}

// findPath follows a dotted tag path such as "Series.Name".
func findPath(el *xmltree.Element, tag string) *xmltree.Element {
	for _, part := range strings.Split(tag, ".") {
		if el = el.Child(part); el == nil {
			return nil
		}
	}
	return el
}

// addPath creates or reuses the parents of a dotted tag path and appends the
// leaf holding text.
func addPath(el *xmltree.Element, tag, text string) {
	if text == "" {
		return
	}
	parts := strings.Split(tag, ".")
	for _, part := range parts[:len(parts)-1] {
		child := el.Child(part)
		if child == nil {
			child = el.Add(part)
		}
		el = child
	}
	el.AddText(parts[len(parts)-1], text)
}

// decodeXMLScalars reads one element per pair. Tags may be dotted paths.
func decodeXMLScalars(c *fields.Coercer, md metadata.Metadata, el *xmltree.Element, m TagMap) {
	for _, p := range m {
		child := findPath(el, p.Tag)
		if child == nil || child.Text == "" {
			continue
		}
		decodeInto(c, md, p, child.Text)
	}
}

// encodeXMLScalars renders each pair with a value as element text.
func encodeXMLScalars(c *fields.Coercer, md metadata.Metadata, m TagMap) map[string]string {
	out := make(map[string]string, len(m))
	for _, p := range m {
		if text := fields.Text(encodeFrom(c, md, p)); text != "" {
			out[p.Tag] = text
		}
	}
	return out
}

// childTexts returns the text of every child named tag under the optional
// wrapper.
func childTexts(el *xmltree.Element, wrapper, tag string) []string {
	if wrapper != "" {
		if el = el.Child(wrapper); el == nil {
			return nil
		}
	}
	var out []string
	for _, child := range el.All(tag) {
		if child.Text != "" {
			out = append(out, child.Text)
		}
	}
	return out
}

// addNested adds a wrapper element holding one child per item.
func addNested(el *xmltree.Element, wrapper, tag string, items []string) {
	if len(items) == 0 {
		return
	}
	w := el.Add(wrapper)
	for _, item := range items {
		w.AddText(tag, item)
	}
}
