package formats

import (
	"strings"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
)

// TagPair binds one native tag to one canonical path. Rule overrides the
// canonical rule registered for the path.
type TagPair struct {
	Tag  string
	Path string
	Rule fields.Rule
}

func (p TagPair) rule() fields.Rule {
	if p.Rule != nil {
		return p.Rule
	}
	return fields.RuleFor(p.Path)
}

// TagMap is an ordered bidirectional table of native tags and canonical
// paths.
type TagMap []TagPair

// PathFor returns the canonical path for a native tag, case-insensitively.
func (m TagMap) PathFor(tag string) (string, bool) {
	if p, ok := m.pair(tag); ok {
		return p.Path, true
	}
	return "", false
}

func (m TagMap) pair(tag string) (TagPair, bool) {
	for _, p := range m {
		if p.Tag == tag {
			return p, true
		}
	}
	for _, p := range m {
		if strings.EqualFold(p.Tag, tag) {
			return p, true
		}
	}
	return TagPair{}, false
}

// TagFor returns the native tag for a canonical path.
func (m TagMap) TagFor(path string) (string, bool) {
	for _, p := range m {
		if p.Path == path {
			return p.Tag, true
		}
	}
	return "", false
}

// Tags lists native tags in table order.
func (m TagMap) Tags() []string {
	out := make([]string, len(m))
	for i, p := range m {
		out[i] = p.Tag
	}
	return out
}

func joinMaps(maps ...TagMap) TagMap {
	var out TagMap
	for _, m := range maps {
		out = append(out, m...)
	}
	return out
}

// decodeInto coerces raw for one pair and stores the result. Volume ranges
// also fill volume.number_to.
func decodeInto(c *fields.Coercer, md metadata.Metadata, p TagPair, raw any) {
	if raw == nil {
		return
	}
	if p.Path == metadata.PathVolumeNumber {
		if from, to, ok := fields.ParseVolumeRange(raw); ok {
			md.SetPath(metadata.PathVolumeNumber, from)
			md.SetPath(metadata.PathVolumeNumberTo, to)
			return
		}
	}
	value := c.Decode(p.Tag, raw, p.rule())
	if value == nil {
		return
	}
	if !md.SetPath(p.Path, value) {
		c.Warn(p.Tag, raw, "value does not fit "+p.Path)
	}
}

// encodeFrom returns the wire value for one pair, or nil.
func encodeFrom(c *fields.Coercer, md metadata.Metadata, p TagPair) any {
	value := md.GetPath(p.Path)
	if value == nil || metadata.IsEmpty(value) {
		return nil
	}
	return c.Encode(p.Tag, value, p.rule())
}
