package metadata

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Metadata is a canonical metadata document.
type Metadata map[string]any

// New returns an empty document.
func New() Metadata {
	return Metadata{}
}

// Clone returns a copy that shares no mutable containers with m.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for key, value := range m {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case StringSet:
		return v.Clone()
	case []Credit:
		out := make([]Credit, len(v))
		for i, c := range v {
			if c.Primary != nil {
				c.Primary = BoolPtr(*c.Primary)
			}
			out[i] = c
		}
		return out
	case []Page:
		return slices.Clone(v)
	case []Reprint:
		return slices.Clone(v)
	case []string:
		return slices.Clone(v)
	case map[string]int:
		return maps.Clone(v)
	case map[string]decimal.Decimal:
		return maps.Clone(v)
	case map[string]Identifier:
		return maps.Clone(v)
	case Series:
		v.Identifiers = maps.Clone(v.Identifiers)
		return v
	case Issue:
		if v.Number != nil {
			n := *v.Number
			v.Number = &n
		}
		return v
	default:
		return value
	}
}

// Prune deletes every empty value in place and returns m.
func (m Metadata) Prune() Metadata {
	for key, value := range m {
		if IsEmpty(value) {
			delete(m, key)
			continue
		}
		if s, ok := value.(Series); ok && len(s.Identifiers) == 0 && s.Identifiers != nil {
			s.Identifiers = nil
			m[key] = s
		}
	}
	return m
}

// IsEmpty reports whether value counts as unset.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case StringSet:
		return len(v) == 0
	case []Credit:
		return len(v) == 0
	case []Page:
		return len(v) == 0
	case []Reprint:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]int:
		return len(v) == 0
	case map[string]decimal.Decimal:
		return len(v) == 0
	case map[string]Identifier:
		return len(v) == 0
	case Series:
		return v.IsZero()
	case Volume:
		return v.IsZero()
	case Issue:
		return v.IsZero()
	case Date:
		return v.IsZero()
	case time.Time:
		return v.IsZero()
	case *decimal.Decimal:
		return v == nil
	}
	return false
}

// String returns the string stored at key, or "".
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Int returns the int stored at key, or 0.
func (m Metadata) Int(key string) int {
	n, _ := m[key].(int)
	return n
}

// Set returns the StringSet stored at key, or nil.
func (m Metadata) Set(key string) StringSet {
	s, _ := m[key].(StringSet)
	return s
}

// Series returns the series record.
func (m Metadata) Series() Series {
	s, _ := m[KeySeries].(Series)
	return s
}

// Volume returns the volume record.
func (m Metadata) Volume() Volume {
	v, _ := m[KeyVolume].(Volume)
	return v
}

// Issue returns the issue record.
func (m Metadata) Issue() Issue {
	i, _ := m[KeyIssue].(Issue)
	return i
}

// Credits returns the credit list.
func (m Metadata) Credits() []Credit {
	c, _ := m[KeyCredits].([]Credit)
	return c
}

// Pages returns the page list.
func (m Metadata) Pages() []Page {
	p, _ := m[KeyPages].([]Page)
	return p
}

// Reprints returns the reprint list.
func (m Metadata) Reprints() []Reprint {
	r, _ := m[KeyReprints].([]Reprint)
	return r
}

// Arcs returns the story arc map.
func (m Metadata) Arcs() map[string]int {
	a, _ := m[KeyArcs].(map[string]int)
	return a
}

// Prices returns the price map.
func (m Metadata) Prices() map[string]decimal.Decimal {
	p, _ := m[KeyPrices].(map[string]decimal.Decimal)
	return p
}

// Identifiers returns the identifier map.
func (m Metadata) Identifiers() map[string]Identifier {
	ids, _ := m[KeyIdentifiers].(map[string]Identifier)
	return ids
}

// AddIdentifier merges id under nid, keeping existing non-empty parts.
func (m Metadata) AddIdentifier(nid string, id Identifier) {
	if nid == "" || id.IsZero() {
		return
	}
	ids := m.Identifiers()
	if ids == nil {
		ids = map[string]Identifier{}
		m[KeyIdentifiers] = ids
	}
	old := ids[nid]
	if id.Type == "" {
		id.Type = old.Type
	}
	if id.NSS == "" {
		id.NSS = old.NSS
	}
	if id.URL == "" {
		id.URL = old.URL
	}
	ids[nid] = id
}

// AddToSet adds items to the set stored at key, creating it if needed.
func (m Metadata) AddToSet(key string, items ...string) {
	set := m.Set(key)
	if set == nil {
		set = StringSet{}
	}
	for _, item := range items {
		set.Add(item)
	}
	if len(set) > 0 {
		m[key] = set
	}
}
