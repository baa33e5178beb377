package metadata

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GetPath returns the value at a top level key or a nested record path.
// Missing values return nil.
func (m Metadata) GetPath(path string) any {
	record, field, nested := strings.Cut(path, ".")
	if !nested {
		return m[path]
	}
	switch record {
	case KeySeries:
		s := m.Series()
		switch field {
		case "name":
			return nonZero(s.Name)
		case "sort_name":
			return nonZero(s.SortName)
		case "start_year":
			return nonZero(s.StartYear)
		case "volume_count":
			return nonZero(s.VolumeCount)
		}
	case KeyVolume:
		v := m.Volume()
		switch field {
		case "number":
			return nonZero(v.Number)
		case "number_to":
			return nonZero(v.NumberTo)
		case "issue_count":
			return nonZero(v.IssueCount)
		}
	case KeyIssue:
		i := m.Issue()
		switch field {
		case "name":
			return nonZero(i.Name)
		case "number":
			if i.Number == nil {
				return nil
			}
			return *i.Number
		case "suffix":
			return nonZero(i.Suffix)
		}
	}
	return nil
}

// SetPath stores value at a top level key or a nested record path. A nil
// value clears the field. It reports false when the value type does not fit
// the field.
func (m Metadata) SetPath(path string, value any) bool {
	record, field, nested := strings.Cut(path, ".")
	if !nested {
		if value == nil {
			delete(m, path)
		} else {
			m[path] = value
		}
		return true
	}
	var ok bool
	switch record {
	case KeySeries:
		s := m.Series()
		switch field {
		case "name":
			s.Name, ok = asString(value)
		case "sort_name":
			s.SortName, ok = asString(value)
		case "start_year":
			s.StartYear, ok = asInt(value)
		case "volume_count":
			s.VolumeCount, ok = asInt(value)
		}
		if !ok {
			return false
		}
		m.putRecord(KeySeries, s, s.IsZero())
	case KeyVolume:
		v := m.Volume()
		switch field {
		case "number":
			v.Number, ok = asInt(value)
		case "number_to":
			v.NumberTo, ok = asInt(value)
		case "issue_count":
			v.IssueCount, ok = asInt(value)
		}
		if !ok {
			return false
		}
		m.putRecord(KeyVolume, v, v.IsZero())
	case KeyIssue:
		i := m.Issue()
		switch field {
		case "name":
			i.Name, ok = asString(value)
		case "number":
			i.Number, ok = asDecimal(value)
		case "suffix":
			i.Suffix, ok = asString(value)
		}
		if !ok {
			return false
		}
		m.putRecord(KeyIssue, i, i.IsZero())
	}
	return ok
}

func (m Metadata) putRecord(key string, record any, zero bool) {
	if zero {
		delete(m, key)
		return
	}
	m[key] = record
}

func nonZero[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

func asString(value any) (string, bool) {
	if value == nil {
		return "", true
	}
	s, ok := value.(string)
	return s, ok
}

func asInt(value any) (int, bool) {
	if value == nil {
		return 0, true
	}
	n, ok := value.(int)
	return n, ok
}

func asDecimal(value any) (*decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case decimal.Decimal:
		return &v, true
	case *decimal.Decimal:
		return v, true
	}
	return nil, false
}
