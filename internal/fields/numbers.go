package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	firstIntRE     = regexp.MustCompile(`\d+`)
	firstDecimalRE = regexp.MustCompile(`\d*\.?\d+`)
	volumePrefixRE = regexp.MustCompile(`(?i)^(?:volume|vol\.|vol|v)\s*`)
)

// IntRule parses the first run of digits and clamps it to an optional range.
type IntRule struct {
	Label string
	Min   *int
	Max   *int
	// Reject drops out of range values instead of clamping them.
	Reject bool
}

// Bounded returns an IntRule clamped to [min, max].
func Bounded(label string, min, max int) IntRule {
	return IntRule{Label: label, Min: &min, Max: &max}
}

// InRange returns an IntRule that rejects values outside [min, max].
func InRange(label string, min, max int) IntRule {
	return IntRule{Label: label, Min: &min, Max: &max, Reject: true}
}

// AtLeast returns an IntRule clamped below at min.
func AtLeast(label string, min int) IntRule {
	return IntRule{Label: label, Min: &min}
}

func (r IntRule) Name() string {
	if r.Label == "" {
		return "integer"
	}
	return r.Label
}

func (r IntRule) Decode(raw any) (any, error) {
	n, ok, err := parseInt(raw)
	if err != nil || !ok {
		return nil, err
	}
	return r.clamp(n)
}

func (r IntRule) clamp(n int) (any, error) {
	orig := n
	if r.Min != nil && n < *r.Min {
		n = *r.Min
	}
	if r.Max != nil && n > *r.Max {
		n = *r.Max
	}
	if n != orig && r.Reject {
		return nil, fmt.Errorf("%d is out of range for %s", orig, r.Name())
	}
	if n != orig {
		return n, warnf("coerced %d to %d", orig, n)
	}
	return n, nil
}

func (r IntRule) Encode(value any) (any, error) {
	n, ok := value.(int)
	if !ok {
		return nil, fmt.Errorf("%T is not an integer", value)
	}
	return n, nil
}

func parseInt(raw any) (int, bool, error) {
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, fmt.Errorf("%v is not a number", v)
		}
		return int(v), true, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false, err
		}
		return int(f), true, nil
	case decimal.Decimal:
		return int(v.IntPart()), true, nil
	}
	s, err := RawString(raw)
	if err != nil || s == "" {
		return 0, false, err
	}
	match := firstIntRE.FindString(s)
	if match == "" {
		return 0, false, fmt.Errorf("no digits in %q", s)
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// VolumeRule strips a volume prefix ("Vol. 3", "v3") before parsing.
type VolumeRule struct{}

func (VolumeRule) Name() string { return "volume" }

func (VolumeRule) Decode(raw any) (any, error) {
	if s, ok := raw.(string); ok {
		raw = volumePrefixRE.ReplaceAllString(strings.TrimSpace(s), "")
	}
	return AtLeast("volume", 0).Decode(raw)
}

func (VolumeRule) Encode(value any) (any, error) {
	return IntRule{}.Encode(value)
}

var volumeRangeRE = regexp.MustCompile(`(?i)^(?:volume|vol\.?|v)?\s*(\d+)\s*-\s*(\d+)$`)

// ParseVolumeRange splits "2010-2012" style volumes into their ends.
func ParseVolumeRange(raw any) (from, to int, ok bool) {
	s, err := RawString(raw)
	if err != nil {
		return 0, 0, false
	}
	m := volumeRangeRE.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	from, _ = strconv.Atoi(m[1])
	to, _ = strconv.Atoi(m[2])
	return from, to, true
}

// ParseDecimal substitutes half glyphs and parses the first decimal run:
// "5 1/2" is 5.5 and "MARVEL 5.0AU" is 5.0.
func ParseDecimal(value string) (decimal.Decimal, bool) {
	value = strings.ReplaceAll(value, " ", "")
	value = halfReplace(value)
	match := firstDecimalRE.FindString(value)
	if match == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// DecimalRule parses exact decimals and clamps to an optional range.
type DecimalRule struct {
	Label string
	Min   *decimal.Decimal
	Max   *decimal.Decimal
}

// DecimalRange returns a DecimalRule clamped to [min, max].
func DecimalRange(label string, min, max int64) DecimalRule {
	lo, hi := decimal.NewFromInt(min), decimal.NewFromInt(max)
	return DecimalRule{Label: label, Min: &lo, Max: &hi}
}

func (r DecimalRule) Name() string {
	if r.Label == "" {
		return "decimal"
	}
	return r.Label
}

func (r DecimalRule) Decode(raw any) (any, error) {
	var d decimal.Decimal
	switch v := raw.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		d = *v
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%v is not a number", v)
		}
		d = decimal.NewFromFloat(v)
	default:
		s, err := RawString(raw)
		if err != nil || s == "" {
			return nil, err
		}
		parsed, ok := ParseDecimal(s)
		if !ok {
			return nil, fmt.Errorf("no number in %q", s)
		}
		d = parsed
	}
	orig := d
	if r.Min != nil && d.LessThan(*r.Min) {
		d = *r.Min
	}
	if r.Max != nil && d.GreaterThan(*r.Max) {
		d = *r.Max
	}
	if !d.Equal(orig) {
		return d, warnf("coerced %s to %s", orig, d)
	}
	return d, nil
}

func (r DecimalRule) Encode(value any) (any, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return json.Number(v.String()), nil
	case *decimal.Decimal:
		if v == nil {
			return nil, nil
		}
		return json.Number(v.String()), nil
	}
	return nil, fmt.Errorf("%T is not a decimal", value)
}

var truthy = map[string]bool{"yes": true, "true": true, "1": true}

// BoolRule is true for yes/true/1 (any case) and for non-zero numbers.
type BoolRule struct{}

func (BoolRule) Name() string { return "boolean" }

func (BoolRule) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0, nil
	}
	s, err := RawString(raw)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return truthy[strings.ToLower(s)], nil
}

func (BoolRule) Encode(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%T is not a boolean", value)
	}
	return b, nil
}
