package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
)

// RawString converts a scalar raw value to a cleaned string. Non-scalars
// return an error.
func RawString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return textutil.CleanString(v), nil
	case []byte:
		return textutil.CleanString(string(v)), nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case decimal.Decimal:
		return v.String(), nil
	case fmt.Stringer:
		return textutil.CleanString(v.String()), nil
	}
	return "", fmt.Errorf("%T is not a string", raw)
}

// Text renders an encoded value as element text for text based formats.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	}
	s, _ := RawString(value)
	return s
}

// StringRule trims and repairs strings. Empty strings are no value.
type StringRule struct{}

func (StringRule) Name() string { return "string" }

func (StringRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	return s, nil
}

func (StringRule) Encode(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%T is not a string", value)
	}
	if s == "" {
		return nil, nil
	}
	return s, nil
}

// ParseIssue normalizes an issue designation: "#004AU" becomes "4AU", "1½"
// becomes "1.5", and "3." becomes "3". An issue of only zeros stays "0".
func ParseIssue(value string) string {
	value = strings.ReplaceAll(textutil.CleanString(value), " ", "")
	value = strings.TrimLeft(value, "#")
	trimmed := strings.TrimRight(strings.TrimLeft(value, "0"), ".")
	if trimmed == "" && strings.Contains(value, "0") {
		return "0"
	}
	return halfReplace(trimmed)
}

func halfReplace(value string) string {
	value = strings.Replace(value, "½", ".5", 1)
	return strings.Replace(value, "1/2", ".5", 1)
}

// IssueRule applies ParseIssue.
type IssueRule struct{}

func (IssueRule) Name() string { return "issue" }

func (IssueRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil {
		return nil, err
	}
	if issue := ParseIssue(s); issue != "" {
		return issue, nil
	}
	return nil, nil
}

func (IssueRule) Encode(value any) (any, error) {
	return StringRule{}.Encode(value)
}

// StringSetRule accepts a comma or semicolon separated string or a list and
// yields a metadata.StringSet.
type StringSetRule struct{}

func (StringSetRule) Name() string { return "string_set" }

func (StringSetRule) Decode(raw any) (any, error) {
	set := metadata.StringSet{}
	switch v := raw.(type) {
	case metadata.StringSet:
		set.Union(v)
	case []string:
		for _, item := range v {
			set.Add(textutil.CleanString(item))
		}
	case []any:
		for _, item := range v {
			s, err := RawString(item)
			if err != nil {
				return nil, err
			}
			set.Add(s)
		}
	default:
		s, err := RawString(raw)
		if err != nil {
			return nil, err
		}
		for _, item := range textutil.SplitList(s) {
			set.Add(item)
		}
	}
	if len(set) == 0 {
		return nil, nil
	}
	return set, nil
}

func (StringSetRule) Encode(value any) (any, error) {
	set, ok := value.(metadata.StringSet)
	if !ok {
		return nil, fmt.Errorf("%T is not a string set", value)
	}
	if len(set) == 0 {
		return nil, nil
	}
	return set.Sorted(), nil
}

// ChoiceRule accepts one of a fixed set of lowercase values.
type ChoiceRule struct {
	Label   string
	Choices []string
}

func (r ChoiceRule) Name() string { return r.Label }

func (r ChoiceRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	s = strings.ToLower(s)
	for _, choice := range r.Choices {
		if s == choice {
			return choice, nil
		}
	}
	return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(r.Choices, ", "))
}

func (r ChoiceRule) Encode(value any) (any, error) {
	return StringRule{}.Encode(value)
}
