package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"comicbox/internal/metadata"
)

// DateTimeLayout is the serialized form of datetimes.
const DateTimeLayout = time.RFC3339

var pdfDateRE = regexp.MustCompile(`^D:(\d{4})(\d{2})?(\d{2})?(\d{2})?(\d{2})?(\d{2})?(Z|[+-]\d{2}'?\d{2}'?)?`)

// ParseTime liberally parses ISO-like, natural, and PDF "D:" date strings.
// Values without a zone are taken as UTC.
func ParseTime(value string) (time.Time, error) {
	if m := pdfDateRE.FindStringSubmatch(value); m != nil {
		return parsePDFDate(m)
	}
	return dateparse.ParseIn(value, time.UTC)
}

func parsePDFDate(m []string) (time.Time, error) {
	part := func(i, fallback int) int {
		if m[i] == "" {
			return fallback
		}
		n, _ := strconv.Atoi(m[i])
		return n
	}
	loc := time.UTC
	if zone := m[7]; zone != "" && zone != "Z" {
		digits := strings.ReplaceAll(zone[1:], "'", "")
		hours, _ := strconv.Atoi(digits[:2])
		minutes := 0
		if len(digits) >= 4 {
			minutes, _ = strconv.Atoi(digits[2:4])
		}
		offset := hours*3600 + minutes*60
		if zone[0] == '-' {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}
	t := time.Date(part(1, 0), time.Month(part(2, 1)), part(3, 1), part(4, 0), part(5, 0), part(6, 0), 0, loc)
	if t.Month() != time.Month(part(2, 1)) {
		return time.Time{}, fmt.Errorf("invalid pdf date %q", m[0])
	}
	return t, nil
}

// DateRule yields a metadata.Date.
type DateRule struct{}

func (DateRule) Name() string { return "date" }

func (DateRule) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case metadata.Date:
		return v, nil
	case time.Time:
		return metadata.DateOf(v), nil
	}
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("cannot parse date: %w", err)
	}
	return metadata.DateOf(t), nil
}

func (DateRule) Encode(value any) (any, error) {
	switch v := value.(type) {
	case metadata.Date:
		return v.String(), nil
	case time.Time:
		return metadata.DateOf(v).String(), nil
	}
	return nil, fmt.Errorf("%T is not a date", value)
}

// DateTimeRule yields a zone aware time.Time and serializes to RFC 3339 with
// second precision.
type DateTimeRule struct{}

func (DateTimeRule) Name() string { return "datetime" }

func (DateTimeRule) Decode(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.Truncate(time.Second), nil
	case metadata.Date:
		return v.Time(), nil
	}
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("cannot parse datetime: %w", err)
	}
	return t.Truncate(time.Second), nil
}

func (DateTimeRule) Encode(value any) (any, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%T is not a datetime", value)
	}
	return t.Format(DateTimeLayout), nil
}
