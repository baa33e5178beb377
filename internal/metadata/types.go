package metadata

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StringSet is a case-preserving, case-sensitive set of strings.
type StringSet map[string]struct{}

// NewStringSet builds a set from items, skipping blank entries.
func NewStringSet(items ...string) StringSet {
	set := make(StringSet, len(items))
	for _, item := range items {
		set.Add(item)
	}
	return set
}

// Add inserts a trimmed, non-empty item.
func (s StringSet) Add(item string) {
	item = strings.TrimSpace(item)
	if item == "" {
		return
	}
	s[item] = struct{}{}
}

// Has reports membership.
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Union adds every member of other to s.
func (s StringSet) Union(other StringSet) {
	for item := range other {
		s[item] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	return maps.Clone(s)
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight UTC on the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Series describes the series an issue belongs to.
type Series struct {
	Name        string
	SortName    string
	StartYear   int
	VolumeCount int
	Identifiers map[string]Identifier
}

// IsZero reports whether no series field is set.
func (s Series) IsZero() bool {
	return s.Name == "" && s.SortName == "" && s.StartYear == 0 && s.VolumeCount == 0 && len(s.Identifiers) == 0
}

// Volume describes the volume of a series.
type Volume struct {
	Number     int
	NumberTo   int
	IssueCount int
}

// IsZero reports whether no volume field is set.
func (v Volume) IsZero() bool {
	return v.Number == 0 && v.NumberTo == 0 && v.IssueCount == 0
}

// Issue holds the issue designation. Name is the normalized display form
// ("4AU"); Number and Suffix are its numeric and trailing parts.
type Issue struct {
	Name   string
	Number *decimal.Decimal
	Suffix string
}

// IsZero reports whether no issue field is set.
func (i Issue) IsZero() bool {
	return i.Name == "" && i.Number == nil && i.Suffix == ""
}

// Credit attributes a role to a person.
type Credit struct {
	Person  string
	Role    string
	Primary *bool
}

// Key returns the case-insensitive identity of the credit.
func (c Credit) Key() string {
	return strings.ToLower(c.Role) + ":" + strings.ToLower(c.Person)
}

// Page describes one page image.
type Page struct {
	Index      int
	Type       string
	DoublePage bool
	Size       int64
	Key        string
	Bookmark   string
	Width      int
	Height     int
}

// Reprint references another printing of the same content.
type Reprint struct {
	Series string
	Issue  string
}

// Identifier references an external catalog entry.
type Identifier struct {
	Type string
	NSS  string
	URL  string
}

// IsZero reports whether the identifier carries no data.
func (i Identifier) IsZero() bool {
	return i.NSS == "" && i.URL == ""
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
