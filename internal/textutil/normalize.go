package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanString repairs invalid UTF-8 with the replacement character, composes
// the text to NFC, and trims surrounding whitespace.
func CleanString(value string) string {
	value = strings.ToValidUTF8(value, "�")
	return strings.TrimSpace(norm.NFC.String(value))
}

// NormalizeSpaces composes value to NFC, maps every Unicode space (no-break,
// ideographic, tabs) to an ASCII space, and collapses runs of spaces.
func NormalizeSpaces(value string) string {
	value = norm.NFC.String(value)
	var b strings.Builder
	b.Grow(len(value))
	lastSpace := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// SplitList splits a CSV-like list on commas and semicolons, trimming each
// item and dropping empties.
func SplitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
