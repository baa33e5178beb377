package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer rewrites characters that are unsafe in archive names on
// common filesystems. A colon used as a subtitle divider becomes the " - "
// divider the filename parser already understands.
var fileNameReplacer = strings.NewReplacer(
	": ", " - ",
	":", "-",
	"/", "-",
	"\\", "-",
	"*", "-",
	"|", "-",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
)

// SanitizeFileName makes a generated comic file name stem safe to create.
// Control characters are dropped, runs of whitespace collapse, and leading
// or trailing dots and spaces are trimmed.
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, " .")
}
