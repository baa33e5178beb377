// Package filename extracts metadata from comic archive file names and
// builds preferred file names from metadata.
//
// Parsing tries an ordered list of templates and keeps the result that bound
// the most placeholders, stopping early at the first template that binds all
// of its own.
package filename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
)

// DefaultExt is used by Unparse when the document carries no extension.
const DefaultExt = "cbz"

var (
	dividerRE    = regexp.MustCompile(` -|: `)
	plusRE       = regexp.MustCompile(`\++`)
	volumeNumRE  = regexp.MustCompile(`\d+`)
	multiSpaceRE = regexp.MustCompile(`\s{2,}`)
)

// Clean replaces separator characters with spaces and collapses runs of
// whitespace.
func Clean(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = dividerRE.ReplaceAllString(name, " ")
	name = plusRE.ReplaceAllString(name, " ")
	name = textutil.NormalizeSpaces(name)
	name = multiSpaceRE.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Match is the raw placeholder binding of the best template.
type Match struct {
	Template string
	Fields   map[string]string
}

// Best runs the templates against a cleaned base name, keeping the largest
// binding and stopping at the first template that binds all of its own
// placeholders.
func Best(name string) Match {
	cleaned := Clean(filepath.Base(strings.TrimSpace(name)))
	var best Match
	for _, t := range templates {
		res := t.match(cleaned)
		if len(res) <= len(best.Fields) {
			continue
		}
		best = Match{Template: t.source, Fields: res}
		if len(res) == t.placeholders {
			break
		}
	}
	return best
}

// Parse returns the metadata found in a file name. Unparsable names yield an
// empty document.
func Parse(name string) metadata.Metadata {
	md := metadata.New()
	for key, raw := range Best(name).Fields {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		switch key {
		case "series":
			md.SetPath(metadata.PathSeriesName, raw)
		case "volume":
			if n, err := strconv.Atoi(volumeNumRE.FindString(raw)); err == nil {
				md.SetPath(metadata.PathVolumeNumber, n)
			}
		case "issue":
			if issue := fields.ParseIssue(raw); issue != "" {
				md.SetPath(metadata.PathIssueName, issue)
			}
		case "issue_count":
			if n, err := strconv.Atoi(volumeNumRE.FindString(raw)); err == nil {
				md.SetPath(metadata.PathVolumeIssueCount, n)
			}
		case "year":
			if n, err := strconv.Atoi(strings.Trim(raw, "()")); err == nil {
				md[metadata.KeyYear] = n
			}
		case "title":
			md[metadata.KeyTitle] = raw
		case "ext":
			md[metadata.KeyExt] = raw
		case "remainder":
			md[metadata.KeyRemainders] = []string{raw}
		}
	}
	// A lone remainder is noise.
	if len(md) == 1 {
		delete(md, metadata.KeyRemainders)
	}
	return md
}

// Unparse builds the preferred file name:
// "{series} v{volume} #{issue} (of {count}) ({year}) {title}.{ext}".
// Missing fields are skipped.
func Unparse(md metadata.Metadata) string {
	var tokens []string
	if name := md.Series().Name; name != "" {
		tokens = append(tokens, name)
	}
	if vol := md.Volume().Number; vol != 0 {
		tokens = append(tokens, "v"+strconv.Itoa(vol))
	}
	if issue := issueText(md.Issue()); issue != "" {
		tokens = append(tokens, "#"+padIssue(issue))
	}
	if count := md.Volume().IssueCount; count != 0 {
		tokens = append(tokens, fmt.Sprintf("(of %03d)", count))
	}
	if year := md.Int(metadata.KeyYear); year != 0 {
		tokens = append(tokens, fmt.Sprintf("(%d)", year))
	}
	if title := md.String(metadata.KeyTitle); title != "" {
		tokens = append(tokens, title)
	}
	ext := md.String(metadata.KeyExt)
	if ext == "" {
		ext = DefaultExt
	}
	return textutil.SanitizeFileName(strings.Join(tokens, " ")) + "." + ext
}

func issueText(issue metadata.Issue) string {
	if issue.Name != "" {
		return issue.Name
	}
	if issue.Number == nil {
		return ""
	}
	return issue.Number.String() + issue.Suffix
}

// padIssue zero pads the leading digits of an issue to three places and
// keeps any suffix.
func padIssue(issue string) string {
	issue = strings.TrimLeft(issue, "0")
	digits := 0
	for _, r := range issue {
		if r < '0' || r > '9' {
			break
		}
		digits++
	}
	if digits >= 3 {
		return issue
	}
	return strings.Repeat("0", 3-digits) + issue
}
