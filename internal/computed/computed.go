package computed

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

var issueRE = regexp.MustCompile(`^(\d*\.?\d+)(.*)$`)

// Apply runs every read side computation on md and returns it. Existing
// values are never replaced.
func Apply(logger *slog.Logger, md metadata.Metadata) metadata.Metadata {
	c := fields.NewCoercer(logging.NewComponentLogger(logger, "computed"))
	Dates(md)
	SplitIssue(c, md)
	FromNotes(c, md)
	FromTags(md)
	LinkIdentifiers(md)
	return md.Prune()
}

// Dates fills year, month and day from cover_date, or cover_date from a year
// and month. A missing day counts as the first of the month.
func Dates(md metadata.Metadata) {
	if d, ok := md[metadata.KeyCoverDate].(metadata.Date); ok && !d.IsZero() {
		setDefault(md, metadata.KeyYear, d.Year)
		setDefault(md, metadata.KeyMonth, int(d.Month))
		setDefault(md, metadata.KeyDay, d.Day)
		return
	}
	year, month := md.Int(metadata.KeyYear), md.Int(metadata.KeyMonth)
	if year == 0 || month == 0 {
		return
	}
	day := max(md.Int(metadata.KeyDay), 1)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) {
		return
	}
	md[metadata.KeyCoverDate] = metadata.DateOf(t)
}

func setDefault(md metadata.Metadata, key string, value int) {
	if value == 0 {
		return
	}
	if _, ok := md[key]; !ok {
		md[key] = value
	}
}

// SplitIssue fills issue.number and issue.suffix from issue.name, and
// issue.name from the parts when it is missing.
func SplitIssue(c *fields.Coercer, md metadata.Metadata) {
	issue := md.Issue()
	if issue.Name == "" {
		if issue.Number != nil {
			md.SetPath(metadata.PathIssueName, issue.Number.String()+issue.Suffix)
		}
		return
	}
	m := issueRE.FindStringSubmatch(issue.Name)
	if m == nil {
		return
	}
	if issue.Number == nil {
		if n, ok := c.Decode(metadata.PathIssueNumber, m[1], fields.DecimalRule{}).(decimal.Decimal); ok {
			md.SetPath(metadata.PathIssueNumber, n)
		}
	}
	if issue.Suffix == "" && m[2] != "" {
		md.SetPath(metadata.PathIssueSuffix, m[2])
	}
}

// FromTags records identifiers written as URN tags.
func FromTags(md metadata.Metadata) {
	for _, tag := range md.Set(metadata.KeyTags).Sorted() {
		ref := identifiers.ParseURN(tag)
		if ref.IsZero() || ref.NID == "" {
			continue
		}
		addMissing(md, ref)
	}
}

// LinkIdentifiers adds web links to identifiers that have a code but no URL.
func LinkIdentifiers(md metadata.Metadata) {
	ids := md.Identifiers()
	for nid, id := range ids {
		if id.URL != "" || id.NSS == "" {
			continue
		}
		if link := identifiers.WebLink(nid, id.Type, id.NSS); link != "" {
			id.URL = link
			ids[nid] = id
		}
	}
}

// addMissing records ref unless its namespace is already present.
func addMissing(md metadata.Metadata, ref identifiers.Ref) {
	if _, ok := md.Identifiers()[ref.NID]; ok {
		return
	}
	md.AddIdentifier(ref.NID, metadata.Identifier{Type: ref.Type, NSS: ref.NSS})
}
