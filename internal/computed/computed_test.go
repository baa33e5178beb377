package computed

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

func TestDates(t *testing.T) {
	tests := []struct {
		name string
		md   metadata.Metadata
		want metadata.Metadata
	}{
		{
			name: "parts from cover date",
			md:   metadata.Metadata{metadata.KeyCoverDate: metadata.Date{Year: 2012, Month: 3, Day: 14}, metadata.KeyYear: 2011},
			want: metadata.Metadata{
				metadata.KeyCoverDate: metadata.Date{Year: 2012, Month: 3, Day: 14},
				metadata.KeyYear:      2011,
				metadata.KeyMonth:     3,
				metadata.KeyDay:       14,
			},
		},
		{
			name: "cover date from parts",
			md:   metadata.Metadata{metadata.KeyYear: 2012, metadata.KeyMonth: 3},
			want: metadata.Metadata{
				metadata.KeyYear:      2012,
				metadata.KeyMonth:     3,
				metadata.KeyCoverDate: metadata.Date{Year: 2012, Month: 3, Day: 1},
			},
		},
		{
			name: "year alone",
			md:   metadata.Metadata{metadata.KeyYear: 2012},
			want: metadata.Metadata{metadata.KeyYear: 2012},
		},
		{
			name: "impossible day",
			md:   metadata.Metadata{metadata.KeyYear: 2013, metadata.KeyMonth: 2, metadata.KeyDay: 30},
			want: metadata.Metadata{metadata.KeyYear: 2013, metadata.KeyMonth: 2, metadata.KeyDay: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Dates(tt.md)
			if diff := cmp.Diff(tt.want, tt.md); diff != "" {
				t.Fatalf("Dates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitIssue(t *testing.T) {
	c := fields.NewCoercer(logging.NewNop())

	md := metadata.Metadata{metadata.KeyIssue: metadata.Issue{Name: "12.5AU"}}
	SplitIssue(c, md)
	issue := md.Issue()
	if issue.Number == nil || !issue.Number.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("issue number = %v, want 12.5", issue.Number)
	}
	if issue.Suffix != "AU" {
		t.Fatalf("issue suffix = %q, want AU", issue.Suffix)
	}

	md = metadata.Metadata{metadata.KeyIssue: metadata.Issue{Name: "Annual"}}
	SplitIssue(c, md)
	if md.Issue().Number != nil {
		t.Fatalf("non-numeric issue produced number %v", md.Issue().Number)
	}

	n := decimal.RequireFromString("7")
	md = metadata.Metadata{metadata.KeyIssue: metadata.Issue{Number: &n, Suffix: "b"}}
	SplitIssue(c, md)
	if got := md.Issue().Name; got != "7b" {
		t.Fatalf("issue name = %q, want 7b", got)
	}
}

func TestFromNotes(t *testing.T) {
	c := fields.NewCoercer(logging.NewNop())
	md := metadata.Metadata{
		metadata.KeyNotes: "Tagged with ComicTagger 1.5.5 on 2023-04-01 12:00:00 using info from Comic Vine [Issue ID 123456] [metron:77] urn:gcd:issue:55",
	}
	FromNotes(c, md)

	if got := md.String(metadata.KeyTagger); got != "ComicTagger 1.5.5" {
		t.Fatalf("tagger = %q", got)
	}
	updated, ok := md[metadata.KeyUpdatedAt].(time.Time)
	if !ok || updated.Year() != 2023 || updated.Hour() != 12 {
		t.Fatalf("updated_at = %v", md[metadata.KeyUpdatedAt])
	}
	ids := md.Identifiers()
	for nid, nss := range map[string]string{
		identifiers.NIDComicVine: "123456",
		identifiers.NIDMetron:    "77",
		identifiers.NIDGCD:       "55",
	} {
		if ids[nid].NSS != nss {
			t.Fatalf("identifier %s = %+v, want nss %s", nid, ids[nid], nss)
		}
	}
}

func TestFromNotesKeepsExistingValues(t *testing.T) {
	c := fields.NewCoercer(logging.NewNop())
	md := metadata.Metadata{
		metadata.KeyNotes:  "Tagged with other on 2020-01-01 [Issue ID 1]",
		metadata.KeyTagger: "mine",
	}
	md.AddIdentifier(identifiers.NIDComicVine, metadata.Identifier{Type: "issue", NSS: "999"})
	FromNotes(c, md)
	if got := md.String(metadata.KeyTagger); got != "mine" {
		t.Fatalf("tagger = %q, want mine", got)
	}
	if got := md.Identifiers()[identifiers.NIDComicVine].NSS; got != "999" {
		t.Fatalf("comicvine id = %q, want 999", got)
	}
}

func TestStampAndNotesRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
	md := metadata.Metadata{}
	md.AddIdentifier(identifiers.NIDComicVine, metadata.Identifier{Type: "issue", NSS: "123"})
	Stamp(md, "comicbox", now)

	want := "Tagged with comicbox on 2024-01-02T03:04:05Z [Issue ID 123] urn:comicvine:issue:123"
	if got := md.String(metadata.KeyNotes); got != want {
		t.Fatalf("notes = %q, want %q", got, want)
	}

	parsed := metadata.Metadata{metadata.KeyNotes: md.String(metadata.KeyNotes)}
	FromNotes(fields.NewCoercer(logging.NewNop()), parsed)
	if got := parsed.String(metadata.KeyTagger); got != "comicbox" {
		t.Fatalf("parsed tagger = %q", got)
	}
	if got, _ := parsed[metadata.KeyUpdatedAt].(time.Time); !got.Equal(now.Truncate(time.Second)) {
		t.Fatalf("parsed updated_at = %v", parsed[metadata.KeyUpdatedAt])
	}
}

func TestApplyLinksIdentifiers(t *testing.T) {
	md := metadata.Metadata{metadata.KeyTags: metadata.NewStringSet("urn:metron:issue:42")}
	Apply(logging.NewNop(), md)
	id := md.Identifiers()[identifiers.NIDMetron]
	if id.NSS != "42" {
		t.Fatalf("metron identifier = %+v, want nss 42", id)
	}
	if id.URL != identifiers.WebLink(identifiers.NIDMetron, "issue", "42") {
		t.Fatalf("metron url = %q", id.URL)
	}
}
