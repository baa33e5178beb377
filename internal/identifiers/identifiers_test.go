package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNID(t *testing.T) {
	tests := map[string]string{
		"cvdb":                   NIDComicVine,
		"Comic Vine":             NIDComicVine,
		"comicvine.gamespot.org": NIDComicVine,
		"cmxdb":                  NIDComixology,
		"comics.org":             NIDGCD,
		"METRON":                 NIDMetron,
		"Amazon":                 NIDAsin,
		"SomethingElse":          "somethingelse",
	}
	for input, want := range tests {
		assert.Equal(t, want, CanonicalNID(input), input)
	}
}

func TestParseURN(t *testing.T) {
	ref := ParseURN("urn:comicvine:issue:12345")
	assert.Equal(t, Ref{NID: NIDComicVine, Type: "issue", NSS: "12345"}, ref)

	ref = ParseURN("urn:metron:series:batman-2016")
	assert.Equal(t, Ref{NID: NIDMetron, Type: "series", NSS: "batman-2016"}, ref)

	ref = ParseURN("urn:isbn:9780306406157")
	assert.Equal(t, Ref{NID: NIDISBN, Type: DefaultType, NSS: "9780306406157"}, ref)

	ref = ParseURN("urn:unknowndb:issue:7")
	assert.Equal(t, Ref{Type: "issue", NSS: "7"}, ref)

	assert.True(t, ParseURN("urn:").IsZero())
	assert.True(t, ParseURN("not a urn").IsZero())
	assert.True(t, ParseURN("urn:-bad:x").IsZero())
}

func TestParseInline(t *testing.T) {
	ref, ok := ParseInline("Tagged with ComicTagger [CVDB12345]")
	require.True(t, ok)
	assert.Equal(t, Ref{NID: NIDComicVine, Type: DefaultType, NSS: "12345"}, ref)

	ref, ok = ParseInline("Issue ID 4050-796")
	require.True(t, ok)
	assert.Equal(t, Ref{NID: NIDComicVine, Type: "series", NSS: "796"}, ref)

	ref, ok = ParseInline("metron:44")
	require.True(t, ok)
	assert.Equal(t, Ref{NID: NIDMetron, Type: DefaultType, NSS: "44"}, ref)

	_, ok = ParseInline("nothing here")
	assert.False(t, ok)
}

func TestParseStringFallsBackToOpaqueCode(t *testing.T) {
	ref := ParseString("abc def", NIDISBN)
	assert.Equal(t, Ref{NID: NIDISBN, Type: DefaultType, NSS: "abc def"}, ref)

	ref = ParseString("4000-140529", "")
	assert.Equal(t, Ref{NID: NIDComicVine, Type: "issue", NSS: "140529"}, ref)

	ref = ParseString("https://metron.cloud/issue/batman-2016-1/", "")
	assert.Equal(t, Ref{NID: NIDMetron, Type: "issue", NSS: "batman-2016-1"}, ref)

	ref = ParseString("urn:comicvine:4000-77", "")
	assert.Equal(t, Ref{NID: NIDComicVine, Type: "issue", NSS: "77"}, ref)

	assert.True(t, ParseString("  ", NIDComicVine).IsZero())
}

func TestParseStringBarcodes(t *testing.T) {
	ref := ParseString("978-1-60706-601-9", NIDISBN)
	assert.Equal(t, Ref{NID: NIDISBN, Type: DefaultType, NSS: "9781607066019"}, ref)

	ref = ParseString("978-1-60706-601-9", NIDComicVine)
	assert.Equal(t, NIDISBN, ref.NID, "a valid ISBN is recognized under any default")

	ref = ParseString("978-1-60706-601-8", NIDISBN)
	assert.Equal(t, Ref{NID: NIDISBN, Type: DefaultType, NSS: "9781607066018"}, ref)

	ref = ParseString("4000-123", NIDISBN)
	assert.Equal(t, NIDISBN, ref.NID)
}

func TestParseStringUnknownHost(t *testing.T) {
	ref := ParseString("https://example.com/comic/42", NIDComicVine)
	assert.Equal(t, Ref{NID: "example.com", NSS: "example.com"}, ref)
}

func TestToURN(t *testing.T) {
	assert.Equal(t, "urn:comicvine:issue:123", ToURN(NIDComicVine, "issue", "123"))
	assert.Equal(t, "urn:isbn:9780306406157", ToURN(NIDISBN, "", "9780306406157"))
	assert.Equal(t, "", ToURN("comics.org", "issue", "1"))
	assert.Equal(t, "", ToURN(NIDMetron, "issue", ""))

	ref := ParseURN(ToURN(NIDMetron, "series", "saga"))
	assert.Equal(t, Ref{NID: NIDMetron, Type: "series", NSS: "saga"}, ref)
}

func TestWebLink(t *testing.T) {
	tests := []struct {
		nid, nssType, nss, want string
	}{
		{NIDComicVine, "issue", "123", "https://comicvine.gamespot.com/c/4000-123/"},
		{NIDComicVine, "series", "9", "https://comicvine.gamespot.com/c/4050-9/"},
		{NIDMetron, "issue", "saga-1", "https://metron.cloud/issue/saga-1"},
		{NIDGCD, "publisher", "78", "https://comics.org/indicia_publisher/78/"},
		{NIDAsin, "issue", "B00TEST", "https://www.amazon.com/dp/B00TEST"},
		{NIDMarvel, "", "555", "https://marvel.com/comics/issue/555/s"},
		{NIDLCG, "series", "42", "https://leagueofcomicgeeks.com/comics/series/42/s"},
		{NIDComixology, "issue", "99", "https://www.comixology.com/c/digital-comic/99"},
		{NIDAniList, "issue", "1", ""},
		{NIDMetron, "issue", "", ""},
		{"nowhere", "issue", "1", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WebLink(tt.nid, tt.nssType, tt.nss), "%s %s %s", tt.nid, tt.nssType, tt.nss)
	}
}

func TestParseWebURL(t *testing.T) {
	tests := []struct {
		url  string
		want Ref
	}{
		{"https://comicvine.gamespot.com/saga-1/4000-400023/", Ref{NIDComicVine, "issue", "400023"}},
		{"https://www.comics.org/issue/1234/", Ref{NIDGCD, "issue", "1234"}},
		{"https://leagueofcomicgeeks.com/comic/8841/saga-1", Ref{NIDLCG, "issue", "8841"}},
		{"https://leagueofcomicgeeks.com/comics/series/100/saga", Ref{NIDLCG, "series", "100"}},
		{"https://anilist.co/manga/30013/One-Piece", Ref{NIDAniList, "series", "30013"}},
		{"https://www.amazon.com/dp/B01ABC", Ref{NIDAsin, "issue", "B01ABC"}},
		{"https://www.barcodelookup.com/75960608936800111", Ref{NIDUPC, "issue", "75960608936800111"}},
	}
	for _, tt := range tests {
		got, ok := ParseWebURL(tt.url)
		require.True(t, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}

	_, ok := ParseWebURL("https://example.com/issue/1")
	assert.False(t, ok)
}

func TestWebLinkRoundTrip(t *testing.T) {
	for _, s := range siteOrder {
		for _, pair := range s.types {
			link := WebLink(s.nid, pair[0], "123")
			require.NotEmpty(t, link, "%s %s", s.nid, pair[0])
			got, ok := ParseWebURL(link)
			require.True(t, ok, link)
			assert.Equal(t, s.nid, got.NID, link)
			assert.Equal(t, "123", got.NSS, link)
		}
	}
}

func TestHostRef(t *testing.T) {
	ref, ok := HostRef("https://Example.com/issue/1")
	require.True(t, ok)
	assert.Equal(t, Ref{NID: "example.com", NSS: "example.com"}, ref)

	_, ok = HostRef("no host")
	assert.False(t, ok)
}

func TestNormalizeISBN(t *testing.T) {
	got, ok := NormalizeISBN("0-306-40615-2")
	require.True(t, ok)
	assert.Equal(t, "9780306406157", got)

	got, ok = NormalizeISBN("978-0-306-40615-7")
	require.True(t, ok)
	assert.Equal(t, "9780306406157", got)

	got, ok = NormalizeISBN("12-34")
	assert.False(t, ok)
	assert.Equal(t, "1234", got)
}
