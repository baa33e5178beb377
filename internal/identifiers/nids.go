package identifiers

import (
	"regexp"
	"strings"
)

// Namespace ids.
const (
	NIDAniList      = "anilist"
	NIDAsin         = "asin"
	NIDComicVine    = "comicvine"
	NIDComixology   = "comixology"
	NIDGCD          = "grandcomicsdatabase"
	NIDGTIN         = "gtin"
	NIDISBN         = "isbn"
	NIDKitsu        = "kitsu"
	NIDLCG          = "leagueofcomicgeeks"
	NIDMangaDex     = "mangadex"
	NIDMangaUpdates = "mangaupdates"
	NIDMarvel       = "marvel"
	NIDMetron       = "metron"
	NIDMyAnimeList  = "myanimelist"
	NIDUPC          = "upc"
)

// DefaultNID is assumed for bare codes with no namespace.
const DefaultNID = NIDComicVine

// DefaultType is assumed when an identifier carries no type.
const DefaultType = "issue"

// GTINOrder is the preference order when a format has room for a single
// barcode-like identifier.
var GTINOrder = []string{NIDISBN, NIDUPC, NIDGTIN, NIDAsin}

var names = map[string]string{
	NIDAniList:      "AniList",
	NIDAsin:         "Amazon",
	NIDComicVine:    "Comic Vine",
	NIDComixology:   "ComiXology",
	NIDGCD:          "Grand Comics Database",
	NIDGTIN:         "GTIN",
	NIDISBN:         "ISBN",
	NIDKitsu:        "Kitsu",
	NIDLCG:          "League of Comic Geeks",
	NIDMangaDex:     "MangaDex",
	NIDMangaUpdates: "MangaUpdates",
	NIDMarvel:       "Marvel",
	NIDMetron:       "Metron",
	NIDMyAnimeList:  "MyAnimeList",
	NIDUPC:          "UPC",
}

var nidAliases = map[string][]string{
	NIDAniList:      {"anilist.co"},
	NIDAsin:         {"amazon.com", "www.amazon.com"},
	NIDComicVine:    {"cvdb", "comicvine.gamespot.com", "comicvine.gamespot.org"},
	NIDComixology:   {"comixology.com", "cmxdb"},
	NIDGCD:          {"comics.org", "gcd"},
	NIDKitsu:        {"kitsu.app", "kistu.app"},
	NIDLCG:          {"leagueofcomicgeeks.com", "lcg"},
	NIDMangaDex:     {"mangadex.org"},
	NIDMangaUpdates: {"mangaupdates.com"},
	NIDMarvel:       {"marvel.com"},
	NIDMetron:       {"metron.cloud"},
	NIDMyAnimeList:  {"myanimelist.net"},
}

// inlinePrefixes are the tokens recognized in front of an inline code.
var inlinePrefixes = []string{"cvdb", "cmxdb"}

var aliasToNID = buildAliasMap()

var inlineRE = buildInlineRE()

func buildAliasMap() map[string]string {
	out := make(map[string]string, len(names)*3)
	for nid, name := range names {
		out[nid] = nid
		out[strings.ToLower(name)] = nid
	}
	for nid, aliases := range nidAliases {
		for _, alias := range aliases {
			out[alias] = nid
		}
	}
	return out
}

func buildInlineRE() *regexp.Regexp {
	tokens := make([]string, 0, len(names)+len(inlinePrefixes))
	for nid := range names {
		tokens = append(tokens, nid)
	}
	tokens = append(tokens, inlinePrefixes...)
	// Longest first so "comicvine" wins over a shorter shared prefix.
	sortByLengthDesc(tokens)
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(`(?i)(?P<nid>` + strings.Join(tokens, "|") + `):?(?P<nss>[\w-]+)`)
}

// CanonicalNID maps a namespace alias, host name or display name to its
// namespace id. Unknown ids pass through lowercased.
func CanonicalNID(id string) string {
	key := strings.ToLower(strings.TrimSpace(id))
	if nid, ok := aliasToNID[key]; ok {
		return nid
	}
	return key
}

// KnownNID reports whether id resolves to a supported namespace.
func KnownNID(id string) bool {
	_, ok := aliasToNID[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// Name returns the display name of a namespace, or the id itself.
func Name(nid string) string {
	if name, ok := names[CanonicalNID(nid)]; ok {
		return name
	}
	return nid
}

// NIDForName resolves a display name such as "Comic Vine" to its id.
func NIDForName(name string) (string, bool) {
	nid, ok := aliasToNID[strings.ToLower(strings.TrimSpace(name))]
	return nid, ok
}
