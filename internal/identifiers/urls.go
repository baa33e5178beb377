package identifiers

import (
	"net/url"
	"regexp"
	"strings"
)

// site describes how a catalog lays out its web URLs.
type site struct {
	nid      string
	domain   string
	types    [][2]string // {type, slug}, first entry is the default
	pathExpr string
	template string
	re       *regexp.Regexp
}

const slugExpr = `(?:/\S*)?`

// siteOrder is significant: the first matching pattern wins.
var siteOrder = []*site{
	{
		nid: NIDAniList, domain: "anilist.co",
		types:    [][2]string{{"series", "manga"}},
		pathExpr: `(?P<type>manga)/(?P<nss>\d+)` + slugExpr,
		template: "{type}/{nss}/s",
	},
	{
		nid: NIDAsin, domain: "www.amazon.com",
		types:    [][2]string{{"issue", "issue"}},
		pathExpr: `dp/(?P<nss>[^/\s?]+)`,
		template: "dp/{nss}",
	},
	{
		nid: NIDComicVine, domain: "comicvine.gamespot.com",
		types: [][2]string{
			{"issue", "4000"}, {"arc", "4045"}, {"character", "4005"},
			{"creator", "4040"}, {"location", "4020"}, {"publisher", "4010"},
			{"series", "4050"}, {"team", "4060"},
		},
		pathExpr: `(?:\S+/)?(?P<type>\d{4})-(?P<nss>\d+)`,
		template: "c/{type}-{nss}/",
	},
	{
		nid: NIDComixology, domain: "www.comixology.com",
		types:    [][2]string{{"issue", "digital-comic"}},
		pathExpr: `c/(?P<type>[^/\s]+)/(?P<nss>\d+)`,
		template: "c/{type}/{nss}",
	},
	{
		nid: NIDGCD, domain: "comics.org",
		types: [][2]string{
			{"issue", "issue"}, {"character", "character"}, {"creator", "creator"},
			{"series", "series"}, {"publisher", "indicia_publisher"},
			{"universe", "universe"},
		},
		pathExpr: `(?P<type>[^/\s]+)/(?P<nss>\d+)/?`,
		template: "{type}/{nss}/",
	},
	{
		nid: NIDISBN, domain: "isbndb.com",
		types:    [][2]string{{"issue", "book"}, {"series", "series"}},
		pathExpr: `(?P<type>book|series)/(?P<nss>[\dXx-]+)`,
		template: "{type}/{nss}",
	},
	{
		nid: NIDKitsu, domain: "kitsu.app",
		types:    [][2]string{{"series", "manga"}},
		pathExpr: `(?P<type>manga)/(?P<nss>[^/\s]+)`,
		template: "{type}/{nss}",
	},
	{
		nid: NIDLCG, domain: "leagueofcomicgeeks.com",
		types: [][2]string{
			{"issue", "comic"}, {"series", "comics/series"}, {"publisher", "comics"},
		},
		pathExpr: `(?P<type>comics/series|comics|comic)/(?P<nss>[^/\s]+)` + slugExpr,
		template: "{type}/{nss}/s",
	},
	{
		nid: NIDMangaDex, domain: "mangadex.org",
		types:    [][2]string{{"series", "title"}},
		pathExpr: `(?P<type>title)/(?P<nss>[^/\s]+)` + slugExpr,
		template: "{type}/{nss}/s",
	},
	{
		nid: NIDMangaUpdates, domain: "mangaupdates.com",
		types:    [][2]string{{"series", "series"}},
		pathExpr: `(?P<type>series)/(?P<nss>[^/\s]+)` + slugExpr,
		template: "{type}/{nss}/s",
	},
	{
		nid: NIDMarvel, domain: "marvel.com",
		types:    [][2]string{{"issue", "issue"}, {"series", "series"}},
		pathExpr: `comics/(?P<type>issue|series)/(?P<nss>\d+)` + slugExpr,
		template: "comics/{type}/{nss}/s",
	},
	{
		nid: NIDMetron, domain: "metron.cloud",
		types: [][2]string{
			{"issue", "issue"}, {"arc", "arc"}, {"character", "character"},
			{"creator", "creator"}, {"genre", "genre"}, {"imprint", "imprint"},
			{"location", "location"}, {"publisher", "publisher"},
			{"reprint", "reprint"}, {"role", "role"}, {"series", "series"},
			{"story", "story"}, {"tag", "tag"}, {"team", "team"},
			{"universe", "universe"},
		},
		pathExpr: `(?P<type>[^/\s]+)/(?P<nss>[^/\s]+)/?`,
		template: "{type}/{nss}",
	},
	{
		nid: NIDMyAnimeList, domain: "myanimelist.net",
		types:    [][2]string{{"series", "manga"}},
		pathExpr: `(?P<type>manga)/(?P<nss>\d+)` + slugExpr,
		template: "{type}/{nss}/s",
	},
	{
		nid: NIDUPC, domain: "barcodelookup.com",
		types:    [][2]string{{"issue", "issue"}},
		pathExpr: `(?P<nss>[\d-]+)`,
		template: "{nss}",
	},
}

var sites = buildSites()

func buildSites() map[string]*site {
	out := make(map[string]*site, len(siteOrder))
	for _, s := range siteOrder {
		labels := strings.Split(s.domain, ".")
		sld := strings.Join(labels[max(0, len(labels)-2):], ".")
		s.re = regexp.MustCompile(`(?i)^(?:https?://)?(?:[^/\s]*\.)?` + regexp.QuoteMeta(sld) + `/` + s.pathExpr)
		out[s.nid] = s
	}
	return out
}

func (s *site) typeForSlug(slug string) (string, bool) {
	for _, pair := range s.types {
		if strings.EqualFold(pair[1], slug) {
			return pair[0], true
		}
	}
	return "", false
}

func (s *site) slugForType(nssType string) string {
	for _, pair := range s.types {
		if pair[0] == nssType {
			return pair[1]
		}
	}
	return ""
}

func (s *site) parse(raw string) (Ref, bool) {
	m := s.re.FindStringSubmatch(raw)
	if m == nil {
		return Ref{}, false
	}
	ref := Ref{NID: s.nid, Type: s.types[0][0]}
	for i, name := range s.re.SubexpNames() {
		switch name {
		case "type":
			if t, ok := s.typeForSlug(m[i]); ok {
				ref.Type = t
			}
		case "nss":
			ref.NSS = m[i]
		}
	}
	return ref, ref.NSS != ""
}

// WebLink renders the catalog URL for an identifier. It returns "" when the
// namespace has no URL layout for the type or nss is empty.
func WebLink(nid, nssType, nss string) string {
	s, ok := sites[CanonicalNID(nid)]
	if !ok || nss == "" {
		return ""
	}
	if nssType == "" {
		nssType = DefaultType
	}
	slug := s.slugForType(nssType)
	if slug == "" {
		return ""
	}
	path := strings.NewReplacer("{type}", slug, "{nss}", nss).Replace(s.template)
	return "https://" + s.domain + "/" + path
}

// ParseWebURL recognizes a catalog URL. Patterns are tried in a fixed order
// and the first match wins.
func ParseWebURL(raw string) (Ref, bool) {
	raw = strings.TrimSpace(raw)
	for _, s := range siteOrder {
		if ref, ok := s.parse(raw); ok {
			return ref, true
		}
	}
	return Ref{}, false
}

// HostRef describes a URL from an unknown catalog by its host name.
func HostRef(raw string) (Ref, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return Ref{}, false
	}
	host := strings.ToLower(u.Host)
	return Ref{NID: host, NSS: host}, true
}
