package formats

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
	"comicbox/internal/xmltree"
)

const metronInfoRoot = "MetronInfo"

var metronInfoScalars = TagMap{
	{Tag: "Publisher.Name", Path: metadata.KeyPublisher},
	{Tag: "Publisher.Imprint", Path: metadata.KeyImprint},
	{Tag: "Series.Name", Path: metadata.PathSeriesName},
	{Tag: "Series.SortName", Path: metadata.PathSeriesSortName},
	{Tag: "Series.Volume", Path: metadata.PathVolumeNumber},
	{Tag: "Series.IssueCount", Path: metadata.PathVolumeIssueCount},
	{Tag: "Series.VolumeCount", Path: metadata.PathSeriesVolumeCount},
	{Tag: "Series.Format", Path: metadata.KeyOriginalFormat, Rule: metronFormat},
	{Tag: "Series.StartYear", Path: metadata.PathSeriesStartYear},
	{Tag: "CollectionTitle", Path: metadata.KeyCollectionTitle},
	{Tag: "Number", Path: metadata.PathIssueName},
	{Tag: "Summary", Path: metadata.KeySummary},
	{Tag: "CoverDate", Path: metadata.KeyCoverDate},
	{Tag: "StoreDate", Path: metadata.KeyStoreDate},
	{Tag: "PageCount", Path: metadata.KeyPageCount},
	{Tag: "Notes", Path: metadata.KeyNotes},
	{Tag: "AgeRating", Path: metadata.KeyAgeRating, Rule: metronAgeRating},
	{Tag: "LastModified", Path: metadata.KeyUpdatedAt},
}

// metronInfoSets are wrapper and item tags of plain name lists.
var metronInfoSets = []struct {
	wrapper, item, key string
}{
	{"Stories", "Story", metadata.KeyStories},
	{"Genres", "Genre", metadata.KeyGenres},
	{"Tags", "Tag", metadata.KeyTags},
	{"Characters", "Character", metadata.KeyCharacters},
	{"Teams", "Team", metadata.KeyTeams},
	{"Locations", "Location", metadata.KeyLocations},
}

var metronInfoStructured = TagMap{
	{Tag: "IDS", Path: metadata.KeyIdentifiers},
	{Tag: "GTIN", Path: metadata.KeyIdentifiers},
	{Tag: "URLs", Path: metadata.KeyIdentifiers},
	{Tag: "Stories", Path: metadata.KeyStories},
	{Tag: "Genres", Path: metadata.KeyGenres},
	{Tag: "Tags", Path: metadata.KeyTags},
	{Tag: "Characters", Path: metadata.KeyCharacters},
	{Tag: "Teams", Path: metadata.KeyTeams},
	{Tag: "Locations", Path: metadata.KeyLocations},
	{Tag: "Universes", Path: metadata.KeyUniverses},
	{Tag: "Arcs", Path: metadata.KeyArcs},
	{Tag: "Prices", Path: metadata.KeyPrices},
	{Tag: "Reprints", Path: metadata.KeyReprints},
	{Tag: "Credits", Path: metadata.KeyCredits},
}

// MetronInfo reads and writes MetronInfo.xml.
type MetronInfo struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewMetronInfo returns the MetronInfo adapter.
func NewMetronInfo(c *fields.Coercer) *MetronInfo {
	return &MetronInfo{c: c, tagMap: joinMaps(metronInfoScalars, metronInfoStructured)}
}

func (a *MetronInfo) Format() Format { return FormatMetronInfo }

func (a *MetronInfo) TagMap() TagMap { return a.tagMap }

func (a *MetronInfo) Decode(raw []byte) (metadata.Metadata, error) {
	root, err := parseXMLRoot(raw, metronInfoRoot)
	if err != nil {
		return nil, err
	}
	md := metadata.New()
	decodeXMLScalars(a.c, md, root, metronInfoScalars)
	if series := root.Child("Series"); series != nil {
		if lang, ok := series.Attr("lang"); ok {
			decodeInto(a.c, md, TagPair{Tag: "Series@lang", Path: metadata.KeyLanguage, Rule: languageCode}, lang)
		}
	}
	for _, set := range metronInfoSets {
		if items := childTexts(root, set.wrapper, set.item); len(items) > 0 {
			md.AddToSet(set.key, items...)
		}
	}
	if universes := root.Child("Universes"); universes != nil {
		for _, u := range universes.All("Universe") {
			md.AddToSet(metadata.KeyUniverses, u.ChildText("Name"))
		}
	}
	a.decodeIdentifiers(md, root)
	a.decodeArcs(md, root)
	a.decodePrices(md, root)
	a.decodeReprints(md, root)
	a.decodeCredits(md, root)
	return md.Prune(), nil
}

func (a *MetronInfo) decodeIdentifiers(md metadata.Metadata, root *xmltree.Element) {
	if ids := root.Child("IDS"); ids != nil {
		for _, id := range ids.All("ID") {
			source, _ := id.Attr("source")
			nid, ok := identifiers.NIDForName(source)
			if !ok {
				a.c.Warn("ID@source", source, "unknown identifier source")
				continue
			}
			nid = addCode(md, id.Text, nid)
			if primary, _ := id.Attr("primary"); nid != "" && isTrue(primary) {
				md[metadata.KeyIdentifierPrimarySource] = nid
			}
		}
	}
	if g := root.Child("GTIN"); g != nil {
		if isbn := g.ChildText("ISBN"); isbn != "" {
			addCode(md, isbn, identifiers.NIDISBN)
		}
		if upc := g.ChildText("UPC"); upc != "" {
			md.AddIdentifier(identifiers.NIDUPC, metadata.Identifier{Type: identifiers.DefaultType, NSS: upc})
		}
	}
	for _, link := range childTexts(root, "URLs", "URL") {
		if addURL(md, link) == "" {
			a.c.Warn("URL", link, "not a url")
		}
	}
}

func isTrue(value string) bool {
	b, _ := fields.BoolRule{}.Decode(value)
	v, _ := b.(bool)
	return v
}

func (a *MetronInfo) decodeArcs(md metadata.Metadata, root *xmltree.Element) {
	wrapper := root.Child("Arcs")
	if wrapper == nil {
		return
	}
	arcs := map[string]int{}
	for _, arc := range wrapper.All("Arc") {
		name := textutil.CleanString(arc.ChildText("Name"))
		if name == "" {
			continue
		}
		n, _ := a.c.Decode("Arc.Number", arc.ChildText("Number"), rawInt).(int)
		arcs[name] = n
	}
	if len(arcs) > 0 {
		md[metadata.KeyArcs] = arcs
	}
}

func (a *MetronInfo) decodePrices(md metadata.Metadata, root *xmltree.Element) {
	wrapper := root.Child("Prices")
	if wrapper == nil {
		return
	}
	prices := map[string]decimal.Decimal{}
	for _, price := range wrapper.All("Price") {
		value, ok := a.c.Decode("Price", price.Text, fields.DecimalRule{}).(decimal.Decimal)
		if !ok {
			continue
		}
		country := ""
		if raw, ok := price.Attr("country"); ok {
			country, _ = a.c.Decode("Price@country", raw, countryCode).(string)
		}
		prices[country] = value
	}
	if len(prices) > 0 {
		md[metadata.KeyPrices] = prices
	}
}

func (a *MetronInfo) decodeReprints(md metadata.Metadata, root *xmltree.Element) {
	var reprints []metadata.Reprint
	for _, text := range childTexts(root, "Reprints", "Reprint") {
		reprints = append(reprints, parseReprint(text))
	}
	if len(reprints) > 0 {
		md[metadata.KeyReprints] = reprints
	}
}

// parseReprint splits "Series #Issue" at the last " #".
func parseReprint(text string) metadata.Reprint {
	text = textutil.CleanString(text)
	if i := strings.LastIndex(text, " #"); i >= 0 {
		return metadata.Reprint{
			Series: strings.TrimSpace(text[:i]),
			Issue:  fields.ParseIssue(text[i+2:]),
		}
	}
	return metadata.Reprint{Series: text}
}

func reprintText(r metadata.Reprint) string {
	switch {
	case r.Issue == "":
		return r.Series
	case r.Series == "":
		return "#" + r.Issue
	}
	return r.Series + " #" + r.Issue
}

func (a *MetronInfo) decodeCredits(md metadata.Metadata, root *xmltree.Element) {
	wrapper := root.Child("Credits")
	if wrapper == nil {
		return
	}
	var credits []metadata.Credit
	for _, credit := range wrapper.All("Credit") {
		person := textutil.CleanString(credit.ChildText("Creator"))
		if person == "" {
			continue
		}
		for _, role := range childTexts(credit, "Roles", "Role") {
			credits = append(credits, metadata.Credit{Person: person, Role: textutil.CleanString(role)})
		}
	}
	if merged := metadata.MergeCredits(credits); len(merged) > 0 {
		md[metadata.KeyCredits] = merged
	}
}

// metronInfoOrder is the element order of the v1.0 schema.
var metronInfoOrder = []string{
	"IDS", "Publisher", "Series", "CollectionTitle", "Number", "Stories",
	"Summary", "Prices", "CoverDate", "StoreDate", "PageCount", "Notes",
	"Genres", "Tags", "Arcs", "Characters", "Teams", "Universes", "Locations",
	"Reprints", "GTIN", "AgeRating", "URLs", "Credits", "LastModified",
}

func (a *MetronInfo) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	values := encodeXMLScalars(a.c, md, metronInfoScalars)
	root := xmltree.New(metronInfoRoot)
	root.SetAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	root.SetAttr("xsi:noNamespaceSchemaLocation", "https://raw.githubusercontent.com/Metron-Project/metroninfo/master/schema/v1.0/MetronInfo.xsd")
	sets := map[string][2]string{}
	for _, set := range metronInfoSets {
		sets[set.wrapper] = [2]string{set.item, set.key}
	}
	for _, tag := range metronInfoOrder {
		if set, ok := sets[tag]; ok {
			addNested(root, tag, set[0], md.Set(set[1]).Sorted())
			continue
		}
		switch tag {
		case "IDS":
			a.encodeIDs(root, md)
		case "Publisher", "Series":
			for _, p := range metronInfoScalars {
				if strings.HasPrefix(p.Tag, tag+".") {
					addPath(root, p.Tag, values[p.Tag])
				}
			}
			if tag == "Series" {
				if lang := md.String(metadata.KeyLanguage); lang != "" {
					if series := root.Child("Series"); series != nil {
						series.SetAttr("lang", lang)
					}
				}
			}
		case "Prices":
			a.encodePrices(root, md.Prices())
		case "Arcs":
			arcs := md.Arcs()
			if len(arcs) == 0 {
				continue
			}
			wrapper := root.Add("Arcs")
			for _, name := range sortedArcNames(arcs) {
				arc := wrapper.Add("Arc")
				arc.AddText("Name", name)
				if n := arcs[name]; n > 0 {
					arc.AddText("Number", strconv.Itoa(n))
				}
			}
		case "Universes":
			universes := md.Set(metadata.KeyUniverses).Sorted()
			if len(universes) == 0 {
				continue
			}
			wrapper := root.Add("Universes")
			for _, name := range universes {
				wrapper.Add("Universe").AddText("Name", name)
			}
		case "Reprints":
			var items []string
			for _, r := range md.Reprints() {
				if text := reprintText(r); text != "" {
					items = append(items, text)
				}
			}
			addNested(root, "Reprints", "Reprint", items)
		case "GTIN":
			ids := md.Identifiers()
			isbn, upc := ids[identifiers.NIDISBN].NSS, ids[identifiers.NIDUPC].NSS
			if isbn != "" || upc != "" {
				g := root.Add("GTIN")
				g.AddText("ISBN", isbn)
				g.AddText("UPC", upc)
			}
		case "URLs":
			addNested(root, "URLs", "URL", metronURLs(md))
		case "Credits":
			a.encodeCredits(root, md.Credits())
		default:
			root.AddText(tag, values[tag])
		}
	}
	return xmltree.Marshal(root)
}

// metronURLs lists stored links, plus derived links for identifiers that
// have no ID element to carry their code.
func metronURLs(md metadata.Metadata) []string {
	ids := md.Identifiers()
	var out []string
	for _, nid := range sortedNIDs(ids) {
		id := ids[nid]
		switch {
		case id.URL != "":
			out = append(out, id.URL)
		case !metronCarriesID(nid, id):
			if link := identifierURL(nid, id); link != "" {
				out = append(out, link)
			}
		}
	}
	return out
}

func metronCarriesID(nid string, id metadata.Identifier) bool {
	return identifiers.KnownNID(nid) && id.NSS != ""
}

func (a *MetronInfo) encodeIDs(root *xmltree.Element, md metadata.Metadata) {
	ids := md.Identifiers()
	primary := md.String(metadata.KeyIdentifierPrimarySource)
	var wrapper *xmltree.Element
	for _, nid := range sortedNIDs(ids) {
		if !metronCarriesID(nid, ids[nid]) {
			continue
		}
		if wrapper == nil {
			wrapper = root.Add("IDS")
		}
		id := wrapper.AddText("ID", ids[nid].NSS)
		id.SetAttr("source", identifiers.Name(nid))
		if nid == primary {
			id.SetAttr("primary", "true")
		}
	}
}

func (a *MetronInfo) encodePrices(root *xmltree.Element, prices map[string]decimal.Decimal) {
	if len(prices) == 0 {
		return
	}
	countries := make([]string, 0, len(prices))
	for country := range prices {
		countries = append(countries, country)
	}
	slices.Sort(countries)
	wrapper := root.Add("Prices")
	for _, country := range countries {
		price := wrapper.AddText("Price", prices[country].StringFixed(2))
		if country != "" {
			price.SetAttr("country", country)
		}
	}
}

func (a *MetronInfo) encodeCredits(root *xmltree.Element, credits []metadata.Credit) {
	if len(credits) == 0 {
		return
	}
	var persons []string
	roles := map[string][]string{}
	for _, c := range credits {
		role := enums.MetronRoles.MapOne(c.Role)
		if _, ok := roles[c.Person]; !ok {
			persons = append(persons, c.Person)
		}
		if !slices.Contains(roles[c.Person], role) {
			roles[c.Person] = append(roles[c.Person], role)
		}
	}
	wrapper := root.Add("Credits")
	for _, person := range persons {
		credit := wrapper.Add("Credit")
		credit.AddText("Creator", person)
		addNested(credit, "Roles", "Role", roles[person])
	}
}
