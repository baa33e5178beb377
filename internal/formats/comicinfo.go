package formats

import (
	"strconv"
	"strings"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
	"comicbox/internal/xmltree"
)

const comicInfoRoot = "ComicInfo"

var comicInfoScalars = TagMap{
	{Tag: "Title", Path: metadata.KeyTitle},
	{Tag: "Series", Path: metadata.PathSeriesName},
	{Tag: "Number", Path: metadata.PathIssueName},
	{Tag: "Count", Path: metadata.PathVolumeIssueCount},
	{Tag: "Volume", Path: metadata.PathVolumeNumber},
	{Tag: "Summary", Path: metadata.KeySummary},
	{Tag: "Notes", Path: metadata.KeyNotes},
	{Tag: "Year", Path: metadata.KeyYear},
	{Tag: "Month", Path: metadata.KeyMonth},
	{Tag: "Day", Path: metadata.KeyDay},
	{Tag: "Publisher", Path: metadata.KeyPublisher},
	{Tag: "Imprint", Path: metadata.KeyImprint},
	{Tag: "Genre", Path: metadata.KeyGenres},
	{Tag: "Tags", Path: metadata.KeyTags},
	{Tag: "PageCount", Path: metadata.KeyPageCount},
	{Tag: "LanguageISO", Path: metadata.KeyLanguage, Rule: languageCode},
	{Tag: "Format", Path: metadata.KeyOriginalFormat, Rule: formatRule{}},
	{Tag: "BlackAndWhite", Path: metadata.KeyMonochrome, Rule: yesNoRule{}},
	{Tag: "Characters", Path: metadata.KeyCharacters},
	{Tag: "Teams", Path: metadata.KeyTeams},
	{Tag: "Locations", Path: metadata.KeyLocations},
	{Tag: "ScanInformation", Path: metadata.KeyScanInfo},
	{Tag: "SeriesGroup", Path: metadata.KeySeriesGroups},
	{Tag: "AgeRating", Path: metadata.KeyAgeRating, Rule: comicInfoAgeRating},
	{Tag: "CommunityRating", Path: metadata.KeyCommunityRating},
	{Tag: "MainCharacterOrTeam", Path: metadata.KeyProtagonist},
	{Tag: "Review", Path: metadata.KeyReview},
}

var comicInfoCreditTags = []string{
	enums.RoleWriter, enums.RolePenciller, enums.RoleInker, enums.RoleColorist,
	enums.RoleLetterer, enums.RoleCoverArtist, enums.RoleEditor, enums.RoleTranslator,
}

var comicInfoStructured = TagMap{
	{Tag: enums.RoleWriter, Path: metadata.KeyCredits},
	{Tag: enums.RolePenciller, Path: metadata.KeyCredits},
	{Tag: enums.RoleInker, Path: metadata.KeyCredits},
	{Tag: enums.RoleColorist, Path: metadata.KeyCredits},
	{Tag: enums.RoleLetterer, Path: metadata.KeyCredits},
	{Tag: enums.RoleCoverArtist, Path: metadata.KeyCredits},
	{Tag: enums.RoleEditor, Path: metadata.KeyCredits},
	{Tag: enums.RoleTranslator, Path: metadata.KeyCredits},
	{Tag: "StoryArc", Path: metadata.KeyArcs},
	{Tag: "StoryArcNumber", Path: metadata.KeyArcs},
	{Tag: "Web", Path: metadata.KeyIdentifiers},
	{Tag: "GTIN", Path: metadata.KeyIdentifiers},
	{Tag: "Manga", Path: metadata.KeyManga},
	{Tag: "AlternateSeries", Path: metadata.KeyReprints},
	{Tag: "AlternateNumber", Path: metadata.KeyReprints},
	{Tag: "AlternateCount", Path: metadata.KeyReprints},
	{Tag: "Pages", Path: metadata.KeyPages},
}

// comicInfoOrder is the element order of the published v2.1 schema.
var comicInfoOrder = []string{
	"Title", "Series", "Number", "Count", "Volume", "AlternateSeries",
	"AlternateNumber", "AlternateCount", "Summary", "Notes", "Year", "Month",
	"Day", "Writer", "Penciller", "Inker", "Colorist", "Letterer",
	"CoverArtist", "Editor", "Translator", "Publisher", "Imprint", "Genre",
	"Tags", "Web", "PageCount", "LanguageISO", "Format", "BlackAndWhite",
	"Manga", "Characters", "Teams", "Locations", "ScanInformation",
	"StoryArc", "StoryArcNumber", "SeriesGroup", "AgeRating", "Pages",
	"CommunityRating", "MainCharacterOrTeam", "Review", "GTIN",
}

const (
	mangaYes    = "Yes"
	mangaNo     = "No"
	mangaYesRTL = "YesAndRightToLeft"
)

// ComicInfo reads and writes ComicInfo.xml.
type ComicInfo struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewComicInfo returns the ComicInfo adapter.
func NewComicInfo(c *fields.Coercer) *ComicInfo {
	return &ComicInfo{c: c, tagMap: joinMaps(comicInfoScalars, comicInfoStructured)}
}

func (a *ComicInfo) Format() Format { return FormatComicInfo }

func (a *ComicInfo) TagMap() TagMap { return a.tagMap }

func (a *ComicInfo) Decode(raw []byte) (metadata.Metadata, error) {
	root, err := parseXMLRoot(raw, comicInfoRoot)
	if err != nil {
		return nil, err
	}
	md := metadata.New()
	decodeXMLScalars(a.c, md, root, comicInfoScalars)
	if credits := decodeCreditColumns(root, comicInfoCreditTags, false); len(credits) > 0 {
		md[metadata.KeyCredits] = credits
	}
	a.decodeArcs(md, root)
	a.decodeManga(md, root.ChildText("Manga"))
	a.decodeIdentifiers(md, root)
	a.decodeReprint(md, root)
	if pagesEl := root.Child("Pages"); pagesEl != nil {
		if pages := decodeComicInfoPages(a.c, pagesEl); len(pages) > 0 {
			md[metadata.KeyPages] = pages
		}
	}
	return md.Prune(), nil
}

func (a *ComicInfo) decodeArcs(md metadata.Metadata, root *xmltree.Element) {
	names := textutil.SplitList(root.ChildText("StoryArc"))
	if len(names) == 0 {
		return
	}
	// Positional: an empty slot means that arc has no number.
	numbers := strings.Split(strings.ReplaceAll(root.ChildText("StoryArcNumber"), ";", ","), ",")
	arcs := make(map[string]int, len(names))
	for i, name := range names {
		number := 0
		if i < len(numbers) {
			if v, ok := a.c.Decode("StoryArcNumber", strings.TrimSpace(numbers[i]), rawInt).(int); ok {
				number = v
			}
		}
		arcs[name] = number
	}
	md[metadata.KeyArcs] = arcs
}

func (a *ComicInfo) decodeManga(md metadata.Metadata, text string) {
	if text == "" {
		return
	}
	if strings.EqualFold(text, mangaYesRTL) {
		md[metadata.KeyManga] = true
		md[metadata.KeyReadingDirection] = enums.DirectionRTL
		return
	}
	if v, ok := a.c.Decode("Manga", text, fields.BoolRule{}).(bool); ok {
		md[metadata.KeyManga] = v
	}
}

func (a *ComicInfo) decodeIdentifiers(md metadata.Metadata, root *xmltree.Element) {
	for _, code := range textutil.SplitList(root.ChildText("GTIN")) {
		addCode(md, code, identifiers.NIDISBN)
	}
	for _, link := range strings.Fields(root.ChildText("Web")) {
		if addURL(md, link) == "" {
			a.c.Warn("Web", link, "not a url")
		}
	}
}

func (a *ComicInfo) decodeReprint(md metadata.Metadata, root *xmltree.Element) {
	series := root.ChildText("AlternateSeries")
	issue, _ := a.c.Decode("AlternateNumber", root.ChildText("AlternateNumber"), fields.IssueRule{}).(string)
	if series == "" && issue == "" {
		return
	}
	md[metadata.KeyReprints] = []metadata.Reprint{{Series: series, Issue: issue}}
}

func decodeComicInfoPages(c *fields.Coercer, el *xmltree.Element) []metadata.Page {
	var pages []metadata.Page
	for _, p := range el.All("Page") {
		page := metadata.Page{}
		attrInt := func(name string) int {
			v, ok := p.Attr(name)
			if !ok {
				return 0
			}
			n, _ := c.Decode("Page@"+name, v, rawInt).(int)
			return n
		}
		page.Index = attrInt("Image")
		page.Size = int64(attrInt("ImageSize"))
		page.Width = attrInt("ImageWidth")
		page.Height = attrInt("ImageHeight")
		if v, ok := p.Attr("Type"); ok {
			page.Type, _ = c.Decode("Page@Type", v, fields.EnumRule{Table: enums.PageTypes}).(string)
		}
		if v, ok := p.Attr("DoublePage"); ok {
			page.DoublePage, _ = c.Decode("Page@DoublePage", v, fields.BoolRule{}).(bool)
		}
		page.Key, _ = p.Attr("Key")
		page.Bookmark, _ = p.Attr("Bookmark")
		pages = append(pages, page)
	}
	return pages
}

func (a *ComicInfo) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	values := encodeXMLScalars(a.c, md, comicInfoScalars)
	for column, persons := range creditColumns(md.Credits(), enums.ComicInfoRoles) {
		values[column] = strings.Join(persons, ", ")
	}
	a.encodeArcs(values, md.Arcs())
	if manga, ok := md[metadata.KeyManga].(bool); ok {
		switch {
		case manga && md.String(metadata.KeyReadingDirection) == enums.DirectionRTL:
			values["Manga"] = mangaYesRTL
		case manga:
			values["Manga"] = mangaYes
		default:
			values["Manga"] = mangaNo
		}
	}
	values["Web"] = strings.Join(identifierURLs(md), " ")
	if _, code := gtin(md); code != "" {
		values["GTIN"] = code
	}
	if reprints := md.Reprints(); len(reprints) > 0 {
		values["AlternateSeries"] = reprints[0].Series
		values["AlternateNumber"] = reprints[0].Issue
	}

	root := xmltree.New(comicInfoRoot)
	root.SetAttr("xmlns:xsd", "http://www.w3.org/2001/XMLSchema")
	root.SetAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	for _, tag := range comicInfoOrder {
		if tag == "Pages" {
			encodeComicInfoPages(root, md.Pages())
			continue
		}
		root.AddText(tag, values[tag])
	}
	return xmltree.Marshal(root)
}

func (a *ComicInfo) encodeArcs(values map[string]string, arcs map[string]int) {
	if len(arcs) == 0 {
		return
	}
	names := sortedArcNames(arcs)
	numbers := make([]string, len(names))
	numbered := false
	for i, name := range names {
		if n := arcs[name]; n != 0 {
			numbers[i] = strconv.Itoa(n)
			numbered = true
		}
	}
	values["StoryArc"] = strings.Join(names, ",")
	if numbered {
		values["StoryArcNumber"] = strings.Join(numbers, ",")
	}
}

func encodeComicInfoPages(root *xmltree.Element, pages []metadata.Page) {
	if len(pages) == 0 {
		return
	}
	el := root.Add("Pages")
	for _, page := range pages {
		p := el.Add("Page")
		p.SetAttr("Image", strconv.Itoa(page.Index))
		if page.Type != "" {
			p.SetAttr("Type", enums.PageTypes.MapOne(page.Type))
		}
		if page.DoublePage {
			p.SetAttr("DoublePage", "True")
		}
		if page.Size > 0 {
			p.SetAttr("ImageSize", strconv.FormatInt(page.Size, 10))
		}
		if page.Key != "" {
			p.SetAttr("Key", page.Key)
		}
		if page.Bookmark != "" {
			p.SetAttr("Bookmark", page.Bookmark)
		}
		if page.Width > 0 {
			p.SetAttr("ImageWidth", strconv.Itoa(page.Width))
		}
		if page.Height > 0 {
			p.SetAttr("ImageHeight", strconv.Itoa(page.Height))
		}
	}
}
