package formats

import (
	"slices"

	"github.com/shopspring/decimal"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
	"comicbox/internal/xmltree"
)

const (
	cometRoot           = "comet"
	cometNamespace      = "http://www.denvog.com/comet/"
	cometSchemaLocation = "http://www.denvog.com/comet/ http://www.denvog.com/comet/comet.xsd"
)

var cometScalars = TagMap{
	{Tag: "title", Path: metadata.KeyTitle},
	{Tag: "description", Path: metadata.KeySummary},
	{Tag: "series", Path: metadata.PathSeriesName},
	{Tag: "issue", Path: metadata.PathIssueName},
	{Tag: "volume", Path: metadata.PathVolumeNumber},
	{Tag: "publisher", Path: metadata.KeyPublisher},
	{Tag: "date", Path: metadata.KeyCoverDate},
	{Tag: "format", Path: metadata.KeyOriginalFormat, Rule: formatRule{}},
	{Tag: "language", Path: metadata.KeyLanguage, Rule: languageCode},
	{Tag: "rating", Path: metadata.KeyAgeRating},
	{Tag: "rights", Path: metadata.KeyRights},
	{Tag: "pages", Path: metadata.KeyPageCount},
	{Tag: "coverImage", Path: metadata.KeyCoverImage},
	{Tag: "readingDirection", Path: metadata.KeyReadingDirection, Rule: directionRule{}},
}

var cometCreditTags = []string{
	enums.CoMetCreator, enums.CoMetWriter, enums.CoMetPenciller, enums.CoMetEditor,
	enums.CoMetCoverDesigner, enums.CoMetLetterer, enums.CoMetInker, enums.CoMetColorist,
}

var cometStructured = TagMap{
	{Tag: "genre", Path: metadata.KeyGenres},
	{Tag: "character", Path: metadata.KeyCharacters},
	{Tag: "isVersionOf", Path: metadata.KeyReprints},
	{Tag: "price", Path: metadata.KeyPrices},
	{Tag: "identifier", Path: metadata.KeyIdentifiers},
	{Tag: enums.CoMetCreator, Path: metadata.KeyCredits},
	{Tag: enums.CoMetWriter, Path: metadata.KeyCredits},
	{Tag: enums.CoMetPenciller, Path: metadata.KeyCredits},
	{Tag: enums.CoMetEditor, Path: metadata.KeyCredits},
	{Tag: enums.CoMetCoverDesigner, Path: metadata.KeyCredits},
	{Tag: enums.CoMetLetterer, Path: metadata.KeyCredits},
	{Tag: enums.CoMetInker, Path: metadata.KeyCredits},
	{Tag: enums.CoMetColorist, Path: metadata.KeyCredits},
}

// cometOrder is the element order of the CoMet schema.
var cometOrder = []string{
	"title", "description", "series", "issue", "volume", "publisher", "date",
	"genre", "character", "isVersionOf", "price", "format", "language",
	"rating", "rights", "identifier", "pages", "creator", "writer",
	"penciller", "editor", "coverDesigner", "letterer", "inker", "colorist",
	"coverImage", "readingDirection",
}

// CoMet reads and writes CoMet.xml.
type CoMet struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewCoMet returns the CoMet adapter.
func NewCoMet(c *fields.Coercer) *CoMet {
	return &CoMet{c: c, tagMap: joinMaps(cometScalars, cometStructured)}
}

func (a *CoMet) Format() Format { return FormatCoMet }

func (a *CoMet) TagMap() TagMap { return a.tagMap }

func (a *CoMet) Decode(raw []byte) (metadata.Metadata, error) {
	root, err := parseXMLRoot(raw, cometRoot)
	if err != nil {
		return nil, err
	}
	md := metadata.New()
	decodeXMLScalars(a.c, md, root, cometScalars)
	md.AddToSet(metadata.KeyGenres, childTexts(root, "", "genre")...)
	md.AddToSet(metadata.KeyCharacters, childTexts(root, "", "character")...)
	if credits := decodeCreditColumns(root, cometCreditTags, true); len(credits) > 0 {
		md[metadata.KeyCredits] = credits
	}
	for _, code := range childTexts(root, "", "identifier") {
		addCode(md, code, identifiers.DefaultNID)
	}
	var reprints []metadata.Reprint
	for _, text := range childTexts(root, "", "isVersionOf") {
		reprints = append(reprints, parseReprint(text))
	}
	if len(reprints) > 0 {
		md[metadata.KeyReprints] = reprints
	}
	if price, ok := a.c.Decode("price", root.ChildText("price"), fields.DecimalRule{Label: "price"}).(decimal.Decimal); ok {
		md[metadata.KeyPrices] = map[string]decimal.Decimal{"": price}
	}
	return md.Prune(), nil
}

func (a *CoMet) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	values := encodeXMLScalars(a.c, md, cometScalars)
	columns := creditColumns(md.Credits(), enums.CoMetRoles)

	root := xmltree.New(cometRoot)
	root.SetAttr("xmlns:comet", cometNamespace)
	root.SetAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	root.SetAttr("xsi:schemaLocation", cometSchemaLocation)
	for _, tag := range cometOrder {
		switch tag {
		case "genre":
			addRepeated(root, tag, md.Set(metadata.KeyGenres).Sorted())
		case "character":
			addRepeated(root, tag, md.Set(metadata.KeyCharacters).Sorted())
		case "isVersionOf":
			for _, r := range md.Reprints() {
				root.AddText(tag, reprintText(r))
			}
		case "price":
			if price, ok := cometPrice(md.Prices()); ok {
				root.AddText(tag, price.StringFixed(2))
			}
		case "identifier":
			ids := md.Identifiers()
			for _, nid := range sortedNIDs(ids) {
				root.AddText(tag, identifierURN(nid, ids[nid]))
			}
		default:
			if persons, ok := columns[tag]; ok {
				addRepeated(root, tag, persons)
				continue
			}
			root.AddText(tag, values[tag])
		}
	}
	return xmltree.Marshal(root)
}

// cometPrice picks the price without a country, else the first by country.
func cometPrice(prices map[string]decimal.Decimal) (decimal.Decimal, bool) {
	if p, ok := prices[""]; ok {
		return p, true
	}
	countries := make([]string, 0, len(prices))
	for country := range prices {
		countries = append(countries, country)
	}
	if len(countries) == 0 {
		return decimal.Decimal{}, false
	}
	slices.Sort(countries)
	return prices[countries[0]], true
}

func addRepeated(el *xmltree.Element, tag string, items []string) {
	for _, item := range items {
		el.AddText(tag, item)
	}
}
