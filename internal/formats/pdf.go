package formats

import (
	"strings"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
	"comicbox/internal/xmltree"
)

const (
	xmpRoot        = "x:xmpmeta"
	xmpNamespace   = "adobe:ns:meta/"
	rdfNamespace   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	pdfNamespace   = "http://ns.adobe.com/pdf/1.3/"
	pdfKeywordsTag = "pdf:Keywords"
	pdfAuthorTag   = "pdf:Author"
)

var pdfScalars = TagMap{
	{Tag: "pdf:Title", Path: metadata.KeyTitle},
	{Tag: "pdf:Creator", Path: metadata.KeyScanInfo},
	{Tag: "pdf:Producer", Path: metadata.KeyTagger},
	{Tag: "pdf:Subject", Path: metadata.KeyGenres},
	{Tag: "pdf:ModDate", Path: metadata.KeyUpdatedAt},
}

var pdfStructured = TagMap{
	{Tag: pdfAuthorTag, Path: metadata.KeyCredits},
	{Tag: pdfKeywordsTag, Path: metadata.KeyTags},
}

// keywordFormats are tried in order when Keywords may hold a document.
var keywordFormats = []Format{
	FormatComicInfo, FormatComicboxJSON, FormatComicboxYAML,
	FormatComicBookInfo, FormatMetronInfo, FormatCoMet,
}

// PDF reads and writes the XMP packet of PDF documents.
type PDF struct {
	c        *fields.Coercer
	registry *Registry
	tagMap   TagMap
}

// NewPDF returns the PDF adapter. Embedded documents are decoded through
// registry.
func NewPDF(c *fields.Coercer, registry *Registry) *PDF {
	return &PDF{c: c, registry: registry, tagMap: joinMaps(pdfScalars, pdfStructured)}
}

func (a *PDF) Format() Format { return FormatPDF }

func (a *PDF) TagMap() TagMap { return a.tagMap }

func (a *PDF) Decode(raw []byte) (metadata.Metadata, error) {
	root, err := parseXMLRoot(raw, "xmpmeta")
	if err != nil {
		return nil, err
	}
	desc := findPath(root, "RDF.Description")
	if desc == nil {
		return metadata.New(), nil
	}
	props := pdfProperties(desc)
	md := a.decodeKeywords(props[localName(pdfKeywordsTag)])
	own := metadata.New()
	for _, p := range pdfScalars {
		if text := props[localName(p.Tag)]; text != "" {
			decodeInto(a.c, own, p, text)
		}
	}
	for key, value := range own {
		if _, ok := md[key]; !ok {
			md[key] = value
		}
	}
	var authors []metadata.Credit
	for _, person := range textutil.SplitList(props[localName(pdfAuthorTag)]) {
		authors = append(authors, metadata.Credit{Person: person, Role: enums.RoleWriter})
	}
	if credits := metadata.MergeCredits(md.Credits(), authors); len(credits) > 0 {
		md[metadata.KeyCredits] = credits
	}
	return md.Prune(), nil
}

// pdfProperties collects properties written as child elements or as
// attributes, keyed by local name.
func pdfProperties(desc *xmltree.Element) map[string]string {
	props := map[string]string{}
	for _, attr := range desc.Attrs {
		if strings.HasPrefix(attr.Name, "xmlns") {
			continue
		}
		props[localName(attr.Name)] = attr.Value
	}
	for _, child := range desc.Children {
		if child.Text != "" {
			props[child.LocalName()] = child.Text
		}
	}
	return props
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// decodeKeywords decodes an embedded document, or reads a tag list.
func (a *PDF) decodeKeywords(text string) metadata.Metadata {
	text = strings.TrimSpace(text)
	if text == "" {
		return metadata.New()
	}
	if a.registry != nil {
		for _, f := range keywordFormats {
			if md, err := a.registry.Decode(f, []byte(text)); err == nil {
				return md
			}
		}
	}
	md := metadata.New()
	md.AddToSet(metadata.KeyTags, textutil.SplitList(text)...)
	return md
}

func (a *PDF) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	values := encodeXMLScalars(a.c, md, pdfScalars)
	authors := creditColumns(md.Credits(), enums.ComicInfoRoles)[enums.RoleWriter]
	values[pdfAuthorTag] = strings.Join(authors, ", ")
	if a.registry != nil {
		embedded, err := a.registry.Encode(FormatComicInfo, md)
		if err != nil {
			return nil, err
		}
		values[pdfKeywordsTag] = string(embedded)
	} else if tags := md.Set(metadata.KeyTags); len(tags) > 0 {
		values[pdfKeywordsTag] = strings.Join(tags.Sorted(), ", ")
	}

	root := xmltree.New(xmpRoot)
	root.SetAttr("xmlns:x", xmpNamespace)
	rdf := root.Add("rdf:RDF")
	rdf.SetAttr("xmlns:rdf", rdfNamespace)
	desc := rdf.Add("rdf:Description")
	desc.SetAttr("rdf:about", "")
	desc.SetAttr("xmlns:pdf", pdfNamespace)
	for _, p := range a.tagMap {
		desc.AddText(p.Tag, values[p.Tag])
	}
	return xmltree.Marshal(root)
}
