package formats

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/metadata"
)

// comicboxRoot is the single top level key of native documents.
const comicboxRoot = "comicbox"

// nested field names of the native tree.
const (
	treeName        = "name"
	treeSortName    = "sort_name"
	treeStartYear   = "start_year"
	treeVolumeCount = "volume_count"
	treeNumber      = "number"
	treeNumberTo    = "number_to"
	treeIssueCount  = "issue_count"
	treeSuffix      = "suffix"
	treeIdentifiers = "identifiers"
	treePerson      = "person"
	treeRole        = "role"
	treePrimary     = "primary"
	treeIndex       = "index"
	treeType        = "type"
	treeDoublePage  = "double_page"
	treeSize        = "size"
	treeKey         = "key"
	treeBookmark    = "bookmark"
	treeWidth       = "width"
	treeHeight      = "height"
	treeSeries      = "series"
	treeIssue       = "issue"
	treeNSS         = "nss"
	treeURL         = "url"
)

// treeKeyOrder ranks keys when a tree is rendered in order.
var treeKeyOrder = append(slices.Clone(metadata.Keys),
	treeName, treeSortName, treeStartYear, treeVolumeCount, treeNumber,
	treeNumberTo, treeIssueCount, treeSuffix, treePerson, treeRole,
	treePrimary, treeIndex, treeType, treeDoublePage, treeSize, treeKey,
	treeBookmark, treeWidth, treeHeight, treeNSS, treeURL,
)

// nativeTagMap lists canonical keys and nested paths as their own tags.
func nativeTagMap() TagMap {
	m := make(TagMap, 0, len(metadata.Keys)+10)
	for _, key := range metadata.Keys {
		m = append(m, TagPair{Tag: key, Path: key})
	}
	for _, path := range []string{
		metadata.PathSeriesName, metadata.PathSeriesSortName, metadata.PathSeriesStartYear,
		metadata.PathSeriesVolumeCount, metadata.PathVolumeNumber, metadata.PathVolumeNumberTo,
		metadata.PathVolumeIssueCount, metadata.PathIssueName, metadata.PathIssueNumber,
		metadata.PathIssueSuffix,
	} {
		m = append(m, TagPair{Tag: path, Path: path})
	}
	return m
}

// toTree renders md as plain maps, lists and wire scalars.
func toTree(c *fields.Coercer, md metadata.Metadata) map[string]any {
	out := map[string]any{}
	for key, value := range md {
		if metadata.IsEmpty(value) {
			continue
		}
		var v any
		switch key {
		case metadata.KeySeries:
			v = seriesTree(c, md.Series())
		case metadata.KeyVolume:
			v = recordTree(c, md, metadata.PathVolumeNumber, metadata.PathVolumeNumberTo, metadata.PathVolumeIssueCount)
		case metadata.KeyIssue:
			v = recordTree(c, md, metadata.PathIssueName, metadata.PathIssueNumber, metadata.PathIssueSuffix)
		case metadata.KeyCredits:
			v = creditsTree(md.Credits())
		case metadata.KeyPages:
			v = pagesTree(md.Pages())
		case metadata.KeyReprints:
			v = reprintsTree(md.Reprints())
		case metadata.KeyArcs:
			arcs := map[string]any{}
			for name, n := range md.Arcs() {
				arcs[name] = n
			}
			v = arcs
		case metadata.KeyPrices:
			prices := map[string]any{}
			for country, p := range md.Prices() {
				prices[country] = json.Number(p.String())
			}
			v = prices
		case metadata.KeyIdentifiers:
			v = identifiersTree(md.Identifiers())
		case metadata.KeyRemainders:
			if remainders, ok := value.([]string); ok {
				v = slices.Clone(remainders)
			}
		default:
			v = c.EncodePath(key, value)
		}
		if m, ok := v.(map[string]any); ok && len(m) == 0 {
			continue
		}
		if v != nil {
			out[key] = v
		}
	}
	return out
}

func recordTree(c *fields.Coercer, md metadata.Metadata, paths ...string) map[string]any {
	out := map[string]any{}
	for _, path := range paths {
		value := md.GetPath(path)
		if value == nil {
			continue
		}
		if v := c.EncodePath(path, value); v != nil {
			out[leafName(path)] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func pathRecord(path string) string {
	record, _, _ := strings.Cut(path, ".")
	return record
}

func leafName(path string) string {
	_, leaf, _ := strings.Cut(path, ".")
	return leaf
}

func seriesTree(c *fields.Coercer, s metadata.Series) map[string]any {
	md := metadata.Metadata{metadata.KeySeries: s}
	out := recordTree(c, md, metadata.PathSeriesName, metadata.PathSeriesSortName,
		metadata.PathSeriesStartYear, metadata.PathSeriesVolumeCount)
	if len(s.Identifiers) > 0 {
		if out == nil {
			out = map[string]any{}
		}
		out[treeIdentifiers] = identifiersTree(s.Identifiers)
	}
	return out
}

func creditsTree(credits []metadata.Credit) []any {
	out := make([]any, 0, len(credits))
	for _, c := range credits {
		item := map[string]any{treePerson: c.Person}
		if c.Role != "" {
			item[treeRole] = c.Role
		}
		if c.Primary != nil {
			item[treePrimary] = *c.Primary
		}
		out = append(out, item)
	}
	return out
}

func pagesTree(pages []metadata.Page) []any {
	out := make([]any, 0, len(pages))
	for _, p := range pages {
		item := map[string]any{treeIndex: p.Index}
		if p.Type != "" {
			item[treeType] = p.Type
		}
		if p.DoublePage {
			item[treeDoublePage] = true
		}
		if p.Size > 0 {
			item[treeSize] = p.Size
		}
		if p.Key != "" {
			item[treeKey] = p.Key
		}
		if p.Bookmark != "" {
			item[treeBookmark] = p.Bookmark
		}
		if p.Width > 0 {
			item[treeWidth] = p.Width
		}
		if p.Height > 0 {
			item[treeHeight] = p.Height
		}
		out = append(out, item)
	}
	return out
}

func reprintsTree(reprints []metadata.Reprint) []any {
	out := make([]any, 0, len(reprints))
	for _, r := range reprints {
		item := map[string]any{}
		if r.Series != "" {
			item[treeSeries] = r.Series
		}
		if r.Issue != "" {
			item[treeIssue] = r.Issue
		}
		out = append(out, item)
	}
	return out
}

func identifiersTree(ids map[string]metadata.Identifier) map[string]any {
	out := make(map[string]any, len(ids))
	for nid, id := range ids {
		item := map[string]any{}
		if id.Type != "" {
			item[treeType] = id.Type
		}
		if id.NSS != "" {
			item[treeNSS] = id.NSS
		}
		if id.URL != "" {
			item[treeURL] = id.URL
		}
		out[nid] = item
	}
	return out
}

// fromTree reads a native tree. Unknown keys are dropped.
func fromTree(c *fields.Coercer, tree map[string]any) metadata.Metadata {
	md := metadata.New()
	for key, raw := range tree {
		if raw == nil {
			continue
		}
		switch key {
		case metadata.KeySeries:
			decodeSeries(c, md, raw)
		case metadata.KeyVolume:
			decodeRecord(c, md, raw, metadata.PathVolumeNumber,
				metadata.PathVolumeNumber, metadata.PathVolumeNumberTo, metadata.PathVolumeIssueCount)
		case metadata.KeyIssue:
			decodeRecord(c, md, raw, metadata.PathIssueName,
				metadata.PathIssueName, metadata.PathIssueNumber, metadata.PathIssueSuffix)
		case metadata.KeyCredits:
			if credits := creditsFromTree(c, raw); len(credits) > 0 {
				md[key] = credits
			}
		case metadata.KeyPages:
			if pages := pagesFromTree(c, raw); len(pages) > 0 {
				md[key] = pages
			}
		case metadata.KeyReprints:
			if reprints := reprintsFromTree(c, raw); len(reprints) > 0 {
				md[key] = reprints
			}
		case metadata.KeyArcs:
			if arcs := arcsFromTree(c, raw); len(arcs) > 0 {
				md[key] = arcs
			}
		case metadata.KeyPrices:
			if prices := pricesFromTree(c, raw); len(prices) > 0 {
				md[key] = prices
			}
		case metadata.KeyIdentifiers:
			if ids := identifiersFromTree(c, raw); len(ids) > 0 {
				md[key] = ids
			}
		case metadata.KeyRemainders:
			if remainders := stringsFromTree(c, key, raw); len(remainders) > 0 {
				md[key] = remainders
			}
		default:
			rule := fields.RuleFor(key)
			if rule == nil {
				continue
			}
			if v := c.Decode(key, raw, rule); v != nil {
				md[key] = v
			}
		}
	}
	return md.Prune()
}

func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = value
		}
		return out, true
	}
	return nil, false
}

func asList(c *fields.Coercer, key string, raw any) []any {
	list, ok := raw.([]any)
	if !ok {
		c.Warn(key, raw, "not a list")
		return nil
	}
	return list
}

func decodeSeries(c *fields.Coercer, md metadata.Metadata, raw any) {
	u, err := fields.DecodeUnion(raw,
		func(m map[string]any) (map[string]any, error) { return m, nil },
		func(v any) (any, error) { return v, nil },
	)
	if err != nil {
		c.Warn(metadata.KeySeries, raw, err.Error())
		return
	}
	if !u.IsStruct {
		decodeInto(c, md, TagPair{Tag: metadata.PathSeriesName, Path: metadata.PathSeriesName}, u.Scalar)
		return
	}
	for field, path := range map[string]string{
		treeName: metadata.PathSeriesName, treeSortName: metadata.PathSeriesSortName,
		treeStartYear: metadata.PathSeriesStartYear, treeVolumeCount: metadata.PathSeriesVolumeCount,
	} {
		if v, ok := u.Struct[field]; ok {
			decodeInto(c, md, TagPair{Tag: path, Path: path}, v)
		}
	}
	if raw, ok := u.Struct[treeIdentifiers]; ok {
		if ids := identifiersFromTree(c, raw); len(ids) > 0 {
			s := md.Series()
			s.Identifiers = ids
			md[metadata.KeySeries] = s
		}
	}
}

// decodeRecord reads a record given as an object of fields or as a bare
// scalar destined for scalarPath.
func decodeRecord(c *fields.Coercer, md metadata.Metadata, raw any, scalarPath string, paths ...string) {
	u, err := fields.DecodeUnion(raw,
		func(m map[string]any) (map[string]any, error) { return m, nil },
		func(v any) (any, error) { return v, nil },
	)
	if err != nil {
		c.Warn(pathRecord(scalarPath), raw, err.Error())
		return
	}
	if !u.IsStruct {
		decodeInto(c, md, TagPair{Tag: scalarPath, Path: scalarPath}, u.Scalar)
		return
	}
	for _, path := range paths {
		if v, ok := u.Struct[leafName(path)]; ok {
			decodeInto(c, md, TagPair{Tag: path, Path: path}, v)
		}
	}
}

func stringsFromTree(c *fields.Coercer, key string, raw any) []string {
	var out []string
	for _, item := range asList(c, key, raw) {
		if s, err := fields.RawString(item); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func creditsFromTree(c *fields.Coercer, raw any) []metadata.Credit {
	var credits []metadata.Credit
	for _, item := range asList(c, metadata.KeyCredits, raw) {
		obj, ok := asObject(item)
		if !ok {
			c.Warn(metadata.KeyCredits, item, "credit is not an object")
			continue
		}
		person, _ := fields.RawString(obj[treePerson])
		role, _ := fields.RawString(obj[treeRole])
		credit := metadata.Credit{Person: person, Role: role}
		if v, ok := obj[treePrimary]; ok {
			if b, ok := c.Decode("credits.primary", v, fields.BoolRule{}).(bool); ok {
				credit.Primary = metadata.BoolPtr(b)
			}
		}
		credits = append(credits, credit)
	}
	return metadata.MergeCredits(credits)
}

func pagesFromTree(c *fields.Coercer, raw any) []metadata.Page {
	var pages []metadata.Page
	for _, item := range asList(c, metadata.KeyPages, raw) {
		obj, ok := asObject(item)
		if !ok {
			c.Warn(metadata.KeyPages, item, "page is not an object")
			continue
		}
		intField := func(name string) int {
			n, _ := c.Decode("pages."+name, obj[name], rawInt).(int)
			return n
		}
		page := metadata.Page{
			Index:  intField(treeIndex),
			Size:   int64(intField(treeSize)),
			Width:  intField(treeWidth),
			Height: intField(treeHeight),
		}
		page.Type, _ = c.Decode("pages.type", obj[treeType], fields.EnumRule{Table: enums.PageTypes}).(string)
		page.DoublePage, _ = c.Decode("pages.double_page", obj[treeDoublePage], fields.BoolRule{}).(bool)
		page.Key, _ = fields.RawString(obj[treeKey])
		page.Bookmark, _ = fields.RawString(obj[treeBookmark])
		pages = append(pages, page)
	}
	return pages
}

func reprintsFromTree(c *fields.Coercer, raw any) []metadata.Reprint {
	var reprints []metadata.Reprint
	for _, item := range asList(c, metadata.KeyReprints, raw) {
		if s, ok := item.(string); ok {
			reprints = append(reprints, parseReprint(s))
			continue
		}
		obj, ok := asObject(item)
		if !ok {
			c.Warn(metadata.KeyReprints, item, "reprint is not an object")
			continue
		}
		series, _ := fields.RawString(obj[treeSeries])
		issue, _ := c.Decode("reprints.issue", obj[treeIssue], fields.IssueRule{}).(string)
		if series != "" || issue != "" {
			reprints = append(reprints, metadata.Reprint{Series: series, Issue: issue})
		}
	}
	return reprints
}

func arcsFromTree(c *fields.Coercer, raw any) map[string]int {
	obj, ok := asObject(raw)
	if !ok {
		c.Warn(metadata.KeyArcs, raw, "arcs is not an object")
		return nil
	}
	arcs := make(map[string]int, len(obj))
	for name, v := range obj {
		if name == "" {
			continue
		}
		n, _ := c.Decode("arcs."+name, v, rawInt).(int)
		arcs[name] = n
	}
	return arcs
}

func pricesFromTree(c *fields.Coercer, raw any) map[string]decimal.Decimal {
	obj, ok := asObject(raw)
	if !ok {
		if p, ok := c.Decode(metadata.KeyPrices, raw, fields.DecimalRule{}).(decimal.Decimal); ok {
			return map[string]decimal.Decimal{"": p}
		}
		return nil
	}
	prices := make(map[string]decimal.Decimal, len(obj))
	for country, v := range obj {
		if p, ok := c.Decode("prices."+country, v, fields.DecimalRule{}).(decimal.Decimal); ok {
			prices[country] = p
		}
	}
	return prices
}

func identifiersFromTree(c *fields.Coercer, raw any) map[string]metadata.Identifier {
	obj, ok := asObject(raw)
	if !ok {
		c.Warn(metadata.KeyIdentifiers, raw, "identifiers is not an object")
		return nil
	}
	md := metadata.New()
	for nid, v := range obj {
		if s, ok := v.(string); ok {
			addCode(md, s, nid)
			continue
		}
		item, ok := asObject(v)
		if !ok {
			c.Warn("identifiers."+nid, v, "identifier is not an object")
			continue
		}
		id := metadata.Identifier{}
		id.Type, _ = fields.RawString(item[treeType])
		id.NSS, _ = fields.RawString(item[treeNSS])
		id.URL, _ = fields.RawString(item[treeURL])
		md.AddIdentifier(nid, id)
	}
	return md.Identifiers()
}
