package formats

import (
	"fmt"
	"strconv"
	"strings"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
)

const (
	cbiRoot         = "ComicBookInfo/1.0"
	cbiAppID        = "appID"
	cbiLastModified = "lastModified"
)

var comicBookInfoScalars = TagMap{
	{Tag: "series", Path: metadata.PathSeriesName},
	{Tag: "title", Path: metadata.KeyTitle},
	{Tag: "issue", Path: metadata.PathIssueName},
	{Tag: "publisher", Path: metadata.KeyPublisher},
	{Tag: "publicationYear", Path: metadata.KeyYear},
	{Tag: "publicationMonth", Path: metadata.KeyMonth},
	{Tag: "publicationDay", Path: metadata.KeyDay},
	{Tag: "numberOfIssues", Path: metadata.PathVolumeIssueCount},
	{Tag: "numberOfVolumes", Path: metadata.PathSeriesVolumeCount},
	{Tag: "volume", Path: metadata.PathVolumeNumber},
	{Tag: "genre", Path: metadata.KeyGenres},
	{Tag: "language", Path: metadata.KeyLanguage},
	{Tag: "country", Path: metadata.KeyCountry},
	{Tag: "rating", Path: metadata.KeyCriticalRating},
	{Tag: "comments", Path: metadata.KeySummary},
	{Tag: "pages", Path: metadata.KeyPageCount},
	{Tag: "tags", Path: metadata.KeyTags},
}

var comicBookInfoStructured = TagMap{
	{Tag: "credits", Path: metadata.KeyCredits},
	{Tag: cbiAppID, Path: metadata.KeyTagger},
	{Tag: cbiLastModified, Path: metadata.KeyUpdatedAt},
}

// ComicBookInfo reads and writes the ComicBookInfo JSON archive comment.
type ComicBookInfo struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewComicBookInfo returns the ComicBookInfo adapter.
func NewComicBookInfo(c *fields.Coercer) *ComicBookInfo {
	return &ComicBookInfo{c: c, tagMap: joinMaps(comicBookInfoScalars, comicBookInfoStructured)}
}

func (a *ComicBookInfo) Format() Format { return FormatComicBookInfo }

func (a *ComicBookInfo) TagMap() TagMap { return a.tagMap }

func (a *ComicBookInfo) Decode(raw []byte) (metadata.Metadata, error) {
	envelope, err := decodeJSONObject(raw)
	if err != nil {
		return nil, err
	}
	body, ok := envelope[cbiRoot]
	if !ok {
		return nil, fmt.Errorf("missing %q object", cbiRoot)
	}
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q is %T, not an object", cbiRoot, body)
	}
	md := metadata.New()
	decodeObjectScalars(a.c, md, obj, comicBookInfoScalars)
	decodeObjectScalars(a.c, md, envelope, comicBookInfoStructured[1:])
	if list, ok := lookupKey(obj, "credits"); ok {
		if credits := a.decodeCredits(list); len(credits) > 0 {
			md[metadata.KeyCredits] = credits
		}
	}
	return md.Prune(), nil
}

func (a *ComicBookInfo) decodeCredits(raw any) []metadata.Credit {
	items, ok := raw.([]any)
	if !ok {
		a.c.Warn("credits", raw, "credits is not a list")
		return nil
	}
	var credits []metadata.Credit
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			a.c.Warn("credits", item, "credit is not an object")
			continue
		}
		person, _ := fields.RawString(obj["person"])
		role, _ := fields.RawString(obj["role"])
		credit := metadata.Credit{Person: person, Role: role}
		if v, ok := obj["primary"]; ok {
			if b, ok := a.c.Decode("credits.primary", v, fields.BoolRule{}).(bool); ok {
				credit.Primary = metadata.BoolPtr(b)
			}
		}
		credits = append(credits, credit)
	}
	return metadata.MergeCredits(credits)
}

func (a *ComicBookInfo) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	body := encodeObjectScalars(a.c, md, comicBookInfoScalars)
	if genres, ok := body["genre"].([]string); ok {
		body["genre"] = strings.Join(genres, ", ")
	}
	if issue, ok := body["issue"].(string); ok {
		if n, err := strconv.Atoi(issue); err == nil {
			body["issue"] = n
		}
	}
	if credits := md.Credits(); len(credits) > 0 {
		list := make([]map[string]any, 0, len(credits))
		for _, c := range credits {
			item := map[string]any{"person": c.Person}
			if c.Role != "" {
				item["role"] = c.Role
			}
			if c.Primary != nil {
				item["primary"] = *c.Primary
			}
			list = append(list, item)
		}
		body["credits"] = list
	}
	envelope := encodeObjectScalars(a.c, md, comicBookInfoStructured[1:])
	envelope[cbiRoot] = body
	return marshalJSON(envelope)
}

// LooksLikeComicBookInfo reports whether an archive comment holds a
// ComicBookInfo envelope.
func LooksLikeComicBookInfo(comment []byte) bool {
	return strings.Contains(textutil.CleanString(string(comment)), cbiRoot)
}
