package pages

import (
	"log/slog"
	"path"
	"slices"
	"strings"

	"comicbox/internal/enums"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

var imageExtensions = map[string]struct{}{
	".jxl":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".png":  {},
	".gif":  {},
}

// IsImage reports whether name has a page image extension.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(name))]
	return ok
}

// PageFilenames returns the page images among names, sorted
// case-insensitively. Every entry of a page-oriented container is a page.
func PageFilenames(names []string, pageOriented bool) []string {
	if pageOriented {
		return slices.Clone(names)
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, "/") || hidden(name) || !IsImage(name) {
			continue
		}
		out = append(out, name)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

// hidden matches dotfiles and resource fork entries anywhere in the path.
func hidden(name string) bool {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") || part == "__MACOSX" {
			return true
		}
	}
	return false
}

// Resolve sets page_count and cover_image on md from the archive member
// names and returns md.
func Resolve(logger *slog.Logger, md metadata.Metadata, names []string, pageOriented bool) metadata.Metadata {
	logger = logging.NewComponentLogger(logger, "pages")
	files := PageFilenames(names, pageOriented)
	if len(files) > 0 {
		md[metadata.KeyPageCount] = len(files)
	}
	cover := taggedCover(md.Pages(), files)
	if cover == "" {
		if explicit := md.String(metadata.KeyCoverImage); slices.Contains(files, explicit) {
			cover = explicit
		}
	}
	if cover == "" && len(files) > 0 {
		cover = files[0]
	}
	if cover == "" {
		delete(md, metadata.KeyCoverImage)
		logging.WarnWithContext(logger, "no cover image found", "cover_resolution",
			logging.Int("members", len(names)),
			logging.String(logging.FieldErrorHint, "add page images to the archive"),
			logging.String(logging.FieldImpact, "cover_image left unset"),
		)
		return md
	}
	md[metadata.KeyCoverImage] = cover
	return md
}

// taggedCover returns the file of the first page tagged as the front cover.
// Indices are zero-based when any page uses index 0, and one-based
// otherwise.
func taggedCover(pageList []metadata.Page, files []string) string {
	offset := 1
	for _, p := range pageList {
		if p.Index == 0 {
			offset = 0
			break
		}
	}
	for _, p := range pageList {
		if p.Type != enums.PageFrontCover {
			continue
		}
		if i := p.Index - offset; i >= 0 && i < len(files) {
			return files[i]
		}
	}
	return ""
}

// RebuildPages regenerates the page list from the page files, keeping the
// attributes of existing entries by index. Sizes are taken from sizes when
// present. When no page is tagged FrontCover, the cover_image page, or else
// the first page, is tagged.
func RebuildPages(md metadata.Metadata, files []string, sizes map[string]int64) metadata.Metadata {
	existing := make(map[int]metadata.Page)
	for _, p := range md.Pages() {
		existing[p.Index] = p
	}
	rebuilt := make([]metadata.Page, 0, len(files))
	hasCover := false
	for i, name := range files {
		p, ok := existing[i]
		if !ok {
			p = metadata.Page{Index: i}
		}
		if size, ok := sizes[name]; ok {
			p.Size = size
		}
		if p.Type == enums.PageFrontCover {
			hasCover = true
		}
		rebuilt = append(rebuilt, p)
	}
	if !hasCover && len(rebuilt) > 0 {
		cover := max(slices.Index(files, md.String(metadata.KeyCoverImage)), 0)
		rebuilt[cover].Type = enums.PageFrontCover
	}
	if len(rebuilt) == 0 {
		delete(md, metadata.KeyPages)
		return md
	}
	md[metadata.KeyPages] = rebuilt
	md[metadata.KeyPageCount] = len(rebuilt)
	return md
}
