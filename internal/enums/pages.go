package enums

// Page types.
const (
	PageFrontCover    = "FrontCover"
	PageInnerCover    = "InnerCover"
	PageRoundup       = "Roundup"
	PageStory         = "Story"
	PageAdvertisement = "Advertisement"
	PageEditorial     = "Editorial"
	PageLetters       = "Letters"
	PagePreview       = "Preview"
	PageBackCover     = "BackCover"
	PageOther         = "Other"
	PageDeleted       = "Deleted"
)

// PageTypes folds page type spellings. Unknown types become "Other".
var PageTypes = buildPageTypes()

func buildPageTypes() *Table {
	t := newTable("page_type", []string{
		PageFrontCover, PageInnerCover, PageRoundup, PageStory,
		PageAdvertisement, PageEditorial, PageLetters, PagePreview,
		PageBackCover, PageOther, PageDeleted,
	}, PageOther)
	t.alias([]string{PageFrontCover}, "Cover")
	t.alias([]string{PageAdvertisement}, "Ad", "Ads")
	return t
}
