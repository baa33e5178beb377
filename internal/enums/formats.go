package enums

import "strings"

// GenericFormats normalizes free-text format names. Unknown formats pass
// through unchanged at the call site.
var GenericFormats = buildGenericFormats()

// MetronFormats maps formats onto the Metron series type vocabulary.
// Unmapped formats become "Single Issue".
var MetronFormats = buildMetronFormats()

func buildGenericFormats() *Table {
	t := newTable("format", []string{
		"Anthology", "Annotation", "Box Set", "Digital", "Director's Cut",
		"Giant Sized", "Graphic Novel", "Hardcover", "HD Upscaled",
		"King Sized", "Magazine", "Manga", "One-Shot", "PDF Rip", "Preview",
		"Prologue", "Scanlation", "Script", "Trade Paperback", "Web Comic",
		"Web Rip",
	})
	t.alias([]string{"Box Set"}, "Boxed Set")
	t.alias([]string{"Graphic Novel"}, "GN")
	t.alias([]string{"Hardcover"}, "HC")
	t.alias([]string{"Trade Paperback"}, "TPB", "TBP", "TP")
	return t
}

func buildMetronFormats() *Table {
	t := newTable("metron_format", []string{
		"Annual", "Digital Chapter", "Graphic Novel", "Hardcover",
		"Limited Series", "Omnibus", "One-Shot", "Single Issue",
		"Trade Paperback",
	}, "Single Issue")
	t.alias([]string{"Omnibus"}, "Box Set", "Boxed Set")
	t.alias([]string{"Digital Chapter"}, "Digital", "HD Upscaled")
	t.alias([]string{"Annual"}, "Giant Sized", "King Sized")
	t.alias([]string{"Graphic Novel"}, "GN")
	t.alias([]string{"Hardcover"}, "HC")
	t.alias([]string{"Trade Paperback"}, "TPB", "TBP", "TP")
	return t
}

// NormalizeFormat returns the canonical spelling of a known format, or the
// trimmed input.
func NormalizeFormat(value string) string {
	if v := GenericFormats.MapOne(value); v != "" {
		return v
	}
	if v, ok := MetronFormats.Native(value); ok {
		return v
	}
	return strings.TrimSpace(value)
}
