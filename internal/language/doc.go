// Package language normalizes language and country references found in comic
// metadata.
//
// Metadata standards disagree on representation: ComicInfo stores ISO 639-1
// codes, ComicBookInfo stores English display names, and hand-edited files
// use whatever the author typed. Lookups accept 2-letter codes, 3-letter
// codes (including bibliographic variants such as "fre"), and English names,
// backed by the golang.org/x/text registries.
package language
