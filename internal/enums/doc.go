// Package enums holds the cross-standard vocabulary tables used when a
// canonical value is written into a format with a closed vocabulary.
//
// Each Table maps case-insensitive aliases from every known vocabulary onto
// the values of one target standard. The mappings are lossy and one
// directional: "T+" becomes "Mature 17+" in ComicInfo and "Teen Plus" in
// MetronInfo, and neither maps back. Values a table cannot place resolve to
// the table's documented fallback so encoding never fails.
//
// All tables are built once at package init and never mutated.
package enums
