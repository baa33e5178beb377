// Package metadata defines the canonical comic metadata document shared by
// every format adapter.
//
// A Metadata value is a map from canonical keys (see keys.go) to typed values.
// Empty values are never stored: Prune removes empty strings, slices, sets,
// maps, zero structs, and nils so that absence always means "unset".
//
// Nested records (Series, Volume, Issue) are addressed by dotted paths such as
// "series.name" or "volume.issue_count" through GetPath and SetPath, which is
// how the format adapters bind native tags to canonical fields.
package metadata
