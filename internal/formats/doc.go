// Package formats converts between each supported metadata standard and the
// canonical metadata.Metadata document.
//
// Every standard has one Adapter. Decode walks the native tree, maps native
// tags to canonical paths through the adapter's TagMap, and coerces each
// value with the fields layer, so a bad value costs one field and a warning
// rather than the document. Encode is the inverse walk; canonical keys with
// no native tag are omitted and cross-standard enums go through the lossy
// tables in internal/enums.
//
// Only a document that is not well formed at all makes Decode return an
// error. DecodeSource turns that error into a nil document plus one warning,
// which is what synthesis expects.
package formats
