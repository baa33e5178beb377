// Package identifiers parses and composes references into external comic
// catalogs.
//
// An identifier is a namespace id (NID, such as "comicvine" or "metron"), a
// type within that namespace ("issue", "series", ...) and a namespace
// specific string (NSS). Identifiers arrive as RFC 8141 URNs
// ("urn:comicvine:issue:123"), as inline tokens ("cvdb123",
// "metron:issue:44") and as catalog web URLs. Every form reduces to the same
// triple, and the triple can be rendered back as a URN or a web link.
//
// Parse failures are never errors. Callers receive empty results and treat
// the text as an opaque code.
package identifiers
