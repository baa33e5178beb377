package formats

import (
	"slices"
	"strings"

	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
)

// addURL records a web link as an identifier. Links to unknown sites are
// kept under their host name with the link as their only data.
func addURL(md metadata.Metadata, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ref, ok := identifiers.ParseWebURL(raw); ok {
		md.AddIdentifier(ref.NID, metadata.Identifier{Type: ref.Type, NSS: ref.NSS, URL: raw})
		return ref.NID
	}
	ref, ok := identifiers.HostRef(raw)
	if !ok {
		return ""
	}
	md.AddIdentifier(ref.NID, metadata.Identifier{URL: raw})
	return ref.NID
}

// addCode records an identifier given as a URN, URL, inline token or bare
// code. It returns the namespace used.
func addCode(md metadata.Metadata, text, defaultNID string) string {
	if identifiers.LooksLikeURL(strings.TrimSpace(text)) {
		if nid := addURL(md, text); nid != "" {
			return nid
		}
	}
	ref := identifiers.ParseString(text, defaultNID)
	if ref.IsZero() || ref.NID == "" {
		return ""
	}
	md.AddIdentifier(ref.NID, metadata.Identifier{Type: ref.Type, NSS: ref.NSS})
	return ref.NID
}

// identifierURL returns the stored link or one derived from the code.
func identifierURL(nid string, id metadata.Identifier) string {
	if id.URL != "" {
		return id.URL
	}
	return identifiers.WebLink(nid, id.Type, id.NSS)
}

func sortedNIDs(ids map[string]metadata.Identifier) []string {
	out := make([]string, 0, len(ids))
	for nid := range ids {
		out = append(out, nid)
	}
	slices.Sort(out)
	return out
}

// identifierURLs lists every known link in namespace order.
func identifierURLs(md metadata.Metadata) []string {
	ids := md.Identifiers()
	var out []string
	for _, nid := range sortedNIDs(ids) {
		if link := identifierURL(nid, ids[nid]); link != "" {
			out = append(out, link)
		}
	}
	return out
}

// gtin returns the preferred barcode-like identifier.
func gtin(md metadata.Metadata) (string, string) {
	ids := md.Identifiers()
	for _, nid := range identifiers.GTINOrder {
		if id, ok := ids[nid]; ok && id.NSS != "" {
			return nid, id.NSS
		}
	}
	return "", ""
}

// identifierURN renders an identifier as a URN, falling back to its link.
func identifierURN(nid string, id metadata.Identifier) string {
	if urn := identifiers.ToURN(nid, id.Type, id.NSS); urn != "" {
		return urn
	}
	return identifierURL(nid, id)
}
