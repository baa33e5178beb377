package identifiers

import (
	"regexp"
	"strings"

	"github.com/leodido/go-urn"
)

// Ref is a parsed identifier.
type Ref struct {
	NID  string
	Type string
	NSS  string
}

// IsZero reports whether nothing was parsed.
func (r Ref) IsZero() bool { return r.NSS == "" }

var (
	comicVineLongRE = regexp.MustCompile(`(?P<type>\d{4})-(?P<nss>\d+)`)
	barcodeRE       = regexp.MustCompile(`^[\d\- ]+[\dXx]$`)
)

// ParseURN parses an RFC 8141 URN such as "urn:comicvine:issue:123". The
// last two colon separated parts of the specific string are the type and
// the code; a single part gets DefaultType. Unknown namespaces yield an
// empty NID with the code intact. A malformed URN yields a zero Ref.
func ParseURN(tag string) Ref {
	tag = strings.TrimSpace(tag)
	if !strings.HasPrefix(strings.ToLower(tag), "urn:") {
		return Ref{}
	}
	u, ok := urn.Parse([]byte(tag))
	if !ok || u == nil {
		return Ref{}
	}
	parts := strings.Split(u.SS, ":")
	ref := Ref{Type: DefaultType, NSS: parts[len(parts)-1]}
	if len(parts) >= 2 && parts[len(parts)-2] != "" {
		ref.Type = parts[len(parts)-2]
	}
	if KnownNID(u.ID) {
		ref.NID = CanonicalNID(u.ID)
	}
	return ref
}

// ParseInline finds an identifier inside free text. The comicvine long form
// "4000-123" is tried before prefixed tokens such as "cvdb123" or
// "metron:44".
func ParseInline(text string) (Ref, bool) {
	if m := comicVineLongRE.FindStringSubmatch(text); m != nil {
		return Ref{
			NID:  NIDComicVine,
			Type: comicVineTypeForCode(m[1], DefaultType),
			NSS:  m[2],
		}, true
	}
	m := inlineRE.FindStringSubmatch(text)
	if m == nil {
		return Ref{}, false
	}
	return Ref{NID: CanonicalNID(m[1]), Type: DefaultType, NSS: m[2]}, true
}

// ParseString reduces any identifier text to a Ref. URNs are tried first,
// then URLs, then bare barcodes, then inline forms. Text matching none of
// them becomes the code itself. defaultNID fills a missing namespace.
//
// URLs from unknown catalogs yield a HostRef. A string of digits and
// hyphens that is a valid ISBN, or any code when defaultNID is NIDISBN,
// is normalized as an ISBN before inline forms are tried.
func ParseString(text, defaultNID string) Ref {
	text = strings.TrimSpace(text)
	if text == "" {
		return Ref{}
	}
	ref := ParseURN(text)
	if ref.IsZero() && LooksLikeURL(text) {
		if parsed, ok := ParseWebURL(text); ok {
			ref = parsed
		} else if host, ok := HostRef(text); ok {
			return host
		}
	}
	if ref.IsZero() && (defaultNID == NIDISBN || barcodeRE.MatchString(text)) {
		isbn, ok := NormalizeISBN(text)
		if ok || (defaultNID == NIDISBN && barcodeRE.MatchString(text)) {
			return Ref{NID: NIDISBN, Type: DefaultType, NSS: isbn}
		}
	}
	if ref.IsZero() {
		if parsed, ok := ParseInline(text); ok {
			ref = parsed
		} else {
			ref = Ref{NSS: text}
		}
	}
	if ref.NID == "" {
		ref.NID = defaultNID
	}
	if ref.Type == "" {
		ref.Type = DefaultType
	}
	if ref.NID == NIDComicVine {
		ref.Type, ref.NSS = normalizeComicVine(ref.Type, ref.NSS)
	}
	return ref
}

// ToURN composes "urn:<nid>:<type>:<nss>". It returns "" when the result
// would not be a valid URN, for example when nid is a host name.
func ToURN(nid, nssType, nss string) string {
	if nid == "" || nss == "" || strings.Contains(nid, ".") {
		return ""
	}
	specific := nss
	if nssType != "" {
		specific = nssType + ":" + nss
	}
	out := "urn:" + nid + ":" + specific
	if _, ok := urn.Parse([]byte(out)); !ok {
		return ""
	}
	return out
}

// normalizeComicVine splits a full "4000-123" code into type and id.
func normalizeComicVine(nssType, nss string) (string, string) {
	m := comicVineLongRE.FindStringSubmatch(nss)
	if m == nil || m[0] != nss {
		return nssType, nss
	}
	return comicVineTypeForCode(m[1], nssType), m[2]
}

func comicVineTypeForCode(code, fallback string) string {
	if t, ok := sites[NIDComicVine].typeForSlug(code); ok {
		return t
	}
	return fallback
}

// LooksLikeURL reports whether text starts like a web address.
func LooksLikeURL(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "www.")
}
