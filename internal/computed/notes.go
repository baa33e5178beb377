package computed

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
)

var (
	notesRE = regexp.MustCompile(`(?i)Tagged\s(?:with|by)\s(?P<tagger>\w+(?:\s(?:dev|test|[\d.]+\S*))?)` +
		`(?:\s+on\s(?P<updated_at>[12]\d{3}-[01]\d-[0-3]\d(?:[\sT][0-2]\d:\d{2}:\d{2}\S*)?))?` +
		`(?:\s+using info from (?P<origin>\w+(?: [A-Z]\w*)*))?` +
		`(?:\s+\[Issue ID (?P<identifier>[\w-]+)\])?`)
	urnRE     = regexp.MustCompile(`urn:\S{2,}:\S{2,}`)
	bracketRE = regexp.MustCompile(`\[([^\[\]]+)\]`)
)

// FromNotes parses a tagger stamp out of the notes field. It fills tagger
// and updated_at when they are missing and records identifiers for
// namespaces not yet present.
func FromNotes(c *fields.Coercer, md metadata.Metadata) {
	notes := md.String(metadata.KeyNotes)
	if notes == "" {
		return
	}
	if m := notesRE.FindStringSubmatch(notes); m != nil {
		group := func(name string) string { return m[notesRE.SubexpIndex(name)] }
		if _, ok := md[metadata.KeyTagger]; !ok && group("tagger") != "" {
			md[metadata.KeyTagger] = strings.TrimSpace(group("tagger"))
		}
		if _, ok := md[metadata.KeyUpdatedAt]; !ok && group("updated_at") != "" {
			if t, ok := c.Decode(metadata.KeyUpdatedAt, group("updated_at"), fields.DateTimeRule{}).(time.Time); ok {
				md[metadata.KeyUpdatedAt] = t
			}
		}
		if nss := group("identifier"); nss != "" {
			nid, ok := identifiers.NIDForName(group("origin"))
			if !ok {
				nid = identifiers.DefaultNID
			}
			ref := identifiers.ParseString(nss, nid)
			addMissing(md, ref)
		}
	}
	for _, m := range bracketRE.FindAllStringSubmatch(notes, -1) {
		if strings.HasPrefix(strings.ToLower(m[1]), "issue id") {
			continue
		}
		if ref, ok := identifiers.ParseInline(m[1]); ok {
			addMissing(md, ref)
		}
	}
	for _, token := range urnRE.FindAllString(notes, -1) {
		if ref := identifiers.ParseURN(token); !ref.IsZero() && ref.NID != "" {
			addMissing(md, ref)
		}
	}
}

// NotesLine renders the tagger stamp written to notes, for example
// "Tagged with comicbox on 2024-01-02T03:04:05Z [Issue ID 123] urn:comicvine:issue:123".
func NotesLine(md metadata.Metadata) string {
	var parts []string
	if tagger := md.String(metadata.KeyTagger); tagger != "" {
		parts = append(parts, "Tagged with "+tagger)
		if t, ok := md[metadata.KeyUpdatedAt].(time.Time); ok && !t.IsZero() {
			parts = append(parts, "on "+t.UTC().Format(fields.DateTimeLayout))
		}
	}
	ids := md.Identifiers()
	if cv := ids[identifiers.NIDComicVine]; cv.NSS != "" {
		parts = append(parts, "[Issue ID "+cv.NSS+"]")
	}
	var urns []string
	for nid, id := range ids {
		if urn := identifiers.ToURN(nid, id.Type, id.NSS); urn != "" {
			urns = append(urns, urn)
		}
	}
	slices.Sort(urns)
	return strings.TrimSpace(strings.Join(append(parts, urns...), " "))
}

// Stamp records a write by tagger at now, regenerating notes.
func Stamp(md metadata.Metadata, tagger string, now time.Time) metadata.Metadata {
	if tagger != "" {
		md[metadata.KeyTagger] = tagger
	}
	md[metadata.KeyUpdatedAt] = now.UTC().Truncate(time.Second)
	if notes := NotesLine(md); notes != "" {
		md[metadata.KeyNotes] = notes
	}
	return md
}
