package formats

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/identifiers"
	"comicbox/internal/metadata"
)

const (
	cliPairSep = ';'
	cliItemSep = ','
	cliEscape  = '\\'
)

var errNotCLI = errors.New("no key=value pairs")

// recordScalarPaths receives a record key given a bare value.
var recordScalarPaths = map[string]string{
	metadata.KeySeries: metadata.PathSeriesName,
	metadata.KeyVolume: metadata.PathVolumeNumber,
	metadata.KeyIssue:  metadata.PathIssueName,
}

// CLI reads and writes the one line key=value;key=value form used on the
// command line. Keys are canonical keys, nested paths, or any native tag
// of another format.
type CLI struct {
	c        *fields.Coercer
	registry *Registry
	tagMap   TagMap
}

// NewCLI returns the CLI adapter. Native tags are resolved through
// registry.
func NewCLI(c *fields.Coercer, registry *Registry) *CLI {
	return &CLI{c: c, registry: registry, tagMap: nativeTagMap()}
}

func (a *CLI) Format() Format { return FormatCLI }

func (a *CLI) TagMap() TagMap { return a.tagMap }

// resolve maps a key to a tag pair, trying canonical names first and then
// each format's native tags in precedence order.
func (a *CLI) resolve(key string) (TagPair, bool) {
	if p, ok := a.tagMap.pair(key); ok {
		return p, true
	}
	if a.registry == nil {
		return TagPair{}, false
	}
	for _, f := range All {
		if f == FormatCLI {
			continue
		}
		adapter, err := a.registry.Adapter(f)
		if err != nil {
			continue
		}
		if p, ok := adapter.TagMap().pair(key); ok {
			return p, true
		}
	}
	return TagPair{}, false
}

func (a *CLI) Decode(raw []byte) (metadata.Metadata, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, ErrEmptyDocument
	}
	if !strings.Contains(text, "=") {
		return nil, errNotCLI
	}
	md := metadata.New()
	for _, pair := range splitEscaped(text, cliPairSep) {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" {
			a.c.Warn(pair, pair, "expected key=value")
			continue
		}
		p, ok := a.resolve(key)
		if !ok {
			a.c.Warn(key, value, "unknown key")
			continue
		}
		a.decodePair(md, p, value)
	}
	return md.Prune(), nil
}

func (a *CLI) decodePair(md metadata.Metadata, p TagPair, value string) {
	items := splitEscaped(value, cliItemSep)
	for i := range items {
		items[i] = unescapeCLI(items[i])
	}
	value = unescapeCLI(value)
	switch p.Path {
	case metadata.KeySeries, metadata.KeyVolume, metadata.KeyIssue:
		path := recordScalarPaths[p.Path]
		decodeInto(a.c, md, TagPair{Tag: p.Tag, Path: path}, value)
	case metadata.KeyCredits:
		defaultRole := ""
		if p.Tag != metadata.KeyCredits {
			defaultRole = p.Tag
			if strings.EqualFold(p.Tag, pdfAuthorTag) {
				defaultRole = enums.RoleWriter
			}
		}
		var credits []metadata.Credit
		for _, item := range items {
			role, person, ok := splitPair(item)
			if !ok {
				role, person = defaultRole, strings.TrimSpace(item)
			}
			credits = append(credits, metadata.Credit{Person: person, Role: role})
		}
		md[metadata.KeyCredits] = metadata.MergeCredits(md.Credits(), credits)
	case metadata.KeyArcs:
		arcs := md.Arcs()
		if arcs == nil {
			arcs = map[string]int{}
		}
		for _, item := range items {
			name, number := splitArc(item)
			if name == "" {
				continue
			}
			n, _ := a.c.Decode("arcs."+name, number, rawInt).(int)
			arcs[name] = n
		}
		md[metadata.KeyArcs] = arcs
	case metadata.KeyIdentifiers:
		for _, item := range items {
			nid, nss, ok := splitPair(item)
			if ok && identifiers.KnownNID(nid) && !strings.HasPrefix(nss, "//") {
				md.AddIdentifier(identifiers.CanonicalNID(nid), metadata.Identifier{Type: identifiers.DefaultType, NSS: nss})
				continue
			}
			if addCode(md, item, identifiers.DefaultNID) == "" {
				a.c.Warn(p.Tag, item, "not an identifier")
			}
		}
	case metadata.KeyPages:
		pages := md.Pages()
		for _, item := range items {
			parts := strings.Split(item, ":")
			page := metadata.Page{}
			page.Index, _ = a.c.Decode("pages.index", parts[0], rawInt).(int)
			if len(parts) > 1 {
				size, _ := a.c.Decode("pages.size", parts[1], rawInt).(int)
				page.Size = int64(size)
			}
			if len(parts) > 2 {
				page.Type, _ = a.c.Decode("pages.type", parts[2], fields.EnumRule{Table: enums.PageTypes}).(string)
			}
			pages = append(pages, page)
		}
		md[metadata.KeyPages] = pages
	case metadata.KeyReprints:
		reprints := md.Reprints()
		for _, item := range items {
			reprints = append(reprints, parseReprint(item))
		}
		md[metadata.KeyReprints] = reprints
	case metadata.KeyPrices:
		prices := md.Prices()
		if prices == nil {
			prices = map[string]decimal.Decimal{}
		}
		for _, item := range items {
			country, amount, ok := splitPair(item)
			if !ok {
				country, amount = "", item
			}
			if country != "" {
				country, _ = a.c.Decode("prices", country, countryCode).(string)
			}
			if price, ok := a.c.Decode("prices", amount, fields.DecimalRule{}).(decimal.Decimal); ok {
				prices[country] = price
			}
		}
		md[metadata.KeyPrices] = prices
	case metadata.KeyRemainders:
		remainders, _ := md[metadata.KeyRemainders].([]string)
		md[metadata.KeyRemainders] = append(remainders, items...)
	default:
		if metadata.IsSetKey(p.Path) {
			md.AddToSet(p.Path, items...)
			return
		}
		if p.Path == metadata.KeyManga && strings.EqualFold(value, mangaYesRTL) {
			md[metadata.KeyManga] = true
			md[metadata.KeyReadingDirection] = enums.DirectionRTL
			return
		}
		decodeInto(a.c, md, p, value)
	}
}

func (a *CLI) Encode(md metadata.Metadata) ([]byte, error) {
	md = encodeView(md)
	var pairs []string
	add := func(key string, items ...string) {
		for i := range items {
			items[i] = escapeCLI(items[i])
		}
		if value := strings.Join(items, string(cliItemSep)); value != "" {
			pairs = append(pairs, key+"="+value)
		}
	}
	for _, p := range a.tagMap {
		value, ok := md[p.Path]
		if strings.Contains(p.Path, ".") {
			value, ok = md.GetPath(p.Path), md.GetPath(p.Path) != nil
		}
		if !ok || metadata.IsEmpty(value) {
			continue
		}
		switch p.Path {
		case metadata.KeySeries, metadata.KeyVolume, metadata.KeyIssue:
			// written through their nested paths
		case metadata.KeyCredits:
			var items []string
			for _, c := range md.Credits() {
				items = append(items, c.Role+":"+c.Person)
			}
			add(p.Tag, items...)
		case metadata.KeyArcs:
			arcs := md.Arcs()
			var items []string
			for _, name := range sortedArcNames(arcs) {
				item := name
				if _, suffix := splitArc(name); arcs[name] != 0 || suffix != "" {
					item += ":" + strconv.Itoa(arcs[name])
				}
				items = append(items, item)
			}
			add(p.Tag, items...)
		case metadata.KeyIdentifiers:
			ids := md.Identifiers()
			var items []string
			for _, nid := range sortedNIDs(ids) {
				if ids[nid].NSS != "" && identifiers.KnownNID(nid) {
					items = append(items, nid+":"+ids[nid].NSS)
				} else if link := identifierURL(nid, ids[nid]); link != "" {
					items = append(items, link)
				}
			}
			add(p.Tag, items...)
		case metadata.KeyPages:
			var items []string
			for _, page := range md.Pages() {
				item := strconv.Itoa(page.Index) + ":" + strconv.FormatInt(page.Size, 10)
				if page.Type != "" {
					item += ":" + page.Type
				}
				items = append(items, item)
			}
			add(p.Tag, items...)
		case metadata.KeyReprints:
			var items []string
			for _, r := range md.Reprints() {
				items = append(items, reprintText(r))
			}
			add(p.Tag, items...)
		case metadata.KeyPrices:
			prices := md.Prices()
			countries := make([]string, 0, len(prices))
			for country := range prices {
				countries = append(countries, country)
			}
			slices.Sort(countries)
			var items []string
			for _, country := range countries {
				item := prices[country].String()
				if country != "" {
					item = country + ":" + item
				}
				items = append(items, item)
			}
			add(p.Tag, items...)
		case metadata.KeyRemainders:
			remainders, _ := value.([]string)
			add(p.Tag, slices.Clone(remainders)...)
		default:
			switch v := a.c.EncodePath(p.Path, value).(type) {
			case nil:
			case []string:
				add(p.Tag, v...)
			default:
				add(p.Tag, fields.Text(v))
			}
		}
	}
	slices.Sort(pairs)
	return []byte(strings.Join(pairs, string(cliPairSep))), nil
}

// splitArc splits "name:number" at the last colon when a number follows it.
// Arc names may contain colons themselves.
func splitArc(item string) (string, string) {
	i := strings.LastIndex(item, ":")
	if i < 0 {
		return strings.TrimSpace(item), ""
	}
	number := strings.TrimSpace(item[i+1:])
	if number == "" || strings.Trim(number, "0123456789") != "" {
		return strings.TrimSpace(item), ""
	}
	return strings.TrimSpace(item[:i]), number
}

// splitEscaped splits s on sep, honoring backslash escapes, and trims each
// part. Only escaped separators are unescaped; other escapes stay for the
// next level. Empty parts are dropped.
func splitEscaped(s string, sep rune) []string {
	var parts []string
	var b strings.Builder
	escaped := false
	flush := func() {
		if part := strings.TrimSpace(b.String()); part != "" {
			parts = append(parts, part)
		}
		b.Reset()
	}
	for _, r := range s {
		switch {
		case escaped:
			if r != sep {
				b.WriteRune(cliEscape)
			}
			b.WriteRune(r)
			escaped = false
		case r == cliEscape:
			escaped = true
		case r == sep:
			flush()
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune(cliEscape)
	}
	flush()
	return parts
}

var (
	cliEscaper   = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`)
	cliUnescaper = strings.NewReplacer(`\\`, `\`, `\;`, ";", `\,`, ",")
)

func escapeCLI(value string) string {
	return cliEscaper.Replace(value)
}

func unescapeCLI(value string) string {
	return cliUnescaper.Replace(value)
}
