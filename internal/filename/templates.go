package filename

import (
	"regexp"
	"strings"
)

// Placeholder grammars. Placeholders without an entry match lazily.
var placeholderExprs = map[string]string{
	"issue":       `#?(?:\d|½)+\.?\d*\w*`,
	"volume":      `v(?:ol)?\.? ?\d+`,
	"year":        `\(\d{4}\)`,
	"issue_count": `\(?of \d+\)?`,
	"ext":         `[^.\s]*`,
}

// templateSources are tried in order and the first full match ends the
// search. A lazy series swallows a volume token, so templates with a volume
// precede their volume-less forms.
var templateSources = []string{
	"{series} {volume} {issue} {title} {year} {remainder}.{ext}",
	"{series} {volume} {title} {year} {remainder}.{ext}",
	"{series} {volume} {issue} {issue_count} {year}.{ext}",
	"{series} {volume} {issue} {year}.{ext}",
	"{series} {issue} {year} {remainder}.{ext}",
	"{series} {issue} {issue_count} {year} {remainder}.{ext}",
	"{series} {volume} {year} {issue} {title} {remainder}.{ext}",
	"{series} {volume}{garbage}{year} {remainder}.{ext}",
	"{series} {volume} {year} {remainder}.{ext}",
	"{series} {volume} {year} {issue} {remainder}.{ext}",
	"{series} {issue} {issue_count} {year}.{ext}",
	"{series} {issue} {issue_count} {remainder}.{ext}",
	"{series} {issue} {year}.{ext}",
	"{series} {year} {issue} {remainder}.{ext}",
	"{series} {year} {remainder}.{ext}",
	"{series} {volume} {issue}.{ext}",
	"{series} {volume} {issue} {remainder}.{ext}",
	"{series} {issue} {remainder}.{ext}",
	"{series} {issue}.{ext}",
	"{series}.{ext}",
	"{issue} {series}.{ext}",
	"{issue} {series} {remainder}.{ext}",
}

type template struct {
	source       string
	re           *regexp.Regexp
	placeholders int
}

var templates = compileTemplates(templateSources)

var placeholderRE = regexp.MustCompile(`\{(\w+)\}`)

func compileTemplates(sources []string) []template {
	out := make([]template, 0, len(sources))
	for _, src := range sources {
		out = append(out, compileTemplate(src))
	}
	return out
}

func compileTemplate(src string) template {
	var b strings.Builder
	b.WriteString(`(?i)^`)
	last := 0
	count := 0
	for _, loc := range placeholderRE.FindAllStringSubmatchIndex(src, -1) {
		b.WriteString(regexp.QuoteMeta(src[last:loc[0]]))
		name := src[loc[2]:loc[3]]
		expr, ok := placeholderExprs[name]
		if !ok {
			expr = `.+?`
		}
		b.WriteString(`(?P<` + name + `>` + expr + `)`)
		last = loc[1]
		count++
	}
	b.WriteString(regexp.QuoteMeta(src[last:]))
	b.WriteString(`$`)
	return template{source: src, re: regexp.MustCompile(b.String()), placeholders: count}
}

// match returns the bound placeholders of t against name.
func (t template) match(name string) map[string]string {
	m := t.re.FindStringSubmatchIndex(name)
	if m == nil {
		return nil
	}
	out := make(map[string]string, t.placeholders)
	for i, group := range t.re.SubexpNames() {
		if group == "" || m[2*i] < 0 {
			continue
		}
		out[group] = name[m[2*i]:m[2*i+1]]
	}
	return out
}
