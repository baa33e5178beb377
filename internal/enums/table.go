package enums

import "strings"

// Table maps aliases onto one target vocabulary.
type Table struct {
	name     string
	values   []string
	aliases  map[string][]string
	fallback []string
}

func newTable(name string, values []string, fallback ...string) *Table {
	t := &Table{
		name:     name,
		values:   values,
		aliases:  make(map[string][]string, len(values)*4),
		fallback: fallback,
	}
	for _, v := range values {
		t.aliases[foldKey(v)] = []string{v}
	}
	return t
}

// alias maps each source onto targets. Later calls replace earlier ones for
// the same folded key, except that native values are never overridden.
func (t *Table) alias(targets []string, sources ...string) {
	for _, src := range sources {
		key := foldKey(src)
		if t.isNative(key) {
			continue
		}
		t.aliases[key] = targets
	}
}

// aliasAdd appends targets for sources, building one-to-many mappings.
func (t *Table) aliasAdd(target string, sources ...string) {
	for _, src := range sources {
		key := foldKey(src)
		if t.isNative(key) && foldKey(target) != key {
			continue
		}
		existing := t.aliases[key]
		found := false
		for _, e := range existing {
			if e == target {
				found = true
				break
			}
		}
		if !found {
			t.aliases[key] = append(existing, target)
		}
	}
}

func (t *Table) isNative(key string) bool {
	for _, v := range t.values {
		if foldKey(v) == key {
			return true
		}
	}
	return false
}

// Name identifies the table in logs.
func (t *Table) Name() string { return t.name }

// Values returns the native vocabulary.
func (t *Table) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// Native returns the canonical spelling of value if it is in the native
// vocabulary.
func (t *Table) Native(value string) (string, bool) {
	key := foldKey(value)
	for _, v := range t.values {
		if foldKey(v) == key {
			return v, true
		}
	}
	return "", false
}

// Lookup returns every target value for value, or nil when unmapped.
func (t *Table) Lookup(value string) []string {
	targets := t.aliases[foldKey(value)]
	if len(targets) == 0 {
		return nil
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// Map returns the targets for value, falling back to the table default.
// An empty result means the table drops unmapped values.
func (t *Table) Map(value string) []string {
	if targets := t.Lookup(value); targets != nil {
		return targets
	}
	if len(t.fallback) == 0 {
		return nil
	}
	out := make([]string, len(t.fallback))
	copy(out, t.fallback)
	return out
}

// MapOne returns the first mapped target for value, or "".
func (t *Table) MapOne(value string) string {
	if targets := t.Map(value); len(targets) > 0 {
		return targets[0]
	}
	return ""
}

var foldReplacer = strings.NewReplacer(" ", "", "-", "", "_", "", "'", "")

func foldKey(value string) string {
	return foldReplacer.Replace(strings.ToLower(strings.TrimSpace(value)))
}
