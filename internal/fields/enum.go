package fields

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"comicbox/internal/enums"
)

// EnumRule folds values through an alias table. Decode keeps values the
// table does not know, title cased; Encode maps them to the table's
// fallback or drops them.
type EnumRule struct {
	Table *enums.Table
}

func (r EnumRule) Name() string { return r.Table.Name() }

func (r EnumRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	if native, ok := r.Table.Native(s); ok {
		return native, nil
	}
	if mapped := r.Table.Lookup(s); len(mapped) > 0 {
		return mapped[0], nil
	}
	return cases.Title(language.English).String(s), nil
}

func (r EnumRule) Encode(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%T is not a string", value)
	}
	if s == "" {
		return nil, nil
	}
	if out := r.Table.MapOne(s); out != "" {
		return out, nil
	}
	return nil, fmt.Errorf("%q has no %s equivalent", s, r.Table.Name())
}
