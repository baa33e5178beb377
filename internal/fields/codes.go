package fields

import (
	"fmt"

	"comicbox/internal/language"
)

// LanguageRule stores ISO 639-1 codes and encodes English names.
type LanguageRule struct {
	// EncodeCode keeps the 2-letter code on encode instead of the name.
	EncodeCode bool
}

func (LanguageRule) Name() string { return "language" }

func (LanguageRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	code := language.ToISO2(s)
	if code == "" {
		return nil, fmt.Errorf("unknown language %q", s)
	}
	return code, nil
}

func (r LanguageRule) Encode(value any) (any, error) {
	code, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%T is not a language code", value)
	}
	if r.EncodeCode {
		return code, nil
	}
	if name := language.DisplayName(code); name != "" {
		return name, nil
	}
	return nil, fmt.Errorf("unknown language %q", code)
}

// CountryRule stores ISO 3166 alpha-2 codes and encodes English names.
type CountryRule struct {
	EncodeCode bool
}

func (CountryRule) Name() string { return "country" }

func (CountryRule) Decode(raw any) (any, error) {
	s, err := RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	code := language.CountryCode(s)
	if code == "" {
		return nil, fmt.Errorf("unknown country %q", s)
	}
	return code, nil
}

func (r CountryRule) Encode(value any) (any, error) {
	code, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%T is not a country code", value)
	}
	if r.EncodeCode {
		return code, nil
	}
	if name := language.CountryName(code); name != "" {
		return name, nil
	}
	return nil, fmt.Errorf("unknown country %q", code)
}
