package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// bibliographic maps ISO 639-2/B codes to their terminology forms.
var bibliographic = map[string]string{
	"alb": "sq", "arm": "hy", "baq": "eu", "bur": "my", "chi": "zh",
	"cze": "cs", "dut": "nl", "fre": "fr", "geo": "ka", "ger": "de",
	"gre": "el", "ice": "is", "mac": "mk", "mao": "mi", "may": "ms",
	"per": "fa", "rum": "ro", "slo": "sk", "tib": "bo", "wel": "cy",
}

// Index maps built at init time from the x/text registries.
var (
	languageByName map[string]string
	countryByName  map[string]string
)

func init() {
	languageByName = make(map[string]string, 200)
	countryByName = make(map[string]string, 260)
	langNamer := display.English.Languages()
	regionNamer := display.English.Regions()
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			code := string([]rune{a, b})
			if base, err := language.ParseBase(code); err == nil && base.String() == code {
				if name := langNamer.Name(base); name != "" {
					languageByName[strings.ToLower(name)] = code
				}
			}
			upper := strings.ToUpper(code)
			region, err := language.ParseRegion(upper)
			if err != nil || !isoCountry(region) || region.String() != upper {
				continue
			}
			if name := strings.ToLower(regionNamer.Name(region)); name != "" {
				if _, taken := countryByName[name]; !taken {
					countryByName[name] = upper
				}
			}
		}
	}
}

// ToISO2 normalizes a language code or English language name to its ISO
// 639-1 code. It returns "" when the value is not a known language.
func ToISO2(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	if code, ok := languageByName[value]; ok {
		return code
	}
	if code, ok := bibliographic[value]; ok {
		return code
	}
	// Accept region-qualified tags such as "en-US" or "pt_BR".
	value = strings.ReplaceAll(value, "_", "-")
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	code := base.String()
	if len(code) != 2 {
		if iso3 := base.ISO3(); len(iso3) == 2 {
			code = iso3
		}
	}
	if len(code) != 2 {
		return ""
	}
	return code
}

// ToISO3 converts a language code or name to its ISO 639-2/T code.
func ToISO3(value string) string {
	code := ToISO2(value)
	if code == "" {
		return ""
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return ""
	}
	return base.ISO3()
}

// DisplayName returns the English name of a language code, or "" if unknown.
func DisplayName(value string) string {
	code := ToISO2(value)
	if code == "" {
		return ""
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(base)
}

// CountryCode normalizes an ISO 3166 alpha-2 or alpha-3 code, or an English
// country name, to the uppercase alpha-2 code. It returns "" when unknown.
func CountryCode(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if code, ok := countryByName[strings.ToLower(value)]; ok {
		return code
	}
	if len(value) != 2 && len(value) != 3 {
		return ""
	}
	if code, ok := reservedRegions[strings.ToUpper(value)]; ok {
		return code
	}
	region, err := language.ParseRegion(strings.ToUpper(value))
	if err != nil {
		return ""
	}
	region = region.Canonicalize()
	if !isoCountry(region) {
		return ""
	}
	return region.String()
}

// reservedRegions are ISO 3166-1 exceptionally reserved or transitional
// codes, mapped to the assigned country they stand for, if any. They share
// display names with those countries.
var reservedRegions = map[string]string{
	"AC": "", "CP": "", "DG": "", "EA": "", "EU": "", "EZ": "",
	"FX": "FR", "IC": "", "SU": "", "TA": "", "UK": "GB", "UN": "",
}

// isoCountry reports whether region is an assigned ISO 3166-1 country.
func isoCountry(region language.Region) bool {
	_, reserved := reservedRegions[region.String()]
	return region.IsCountry() && region.Canonicalize() == region && !reserved
}

// CountryName returns the English name of a country code, or "" if unknown.
func CountryName(value string) string {
	code := CountryCode(value)
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}
	return display.English.Regions().Name(region)
}
