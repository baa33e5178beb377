package fields

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"comicbox/internal/enums"
	"comicbox/internal/metadata"
)

func TestParseIssue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#004AU", "4AU"},
		{"1½", "1.5"},
		{"3.", "3"},
		{" 12 ", "12"},
		{"1/2", ".5"},
		{"000", "0"},
		{"#", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseIssue(tt.input); got != tt.want {
			t.Errorf("ParseIssue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"5 1/2", "5.5", true},
		{"MARVEL 5.0AU", "5.0", true},
		{"½", ".5", true},
		{"$3.99", "3.99", true},
		{"none", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDecimal(tt.input)
		if ok != tt.ok {
			t.Fatalf("ParseDecimal(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
		if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseDecimal(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestVolumeRuleStripsPrefixes(t *testing.T) {
	for _, input := range []string{"Volume 3", "vol.3", "Vol 3", "v3", "V 3", "3"} {
		got, err := VolumeRule{}.Decode(input)
		if err != nil || got != 3 {
			t.Errorf("VolumeRule.Decode(%q) = %v, %v; want 3", input, got, err)
		}
	}
}

func TestBoundedIntClampsWithWarning(t *testing.T) {
	got, err := Bounded("month", 1, 12).Decode("13")
	if got != 12 {
		t.Fatalf("clamped value = %v, want 12", got)
	}
	if _, ok := err.(*Warning); !ok {
		t.Fatalf("expected *Warning, got %v", err)
	}
	got, err = Bounded("month", 1, 12).Decode("June 6")
	if got != 6 || err != nil {
		t.Fatalf("Decode(June 6) = %v, %v", got, err)
	}
}

func TestInRangeRejects(t *testing.T) {
	for _, input := range []string{"13", "0"} {
		got, err := InRange("month", 1, 12).Decode(input)
		if got != nil || err == nil {
			t.Errorf("InRange.Decode(%q) = %v, %v; want nil and an error", input, got, err)
		}
	}
	if got, err := InRange("day", 1, 31).Decode("31"); got != 31 || err != nil {
		t.Fatalf("InRange.Decode(31) = %v, %v", got, err)
	}
}

func TestBoolRule(t *testing.T) {
	tests := []struct {
		raw  any
		want any
	}{
		{"Yes", true},
		{"TRUE", true},
		{"1", true},
		{"no", false},
		{"banana", false},
		{2, true},
		{0.0, false},
		{true, true},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := BoolRule{}.Decode(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("BoolRule.Decode(%v) = %v, %v; want %v", tt.raw, got, err, tt.want)
		}
	}
}

func TestDateRules(t *testing.T) {
	got, err := DateRule{}.Decode("2021-03-04")
	if err != nil || got != (metadata.Date{Year: 2021, Month: time.March, Day: 4}) {
		t.Fatalf("DateRule.Decode = %v, %v", got, err)
	}
	got, err = DateRule{}.Decode("March 4, 2021")
	if err != nil || got != (metadata.Date{Year: 2021, Month: time.March, Day: 4}) {
		t.Fatalf("DateRule.Decode(natural) = %v, %v", got, err)
	}

	dt, err := DateTimeRule{}.Decode("D:20230115123045+01'00'")
	if err != nil {
		t.Fatalf("DateTimeRule.Decode(pdf) error: %v", err)
	}
	want := time.Date(2023, 1, 15, 11, 30, 45, 0, time.UTC)
	if !dt.(time.Time).Equal(want) {
		t.Fatalf("pdf datetime = %v, want %v", dt, want)
	}

	out, err := DateTimeRule{}.Encode(time.Date(2023, 1, 15, 11, 30, 45, 999, time.UTC))
	if err != nil || out != "2023-01-15T11:30:45Z" {
		t.Fatalf("DateTimeRule.Encode = %v, %v", out, err)
	}
}

func TestCodeRules(t *testing.T) {
	code, err := LanguageRule{}.Decode("English")
	if err != nil || code != "en" {
		t.Fatalf("LanguageRule.Decode = %v, %v", code, err)
	}
	name, err := LanguageRule{}.Encode("en")
	if err != nil || name != "English" {
		t.Fatalf("LanguageRule.Encode = %v, %v", name, err)
	}
	country, err := CountryRule{}.Decode("us")
	if err != nil || country != "US" {
		t.Fatalf("CountryRule.Decode = %v, %v", country, err)
	}
	if _, err := (CountryRule{}).Decode("Atlantis"); err == nil {
		t.Fatal("expected error for unknown country")
	}
}

func TestStringRuleRepairsEncoding(t *testing.T) {
	got, err := StringRule{}.Decode("  ok\xff ")
	if err != nil || got != "ok�" {
		t.Fatalf("StringRule.Decode = %q, %v", got, err)
	}
	got, err = StringRule{}.Decode("   ")
	if err != nil || got != nil {
		t.Fatalf("blank string = %v, %v; want nil", got, err)
	}
}

func TestStringSetRule(t *testing.T) {
	got, err := StringSetRule{}.Decode("Batman; Robin, Batman")
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	set := got.(metadata.StringSet)
	if strings.Join(set.Sorted(), "|") != "Batman|Robin" {
		t.Fatalf("set = %v", set.Sorted())
	}
	enc, _ := StringSetRule{}.Encode(set)
	if strings.Join(enc.([]string), ",") != "Batman,Robin" {
		t.Fatalf("encode = %v", enc)
	}
}

func TestCoercerAbsorbsFailures(t *testing.T) {
	var buf bytes.Buffer
	c := NewCoercer(slog.New(slog.NewJSONHandler(&buf, nil)))

	if got := c.DecodePath(metadata.KeyCountry, "Atlantis"); got != nil {
		t.Fatalf("expected nil for bad country, got %v", got)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if entry["key"] != metadata.KeyCountry || entry["value"] != "Atlantis" || entry["rule"] != "country" {
		t.Fatalf("warning missing key/value/rule: %v", entry)
	}

	buf.Reset()
	if got := c.DecodePath(metadata.KeyMonth, "14"); got != nil {
		t.Fatalf("out of range month = %v, want nil", got)
	}
	if !strings.Contains(buf.String(), "field coercion failed") {
		t.Fatalf("expected coercion warning, got %q", buf.String())
	}

	buf.Reset()
	if got := c.DecodePath(metadata.KeyPageCount, -3); got != 0 {
		t.Fatalf("clamped page count = %v, want 0", got)
	}
	if !strings.Contains(buf.String(), "field value adjusted") {
		t.Fatalf("expected clamp warning, got %q", buf.String())
	}
}

func TestDecodeUnionPrefersStruct(t *testing.T) {
	decodeStruct := func(m map[string]any) (string, error) {
		name, _ := m["name"].(string)
		return name, nil
	}
	decodeScalar := func(raw any) (string, error) {
		return RawString(raw)
	}
	u, err := DecodeUnion(map[string]any{"name": "Saga"}, decodeStruct, decodeScalar)
	if err != nil || !u.IsStruct || u.Struct != "Saga" {
		t.Fatalf("struct form = %+v, %v", u, err)
	}
	u, err = DecodeUnion("Saga", decodeStruct, decodeScalar)
	if err != nil || u.IsStruct || u.Scalar != "Saga" {
		t.Fatalf("scalar form = %+v, %v", u, err)
	}
}

func TestParseVolumeRange(t *testing.T) {
	from, to, ok := ParseVolumeRange("Vol. 2010 - 2012")
	if !ok || from != 2010 || to != 2012 {
		t.Fatalf("ParseVolumeRange = %d, %d, %v", from, to, ok)
	}
	if _, _, ok := ParseVolumeRange("3"); ok {
		t.Fatal("single volume parsed as a range")
	}
}

func TestEnumRule(t *testing.T) {
	rule := EnumRule{Table: enums.ComicInfoAgeRatings}
	got, err := rule.Decode("mature 17+")
	if err != nil || got != "Mature 17+" {
		t.Fatalf("Decode native = %v, %v", got, err)
	}
	got, err = rule.Decode("all ages")
	if err != nil || got != "Everyone" {
		t.Fatalf("Decode alias = %v, %v", got, err)
	}
	got, err = rule.Decode("kinda spicy")
	if err != nil || got != "Kinda Spicy" {
		t.Fatalf("Decode unknown = %v, %v", got, err)
	}
	out, err := rule.Encode("Kinda Spicy")
	if err != nil || out != "Unknown" {
		t.Fatalf("Encode fallback = %v, %v", out, err)
	}

	roles := EnumRule{Table: enums.ComicInfoRoles}
	if _, err := roles.Encode("Caterer"); err == nil {
		t.Fatal("Encode without fallback should fail")
	}
}
