package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		// 3-letter codes convert
		{"eng", "en"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"ger", "de"},
		{"jpn", "ja"},
		// Names and tags
		{"English", "en"},
		{"japanese", "ja"},
		{"pt-BR", "pt"},
		{"en_US", "en"},
		// Unknown
		{"", ""},
		{"klingonese", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.input); got != tt.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestToISO3(t *testing.T) {
	tests := map[string]string{"en": "eng", "French": "fra", "de": "deu"}
	for input, want := range tests {
		if got := ToISO3(input); got != want {
			t.Errorf("ToISO3(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{"en": "English", "jpn": "Japanese", "fr": "French", "zz": ""}
	for input, want := range tests {
		if got := DisplayName(input); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCountryCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"US", "US"},
		{"us", "US"},
		{"USA", "US"},
		{"Japan", "JP"},
		{"france", "FR"},
		{"United Kingdom", "GB"},
		{"UK", "GB"},
		{"FX", "FR"},
		{"EU", ""},
		{"Atlantis", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CountryCode(tt.input); got != tt.expected {
			t.Errorf("CountryCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCountryNameRoundTrip(t *testing.T) {
	for _, code := range []string{"US", "JP", "FR", "GB"} {
		name := CountryName(code)
		if name == "" {
			t.Fatalf("CountryName(%q) empty", code)
		}
		if got := CountryCode(name); got != code {
			t.Errorf("CountryCode(CountryName(%q)=%q) = %q", code, name, got)
		}
	}
}
