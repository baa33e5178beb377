package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Saga: Deluxe Edition": "Saga - Deluxe Edition",
		"AC/DC":                "AC-DC",
		" What? ":              "What",
		"Say \"Hi\"":           "Say 'Hi'",
		"Tab\there\x00":        "Tab here",
		"..Hidden Title.":      "Hidden Title",
		"Batman 12:30":         "Batman 12-30",
		"<>":                   "",
		"":                     "",
	}
	for input, want := range tests {
		if got := SanitizeFileName(input); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}
