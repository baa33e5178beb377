package textutil

import (
	"reflect"
	"testing"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Saga  ", "Saga"},
		{"bad\xffbyte", "bad�byte"},
		{"Café", "Café"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanString(tt.input); got != tt.want {
			t.Errorf("CleanString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeSpaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a b", "a b"},
		{"a  \t b", "a b"},
		{"a　b", "a b"},
		{"1½", "1½"},
	}
	for _, tt := range tests {
		if got := NormalizeSpaces(tt.input); got != tt.want {
			t.Errorf("NormalizeSpaces(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Batman, Robin ;; Alfred ,")
	want := []string{"Batman", "Robin", "Alfred"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
}
