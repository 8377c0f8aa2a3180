package stt

import "testing"

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != len(supportedCodes)+1 {
		t.Fatalf("got %d languages, want %d", len(langs), len(supportedCodes)+1)
	}
	if langs[0].Code != AutoLanguage {
		t.Fatalf("first entry = %q, want auto-detect sentinel", langs[0].Code)
	}
	byCode := make(map[string]string)
	for _, l := range langs[1:] {
		if l.Name == "" {
			t.Errorf("language %q has no display name", l.Code)
		}
		byCode[l.Code] = l.Name
	}
	if byCode["de"] != "German" {
		t.Errorf("de = %q, want German", byCode["de"])
	}
}

func TestValidLanguage(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"", true},
		{"auto", true},
		{"en", true},
		{"pt", true},
		{"zz-not-a-tag!", false},
	}
	for _, tt := range tests {
		if got := ValidLanguage(tt.code); got != tt.want {
			t.Errorf("ValidLanguage(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
