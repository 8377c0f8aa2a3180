package langdetect

import "testing"

func TestDetectInconclusive(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		code, name := Detect(text)
		if code != "auto" || name != "" {
			t.Errorf("Detect(%q) = (%q, %q), want (auto, empty)", text, code, name)
		}
	}
}

func TestDetect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping model load in short mode")
	}

	tests := []struct {
		text string
		code string
	}{
		{"the quick brown fox jumps over the lazy dog", "en"},
		{"el rápido zorro marrón salta sobre el perro perezoso", "es"},
	}
	for _, tt := range tests {
		code, name := Detect(tt.text)
		if code != tt.code {
			t.Errorf("Detect(%q) = %q, want %q", tt.text, code, tt.code)
		}
		if name == "" {
			t.Errorf("Detect(%q) returned empty name", tt.text)
		}
	}
}
