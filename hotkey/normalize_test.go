package hotkey

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain_lower", "ctrl", "ctrl"},
		{"uppercase", "CTRL", "ctrl"},
		{"left_side", "left ctrl", "ctrl"},
		{"right_side", "right shift", "shift"},
		{"underscore_side", "left_windows", "windows"},
		{"compact_left", "lctrl", "ctrl"},
		{"compact_right", "rshift", "shift"},
		{"alias_win", "win", "windows"},
		{"alias_menu", "menu", "alt"},
		{"alias_control", "control", "ctrl"},
		{"alias_cmd", "cmd", "windows"},
		{"alias_super", "super", "windows"},
		{"side_then_alias", "left win", "windows"},
		{"passthrough", "f13", "f13"},
		{"letter", "q", "q"},
		{"whitespace", "  alt  ", "alt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
