// Package hotkey turns raw global keyboard events into push-to-talk
// session signals.
package hotkey

import "strings"

// aliases folds platform-specific key names onto one canonical name.
var aliases = map[string]string{
	"win":     "windows",
	"menu":    "alt",
	"control": "ctrl",
	"meta":    "windows",
	"super":   "windows",
	"cmd":     "windows",
	"command": "windows",
}

// Normalize maps a raw platform key name to its canonical lowercase form.
// Side qualifiers (left/right) collapse to the base key. Unrecognized names
// pass through unchanged; empty input yields "" and callers treat the event
// as a no-op.
func Normalize(raw string) string {
	name := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "_", " ")))
	for _, prefix := range []string{"left ", "right "} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = rest
			break
		}
	}
	// Compact forms like "lctrl"/"rshift" show up on some hooks.
	if len(name) > 1 {
		if rest, ok := strings.CutPrefix(name, "l"); ok && isModifier(rest) {
			name = rest
		} else if rest, ok := strings.CutPrefix(name, "r"); ok && isModifier(rest) {
			name = rest
		}
	}
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

func isModifier(name string) bool {
	switch name {
	case "ctrl", "control", "shift", "alt", "win", "windows", "meta", "super", "cmd", "command", "menu":
		return true
	}
	return false
}
