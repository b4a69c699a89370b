package rod

import (
	"strings"
	"unicode/utf8"

	"github.com/go-rod/rod/lib/input"
)

var namedKeys = map[string]input.Key{
	"enter":      input.Enter,
	"return":     input.Enter,
	"tab":        input.Tab,
	"escape":     input.Escape,
	"esc":        input.Escape,
	"backspace":  input.Backspace,
	"delete":     input.Delete,
	"arrowup":    input.ArrowUp,
	"arrowdown":  input.ArrowDown,
	"arrowleft":  input.ArrowLeft,
	"arrowright": input.ArrowRight,
	"home":       input.Home,
	"end":        input.End,
	"pageup":     input.PageUp,
	"pagedown":   input.PageDown,
	"space":      input.Space,
}

var modifierKeys = map[string]input.Key{
	"control": input.ControlLeft,
	"ctrl":    input.ControlLeft,
	"shift":   input.ShiftLeft,
	"alt":     input.AltLeft,
	"meta":    input.MetaLeft,
	"cmd":     input.MetaLeft,
}

type keyCombo struct {
	modifiers []input.Key
	key       input.Key
}

// parseKeys understands "Enter", "a" and "+"-joined combinations whose last
// part is the key and the rest are modifiers. Single characters must be
// printable ASCII.
func parseKeys(s string) (keyCombo, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return keyCombo{}, false
	}

	parts := []string{s}
	if len(s) > 1 && strings.Contains(s, "+") && !strings.HasSuffix(s, "++") {
		parts = strings.Split(s, "+")
	}

	var combo keyCombo
	for _, mod := range parts[:len(parts)-1] {
		k, ok := modifierKeys[strings.ToLower(strings.TrimSpace(mod))]
		if !ok {
			return keyCombo{}, false
		}
		combo.modifiers = append(combo.modifiers, k)
	}

	last := strings.TrimSpace(parts[len(parts)-1])
	if k, ok := namedKeys[strings.ToLower(last)]; ok {
		combo.key = k
		return combo, true
	}
	if k, ok := modifierKeys[strings.ToLower(last)]; ok && len(combo.modifiers) == 0 {
		combo.key = k
		return combo, true
	}
	if utf8.RuneCountInString(last) == 1 {
		if r, _ := utf8.DecodeRuneInString(last); r >= ' ' && r <= '~' {
			combo.key = input.Key(r)
			return combo, true
		}
	}
	return keyCombo{}, false
}
