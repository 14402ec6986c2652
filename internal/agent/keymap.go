package agent

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-rod/rod/lib/input"
)

// namedKeys maps the key identifiers used by press_key steps to rod input
// keys. Identifiers follow the DOM KeyboardEvent.key naming.
var namedKeys = map[string]input.Key{
	"Enter":      input.Enter,
	"Escape":     input.Escape,
	"Tab":        input.Tab,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"Space":      input.Space,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
}

// mapKey resolves a step key identifier to a rod input key. Single printable
// characters map directly; anything else must be a known named key.
func mapKey(key string) (input.Key, error) {
	if k, ok := namedKeys[key]; ok {
		return k, nil
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return input.Key(r), nil
	}
	return 0, fmt.Errorf("unknown key identifier %q", key)
}
