// This file is part of Vizcaddy.
//
// Vizcaddy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vizcaddy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vizcaddy.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"strings"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// Hotkey is a parsed key combination: zero or more modifiers plus exactly
// one key.
type Hotkey struct {
	Modifiers []string
	Key       string
}

var validModifiers = map[string]string{
	"ctrl":  "Ctrl",
	"shift": "Shift",
	"alt":   "Alt",
	"win":   "Win",
	"super": "Win",
	"meta":  "Win",
}

var validKeys = buildValidKeys()

func buildValidKeys() map[string]string {
	keys := make(map[string]string)
	add := func(canonical string) { keys[strings.ToLower(canonical)] = canonical }

	for i := 1; i <= 12; i++ {
		add("F" + itoa(i))
	}
	for c := 'A'; c <= 'Z'; c++ {
		add(string(c))
	}
	for c := '0'; c <= '9'; c++ {
		add(string(c))
	}
	for i := 0; i <= 9; i++ {
		add("Numpad" + itoa(i))
	}
	for _, k := range []string{
		"Space", "Enter", "Tab", "Esc", "Backspace", "Delete", "Insert",
		"Home", "End", "PgUp", "PgDn", "Up", "Down", "Left", "Right",
	} {
		add(k)
	}
	return keys
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// ParseHotkey parses a hotkey expression: `(Mod('+'Mod)* '+')? Key`, case
// insensitive. An empty string is rejected — callers should treat an unset
// hotkey as a nil *Hotkey at a higher layer, not as this function's zero
// value.
func ParseHotkey(expr string) (Hotkey, error) {
	if strings.TrimSpace(expr) == "" {
		return Hotkey{}, vizerrors.Errorf(vizerrors.ConfigInvalidHotkey, expr)
	}

	parts := strings.Split(expr, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Hotkey{}, vizerrors.Errorf(vizerrors.ConfigInvalidHotkey, expr)
		}
	}

	keyPart := parts[len(parts)-1]
	canonicalKey, ok := validKeys[strings.ToLower(keyPart)]
	if !ok {
		return Hotkey{}, vizerrors.Errorf(vizerrors.ConfigInvalidHotkey, expr)
	}

	var modifiers []string
	for _, m := range parts[:len(parts)-1] {
		canonical, ok := validModifiers[strings.ToLower(m)]
		if !ok {
			return Hotkey{}, vizerrors.Errorf(vizerrors.ConfigInvalidHotkey, expr)
		}
		modifiers = append(modifiers, canonical)
	}

	return Hotkey{Modifiers: modifiers, Key: canonicalKey}, nil
}
