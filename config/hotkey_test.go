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

import "testing"

func TestParseHotkeySingleKey(t *testing.T) {
	hk, err := ParseHotkey("F1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hk.Key != "F1" || len(hk.Modifiers) != 0 {
		t.Fatalf("unexpected hotkey: %+v", hk)
	}
}

func TestParseHotkeyWithModifiers(t *testing.T) {
	hk, err := ParseHotkey("ctrl+shift+f1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hk.Key != "F1" {
		t.Fatalf("unexpected key: %s", hk.Key)
	}
	if len(hk.Modifiers) != 2 || hk.Modifiers[0] != "Ctrl" || hk.Modifiers[1] != "Shift" {
		t.Fatalf("unexpected modifiers: %+v", hk.Modifiers)
	}
}

func TestParseHotkeySuperAliasesWin(t *testing.T) {
	hk, err := ParseHotkey("Super+Space")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hk.Modifiers[0] != "Win" {
		t.Fatalf("expected Super to alias to Win, got %s", hk.Modifiers[0])
	}
}

func TestParseHotkeyRejectsEmpty(t *testing.T) {
	if _, err := ParseHotkey(""); err == nil {
		t.Fatal("expected error for empty expression")
	}
}

func TestParseHotkeyRejectsUnknownKey(t *testing.T) {
	if _, err := ParseHotkey("Ctrl+Banana"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseHotkeyRejectsUnknownModifier(t *testing.T) {
	if _, err := ParseHotkey("Xyz+F1"); err == nil {
		t.Fatal("expected error for unknown modifier")
	}
}

func TestParseHotkeyRejectsTrailingPlus(t *testing.T) {
	if _, err := ParseHotkey("Ctrl+"); err == nil {
		t.Fatal("expected error for trailing +")
	}
}

func TestParseHotkeyNumpad(t *testing.T) {
	hk, err := ParseHotkey("Numpad5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hk.Key != "Numpad5" {
		t.Fatalf("unexpected key: %s", hk.Key)
	}
}
