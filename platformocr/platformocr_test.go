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

package platformocr

import "testing"

func TestNewAcceptsSupportedLanguage(t *testing.T) {
	b, err := New("fr-FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Language() != "fr-FR" {
		t.Fatalf("expected fr-FR, got %s", b.Language())
	}
}

func TestNewFallsBackToDefaultForUnsupportedLanguage(t *testing.T) {
	b, err := New("xx-ZZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Language() != defaultLanguage {
		t.Fatalf("expected fallback to %s, got %s", defaultLanguage, b.Language())
	}
}

func TestRecognizeEmptyInputReturnsNoHitsNoError(t *testing.T) {
	b, _ := New(defaultLanguage)
	hits, err := b.Recognize(nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %+v", hits)
	}
}

func TestAvailableLanguagesReturnsSupportedSet(t *testing.T) {
	langs := AvailableLanguages()
	if len(langs) == 0 {
		t.Fatal("expected at least one available language")
	}
}
