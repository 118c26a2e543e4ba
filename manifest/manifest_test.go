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

package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestAddAndGet(t *testing.T) {
	s := NewStore()
	if err := s.Add(Entry{ID: "ppocr-en", Name: "PP-OCR English"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := s.Get("ppocr-en")
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if e.Name != "PP-OCR English" {
		t.Fatalf("unexpected name: %s", e.Name)
	}
}

func TestDeleteMissingReturnsError(t *testing.T) {
	s := NewStore()
	if err := s.Delete("missing"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestListEmptyReportsEmpty(t *testing.T) {
	s := NewStore()
	var buf bytes.Buffer
	if err := s.List(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "manifest is empty\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	s := NewStore()
	_ = s.Add(Entry{ID: "a", Name: "Alpha", Version: "1.0"})
	_ = s.Add(Entry{ID: "b", Name: "Beta", Version: "2.0"})

	if err := s.Save(path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.NumEntries() != 2 {
		t.Fatalf("expected 2 entries, got %d", loaded.NumEntries())
	}
	e, ok := loaded.Get("a")
	if !ok || e.Version != "1.0" {
		t.Fatalf("unexpected loaded entry: %+v", e)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(os.TempDir(), "does-not-exist-manifest.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
