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

// Package manifest tracks the OCR models that have been downloaded to disk:
// their ids, file paths, and versions, persisted as a single JSON document.
package manifest

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// arbitrary maximum number of tracked models, matching the bound the
// teacher's database package applies to its own entry store.
const maxEntries = 1000

// Entry describes one downloaded model.
type Entry struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Version              string `json:"version"`
	DetectionModelPath   string `json:"detection_model_path"`
	RecognitionModelPath string `json:"recognition_model_path"`
	DictPath             string `json:"dict_path"`
	Checksum             string `json:"checksum"`
}

// Store is an in-memory manifest of known model entries, keyed by id, with
// JSON load/save to a single file.
type Store struct {
	entries map[string]Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Load reads a manifest document from path into a new Store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vizerrors.Errorf(vizerrors.ManifestLoadFailure, path, err)
	}
	defer f.Close()

	var list []Entry
	if err := json.NewDecoder(f).Decode(&list); err != nil {
		return nil, vizerrors.Errorf(vizerrors.ManifestLoadFailure, path, err)
	}

	s := NewStore()
	for _, e := range list {
		s.entries[e.ID] = e
	}
	return s, nil
}

// Save writes the manifest as a JSON array, sorted by id for stable diffs.
func (s *Store) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return vizerrors.Errorf(vizerrors.ManifestSaveFailure, path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.sortedList()); err != nil {
		return vizerrors.Errorf(vizerrors.ManifestSaveFailure, path, err)
	}
	return nil
}

func (s *Store) sortedList() []Entry {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]Entry, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.entries[id])
	}
	return list
}

// NumEntries returns the number of tracked models.
func (s *Store) NumEntries() int {
	return len(s.entries)
}

// Add registers or replaces a model entry. Returns an error once the
// store holds maxEntries distinct ids and the entry being added is new.
func (s *Store) Add(e Entry) error {
	if _, exists := s.entries[e.ID]; !exists && len(s.entries) >= maxEntries {
		return vizerrors.Errorf(vizerrors.ManifestCapacityExceeded, maxEntries)
	}
	s.entries[e.ID] = e
	return nil
}

// Delete removes the entry with the given id. Returns an error if no such
// entry exists.
func (s *Store) Delete(id string) error {
	if _, ok := s.entries[id]; !ok {
		return vizerrors.Errorf(vizerrors.ManifestEntryNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// List writes a human-readable listing of all entries, sorted by id.
func (s *Store) List(w io.Writer) error {
	list := s.sortedList()
	if len(list) == 0 {
		_, err := w.Write([]byte("manifest is empty\n"))
		return err
	}
	for _, e := range list {
		if _, err := w.Write([]byte(e.ID + " " + e.Name + " " + e.Version + "\n")); err != nil {
			return err
		}
	}
	return nil
}
