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

// Package shared holds the process-wide state visible to both the
// dashboard and the overlay: configuration, loaded profiles, and runtime
// flags, guarded by a single reader/writer lock. Mutators always hold the
// write side for the entire transition they perform.
package shared

import (
	"sync"

	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/profile"
)

// CaptureCommand is a pending command to start/stop capture, issued by the
// dashboard and consumed by the pipeline coordinator.
type CaptureCommand int

const (
	CaptureStart CaptureCommand = iota
	CaptureStop
)

// OverlayCommand is a pending command to start/stop/toggle the overlay.
type OverlayCommand int

const (
	OverlayStart OverlayCommand = iota
	OverlayStop
	OverlayToggleVisibility
)

// RuntimeState is process state that is never persisted to disk.
type RuntimeState struct {
	IsCapturing         bool
	IsOverlayRunning    bool
	OverlayVisible      bool
	CurrentCaptureTarget string
	LastError           string
	CaptureFPS           float32
	TipsDisplayed        int
	CaptureCommand       *CaptureCommand
	OverlayCommand       *OverlayCommand
	SendTestTip          bool
}

// ClearError clears the last recorded error.
func (r *RuntimeState) ClearError() {
	r.LastError = ""
}

// SetError records an error message.
func (r *RuntimeState) SetError(msg string) {
	r.LastError = msg
}

// State is the full shared application state, safe for concurrent use.
type State struct {
	mu sync.RWMutex

	config          config.AppConfig
	profiles        []profile.GameProfile
	activeProfileID string
	runtime         RuntimeState
}

// New creates a State from a loaded configuration, with no profiles and a
// zero-value runtime state.
func New(cfg config.AppConfig) *State {
	return &State{config: cfg}
}

// Config returns a copy of the current configuration.
func (s *State) Config() config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration wholesale.
func (s *State) SetConfig(cfg config.AppConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// Runtime returns a copy of the current runtime state.
func (s *State) Runtime() RuntimeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runtime
}

// UpdateRuntime applies fn to the runtime state under the write lock.
func (s *State) UpdateRuntime(fn func(*RuntimeState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.runtime)
}

// Profiles returns a copy of the loaded profile list.
func (s *State) Profiles() []profile.GameProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]profile.GameProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// ActiveProfile returns the currently active profile, if any is set and it
// still exists in the profile list.
func (s *State) ActiveProfile() (profile.GameProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeProfileID == "" {
		return profile.GameProfile{}, false
	}
	for _, p := range s.profiles {
		if p.ID == s.activeProfileID {
			return p, true
		}
	}
	return profile.GameProfile{}, false
}

// SetActiveProfile sets the active profile id. An id not present in the
// profile list is accepted as-is (matching the reference implementation,
// which stores it as a plain Option<String>); ActiveProfile simply won't
// resolve it until a matching profile is added.
func (s *State) SetActiveProfile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeProfileID = id
}

// AddProfile inserts a profile, replacing any existing one with the same id.
func (s *State) AddProfile(p profile.GameProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.profiles[:0:0]
	for _, existing := range s.profiles {
		if existing.ID != p.ID {
			filtered = append(filtered, existing)
		}
	}
	s.profiles = append(filtered, p)
}

// RemoveProfile removes the profile with the given id, clearing the active
// profile id if it was the one removed. Returns the removed profile and
// true if one was found.
func (s *State) RemoveProfile(id string) (profile.GameProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.profiles {
		if p.ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			if s.activeProfileID == id {
				s.activeProfileID = ""
			}
			return p, true
		}
	}
	return profile.GameProfile{}, false
}
