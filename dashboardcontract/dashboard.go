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

// Package dashboardcontract declares the command vocabulary the dashboard
// UI issues against shared.State: one-directional flow where the dashboard
// writes commands and configuration, and the pipeline coordinator reads and
// clears them. Building the dashboard UI itself is outside this
// repository's scope (it composes the same SDL2/Dear ImGui stack as the
// overlay); this package is the seam a real dashboard would drive.
package dashboardcontract

import (
	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/profile"
	"github.com/jetsetilly/vizcaddy/screen"
	"github.com/jetsetilly/vizcaddy/shared"
	"github.com/jetsetilly/vizcaddy/zoneocr"
)

// Dashboard is the command surface a UI layer drives. It holds the
// shared.State it was created with, and every mutator goes through that
// State's own locking methods (shared.State already guards every field);
// Dashboard holds no other state.
type Dashboard struct {
	state *shared.State
}

// New creates a Dashboard bound to a shared.State instance.
func New(state *shared.State) *Dashboard {
	return &Dashboard{state: state}
}

// StartCapture requests the pipeline coordinator begin capturing.
func (d *Dashboard) StartCapture() {
	cmd := shared.CaptureStart
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.CaptureCommand = &cmd })
}

// StopCapture requests the pipeline coordinator stop capturing.
func (d *Dashboard) StopCapture() {
	cmd := shared.CaptureStop
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.CaptureCommand = &cmd })
}

// StartOverlay requests the overlay be started.
func (d *Dashboard) StartOverlay() {
	cmd := shared.OverlayStart
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.OverlayCommand = &cmd })
}

// StopOverlay requests the overlay be stopped.
func (d *Dashboard) StopOverlay() {
	cmd := shared.OverlayStop
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.OverlayCommand = &cmd })
}

// ToggleOverlayVisibility requests the overlay's visibility be toggled.
func (d *Dashboard) ToggleOverlayVisibility() {
	cmd := shared.OverlayToggleVisibility
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.OverlayCommand = &cmd })
}

// SendTestTip requests a synthetic tip be shown, for exercising overlay
// configuration without a live game.
func (d *Dashboard) SendTestTip() {
	d.state.UpdateRuntime(func(r *shared.RuntimeState) { r.SendTestTip = true })
}

// SetCaptureConfig updates the capture-related section of the app config.
func (d *Dashboard) SetCaptureConfig(cfg config.CaptureConfig) {
	c := d.state.Config()
	c.Capture = cfg
	d.state.SetConfig(c)
}

// SetOverlayConfig updates the overlay-related section of the app config.
func (d *Dashboard) SetOverlayConfig(cfg config.OverlayConfig) {
	c := d.state.Config()
	c.Overlay = cfg
	d.state.SetConfig(c)
}

// ReorderScreens re-spaces a profile's screen priorities to match the order
// given (first = highest), base 100, step 10, saturating at 0.
func ReorderScreens(screens []screen.ScreenDefinition, order []string) []screen.ScreenDefinition {
	byID := make(map[string]int, len(screens))
	for i, s := range screens {
		byID[s.ID] = i
	}

	priority := 100
	for _, id := range order {
		idx, ok := byID[id]
		if !ok {
			continue
		}
		if priority < 0 {
			priority = 0
		}
		screens[idx].Priority = priority
		priority -= 10
	}
	return screens
}

// AddOrReplaceZone inserts or replaces a zone by id within a profile.
func AddOrReplaceZone(p *profile.GameProfile, z zoneocr.Zone) {
	for i, existing := range p.Zones {
		if existing.ID == z.ID {
			p.Zones[i] = z
			return
		}
	}
	p.Zones = append(p.Zones, z)
}

// RemoveZone removes a zone by id within a profile.
func RemoveZone(p *profile.GameProfile, id string) {
	for i, z := range p.Zones {
		if z.ID == id {
			p.Zones = append(p.Zones[:i], p.Zones[i+1:]...)
			return
		}
	}
}

// AddOrReplaceScreen inserts or replaces a screen definition by id.
func AddOrReplaceScreen(p *profile.GameProfile, s screen.ScreenDefinition) {
	for i, existing := range p.Screens {
		if existing.ID == s.ID {
			p.Screens[i] = s
			return
		}
	}
	p.Screens = append(p.Screens, s)
}

// RemoveScreen removes a screen definition by id.
func RemoveScreen(p *profile.GameProfile, id string) {
	for i, s := range p.Screens {
		if s.ID == id {
			p.Screens = append(p.Screens[:i], p.Screens[i+1:]...)
			return
		}
	}
}
