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

// Package overlaycontract declares the on-screen tip overlay's interface.
// A real overlay renders with SDL2 and Dear ImGui, matching the teacher's
// own windowing stack; building that renderer is outside this repository's
// scope, so this package also provides a headless recorder implementation
// used by the pipeline coordinator's tests.
package overlaycontract

import (
	"sync"

	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/rules"
)

// Selection is a user-drawn rectangle during zone selection, normalized to
// the capture size (not the overlay window size).
type Selection struct {
	X, Y, W, H float32
}

// Overlay is the tip-rendering surface the pipeline coordinator publishes
// to.
type Overlay interface {
	ShowTip(tip rules.Tip)
	ClearTips()
	SetConfig(cfg config.OverlayConfig)
	EnterZoneSelection(existingZones []Selection, captureW, captureH int) (Selection, bool)
}

// Recorder is a headless Overlay that records every call instead of
// rendering anything; useful for driving and asserting against the
// pipeline coordinator without a windowing system.
type Recorder struct {
	mu sync.Mutex

	Tips             []rules.Tip
	ClearCount       int
	ConfigHistory    []config.OverlayConfig
	SelectionAnswer  Selection
	SelectionConfirm bool
}

// NewRecorder creates a Recorder that returns no selection by default.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ShowTip(tip rules.Tip) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tips = append(r.Tips, tip)
}

func (r *Recorder) ClearTips() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ClearCount++
	r.Tips = nil
}

func (r *Recorder) SetConfig(cfg config.OverlayConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ConfigHistory = append(r.ConfigHistory, cfg)
}

func (r *Recorder) EnterZoneSelection(existingZones []Selection, captureW, captureH int) (Selection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.SelectionAnswer, r.SelectionConfirm
}

// SetSelectionAnswer configures what EnterZoneSelection returns on its next
// call(s).
func (r *Recorder) SetSelectionAnswer(sel Selection, confirmed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SelectionAnswer = sel
	r.SelectionConfirm = confirmed
}
