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

package pipeline

import (
	"testing"

	"github.com/jetsetilly/vizcaddy/capture"
	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/frame"
	"github.com/jetsetilly/vizcaddy/logger"
	"github.com/jetsetilly/vizcaddy/overlaycontract"
	"github.com/jetsetilly/vizcaddy/profile"
	"github.com/jetsetilly/vizcaddy/rules"
	"github.com/jetsetilly/vizcaddy/shared"
	"github.com/jetsetilly/vizcaddy/zoneocr"
)

type fakeBackend struct {
	text string
}

func (f fakeBackend) Recognize(rgba []byte, width, height int) ([]zoneocr.TextHit, error) {
	return []zoneocr.TextHit{{Text: f.text, Confidence: 1}}, nil
}

func newTestCoordinator(t *testing.T, backendText string) (*Coordinator, capture.Adapter, *overlaycontract.Recorder, *shared.State) {
	t.Helper()

	adapter := capture.NewNullAdapter()
	overlay := overlaycontract.NewRecorder()
	state := shared.New(config.Default())
	log := logger.NewLogger(64)

	c := New(adapter, fakeBackend{text: backendText}, overlay, state, log, DefaultConfig())
	return c, adapter, overlay, state
}

func lowHPScript() string {
	return `
function evaluate(zones, screen_id)
  local tips = {}
  if zones["hp"] == "low" then
    table.insert(tips, {message = "Low HP!", priority = 80})
  end
  return tips
end
`
}

func TestTickSkipsWhenNotCapturing(t *testing.T) {
	c, _, overlay, _ := newTestCoordinator(t, "low")
	c.tick()
	if len(overlay.Tips) != 0 {
		t.Fatalf("expected no tips when not capturing, got %+v", overlay.Tips)
	}
}

func TestTickNoOpWhenNoFrameAvailable(t *testing.T) {
	c, adapter, overlay, state := newTestCoordinator(t, "low")
	_ = adapter.Start(capture.Config{})
	state.UpdateRuntime(func(r *shared.RuntimeState) { r.IsCapturing = true })

	c.tick()
	if len(overlay.Tips) != 0 {
		t.Fatalf("expected no tips with no frame ready, got %+v", overlay.Tips)
	}
}

func TestTickRunsPipelineAndPublishesTip(t *testing.T) {
	c, adapter, overlay, state := newTestCoordinator(t, "low")
	_ = adapter.Start(capture.Config{})
	state.UpdateRuntime(func(r *shared.RuntimeState) { r.IsCapturing = true })

	p := profile.New("Test Game")
	p.Zones = []zoneocr.Zone{{
		ID:          "hp",
		Name:        "HP",
		Bounds:      zoneocr.NormalizedBounds{X: 0, Y: 0, W: 1, H: 1},
		ContentType: zoneocr.Text,
		Enabled:     true,
	}}
	p.Rules = []rules.Definition{{ID: "low-hp", Enabled: true, Script: lowHPScript()}}
	state.AddProfile(p)
	state.SetActiveProfile(p.ID)

	capture.Feed(adapter, frame.New(make([]byte, 4*4*4), 4, 4))
	c.tick()

	if len(overlay.Tips) != 1 {
		t.Fatalf("expected 1 tip, got %+v", overlay.Tips)
	}
	if overlay.Tips[0].Message != "Low HP!" {
		t.Fatalf("unexpected tip: %+v", overlay.Tips[0])
	}
	if state.Runtime().TipsDisplayed != 1 {
		t.Fatalf("expected TipsDisplayed=1, got %d", state.Runtime().TipsDisplayed)
	}
}

func TestTickNoTipWhenZoneTextDoesNotMatchRule(t *testing.T) {
	c, adapter, overlay, state := newTestCoordinator(t, "full")
	_ = adapter.Start(capture.Config{})
	state.UpdateRuntime(func(r *shared.RuntimeState) { r.IsCapturing = true })

	p := profile.New("Test Game")
	p.Zones = []zoneocr.Zone{{
		ID:          "hp",
		Bounds:      zoneocr.NormalizedBounds{X: 0, Y: 0, W: 1, H: 1},
		ContentType: zoneocr.Text,
		Enabled:     true,
	}}
	p.Rules = []rules.Definition{{ID: "low-hp", Enabled: true, Script: lowHPScript()}}
	state.AddProfile(p)
	state.SetActiveProfile(p.ID)

	capture.Feed(adapter, frame.New(make([]byte, 4*4*4), 4, 4))
	c.tick()

	if len(overlay.Tips) != 0 {
		t.Fatalf("expected no tips, got %+v", overlay.Tips)
	}
}

func TestHandleCommandsStartsCaptureAndClearsCommand(t *testing.T) {
	c, _, _, state := newTestCoordinator(t, "low")

	start := shared.CaptureStart
	state.UpdateRuntime(func(r *shared.RuntimeState) { r.CaptureCommand = &start })

	c.handleCommands()

	runtime := state.Runtime()
	if runtime.CaptureCommand != nil {
		t.Fatal("expected CaptureCommand to be cleared")
	}
	if !runtime.IsCapturing {
		t.Fatal("expected IsCapturing to be true after CaptureStart")
	}
}

func TestHandleCommandsSendTestTipPublishesAndClearsFlag(t *testing.T) {
	c, _, overlay, state := newTestCoordinator(t, "low")

	state.UpdateRuntime(func(r *shared.RuntimeState) { r.SendTestTip = true })
	c.handleCommands()

	if len(overlay.Tips) != 1 {
		t.Fatalf("expected 1 test tip published, got %+v", overlay.Tips)
	}
	if state.Runtime().SendTestTip {
		t.Fatal("expected SendTestTip flag to be cleared")
	}
}

func TestHandleCommandsToggleOverlayVisibility(t *testing.T) {
	c, _, _, state := newTestCoordinator(t, "low")

	toggle := shared.OverlayToggleVisibility
	state.UpdateRuntime(func(r *shared.RuntimeState) {
		r.OverlayVisible = false
		r.OverlayCommand = &toggle
	})
	c.handleCommands()

	if !state.Runtime().OverlayVisible {
		t.Fatal("expected OverlayVisible to be toggled true")
	}
	if state.Runtime().OverlayCommand != nil {
		t.Fatal("expected OverlayCommand to be cleared")
	}
}
