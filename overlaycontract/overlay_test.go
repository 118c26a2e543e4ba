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

package overlaycontract

import (
	"testing"

	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/rules"
)

func TestRecorderRecordsTips(t *testing.T) {
	r := NewRecorder()
	r.ShowTip(rules.Tip{ID: "a", Message: "hi"})
	r.ShowTip(rules.Tip{ID: "b", Message: "there"})
	if len(r.Tips) != 2 {
		t.Fatalf("expected 2 tips, got %d", len(r.Tips))
	}
}

func TestRecorderClearTipsResetsAndCounts(t *testing.T) {
	r := NewRecorder()
	r.ShowTip(rules.Tip{ID: "a"})
	r.ClearTips()
	if len(r.Tips) != 0 {
		t.Fatalf("expected 0 tips after clear, got %d", len(r.Tips))
	}
	if r.ClearCount != 1 {
		t.Fatalf("expected 1 clear recorded, got %d", r.ClearCount)
	}
}

func TestRecorderSetConfigAppendsHistory(t *testing.T) {
	r := NewRecorder()
	r.SetConfig(config.OverlayConfig{Opacity: 0.5})
	r.SetConfig(config.OverlayConfig{Opacity: 0.8})
	if len(r.ConfigHistory) != 2 {
		t.Fatalf("expected 2 config entries, got %d", len(r.ConfigHistory))
	}
}

func TestRecorderZoneSelectionDefaultsToUnconfirmed(t *testing.T) {
	r := NewRecorder()
	_, confirmed := r.EnterZoneSelection(nil, 1920, 1080)
	if confirmed {
		t.Fatal("expected unconfirmed selection by default")
	}
}

func TestRecorderZoneSelectionHonoursAnswer(t *testing.T) {
	r := NewRecorder()
	want := Selection{X: 0.1, Y: 0.2, W: 0.3, H: 0.4}
	r.SetSelectionAnswer(want, true)

	got, confirmed := r.EnterZoneSelection(nil, 1920, 1080)
	if !confirmed || got != want {
		t.Fatalf("expected %+v confirmed, got %+v confirmed=%v", want, got, confirmed)
	}
}
