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

package capture

import (
	"testing"

	"github.com/jetsetilly/vizcaddy/frame"
)

func TestNullAdapterNoFrameBeforeStart(t *testing.T) {
	a := NewNullAdapter()
	if _, ok := a.TryNextFrame(); ok {
		t.Fatal("expected no frame before Start")
	}
}

func TestNullAdapterDeliversFedFrame(t *testing.T) {
	a := NewNullAdapter()
	if err := a.Start(Config{MaxFPS: 30}); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}

	f := frame.New(make([]byte, 4*2*2), 2, 2)
	Feed(a, f)

	got, ok := a.TryNextFrame()
	if !ok || got != f {
		t.Fatalf("expected the fed frame to be returned, got %v, %v", got, ok)
	}

	if _, ok := a.TryNextFrame(); ok {
		t.Fatal("expected no frame on second call (already consumed)")
	}
}

func TestNullAdapterStopClearsPending(t *testing.T) {
	a := NewNullAdapter()
	_ = a.Start(Config{})
	Feed(a, frame.New(make([]byte, 16), 2, 2))
	_ = a.Stop()

	if _, ok := a.TryNextFrame(); ok {
		t.Fatal("expected no frame after Stop")
	}
}

func TestNullAdapterListsOneMonitor(t *testing.T) {
	a := NewNullAdapter()
	monitors, err := a.ListMonitors()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(monitors) != 1 {
		t.Fatalf("expected 1 monitor, got %d", len(monitors))
	}
}
