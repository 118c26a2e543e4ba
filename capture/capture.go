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

// Package capture declares the screen-capture adapter contract the pipeline
// coordinator pulls frames from. The real OS-level capture backend (the
// Windows Graphics Capture API the reference implementation drives) is out
// of scope; this package defines the contract and a synthetic adapter
// usable for testing and headless runs.
package capture

import (
	"sync"

	"github.com/jetsetilly/vizcaddy/frame"
)

// TargetKind selects what an Adapter should capture.
type TargetKind int

const (
	PrimaryMonitor TargetKind = iota
	MonitorIndex
	Window
)

// Target identifies what to capture.
type Target struct {
	Kind          TargetKind
	Index         int    // MonitorIndex only
	WindowPattern string // Window only; case-insensitive substring match
}

// Config controls how an Adapter captures frames.
type Config struct {
	Target        Target
	MaxFPS        uint32
	CaptureCursor bool
	DrawBorder    bool
}

// MonitorInfo describes one capturable monitor.
type MonitorInfo struct {
	Index  int
	Name   string
	Width  int
	Height int
}

// WindowInfo describes one capturable window.
type WindowInfo struct {
	Title string
}

// Adapter is the screen-capture contract: list capturable targets, start
// and stop producing frames, and pull at most one frame without blocking.
type Adapter interface {
	ListWindows() ([]WindowInfo, error)
	ListMonitors() ([]MonitorInfo, error)
	Start(cfg Config) error
	Stop() error
	TryNextFrame() (*frame.Frame, bool)
}

// nullAdapter is a synthetic stand-in: it reports one monitor, no windows,
// and never produces a frame unless one is injected via Feed. Useful for
// driving the pipeline coordinator in tests without a real capture backend.
type nullAdapter struct {
	mu      sync.Mutex
	running bool
	pending *frame.Frame
}

// NewNullAdapter creates a synthetic Adapter.
func NewNullAdapter() Adapter {
	return &nullAdapter{}
}

func (n *nullAdapter) ListWindows() ([]WindowInfo, error) {
	return nil, nil
}

func (n *nullAdapter) ListMonitors() ([]MonitorInfo, error) {
	return []MonitorInfo{{Index: 0, Name: "Primary", Width: 1920, Height: 1080}}, nil
}

func (n *nullAdapter) Start(cfg Config) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.running = true
	return nil
}

func (n *nullAdapter) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.running = false
	n.pending = nil
	return nil
}

func (n *nullAdapter) TryNextFrame() (*frame.Frame, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.running || n.pending == nil {
		return nil, false
	}
	f := n.pending
	n.pending = nil
	return f, true
}

// Feed injects a frame for the next TryNextFrame call to return, for tests
// that need to drive frame delivery. It only affects the null adapter
// returned by this package; for any other Adapter it does nothing.
func Feed(a Adapter, f *frame.Frame) {
	if n, ok := a.(*nullAdapter); ok {
		n.mu.Lock()
		n.pending = f
		n.mu.Unlock()
	}
}
