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

// Package pipeline ties the capture adapter, screen recognizer, zone OCR
// and rule engine together into the single poll loop that drives the
// overlay. One tick: pull the newest frame (dropping anything the capture
// adapter produced and nobody consumed), recognize the active screen,
// read every zone, evaluate rules, publish tips.
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/vizcaddy/capture"
	"github.com/jetsetilly/vizcaddy/config"
	vizerrors "github.com/jetsetilly/vizcaddy/errors"
	"github.com/jetsetilly/vizcaddy/logger"
	"github.com/jetsetilly/vizcaddy/overlaycontract"
	"github.com/jetsetilly/vizcaddy/preprocess"
	"github.com/jetsetilly/vizcaddy/profile"
	"github.com/jetsetilly/vizcaddy/rules"
	"github.com/jetsetilly/vizcaddy/screen"
	"github.com/jetsetilly/vizcaddy/shared"
	"github.com/jetsetilly/vizcaddy/zoneocr"
)

// Config controls the coordinator's poll behaviour.
type Config struct {
	// ParallelDispatch runs screen recognition and zone OCR concurrently
	// (bounded, via errgroup) instead of one after the other. Off by
	// default: the two passes are cheap enough sequentially for a single
	// profile, and sequential dispatch is easier to reason about.
	ParallelDispatch bool
}

// DefaultConfig returns the coordinator's sequential-by-default behaviour.
func DefaultConfig() Config {
	return Config{ParallelDispatch: false}
}

// Coordinator runs the capture -> recognize -> OCR -> rules -> overlay
// pipeline as a single poll loop.
type Coordinator struct {
	adapter capture.Adapter
	backend zoneocr.Backend
	overlay overlaycontract.Overlay
	state   *shared.State
	log     *logger.Logger
	config  Config

	activeProfileID string
	recognizer      *screen.Recognizer
	rulesEngine     *rules.Engine
}

// New creates a Coordinator. The capture adapter, OCR backend and overlay
// are the three external seams this package drives; shared.State is the
// single source of truth for configuration, the active profile, and
// pending dashboard commands.
func New(adapter capture.Adapter, backend zoneocr.Backend, overlay overlaycontract.Overlay, state *shared.State, log *logger.Logger, cfg Config) *Coordinator {
	return &Coordinator{
		adapter: adapter,
		backend: backend,
		overlay: overlay,
		state:   state,
		log:     log,
		config:  cfg,
	}
}

// Run drives the poll loop until ctx is cancelled. It is safe to call only
// once; a Coordinator is not reusable after Run returns.
func (c *Coordinator) Run(ctx context.Context) error {
	interval := pollInterval(c.state.Config().Capture.MaxFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if c.handleCommands() {
				interval = pollInterval(c.state.Config().Capture.MaxFPS)
				ticker.Reset(interval)
			}
			c.tick()
		}
	}
}

// handleCommands drains any pending dashboard command and applies it.
// Returns true if the capture configuration may have changed (so the
// caller should re-derive the poll interval).
func (c *Coordinator) handleCommands() bool {
	var reconfigured bool

	// read the config before UpdateRuntime takes the write lock; Config()
	// takes the read lock and sync.RWMutex is not reentrant.
	captureCfg := c.state.Config().Capture

	c.state.UpdateRuntime(func(r *shared.RuntimeState) {
		if r.CaptureCommand != nil {
			switch *r.CaptureCommand {
			case shared.CaptureStart:
				if err := c.adapter.Start(captureConfigFrom(captureCfg)); err != nil {
					r.SetError(vizerrors.Errorf(vizerrors.CaptureStartFailure, err).Error())
				} else {
					r.IsCapturing = true
					r.ClearError()
				}
				reconfigured = true
			case shared.CaptureStop:
				_ = c.adapter.Stop()
				r.IsCapturing = false
			}
			r.CaptureCommand = nil
		}

		if r.OverlayCommand != nil {
			switch *r.OverlayCommand {
			case shared.OverlayStart:
				r.IsOverlayRunning = true
				r.OverlayVisible = true
			case shared.OverlayStop:
				r.IsOverlayRunning = false
				r.OverlayVisible = false
				c.overlay.ClearTips()
			case shared.OverlayToggleVisibility:
				r.OverlayVisible = !r.OverlayVisible
			}
			r.OverlayCommand = nil
		}

		if r.SendTestTip {
			c.overlay.ShowTip(rules.Tip{ID: "test-tip", Message: "Vizcaddy test tip", Priority: 0})
			r.SendTestTip = false
		}
	})

	return reconfigured
}

// tick runs exactly one pass of the pipeline over the newest available
// frame, or does nothing if capture isn't running or no new frame is
// available (the frame-drop policy: a tick with nothing to do is a no-op,
// not an error).
func (c *Coordinator) tick() {
	runtime := c.state.Runtime()
	if !runtime.IsCapturing {
		return
	}

	f, ok := c.adapter.TryNextFrame()
	if !ok {
		return
	}

	active, ok := c.state.ActiveProfile()
	if !ok {
		return
	}
	c.ensureProfileWired(active)

	gray := f.ToGrayscale()
	width, height := f.Dimensions()

	ocrFn := func(x, y, w, h int) (string, error) {
		region, ok := f.ExtractRegion(x, y, w, h)
		if !ok {
			return "", nil
		}
		hits, err := c.backend.Recognize(region.Data, region.Width, region.Height)
		if err != nil {
			return "", err
		}
		text := ""
		for i, hit := range hits {
			if i > 0 {
				text += " "
			}
			text += hit.Text
		}
		return text, nil
	}

	var match *screen.Match
	var matched bool
	var zoneValues []zoneocr.Value

	if c.config.ParallelDispatch {
		var g errgroup.Group
		g.Go(func() error {
			match, matched = c.recognizer.Recognize(gray, width, height, ocrFn)
			return nil
		})
		g.Go(func() error {
			zoneValues = zoneocr.Run(f, active.Zones, preprocess.Profile{}, c.backend)
			return nil
		})
		_ = g.Wait()
	} else {
		match, matched = c.recognizer.Recognize(gray, width, height, ocrFn)
		zoneValues = zoneocr.Run(f, active.Zones, preprocess.Profile{}, c.backend)
	}

	zoneMap := make(map[string]string, len(zoneValues))
	for _, v := range zoneValues {
		zoneMap[v.ZoneID] = v.Text
	}

	screenID := ""
	if matched {
		screenID = match.ScreenID
	}

	tips := c.rulesEngine.Evaluate(zoneMap, screenID)

	c.overlay.ClearTips()
	for _, tip := range tips {
		c.overlay.ShowTip(tip)
	}

	c.state.UpdateRuntime(func(r *shared.RuntimeState) {
		r.TipsDisplayed = len(tips)
		r.CurrentCaptureTarget = active.Name
	})
}

// ensureProfileWired rebuilds the screen recognizer and rule engine when
// the active profile changes, so profile edits made through the dashboard
// take effect on the next tick rather than requiring a restart.
func (c *Coordinator) ensureProfileWired(active profile.GameProfile) {
	if c.recognizer != nil && c.rulesEngine != nil && c.activeProfileID == active.ID {
		return
	}

	recognizer := screen.NewRecognizer(screen.DefaultConfig())
	for _, s := range active.Screens {
		recognizer.AddScreen(s)
	}

	engine, err := rules.New(active.Rules)
	if err != nil {
		c.log.Logf(logger.Allow, "pipeline", "profile %q rule compile failed: %v", active.Name, err)
		engine, _ = rules.New(nil)
	}

	c.recognizer = recognizer
	c.rulesEngine = engine
	c.activeProfileID = active.ID
}

func pollInterval(maxFPS uint32) time.Duration {
	if maxFPS == 0 {
		maxFPS = 30
	}
	return time.Second / time.Duration(maxFPS)
}

// captureConfigFrom translates the persisted capture section into the
// capture adapter's contract. An empty TargetWindow means "capture the
// primary monitor"; any other value is treated as a window-title pattern.
func captureConfigFrom(cfg config.CaptureConfig) capture.Config {
	target := capture.Target{Kind: capture.PrimaryMonitor}
	if cfg.TargetWindow != "" {
		target = capture.Target{Kind: capture.Window, WindowPattern: cfg.TargetWindow}
	}

	return capture.Config{
		Target:        target,
		MaxFPS:        cfg.MaxFPS,
		CaptureCursor: cfg.CaptureCursor,
		DrawBorder:    cfg.DrawBorder,
	}
}
