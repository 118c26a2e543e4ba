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

// Package config loads and saves the application configuration: a single
// TOML document with general, capture, overlay and performance sections.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// OverlayAnchor selects which screen corner the overlay anchors to.
type OverlayAnchor string

const (
	TopLeft     OverlayAnchor = "TopLeft"
	TopRight    OverlayAnchor = "TopRight"
	BottomLeft  OverlayAnchor = "BottomLeft"
	BottomRight OverlayAnchor = "BottomRight"
)

// GeneralConfig controls process-lifecycle behaviour.
type GeneralConfig struct {
	StartMinimized bool `toml:"start_minimized"`
	AutoStart      bool `toml:"auto_start"`
	CheckUpdates   bool `toml:"check_updates"`
}

// CaptureConfig controls the screen capture adapter.
type CaptureConfig struct {
	MaxFPS        uint32 `toml:"max_fps"`
	CaptureCursor bool   `toml:"capture_cursor"`
	DrawBorder    bool   `toml:"draw_border"`
	TargetWindow  string `toml:"target_window"`
}

// OverlayConfig controls the on-screen tip overlay.
type OverlayConfig struct {
	Enabled           bool          `toml:"enabled"`
	Opacity           float32       `toml:"opacity"`
	Anchor            OverlayAnchor `toml:"anchor"`
	OffsetX           int32         `toml:"offset_x"`
	OffsetY           int32         `toml:"offset_y"`
	MaxTips           uint          `toml:"max_tips"`
	DefaultDurationMs uint64        `toml:"default_duration_ms"`
	MaxWidth          float32       `toml:"max_width"`
	MonitorIndex      int           `toml:"monitor_index"` // -1 means unset
	ClickThrough      bool          `toml:"click_through"`
	SoundEnabled      bool          `toml:"sound_enabled"`
	SoundVolume       float32       `toml:"sound_volume"`
	ToggleHotkey      string        `toml:"toggle_hotkey"`
}

// PerformanceConfig bounds resource usage.
type PerformanceConfig struct {
	MaxCPUPercent    uint32 `toml:"max_cpu_percent"`
	MaxMemoryMB      uint32 `toml:"max_memory_mb"`
	IdleOptimization bool   `toml:"idle_optimization"`
}

// AppConfig is the top-level configuration document.
type AppConfig struct {
	General     GeneralConfig     `toml:"general"`
	Capture     CaptureConfig     `toml:"capture"`
	Overlay     OverlayConfig     `toml:"overlay"`
	Performance PerformanceConfig `toml:"performance"`
}

// Default returns the configuration the application starts with before any
// file is loaded.
func Default() AppConfig {
	return AppConfig{
		General: GeneralConfig{
			CheckUpdates: true,
		},
		Capture: CaptureConfig{
			MaxFPS: 30,
		},
		Overlay: OverlayConfig{
			Enabled:           true,
			Opacity:           0.9,
			Anchor:            TopRight,
			MaxTips:           5,
			DefaultDurationMs: 5000,
			MaxWidth:          320,
			MonitorIndex:      -1,
			SoundVolume:       0.5,
		},
		Performance: PerformanceConfig{
			MaxCPUPercent:    50,
			MaxMemoryMB:      512,
			IdleOptimization: true,
		},
	}
}

// Load reads an AppConfig from a TOML file. Unknown keys are ignored, as
// BurntSushi/toml allows by default.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return AppConfig{}, vizerrors.Errorf(vizerrors.ConfigFileCannotOpen, err)
	}
	return cfg, nil
}

// Save writes an AppConfig to a TOML file.
func Save(cfg AppConfig, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return vizerrors.Errorf(vizerrors.ConfigWriteFailure, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return vizerrors.Errorf(vizerrors.ConfigWriteFailure, err)
	}
	return nil
}
