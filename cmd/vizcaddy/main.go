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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jetsetilly/vizcaddy/capture"
	"github.com/jetsetilly/vizcaddy/config"
	"github.com/jetsetilly/vizcaddy/dashboardcontract"
	vizerrors "github.com/jetsetilly/vizcaddy/errors"
	"github.com/jetsetilly/vizcaddy/logger"
	"github.com/jetsetilly/vizcaddy/manifest"
	"github.com/jetsetilly/vizcaddy/overlaycontract"
	"github.com/jetsetilly/vizcaddy/pipeline"
	"github.com/jetsetilly/vizcaddy/platformocr"
	"github.com/jetsetilly/vizcaddy/resources"
	"github.com/jetsetilly/vizcaddy/shared"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the testable body of main: it never calls os.Exit itself, so its
// exit-code decisions can be exercised without terminating the process.
func run(args []string) int {
	var monitor int
	var listMonitors bool
	var dashboard bool
	var overlayOnly bool

	flgs := flag.NewFlagSet("vizcaddy", flag.ContinueOnError)
	flgs.IntVar(&monitor, "monitor", 0, "monitor index to capture")
	flgs.BoolVar(&listMonitors, "list-monitors", false, "list capturable monitors and exit")
	flgs.BoolVar(&dashboard, "dashboard", true, "run the dashboard alongside the overlay")
	flgs.BoolVar(&overlayOnly, "overlay-only", false, "run the overlay without the dashboard")

	if err := flgs.Parse(args); err != nil {
		return 2
	}

	if _, offline := os.LookupEnv("VIZCADDY_OFFLINE"); offline {
		fmt.Fprintln(os.Stderr, "vizcaddy: running offline, model downloads disabled")
	}

	adapter := capture.NewNullAdapter()

	if listMonitors {
		monitors, err := adapter.ListMonitors()
		if err != nil {
			fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
			return 1
		}
		for _, m := range monitors {
			fmt.Printf("%d: %s (%dx%d)\n", m.Index, m.Name, m.Width, m.Height)
		}
		return 0
	}

	log := logger.NewLogger(1024)

	cfgPath, err := resources.JoinPath("config.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}

	cfg, err := loadOrCreateConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}
	log.Logf(logger.Allow, "vizcaddy", "loaded configuration from %s", cfgPath)

	manifestPath, err := resources.JoinPath("models", "manifest.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}
	if _, err := loadOrCreateManifest(manifestPath); err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}

	state := shared.New(cfg)
	state.UpdateRuntime(func(r *shared.RuntimeState) {
		r.CurrentCaptureTarget = fmt.Sprintf("monitor %d", monitor)
	})

	backend, err := platformocr.New("en-US")
	if err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}

	overlay := overlaycontract.NewRecorder()
	coordinator := pipeline.New(adapter, backend, overlay, state, log, pipeline.DefaultConfig())

	if dashboard && !overlayOnly {
		_ = dashboardcontract.New(state)
		log.Logf(logger.Allow, "vizcaddy", "dashboard enabled")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := shared.CaptureStart
	state.UpdateRuntime(func(r *shared.RuntimeState) { r.CaptureCommand = &start })

	if err := coordinator.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "vizcaddy: %v\n", err)
		return 1
	}

	return 0
}

func loadOrCreateConfig(path string) (config.AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := config.Default()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return config.AppConfig{}, vizerrors.Errorf(vizerrors.ConfigWriteFailure, err)
		}
		if err := config.Save(cfg, path); err != nil {
			return config.AppConfig{}, err
		}
		return cfg, nil
	}

	return config.Load(path)
}

func loadOrCreateManifest(path string) (*manifest.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		store := manifest.NewStore()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, vizerrors.Errorf(vizerrors.ManifestSaveFailure, path, err)
		}
		if err := store.Save(path); err != nil {
			return nil, err
		}
		return store, nil
	}

	return manifest.Load(path)
}
