// Command globetty renders the globe viewer in a terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/telemetry"
	"github.com/pthm-cable/orbis/tty"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	sceneID := flag.String("scene", "", "Initial scene ID (empty = config, then catalog order)")
	logFile := flag.String("log-file", "", "Write JSON logs to this file (empty = discard)")
	outputDir := flag.String("output-dir", "", "Output directory for the event CSV log")
	flag.Parse()

	// The alt screen owns stdout, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	} else {
		slog.SetDefault(slog.New(slog.DiscardHandler))
	}

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *sceneID == "" {
		*sceneID = cfg.Scenes.Initial
	}

	catalog, err := scene.LoadCatalog(cfg.Scenes.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load scenes: %v\n", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open output: %v\n", err)
		os.Exit(1)
	}
	defer output.Close()

	fetcher := geo.NewFetcher(time.Duration(cfg.Landmass.TimeoutSec*float64(time.Second)), cfg.Landmass.RetryMax)
	defer fetcher.Close()

	var g *globe.Globe
	start := time.Now()
	model, err := tty.New(cfg, tty.Options{
		Catalog:  catalog,
		Scene:    *sceneID,
		Landmass: fetcher,
		Listeners: []func(globe.Event){
			func(ev globe.Event) {
				var frame uint64
				if g != nil {
					frame = g.Frames()
				}
				if err := output.WriteEvent(telemetry.NewEventRecord(frame, time.Since(start), ev)); err != nil {
					slog.Warn("failed to write event", "error", err)
				}
			},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start viewer: %v\n", err)
		os.Exit(1)
	}
	g = model.Globe()
	defer g.Unmount()

	slog.Info("starting terminal viewer", "scene", *sceneID)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	slog.Info("terminal viewer stopped", "frames", g.Frames())
}
