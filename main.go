package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/remote"
	"github.com/pthm-cable/orbis/renderer"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/surface"
	"github.com/pthm-cable/orbis/telemetry"
	"github.com/pthm-cable/orbis/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	sceneID := flag.String("scene", "", "Initial scene ID (empty = config, then catalog order)")
	remoteAddr := flag.String("remote", "", "Remote control listen address (overrides config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	catalog, err := scene.LoadCatalog(cfg.Scenes.File)
	if err != nil {
		slog.Error("failed to load scenes", "error", err)
		os.Exit(1)
	}

	fetcher := geo.NewFetcher(time.Duration(cfg.Landmass.TimeoutSec*float64(time.Second)), cfg.Landmass.RetryMax)
	defer fetcher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(reg)

	addr := cfg.Remote.Addr
	if *remoteAddr != "" {
		addr = *remoteAddr
	}
	var srv *remote.Server
	if addr != "" {
		ropts := remote.OptionsFromConfig(cfg)
		ropts.Gatherer = reg
		srv = remote.NewServer(ropts)
		if err := srv.Start(addr); err != nil {
			slog.Error("failed to start remote control", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				slog.Warn("remote shutdown", "error", err)
			}
		}()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to open output", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := viewer.Options{
		Catalog:     catalog,
		Scene:       *sceneID,
		Landmass:    fetcher,
		Remote:      srv,
		Metrics:     metrics,
		Output:      output,
		SnapshotDir: *snapshotDir,
		LogStats:    *logStats,
		Headless:    *headless,
	}

	if *headless {
		// Headless mode: frames are driven by a ticker, nothing is drawn
		opts.Canvas = surface.Discard{}
		opts.Surface = surface.None{}
		v, err := viewer.NewViewer(opts)
		if err != nil {
			slog.Error("failed to start viewer", "error", err)
			os.Exit(1)
		}
		defer v.Unload()

		slog.Info("starting headless viewer",
			"scene", v.Globe().Configuration().ID,
			"remote", addr,
			"max_frames", *maxFrames,
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fps := max(cfg.Screen.TargetFPS, 1)
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("interrupted", "frame", v.Frame())
				return
			case now := <-ticker.C:
				v.UpdateHeadless(now)
			}

			if *maxFrames > 0 && int(v.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", v.Frame())
				return
			}
		}
	}

	// Graphical mode
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Orbis")
	defer rl.CloseWindow()

	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts.Canvas = renderer.NewCanvas()
	opts.Surface = surface.None{}
	if cfg.Surface.Enable3D {
		sphere, err := renderer.NewSurface(cfg.Screen.Width, cfg.Screen.Height, renderer.SphereParams{
			Rings:        cfg.Surface.Rings,
			Slices:       cfg.Surface.Slices,
			BaseDistance: cfg.Surface.BaseDistance,
			BaseScale:    cfg.Surface.BaseScale,
		})
		switch {
		case err == nil:
			opts.Surface = sphere
		case errors.Is(err, surface.ErrUnavailable):
			slog.Warn("3D surface unavailable, drawing 2D fallback", "error", err)
		default:
			slog.Error("failed to create 3D surface", "error", err)
			os.Exit(1)
		}
	}

	v, err := viewer.NewViewer(opts)
	if err != nil {
		slog.Error("failed to start viewer", "error", err)
		os.Exit(1)
	}
	defer v.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if *maxFrames > 0 && int(v.Frame()) >= *maxFrames {
			break
		}
	}
}
