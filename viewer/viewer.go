// Package viewer wires the globe engine to the window, the UI panels, remote
// control and telemetry.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/frame"
	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/remote"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/surface"
	"github.com/pthm-cable/orbis/telemetry"
	"github.com/pthm-cable/orbis/ui"
)

// Options configures a viewer.
type Options struct {
	Catalog *scene.Catalog
	Scene   string // initial scene ID (empty = config, then catalog order)

	Canvas   surface.Canvas  // nil = surface.Discard
	Surface  surface.Surface // nil = surface.None
	Landmass globe.LandmassSource

	Remote  *remote.Server           // nil = remote control off
	Metrics *telemetry.Metrics       // nil = no prometheus metrics
	Output  *telemetry.OutputManager // nil = no CSV output

	SnapshotDir string // bookmark snapshots (empty = <output>/snapshots)
	LogStats    bool   // log window and perf stats through slog
	Headless    bool   // no raylib window; UpdateHeadless drives frames
}

// Viewer holds the complete viewer state.
type Viewer struct {
	cfg     *config.Config
	catalog *scene.Catalog

	sched     *frame.Scheduler
	globe     *globe.Globe
	selection *scene.Selection

	// UI
	hud       *ui.HUD
	controls  *ui.Controls
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry
	pointer   ui.PointerRouter
	showPerf  bool

	// Remote control
	remote *remote.Server

	// Telemetry
	collector   *telemetry.Collector
	perf        *telemetry.PerfCollector
	bookmarks   *telemetry.BookmarkDetector
	metrics     *telemetry.Metrics
	output      *telemetry.OutputManager
	snapshotDir string
	logStats    bool
	lastPerfLog time.Time

	headless bool
	start    time.Time
	now      time.Time // time of the current pass

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewViewer creates a viewer and mounts the initial scene.
func NewViewer(opts Options) (*Viewer, error) {
	cfg := config.Cfg()
	if opts.Catalog == nil {
		return nil, fmt.Errorf("viewer: no scene catalog")
	}

	initial := opts.Catalog.First()
	id := opts.Scene
	if id == "" {
		id = cfg.Scenes.Initial
	}
	if id != "" {
		c, err := opts.Catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf("initial scene: %w", err)
		}
		initial = c
	}

	canvas := opts.Canvas
	if canvas == nil {
		canvas = surface.Discard{}
	}
	v := &Viewer{
		cfg:          cfg,
		catalog:      opts.Catalog,
		sched:        frame.NewScheduler(),
		selection:    &scene.Selection{},
		hud:          ui.NewHUD(),
		controls:     ui.NewControls(),
		inspector:    ui.NewInspector(240),
		perfPanel:    ui.NewPerfPanel(10, 0),
		remote:       opts.Remote,
		collector:    telemetry.NewCollector(cfg.Telemetry.PerfWindow),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:    telemetry.NewBookmarkDetector(10),
		metrics:      opts.Metrics,
		output:       opts.Output,
		snapshotDir:  opts.SnapshotDir,
		logStats:     opts.LogStats,
		headless:     opts.Headless,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}
	v.selection.OnChange = func(p scene.Point, selected bool) {
		slog.Debug("selection changed", "point", p.Name, "selected", selected)
	}

	listeners := []func(globe.Event){
		v.collector.Observe,
		v.metrics.Observe,
		v.recordEvent,
	}
	if v.remote != nil {
		listeners = append(listeners, v.remote.Observe)
	}

	v.globe = globe.New(globe.ParamsFromConfig(cfg), canvas, v.sched, globe.Options{
		OnActivate:  v.selection.Activate,
		Selected:    v.selection.Selected,
		Listeners:   listeners,
		Interactive: cfg.Globe.Interactive,
		Surface:     opts.Surface,
		Landmass:    opts.Landmass,
	})
	v.overlays = ui.NewOverlayRegistry(layersFromConfig(cfg))
	v.overlays.Apply(v.globe)

	v.globe.Mount(initial, v.viewport())
	v.metrics.SetZoom(v.globe.ZoomPercent())
	return v, nil
}

func layersFromConfig(cfg *config.Config) globe.Layer {
	if cfg.Labels.SmallLabels {
		return globe.AllLayers
	}
	return globe.AllLayers &^ globe.LayerSmallLabels
}

func (v *Viewer) viewport() globe.Viewport {
	return globe.Viewport{Width: float64(v.screenWidth), Height: float64(v.screenHeight), DPR: 1}
}

// Update processes input and remote commands for the next frame.
func (v *Viewer) Update() {
	v.now = time.Now()
	if v.start.IsZero() {
		v.start = v.now
	}
	v.perf.StartPass()

	v.perf.StartPhase(telemetry.PhaseInput)
	v.handleInput()

	v.perf.StartPhase(telemetry.PhaseRemote)
	v.drainRemote()
}

// UpdateHeadless runs one complete pass without a window.
func (v *Viewer) UpdateHeadless(now time.Time) {
	v.now = now
	if v.start.IsZero() {
		v.start = now
	}
	v.perf.StartPass()

	v.perf.StartPhase(telemetry.PhaseRemote)
	v.drainRemote()

	v.perf.StartPhase(telemetry.PhaseFrame)
	v.sched.Run(now)

	v.endPass()
}

// drainRemote applies queued remote commands on the frame thread.
func (v *Viewer) drainRemote() {
	if v.remote == nil {
		return
	}
	v.remote.Drain(func(cmd remote.Command) {
		if err := remote.Apply(cmd, v); err != nil {
			slog.Warn("remote command failed", "op", cmd.Op, "error", err)
		}
	})
}

// endPass closes the perf pass and feeds the frame time to telemetry.
func (v *Viewer) endPass() {
	v.perf.StartPhase(telemetry.PhaseTelemetry)
	v.flushTelemetry()

	d := v.perf.EndPass()
	v.collector.RecordFrame(d)
	v.metrics.ObserveFrame(d)
}

// Unload releases the globe and closes telemetry output.
func (v *Viewer) Unload() {
	v.globe.Unmount()
	v.sched.CancelAll()
	if err := v.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of frames drawn so far.
func (v *Viewer) Frame() uint64 {
	return v.globe.Frames()
}

// Globe returns the engine instance.
func (v *Viewer) Globe() *globe.Globe {
	return v.globe
}

// FlyToName flies to a point of the current scene.
func (v *Viewer) FlyToName(name string) bool {
	return v.globe.FlyToName(name)
}

// SetZoomPercent sets the target zoom.
func (v *Viewer) SetZoomPercent(p float64) {
	v.globe.SetZoomPercent(p)
	v.metrics.SetZoom(v.globe.ZoomPercent())
}

// Select makes the named point of the current scene the selection.
func (v *Viewer) Select(name string) bool {
	cfg := v.globe.Configuration()
	p, ok := cfg.Find(name)
	if !ok {
		return false
	}
	v.selection.Select(p)
	return true
}

// SwitchScene shows the catalog scene with the given ID.
func (v *Viewer) SwitchScene(id string) error {
	cfg, err := v.catalog.Get(id)
	if err != nil {
		return err
	}
	v.setScene(cfg)
	return nil
}

func (v *Viewer) setScene(cfg scene.Configuration) {
	v.globe.SetConfiguration(cfg)
	v.selection.Revalidate(cfg)
	v.metrics.SetZoom(v.globe.ZoomPercent())
}
