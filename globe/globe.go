// Package globe is the interactive globe engine: it owns orientation and
// zoom, drives the per-frame pipeline, hit-tests pointer input and paints
// the 2D overlay on top of an optional 3D surface.
package globe

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/orbis/camera"
	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/decor"
	"github.com/pthm-cable/orbis/frame"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/labels"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/surface"
)

// Viewport is the drawing area in logical pixels plus the device pixel ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

func (v Viewport) valid() bool {
	return v.Width > 0 && v.Height > 0
}

// LabelParams controls label text and boxes.
type LabelParams struct {
	OffsetX, OffsetY float64
	Smoothing        float64
	Padding          float64
	FontSize         int
	MetaFontSize     int
	SmallFontSize    int
	SmallLabels      bool
}

// MarkerParams controls marker drawing.
type MarkerParams struct {
	DotRadius      float64
	RingRadius     float64
	PulseAmplitude float64
	PulseSpeed     float64
	BracketSize    float64
}

// Params holds the engine tunables.
type Params struct {
	Orbit camera.Params
	Decor decor.Params

	InitialScale float64
	DefaultYaw   float64 // planet orientation when a scene has no points
	DefaultPitch float64
	IdleYaw      float64

	BeltIDs       map[string]bool
	BeltYaw       float64
	BeltPitch     float64
	BeltSpread    float64
	BackfaceAlpha float64

	FlyToDuration time.Duration
	HitRadius     float64
	ClickSlop     float64

	Labels  LabelParams
	Markers MarkerParams

	BaseDistance   float64
	BaseScale      float64
	TextureYawBias float64
}

// ParamsFromConfig builds engine parameters from the loaded configuration.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Orbit:         camera.ParamsFromConfig(cfg),
		Decor:         decor.ParamsFromConfig(cfg),
		InitialScale:  cfg.Globe.InitialScale,
		DefaultYaw:    cfg.Globe.DefaultYaw,
		DefaultPitch:  cfg.Globe.DefaultPitch,
		IdleYaw:       cfg.Inertia.IdleYawVelocity,
		BeltIDs:       cfg.Derived.BeltIDs,
		BeltYaw:       cfg.Belt.DefaultYaw,
		BeltPitch:     cfg.Belt.DefaultPitch,
		BeltSpread:    cfg.Belt.Spread,
		BackfaceAlpha: cfg.Belt.BackfaceAlpha,
		FlyToDuration: time.Duration(cfg.Derived.FlyToDurationMS * float64(time.Millisecond)),
		HitRadius:     cfg.Hit.Radius,
		ClickSlop:     cfg.Inertia.ClickSlop,
		Labels: LabelParams{
			OffsetX:       cfg.Labels.OffsetX,
			OffsetY:       cfg.Labels.OffsetY,
			Smoothing:     cfg.Labels.Smoothing,
			Padding:       cfg.Labels.Padding,
			FontSize:      cfg.Labels.FontSize,
			MetaFontSize:  cfg.Labels.MetaFontSize,
			SmallFontSize: cfg.Labels.SmallFontSize,
			SmallLabels:   cfg.Labels.SmallLabels,
		},
		Markers: MarkerParams{
			DotRadius:      cfg.Markers.DotRadius,
			RingRadius:     cfg.Markers.RingRadius,
			PulseAmplitude: cfg.Markers.PulseAmplitude,
			PulseSpeed:     cfg.Markers.PulseSpeed,
			BracketSize:    cfg.Markers.BracketSize,
		},
		BaseDistance:   cfg.Surface.BaseDistance,
		BaseScale:      cfg.Surface.BaseScale,
		TextureYawBias: cfg.Surface.TextureYawBias,
	}
}

// LandmassSource loads landmass geometry asynchronously. Results carry the
// generation they were requested for.
type LandmassSource interface {
	Request(generation uint64, src string)
	Results() <-chan geo.LandmassResult
}

// Options wires the globe to its owner.
type Options struct {
	// OnHover is called when the pointer starts or stops hovering a point.
	OnHover func(hovering bool)
	// OnActivate is called when a point is clicked.
	OnActivate func(p scene.Point)
	// Selected returns the owner's current selection. It is read every frame.
	Selected func() (scene.Point, bool)
	// Listeners receive every engine event.
	Listeners []func(Event)

	// Interactive enables pointer and wheel input.
	Interactive bool

	// Surface is the 3D sphere. Nil selects surface.None.
	Surface surface.Surface
	// Landmass supplies 2D silhouette geometry. Nil disables landmass.
	Landmass LandmassSource
}

// Globe is the engine instance. All methods must be called from the
// goroutine that runs the scheduler.
type Globe struct {
	params Params
	opts   Options

	canvas   surface.Canvas
	surf     surface.Surface
	sched    *frame.Scheduler
	landmass LandmassSource

	viewport Viewport
	config   scene.Configuration
	hasScene bool
	mode     scene.Mode

	orbit  *camera.Orbit
	proj   *geo.Orthographic // rebuilt every frame
	layout *labels.Layout
	field  *decor.Field

	// generation tags landmass requests; it changes on every configuration.
	generation uint64
	land       *geo.Landmass
	graticule  [][]geo.LatLng

	flight    *camera.Flight
	flightGen uint64
	flightID  frame.ID

	loopID  frame.ID
	mounted bool
	start   time.Time
	frames  uint64

	pressed  bool
	hover    scene.Point
	hovering bool

	// activeLabels holds the names whose large label was drawn last frame.
	activeLabels map[string]bool

	layers Layer
}

// New creates a globe painting onto canvas and scheduled on sched.
func New(p Params, canvas surface.Canvas, sched *frame.Scheduler, opts Options) *Globe {
	surf := opts.Surface
	if surf == nil {
		surf = surface.None{}
	}
	layers := AllLayers
	if !p.Labels.SmallLabels {
		layers &^= LayerSmallLabels
	}
	return &Globe{
		params:       p,
		opts:         opts,
		canvas:       canvas,
		surf:         surf,
		sched:        sched,
		landmass:     opts.Landmass,
		orbit:        camera.New(p.Orbit, p.DefaultYaw, p.DefaultPitch, p.InitialScale, p.IdleYaw),
		layout:       labels.New(p.Labels.OffsetX, p.Labels.OffsetY, p.Labels.Smoothing),
		graticule:    geo.Graticule(30),
		activeLabels: make(map[string]bool),
		layers:       layers,
	}
}

// Mount shows cfg in vp and starts the frame loop.
func (g *Globe) Mount(cfg scene.Configuration, vp Viewport) {
	g.SetViewport(vp)
	g.SetConfiguration(cfg)
	if !g.mounted {
		g.mounted = true
		g.loopID = g.sched.Request(g.tick)
	}
}

// Unmount stops the frame loop and releases the surface.
func (g *Globe) Unmount() {
	g.cancelFlight()
	if g.mounted {
		g.sched.Cancel(g.loopID)
		g.mounted = false
	}
	g.surf.Close()
	slog.Info("globe unmounted", "frames", g.frames)
}

// SetViewport updates the drawing area. The projection picks it up on the
// next frame.
func (g *Globe) SetViewport(vp Viewport) {
	if vp.DPR <= 0 {
		vp.DPR = 1
	}
	if vp == g.viewport {
		return
	}
	g.viewport = vp
	if vp.valid() {
		g.surf.Resize(int(vp.Width*vp.DPR), int(vp.Height*vp.DPR))
	}
}

// SetInteractive enables or disables pointer and wheel input.
func (g *Globe) SetInteractive(on bool) {
	g.opts.Interactive = on
	if !on && g.pressed {
		g.pressed = false
		g.settle()
	}
}

// AddListener subscribes fn to engine events.
func (g *Globe) AddListener(fn func(Event)) {
	g.opts.Listeners = append(g.opts.Listeners, fn)
}

// SetZoomPercent maps 0-100 onto the scale bounds.
func (g *Globe) SetZoomPercent(p float64) {
	g.orbit.SetZoomPercent(p)
	g.emit(Event{Kind: EventZoom, Zoom: g.orbit.ZoomPercent()})
}

// ZoomPercent returns the target zoom as a percentage.
func (g *Globe) ZoomPercent() float64 {
	return g.orbit.ZoomPercent()
}

// Orientation returns the current rotation.
func (g *Globe) Orientation() geo.Rotation {
	return g.orbit.Rotation()
}

// SetOrientation jumps to r, abandoning any drag or flight. Velocity drops
// back to the idle baseline.
func (g *Globe) SetOrientation(r geo.Rotation) {
	g.cancelFlight()
	g.pressed = false
	g.settle()
	g.orbit.SetRotation(r)
}

// Scale returns the current and target projection scale.
func (g *Globe) Scale() (current, target float64) {
	return g.orbit.Scale, g.orbit.TargetScale
}

// State returns the orbit's interaction state.
func (g *Globe) State() camera.State {
	return g.orbit.State()
}

// Mode returns the current scene mode.
func (g *Globe) Mode() scene.Mode {
	return g.mode
}

// Configuration returns the displayed configuration.
func (g *Globe) Configuration() scene.Configuration {
	return g.config
}

// SurfaceAvailable reports whether a 3D surface is in use.
func (g *Globe) SurfaceAvailable() bool {
	return g.surf.Available()
}

// Projection returns the projection built for the last frame, or nil before
// the first painted frame.
func (g *Globe) Projection() *geo.Orthographic {
	return g.proj
}

// Hovered returns the hovered point.
func (g *Globe) Hovered() (scene.Point, bool) {
	return g.hover, g.hovering
}

// Frames returns the number of frames ticked since mount.
func (g *Globe) Frames() uint64 {
	return g.frames
}

func (g *Globe) selected() (scene.Point, bool) {
	if g.opts.Selected == nil {
		return scene.Point{}, false
	}
	return g.opts.Selected()
}
