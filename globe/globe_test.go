package globe

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/orbis/config"
	"github.com/pthm-cable/orbis/frame"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/scene"
	"github.com/pthm-cable/orbis/surface/surfacetest"
)

var (
	newYork  = scene.Point{Name: "New York", Lat: 40, Lng: -74, Category: scene.CategoryCity, Meta: []string{"North America", "pop. 8.3M"}}
	origin   = scene.Point{Name: "Origin", Lat: 0, Lng: 0}
	east     = scene.Point{Name: "East", Lat: 0, Lng: 20, Category: scene.CategoryPort}
	farSide  = scene.Point{Name: "Far Side", Lat: 0, Lng: 180}
	beltRock = scene.Point{Name: "Ceres", Lat: 4, Lng: 12, Category: scene.CategoryStation}
)

var testViewport = Viewport{Width: 800, Height: 600, DPR: 1}

func testParams(t *testing.T) Params {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := ParamsFromConfig(cfg)
	p.Decor.StarCount = 20
	p.Decor.AsteroidCount = 30
	return p
}

type harness struct {
	globe  *Globe
	canvas *surfacetest.Canvas
	sched  *frame.Scheduler
	now    time.Time
	events []Event
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		canvas: surfacetest.NewCanvas(),
		sched:  frame.NewScheduler(),
		now:    time.Unix(1000, 0),
	}
	opts.Listeners = append(opts.Listeners, func(e Event) { h.events = append(h.events, e) })
	h.globe = New(testParams(t), h.canvas, h.sched, opts)
	return h
}

// frames runs n frames 16ms apart.
func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.now = h.now.Add(16 * time.Millisecond)
		h.sched.Run(h.now)
	}
}

func (h *harness) count(kind EventKind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// screen returns where p was drawn in the last frame.
func (h *harness) screen(t *testing.T, p scene.Point) (float64, float64) {
	t.Helper()
	x, y, visible, _ := h.globe.locate(p)
	if !visible {
		t.Fatalf("point %s not visible", p.Name)
	}
	return x, y
}

func planet(points ...scene.Point) scene.Configuration {
	return scene.Configuration{ID: "earth", Name: "Earth", Points: points}
}

func belt(points ...scene.Point) scene.Configuration {
	return scene.Configuration{ID: "asteroid-belt", Name: "Belt", Points: points}
}

func TestMountStartsLoop(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(newYork), testViewport)

	h.frames(3)
	if h.globe.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", h.globe.Frames())
	}
	if h.sched.Pending() != 1 {
		t.Errorf("expected loop to stay registered, got %d pending", h.sched.Pending())
	}
	if h.globe.Projection() == nil {
		t.Error("expected a projection after painting")
	}
	if h.count(EventScene) != 1 {
		t.Errorf("expected one scene event, got %d", h.count(EventScene))
	}
}

func TestPlanetStartsCenteredOnFirstPoint(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(newYork, origin), testViewport)

	r := h.globe.Orientation()
	if r.Yaw != 74 || r.Pitch != -40 || r.Roll != 0 {
		t.Errorf("expected (74, -40, 0), got %+v", r)
	}

	h.globe.SetConfiguration(planet())
	p := testParams(t)
	if r := h.globe.Orientation(); r.Yaw != p.DefaultYaw || r.Pitch != p.DefaultPitch {
		t.Errorf("expected default orientation for empty scene, got %+v", r)
	}
}

func TestTickSkipsPaintWithoutViewport(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(newYork), Viewport{})

	h.frames(2)
	if len(h.canvas.Ops) != 0 {
		t.Errorf("expected nothing painted, got %d ops", len(h.canvas.Ops))
	}
	if h.sched.Pending() != 1 {
		t.Error("expected loop to survive a frame without viewport")
	}

	h.globe.SetViewport(testViewport)
	h.frames(1)
	if h.canvas.Count("clear") != 1 {
		t.Error("expected painting once the viewport is known")
	}
}

func TestZoomPercentScenario(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(newYork), testViewport)
	p := testParams(t).Orbit

	h.globe.SetZoomPercent(50)
	if _, target := h.globe.Scale(); target != p.MinScale+0.5*(p.MaxScale-p.MinScale) {
		t.Errorf("expected target scale %f, got %f", p.MinScale+0.5*(p.MaxScale-p.MinScale), target)
	}
	if got := h.globe.ZoomPercent(); math.Abs(got-50) > 1e-9 {
		t.Errorf("expected zoom 50%%, got %f", got)
	}

	h.frames(300)
	cur, target := h.globe.Scale()
	if math.Abs(cur-target) > 1e-3 {
		t.Errorf("expected scale to settle on %f, got %f", target, cur)
	}
}

func TestWheelKeepsScaleInBounds(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(newYork), testViewport)
	p := testParams(t).Orbit

	for i := 0; i < 200; i++ {
		h.globe.Wheel(-300)
		h.frames(1)
		if cur, _ := h.globe.Scale(); cur < p.MinScale || cur > p.MaxScale {
			t.Fatalf("scale %f escaped bounds", cur)
		}
	}
	for i := 0; i < 200; i++ {
		h.globe.Wheel(300)
		h.frames(1)
		if cur, _ := h.globe.Scale(); cur < p.MinScale || cur > p.MaxScale {
			t.Fatalf("scale %f escaped bounds", cur)
		}
	}
}

func TestSurfaceFollowsOrbit(t *testing.T) {
	surf := &surfacetest.Surface{}
	h := newHarness(t, Options{Surface: surf})
	h.globe.Mount(planet(newYork), Viewport{Width: 800, Height: 600, DPR: 2})

	if surf.Width != 1600 || surf.Height != 1200 {
		t.Errorf("expected backing size 1600x1200, got %dx%d", surf.Width, surf.Height)
	}
	if !surf.Loaded {
		t.Error("expected sphere loaded for a planet")
	}

	h.frames(1)
	p := testParams(t)
	r := h.globe.Orientation()
	cur, _ := h.globe.Scale()

	wantDist := p.BaseDistance * p.BaseScale / cur
	if math.Abs(surf.Distance-wantDist) > 1e-9 {
		t.Errorf("expected camera distance %f, got %f", wantDist, surf.Distance)
	}
	if math.Abs(surf.RotX-(-r.Pitch*math.Pi/180)) > 1e-9 {
		t.Errorf("expected x rotation %f, got %f", -r.Pitch*math.Pi/180, surf.RotX)
	}
	if math.Abs(surf.RotY-(r.Yaw+p.TextureYawBias)*math.Pi/180) > 1e-9 {
		t.Errorf("expected y rotation %f, got %f", (r.Yaw+p.TextureYawBias)*math.Pi/180, surf.RotY)
	}
	if !surf.Visible || surf.Presents != 1 {
		t.Errorf("expected sphere rendered and presented, got visible=%v presents=%d", surf.Visible, surf.Presents)
	}
}

func TestUnmountReleasesSurface(t *testing.T) {
	surf := &surfacetest.Surface{}
	h := newHarness(t, Options{Surface: surf})
	h.globe.Mount(planet(newYork), testViewport)
	h.frames(2)

	h.globe.FlyTo(origin)
	h.globe.Unmount()

	if surf.Closes != 1 {
		t.Errorf("expected surface closed once, got %d", surf.Closes)
	}
	if h.sched.Pending() != 0 {
		t.Errorf("expected no pending callbacks after unmount, got %d", h.sched.Pending())
	}
	if h.globe.Flying() {
		t.Error("expected flight cancelled by unmount")
	}

	frames := h.globe.Frames()
	h.frames(3)
	if h.globe.Frames() != frames {
		t.Error("frame loop kept running after unmount")
	}
}

func TestIdleDriftByMode(t *testing.T) {
	p := testParams(t)

	h := newHarness(t, Options{})
	h.globe.Mount(planet(newYork), testViewport)
	h.frames(10)
	if v := h.globe.orbit.VelYaw; math.Abs(v-p.IdleYaw) > 1e-9 {
		t.Errorf("expected planet idle drift %f, got %f", p.IdleYaw, v)
	}

	h.globe.SetConfiguration(belt(beltRock))
	h.frames(10)
	if v := h.globe.orbit.VelYaw; v != 0 {
		t.Errorf("expected belt to rest, got yaw velocity %f", v)
	}
	if r := h.globe.Orientation(); r.Yaw != p.BeltYaw || r.Pitch != p.BeltPitch {
		t.Errorf("expected belt default orientation, got %+v", r)
	}
}

// fakeLandmass records requests and lets tests deliver results.
type fakeLandmass struct {
	requests []uint64
	results  chan geo.LandmassResult
}

func newFakeLandmass() *fakeLandmass {
	return &fakeLandmass{results: make(chan geo.LandmassResult, 8)}
}

func (f *fakeLandmass) Request(generation uint64, src string) {
	f.requests = append(f.requests, generation)
}

func (f *fakeLandmass) Results() <-chan geo.LandmassResult {
	return f.results
}
