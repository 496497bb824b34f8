package globe

import (
	"testing"
	"time"

	"github.com/pthm-cable/orbis/camera"
	"github.com/pthm-cable/orbis/geo"
)

func TestFlyToScenario(t *testing.T) {
	var done []geo.Rotation
	h := newHarness(t, Options{Interactive: true})
	h.globe.AddListener(func(e Event) {
		if e.Kind == EventFlightDone {
			done = append(done, h.globe.Orientation())
		}
	})
	h.globe.Mount(planet(newYork), testViewport)
	h.globe.SetZoomPercent(50)
	h.frames(1)

	// Drag away from the starting orientation first.
	h.globe.PointerDown(400, 300, h.now)
	h.globe.PointerMove(600, 150, h.now.Add(16*time.Millisecond))
	h.globe.PointerUp(600, 150, h.now.Add(16*time.Millisecond))
	h.frames(5)

	h.globe.FlyTo(newYork)
	if h.globe.State() != camera.Animating {
		t.Fatalf("expected animating state, got %v", h.globe.State())
	}

	h.frames(10)
	if len(done) != 0 {
		t.Fatal("flight finished too early")
	}

	// 1200ms at 16ms per frame.
	h.frames(80)
	if len(done) != 1 {
		t.Fatalf("expected one completed flight, got %d", len(done))
	}
	want := geo.Rotation{Yaw: 74, Pitch: -40, Roll: 0}
	if done[0] != want {
		t.Errorf("expected rotation %+v at completion, got %+v", want, done[0])
	}
	if h.globe.State() != camera.Idle {
		t.Errorf("expected idle after flight, got %v", h.globe.State())
	}
	if h.globe.orbit.VelYaw != h.globe.orbit.IdleYaw {
		t.Errorf("expected idle drift after flight, got %f", h.globe.orbit.VelYaw)
	}
}

func TestFlyToSuspendsInertia(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(origin, newYork), testViewport)
	h.frames(1)

	h.globe.orbit.VelYaw = 5
	h.globe.FlyTo(newYork)
	if h.globe.orbit.VelYaw != 0 || h.globe.orbit.VelPitch != 0 {
		t.Error("expected velocity zeroed by flight")
	}
}

func TestFlyToRestartsOnNewRequest(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(origin, east, newYork), testViewport)
	h.frames(1)

	h.globe.FlyTo(newYork)
	h.frames(20)
	h.globe.FlyTo(east)
	h.frames(100)

	flights := 0
	for _, e := range h.events {
		if e.Kind == EventFlightDone {
			flights++
			if e.Point.Name != east.Name {
				t.Errorf("stale flight to %s completed", e.Point.Name)
			}
			if e.Rotation != (geo.Rotation{Yaw: -20, Pitch: 0, Roll: 0}) {
				t.Errorf("expected (-20, 0, 0), got %+v", e.Rotation)
			}
		}
	}
	if flights != 1 {
		t.Errorf("expected exactly one completed flight, got %d", flights)
	}
	if h.sched.Pending() != 1 {
		t.Errorf("expected only the frame loop pending, got %d", h.sched.Pending())
	}
}

func TestFlyToIgnoredInBelt(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(belt(beltRock), testViewport)
	h.frames(1)

	before := h.globe.Orientation()
	h.globe.FlyTo(beltRock)
	if h.globe.Flying() || h.globe.State() != camera.Idle {
		t.Error("expected fly-to to be ignored in belt mode")
	}
	if h.globe.FlyToName(beltRock.Name) {
		t.Error("expected FlyToName to report the request was ignored")
	}
	h.frames(100)
	if h.globe.Orientation() != before {
		t.Errorf("orientation changed in belt mode: %+v -> %+v", before, h.globe.Orientation())
	}
}

func TestPointerDownCancelsFlight(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin, newYork), testViewport)
	h.frames(1)

	h.globe.FlyTo(newYork)
	h.frames(5)
	h.globe.PointerDown(400, 300, h.now)
	if h.globe.Flying() {
		t.Error("expected flight cancelled by drag")
	}
	if h.globe.State() != camera.Dragging {
		t.Errorf("expected dragging, got %v", h.globe.State())
	}

	h.frames(100)
	if h.count(EventFlightDone) != 0 {
		t.Error("cancelled flight completed")
	}
}

func TestFlyToName(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(planet(origin, newYork), testViewport)

	if !h.globe.FlyToName(newYork.Name) {
		t.Error("expected flight to a known point")
	}
	if h.globe.FlyToName("Atlantis") {
		t.Error("expected unknown point to be rejected")
	}
}

func TestSetOrientationAbandonsFlight(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin, newYork), testViewport)
	h.frames(1)

	h.globe.FlyTo(newYork)
	h.frames(3)
	h.globe.SetOrientation(geo.Rotation{Yaw: 10, Pitch: 120})

	if h.globe.Flying() {
		t.Error("expected flight abandoned")
	}
	r := h.globe.Orientation()
	if r.Yaw != 10 || r.Pitch != 90 {
		t.Errorf("expected (10, 90) with pitch clamped, got %+v", r)
	}
	if h.globe.State() != camera.Idle {
		t.Errorf("expected idle, got %v", h.globe.State())
	}
}
