package globe

import (
	"math"
	"strings"
	"testing"

	"github.com/pthm-cable/orbis/scene"
)

func TestHitTestRadius(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin, east), testViewport)
	h.frames(1)

	r := testParams(t).HitRadius
	x, y := h.screen(t, east)

	tests := []struct {
		name   string
		dx, dy float64
		want   bool
	}{
		{"on marker", 0, 0, true},
		{"inside radius", r - 1, 0, true},
		{"diagonal inside", (r - 1) / math.Sqrt2, (r - 1) / math.Sqrt2, true},
		{"outside radius", r + 1, 0, false},
		{"far below", 0, r * 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := h.globe.HitTest(x+tt.dx, y+tt.dy)
			if ok != tt.want {
				t.Fatalf("HitTest hit=%v, want %v", ok, tt.want)
			}
			if ok && p.Name != east.Name {
				t.Errorf("expected %s, got %s", east.Name, p.Name)
			}
		})
	}
}

func TestHitTestSkipsBackFacingPlanetPoints(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin, farSide), testViewport)
	h.frames(1)

	for y := 0.0; y <= 600; y += 5 {
		for x := 0.0; x <= 800; x += 5 {
			if p, ok := h.globe.HitTest(x, y); ok && p.Name == farSide.Name {
				t.Fatalf("back-facing point hit at (%f, %f)", x, y)
			}
		}
	}
}

func TestHitTestFirstMatchWins(t *testing.T) {
	twin := scene.Point{Name: "Twin", Lat: 0.5, Lng: 0.5}
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin, twin), testViewport)
	h.frames(1)

	x, y := h.screen(t, twin)
	p, ok := h.globe.HitTest(x, y)
	if !ok || p.Name != origin.Name {
		t.Errorf("expected first point in order to win, got %+v ok=%v", p, ok)
	}
}

func TestHitTestLabelBox(t *testing.T) {
	selected := true
	h := newHarness(t, Options{
		Interactive: true,
		Selected: func() (scene.Point, bool) {
			return newYork, selected
		},
	})
	h.globe.Mount(planet(newYork), testViewport)
	h.frames(1)

	box, ok := h.globe.layout.Box(newYork.Name)
	if !ok {
		t.Fatal("expected a label anchor for the selected point")
	}
	qx, qy := box.X+box.W/2, box.Y+box.H/2
	mx, my := h.screen(t, newYork)
	if math.Hypot(qx-mx, qy-my) <= testParams(t).HitRadius {
		t.Fatal("label center too close to the marker for this test")
	}

	p, ok := h.globe.HitTest(qx, qy)
	if !ok || p.Name != newYork.Name {
		t.Errorf("expected label box to hit %s, got %+v ok=%v", newYork.Name, p, ok)
	}

	// A dormant anchor is not a target.
	selected = false
	h.frames(1)
	if _, ok := h.globe.HitTest(qx, qy); ok {
		t.Error("expected no hit on a dormant label box")
	}
}

func TestHoverEmittedOnTransitionsOnly(t *testing.T) {
	var hovers []bool
	h := newHarness(t, Options{
		Interactive: true,
		OnHover:     func(on bool) { hovers = append(hovers, on) },
	})
	h.globe.Mount(planet(origin, east), testViewport)
	h.frames(1)

	ox, oy := h.screen(t, origin)
	ex, ey := h.screen(t, east)

	h.globe.PointerMove(ox, oy, h.now)
	h.globe.PointerMove(ox+1, oy, h.now)
	h.globe.PointerMove(ox+2, oy+1, h.now)
	if len(hovers) != 1 || !hovers[0] {
		t.Fatalf("expected a single hover-on, got %v", hovers)
	}

	// Moving from one point to another keeps hovering.
	h.globe.PointerMove(ex, ey, h.now)
	if len(hovers) != 1 {
		t.Errorf("expected no hover callback between points, got %v", hovers)
	}
	if p, ok := h.globe.Hovered(); !ok || p.Name != east.Name {
		t.Errorf("expected %s hovered, got %+v", east.Name, p)
	}

	h.globe.PointerMove(5, 5, h.now)
	h.globe.PointerMove(6, 5, h.now)
	if len(hovers) != 2 || hovers[1] {
		t.Errorf("expected a single hover-off, got %v", hovers)
	}

	// Listeners see each change of hovered point.
	if n := h.count(EventHover); n != 3 {
		t.Errorf("expected 3 hover events, got %d", n)
	}
}

func TestClickActivates(t *testing.T) {
	var activated []string
	h := newHarness(t, Options{
		Interactive: true,
		OnActivate:  func(p scene.Point) { activated = append(activated, p.Name) },
	})
	h.globe.Mount(planet(origin, east), testViewport)
	h.frames(1)

	x, y := h.screen(t, east)
	h.globe.PointerDown(x, y, h.now)
	h.globe.PointerMove(x+2, y, h.now)
	h.globe.PointerUp(x+2, y, h.now)

	if len(activated) != 1 || activated[0] != east.Name {
		t.Fatalf("expected %s activated, got %v", east.Name, activated)
	}
	if v := h.globe.orbit.VelYaw; v != h.globe.orbit.IdleYaw {
		t.Errorf("expected click not to throw, got yaw velocity %f", v)
	}

	// A long drag is not a click.
	h.globe.PointerDown(x, y, h.now)
	h.globe.PointerMove(x+80, y, h.now)
	h.globe.PointerUp(x+80, y, h.now)
	if len(activated) != 1 {
		t.Errorf("expected drag not to activate, got %v", activated)
	}
}

func TestDragThrowsGlobe(t *testing.T) {
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(planet(origin), testViewport)
	h.frames(1)

	start := h.globe.Orientation()
	h.globe.PointerDown(400, 300, h.now)
	h.globe.PointerMove(440, 300, h.now.Add(16e6))
	h.globe.PointerMove(480, 300, h.now.Add(32e6))

	sens := testParams(t).Orbit.DragSensitivity
	if got := h.globe.Orientation().Yaw; math.Abs(got-(start.Yaw+80*sens)) > 1e-9 {
		t.Errorf("expected yaw %f while dragging, got %f", start.Yaw+80*sens, got)
	}

	h.globe.PointerUp(480, 300, h.now.Add(32e6))
	if h.globe.State().String() != "idle" {
		t.Errorf("expected idle after release, got %v", h.globe.State())
	}
	if v := h.globe.orbit.VelYaw; v <= h.globe.orbit.IdleYaw {
		t.Errorf("expected a throw above idle drift, got %f", v)
	}
}

func TestInteractionsDisabled(t *testing.T) {
	var calls int
	h := newHarness(t, Options{
		Interactive: false,
		OnHover:     func(bool) { calls++ },
		OnActivate:  func(scene.Point) { calls++ },
	})
	h.globe.Mount(planet(origin, east), testViewport)
	h.frames(1)

	before := h.globe.Orientation()
	_, target := h.globe.Scale()
	x, y := h.screen(t, east)

	h.globe.PointerDown(x, y, h.now)
	h.globe.PointerMove(x+100, y+50, h.now)
	h.globe.PointerUp(x+100, y+50, h.now)
	h.globe.PointerMove(x, y, h.now)
	h.globe.PointerDown(x, y, h.now)
	h.globe.PointerUp(x, y, h.now)
	h.globe.Wheel(-500)
	h.globe.PointerLeave(h.now)

	if h.globe.Orientation() != before {
		t.Errorf("orientation changed while disabled: %+v -> %+v", before, h.globe.Orientation())
	}
	if _, got := h.globe.Scale(); got != target {
		t.Errorf("target scale changed while disabled: %f -> %f", target, got)
	}
	if calls != 0 {
		t.Errorf("expected no callbacks while disabled, got %d", calls)
	}
}

func TestBeltHitTestIncludesBackAndAsteroids(t *testing.T) {
	back := scene.Point{Name: "Backside", Lat: 0, Lng: 180 - 30}
	h := newHarness(t, Options{Interactive: true})
	h.globe.Mount(belt(beltRock, back), testViewport)
	h.frames(1)

	// Belt mode projects everything and spreads it from the center.
	x, y, visible, facing := h.globe.locate(back)
	if !visible {
		t.Fatal("expected back point visible in belt mode")
	}
	if facing {
		t.Error("expected back point flagged as back-facing")
	}
	if p, ok := h.globe.HitTest(x, y); !ok || p.Name != back.Name {
		t.Errorf("expected %s hit in belt mode, got %+v ok=%v", back.Name, p, ok)
	}

	rocks := h.globe.field.AsteroidPoints()
	if len(rocks) == 0 {
		t.Fatal("expected asteroids in belt mode")
	}
	for _, rock := range rocks {
		rx, ry, _, _ := h.globe.locate(rock)
		p, ok := h.globe.HitTest(rx, ry)
		if !ok {
			t.Fatalf("expected a hit on asteroid %s", rock.Name)
		}
		if !strings.HasPrefix(p.Name, "AST-") && p.Name != beltRock.Name && p.Name != back.Name {
			t.Errorf("unexpected hit %s", p.Name)
		}
	}
}

func TestBeltSpreadExaggeratesRadially(t *testing.T) {
	h := newHarness(t, Options{})
	h.globe.Mount(belt(beltRock), testViewport)
	h.frames(1)

	proj := h.globe.Projection()
	px, py, _ := proj.Project(beltRock.Lat, beltRock.Lng)
	x, y, _, _ := h.globe.locate(beltRock)

	spread := testParams(t).BeltSpread
	if math.Abs((x-proj.CenterX)-(px-proj.CenterX)*spread) > 1e-9 ||
		math.Abs((y-proj.CenterY)-(py-proj.CenterY)*spread) > 1e-9 {
		t.Errorf("expected spread %f applied: projected (%f, %f), located (%f, %f)", spread, px, py, x, y)
	}
}
