package globe

import (
	"math"

	"github.com/pthm-cable/orbis/scene"
)

// locate returns the on-screen position of p for the current frame, shared
// by drawing and hit-testing. visible is false when the point is culled;
// facing is false for back-facing points drawn dimmed in belt mode.
func (g *Globe) locate(p scene.Point) (x, y float64, visible, facing bool) {
	if g.proj == nil {
		return 0, 0, false, false
	}
	if g.mode.DrawsSilhouette() && !g.proj.Facing(p.Lat, p.Lng) {
		return 0, 0, false, false
	}
	x, y, ok := g.proj.Project(p.Lat, p.Lng)
	if !ok {
		return 0, 0, false, false
	}

	facing = true
	if spread := g.mode.Spread(g.params.BeltSpread); spread != 1 {
		x = g.proj.CenterX + (x-g.proj.CenterX)*spread
		y = g.proj.CenterY + (y-g.proj.CenterY)*spread
		facing = math.Abs(g.proj.LongitudeOffset(p.Lng)) <= 90
	}
	return x, y, true, facing
}

// Locate reports where p was placed in the last drawn frame.
func (g *Globe) Locate(p scene.Point) (x, y float64, visible, facing bool) {
	return g.locate(p)
}

// candidates returns the hit-testable points in priority order: the
// configuration's points, then asteroids.
func (g *Globe) candidates() []scene.Point {
	if g.field == nil {
		return g.config.Points
	}
	asteroids := g.field.AsteroidPoints()
	if len(asteroids) == 0 {
		return g.config.Points
	}
	out := make([]scene.Point, 0, len(g.config.Points)+len(asteroids))
	out = append(out, g.config.Points...)
	return append(out, asteroids...)
}

// HitTest returns the first point whose marker lies within the hit radius
// of (x, y), or whose active label box contains it. It uses the projection
// of the last drawn frame.
func (g *Globe) HitTest(x, y float64) (scene.Point, bool) {
	if g.proj == nil || !g.hasScene {
		return scene.Point{}, false
	}
	r := g.params.HitRadius
	for _, p := range g.candidates() {
		if g.activeLabels[p.Name] {
			if box, ok := g.layout.Box(p.Name); ok && box.Contains(x, y) {
				return p, true
			}
		}

		px, py, visible, _ := g.locate(p)
		if !visible {
			continue
		}
		if math.Hypot(px-x, py-y) < r {
			return p, true
		}
	}
	return scene.Point{}, false
}

// setHover updates the hovered point. OnHover fires only when the hovering
// flag flips; listeners see every change of hovered point.
func (g *Globe) setHover(p scene.Point, ok bool) {
	if ok == g.hovering && (!ok || p.Name == g.hover.Name) {
		return
	}
	flipped := ok != g.hovering
	g.hover, g.hovering = p, ok
	if !ok {
		g.hover = scene.Point{}
	}

	if flipped && g.opts.OnHover != nil {
		g.opts.OnHover(ok)
	}
	g.emit(Event{Kind: EventHover, Point: g.hover, Hovering: ok})
}

// activate reports a click on p to the owner.
func (g *Globe) activate(p scene.Point) {
	if g.opts.OnActivate != nil {
		g.opts.OnActivate(p)
	}
	g.emit(Event{Kind: EventActivate, Point: p})
}
