package globe

import (
	"math"
	"time"

	"github.com/pthm-cable/orbis/geo"
)

const radians = math.Pi / 180

// tick is the frame loop body. It re-registers itself first so nothing
// later in the frame can stop the loop.
func (g *Globe) tick(now time.Time) {
	g.loopID = g.sched.Request(g.tick)
	if g.start.IsZero() {
		g.start = now
	}
	g.frames++

	g.drainLandmass()

	// Inertia when idle, zoom easing always.
	g.orbit.Step()

	if !g.hasScene || !g.viewport.valid() {
		g.proj = nil
		return
	}
	g.proj = g.projection()

	g.renderSurface()
	g.draw(now.Sub(g.start).Seconds())
}

// projection builds this frame's projection from the orbit and viewport.
func (g *Globe) projection() *geo.Orthographic {
	return geo.NewOrthographic(
		g.viewport.Width/2,
		g.viewport.Height/2,
		g.orbit.Scale,
		g.orbit.Rotation(),
		g.mode.ClipAngle(),
	)
}

// renderSurface drives the 3D sphere in planet mode and keeps it cleared
// otherwise.
func (g *Globe) renderSurface() {
	if !g.mode.UsesSurface() || !g.surf.Available() {
		g.surf.Clear()
		return
	}
	g.surf.SetRotation(-g.orbit.Pitch*radians, (g.orbit.Yaw+g.params.TextureYawBias)*radians)
	if g.orbit.Scale > 0 {
		g.surf.SetCameraDistance(g.params.BaseDistance * g.params.BaseScale / g.orbit.Scale)
	}
	g.surf.Render()
}
