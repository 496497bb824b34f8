package globe

import (
	"time"

	"github.com/pthm-cable/orbis/camera"
)

// PointerDown starts a drag. Any flight in progress is abandoned.
func (g *Globe) PointerDown(x, y float64, now time.Time) {
	if !g.opts.Interactive || !g.hasScene {
		return
	}
	g.cancelFlight()
	g.pressed = true
	g.orbit.BeginDrag(x, y, now)
}

// PointerMove drags while pressed, otherwise updates the hovered point.
func (g *Globe) PointerMove(x, y float64, now time.Time) {
	if !g.opts.Interactive {
		return
	}
	if g.pressed {
		g.orbit.DragTo(x, y, now)
		return
	}
	p, ok := g.HitTest(x, y)
	g.setHover(p, ok)
}

// PointerUp ends a drag. Short travel counts as a click on the point under
// the pointer; longer travel throws the globe.
func (g *Globe) PointerUp(x, y float64, now time.Time) {
	if !g.opts.Interactive || !g.pressed {
		return
	}
	g.pressed = false
	g.orbit.EndDrag(now)

	if g.orbit.DragTravel() >= g.params.ClickSlop {
		return
	}
	g.settle()
	if p, ok := g.HitTest(x, y); ok {
		g.activate(p)
	}
}

// PointerLeave releases a drag in progress and clears the hover.
func (g *Globe) PointerLeave(now time.Time) {
	if !g.opts.Interactive {
		return
	}
	if g.pressed {
		g.pressed = false
		g.orbit.EndDrag(now)
	}
	g.setHover(g.hover, false)
}

// Wheel zooms by a wheel delta. Positive deltaY zooms out.
func (g *Globe) Wheel(deltaY float64) {
	if !g.opts.Interactive {
		return
	}
	g.orbit.Wheel(deltaY)
}

// settle drops any throw velocity back to the idle baseline.
func (g *Globe) settle() {
	if g.orbit.State() == camera.Dragging {
		g.orbit.EndDrag(time.Time{})
	}
	g.orbit.VelYaw = g.orbit.IdleYaw
	g.orbit.VelPitch = 0
}
