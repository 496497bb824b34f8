package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WheelStep converts one raylib wheel notch into the pixel delta browsers
// report, negated so that rolling forward zooms in.
const WheelStep = -100

// Pointer receives pointer and wheel input.
type Pointer interface {
	PointerDown(x, y float64, now time.Time)
	PointerMove(x, y float64, now time.Time)
	PointerUp(x, y float64, now time.Time)
	PointerLeave(now time.Time)
	Wheel(deltaY float64)
}

// PointerSample is the mouse state for one frame.
type PointerSample struct {
	X, Y     float32
	OnScreen bool
	Pressed  bool // left button went down this frame
	Released bool // left button went up this frame
	Wheel    float32
}

// SamplePointer reads the mouse from raylib.
func SamplePointer() PointerSample {
	pos := rl.GetMousePosition()
	return PointerSample{
		X:        pos.X,
		Y:        pos.Y,
		OnScreen: rl.IsCursorOnScreen(),
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Wheel:    rl.GetMouseWheelMove(),
	}
}

// PointerRouter turns per-frame samples into pointer events. Presses and
// wheel over a panel are left to the panel; a drag that started on the globe
// keeps receiving moves over panels until release.
type PointerRouter struct {
	inside   bool // pointer is over the globe area
	dragging bool
	lastX    float32
	lastY    float32
}

// Feed delivers s to p. overPanel reports whether the sample lies on UI chrome.
func (r *PointerRouter) Feed(p Pointer, s PointerSample, overPanel bool, now time.Time) {
	x, y := float64(s.X), float64(s.Y)

	if !s.OnScreen || (overPanel && !r.dragging) {
		if r.inside {
			p.PointerLeave(now)
		}
		r.inside = false
		r.dragging = false
		return
	}

	moved := !r.inside || s.X != r.lastX || s.Y != r.lastY
	r.inside = true
	r.lastX, r.lastY = s.X, s.Y

	if s.Pressed {
		p.PointerDown(x, y, now)
		r.dragging = true
	} else if moved {
		p.PointerMove(x, y, now)
	}
	if s.Released && r.dragging {
		p.PointerUp(x, y, now)
		r.dragging = false
	}
	if s.Wheel != 0 && !overPanel {
		p.Wheel(float64(s.Wheel) * WheelStep)
	}
}

// Dragging reports whether a press started on the globe is still held.
func (r *PointerRouter) Dragging() bool {
	return r.dragging
}

// Inside reports whether a point lies in any of rects.
func Inside(x, y float32, rects ...rl.Rectangle) bool {
	for _, rc := range rects {
		if rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, rc) {
			return true
		}
	}
	return false
}
