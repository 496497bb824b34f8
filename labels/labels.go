// Package labels places the large anchored labels of hovered and selected
// points. Anchors trail their ideal position instead of snapping to it.
package labels

// Rect is a screen-space box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Anchor is the smoothed top-left corner of a label box.
type Anchor struct {
	X, Y float64
	W, H float64
}

// Box returns the anchor's screen rectangle.
func (a Anchor) Box() Rect {
	return Rect{X: a.X, Y: a.Y, W: a.W, H: a.H}
}

// Layout keeps one anchor per point name. Anchors are created lazily and
// left dormant when their point stops being hovered or selected.
type Layout struct {
	OffsetX, OffsetY float64
	Smoothing        float64 // fraction of remaining distance covered per frame

	anchors map[string]*Anchor
}

// New creates a layout placing labels below-right of their markers.
func New(offsetX, offsetY, smoothing float64) *Layout {
	return &Layout{
		OffsetX:   offsetX,
		OffsetY:   offsetY,
		Smoothing: smoothing,
		anchors:   make(map[string]*Anchor),
	}
}

// Place moves the anchor for name one frame toward its ideal position next
// to the marker at (mx, my) and returns it. A new anchor starts at the ideal
// position.
func (l *Layout) Place(name string, mx, my, w, h float64) Anchor {
	idealX := mx + l.OffsetX
	idealY := my + l.OffsetY

	a, ok := l.anchors[name]
	if !ok {
		a = &Anchor{X: idealX, Y: idealY}
		l.anchors[name] = a
	} else {
		a.X += (idealX - a.X) * l.Smoothing
		a.Y += (idealY - a.Y) * l.Smoothing
	}
	a.W, a.H = w, h
	return *a
}

// Box returns the last placed box for name.
func (l *Layout) Box(name string) (Rect, bool) {
	a, ok := l.anchors[name]
	if !ok {
		return Rect{}, false
	}
	return a.Box(), true
}

// Len returns the number of anchors, dormant ones included.
func (l *Layout) Len() int {
	return len(l.anchors)
}

// Reset drops every anchor.
func (l *Layout) Reset() {
	clear(l.anchors)
}
