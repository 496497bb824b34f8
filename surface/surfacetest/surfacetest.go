// Package surfacetest provides recording fakes of the surface capabilities.
package surfacetest

import (
	"image/color"

	"github.com/pthm-cable/orbis/geo"
)

// Op is one recorded canvas call.
type Op struct {
	Kind   string // clear, circle, circle_lines, line, polyline, rect, rect_lines, text
	X, Y   float64
	W, H   float64 // radius in W for circles
	Text   string
	Points int
	Color  color.RGBA
}

// Canvas records draw calls. Text is measured at a fixed width per rune.
type Canvas struct {
	Ops       []Op
	CharWidth float64
}

// NewCanvas creates a canvas measuring text at 0.6 of the font size per rune.
func NewCanvas() *Canvas {
	return &Canvas{CharWidth: 0.6}
}

func (c *Canvas) record(op Op) {
	c.Ops = append(c.Ops, op)
}

func (c *Canvas) Clear(col color.RGBA) {
	c.Ops = c.Ops[:0]
	c.record(Op{Kind: "clear", Color: col})
}

func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	c.record(Op{Kind: "circle", X: x, Y: y, W: r, Color: col})
}

func (c *Canvas) CircleLines(x, y, r float64, col color.RGBA) {
	c.record(Op{Kind: "circle_lines", X: x, Y: y, W: r, Color: col})
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, col color.RGBA) {
	c.record(Op{Kind: "line", X: x1, Y: y1, W: x2, H: y2, Color: col})
}

func (c *Canvas) Polyline(pts []geo.Vec2, col color.RGBA) {
	c.record(Op{Kind: "polyline", Points: len(pts), Color: col})
}

func (c *Canvas) Rect(x, y, w, h float64, col color.RGBA) {
	c.record(Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: col})
}

func (c *Canvas) RectLines(x, y, w, h float64, col color.RGBA) {
	c.record(Op{Kind: "rect_lines", X: x, Y: y, W: w, H: h, Color: col})
}

func (c *Canvas) Text(s string, x, y float64, size int, col color.RGBA) {
	c.record(Op{Kind: "text", X: x, Y: y, H: float64(size), Text: s, Color: col})
}

func (c *Canvas) MeasureText(s string, size int) float64 {
	return float64(len([]rune(s))) * float64(size) * c.CharWidth
}

// Count returns how many recorded ops have the given kind.
func (c *Canvas) Count(kind string) int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded text string in draw order.
func (c *Canvas) Texts() []string {
	var out []string
	for _, op := range c.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Surface records calls made to a 3D surface.
type Surface struct {
	Width, Height int
	Distance      float64
	RotX, RotY    float64
	Textures      []string
	LoadErr       error

	Loaded   bool
	Renders  int
	Clears   int
	Presents int
	Loads    int
	Unloads  int
	Closes   int

	// Visible is true after Render and false after Clear.
	Visible bool
}

func (s *Surface) Available() bool { return true }

func (s *Surface) Resize(w, h int) {
	s.Width, s.Height = w, h
}

func (s *Surface) Load(textures []string) error {
	s.Loads++
	s.Loaded = true
	s.Textures = textures
	return s.LoadErr
}

func (s *Surface) Unload() {
	s.Unloads++
	s.Loaded = false
	s.Visible = false
}

func (s *Surface) SetCameraDistance(d float64) {
	s.Distance = d
}

func (s *Surface) SetRotation(x, y float64) {
	s.RotX, s.RotY = x, y
}

func (s *Surface) Render() {
	s.Renders++
	s.Visible = s.Loaded
}

func (s *Surface) Clear() {
	s.Clears++
	s.Visible = false
}

func (s *Surface) Present() {
	s.Presents++
}

func (s *Surface) Close() {
	s.Closes++
	s.Loaded = false
	s.Visible = false
}
