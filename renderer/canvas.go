package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbis/geo"
)

// Canvas draws the 2D overlay with raylib primitives. It must be used
// between rl.BeginDrawing and rl.EndDrawing.
type Canvas struct {
	strip []rl.Vector2
}

// NewCanvas creates a raylib overlay canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Clear(col color.RGBA) {
	rl.ClearBackground(col)
}

func (c *Canvas) Circle(x, y, r float64, col color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), col)
}

func (c *Canvas) CircleLines(x, y, r float64, col color.RGBA) {
	rl.DrawCircleLines(int32(x), int32(y), float32(r), col)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, col color.RGBA) {
	rl.DrawLineV(rl.NewVector2(float32(x1), float32(y1)), rl.NewVector2(float32(x2), float32(y2)), col)
}

// Polyline reuses one vertex buffer across calls.
func (c *Canvas) Polyline(pts []geo.Vec2, col color.RGBA) {
	if len(pts) < 2 {
		return
	}
	c.strip = c.strip[:0]
	for _, p := range pts {
		c.strip = append(c.strip, rl.NewVector2(float32(p.X), float32(p.Y)))
	}
	rl.DrawLineStrip(c.strip, col)
}

func (c *Canvas) Rect(x, y, w, h float64, col color.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), col)
}

func (c *Canvas) RectLines(x, y, w, h float64, col color.RGBA) {
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), 1, col)
}

func (c *Canvas) Text(s string, x, y float64, size int, col color.RGBA) {
	rl.DrawText(s, int32(x), int32(y), int32(size), col)
}

func (c *Canvas) MeasureText(s string, size int) float64 {
	return float64(rl.MeasureText(s, int32(size)))
}
