// Package surface defines the drawing capabilities the globe renders through:
// an optional 3D sphere surface and a 2D overlay canvas.
package surface

import (
	"errors"
	"image/color"

	"github.com/pthm-cable/orbis/geo"
)

// ErrUnavailable is returned when a 3D surface cannot be created.
var ErrUnavailable = errors.New("surface: 3D rendering unavailable")

// Surface is a renderable sphere that can be rotated and whose distance
// from the camera can be set.
type Surface interface {
	// Available is false for the null surface.
	Available() bool

	// Resize sets the backing resolution in device pixels.
	Resize(width, height int)

	// Load creates the sphere mesh and material. Textures are tried in
	// order; on failure the sphere keeps a plain tint and the error is
	// returned for logging.
	Load(textures []string) error
	// Unload releases the mesh and material. The surface stays usable.
	Unload()

	SetCameraDistance(d float64)
	// SetRotation sets the mesh rotation in radians around the X and Y axes.
	SetRotation(x, y float64)

	Render()
	Clear()
	// Present composites the last rendered frame onto the screen.
	Present()

	// Close releases every GPU resource. It is safe to call more than once.
	Close()
}

// None is the null surface used when 3D rendering is unavailable.
type None struct{}

func (None) Available() bool              { return false }
func (None) Resize(int, int)              {}
func (None) Load([]string) error          { return nil }
func (None) Unload()                      {}
func (None) SetCameraDistance(float64)    {}
func (None) SetRotation(float64, float64) {}
func (None) Render()                      {}
func (None) Clear()                       {}
func (None) Present()                     {}
func (None) Close()                       {}

// Canvas is the 2D overlay drawn on top of the surface.
type Canvas interface {
	Clear(c color.RGBA)

	Circle(x, y, r float64, c color.RGBA)
	CircleLines(x, y, r float64, c color.RGBA)
	Line(x1, y1, x2, y2 float64, c color.RGBA)
	Polyline(pts []geo.Vec2, c color.RGBA)
	Rect(x, y, w, h float64, c color.RGBA)
	RectLines(x, y, w, h float64, c color.RGBA)

	Text(s string, x, y float64, size int, c color.RGBA)
	MeasureText(s string, size int) float64
}

// Fade scales a color's alpha by f in [0, 1].
func Fade(c color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	c.A = uint8(float64(c.A) * f)
	return c
}

// Discard is a canvas that draws nothing, for headless runs. Text is
// measured at a fixed advance so label boxes keep a plausible size.
type Discard struct{}

func (Discard) Clear(color.RGBA)                                         {}
func (Discard) Circle(float64, float64, float64, color.RGBA)             {}
func (Discard) CircleLines(float64, float64, float64, color.RGBA)        {}
func (Discard) Line(float64, float64, float64, float64, color.RGBA)      {}
func (Discard) Polyline([]geo.Vec2, color.RGBA)                          {}
func (Discard) Rect(float64, float64, float64, float64, color.RGBA)      {}
func (Discard) RectLines(float64, float64, float64, float64, color.RGBA) {}
func (Discard) Text(string, float64, float64, int, color.RGBA)           {}

func (Discard) MeasureText(s string, size int) float64 {
	return float64(len(s)*size) * 0.6
}
