// Package geo provides the orthographic globe projection used for drawing and
// pointer hit-testing, plus graticule and landmass geometry helpers.
package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s2"
)

const (
	radians = math.Pi / 180
	degrees = 180 / math.Pi
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat, Lng float64
}

// Vec2 is a screen-space position in pixels.
type Vec2 struct {
	X, Y float64
}

// Rotation is a view orientation in degrees. Yaw rotates longitude, pitch
// rotates latitude and roll spins around the view axis.
type Rotation struct {
	Yaw, Pitch, Roll float64
}

// Orthographic projects the sphere as seen from infinite distance.
// It is rebuilt every frame from the current orientation, scale and viewport.
type Orthographic struct {
	CenterX, CenterY float64
	Scale            float64
	Rotation         Rotation

	// ClipAngle is the angular radius of the visible cap in degrees.
	// Zero disables clipping, so back-facing points still project.
	ClipAngle float64

	rot     mgl64.Mat3
	inv     mgl64.Mat3
	cosClip float64
}

// NewOrthographic creates a projection centered at (cx, cy) with the given
// scale (globe radius in pixels), rotation and clip angle.
func NewOrthographic(cx, cy, scale float64, r Rotation, clipAngle float64) *Orthographic {
	o := &Orthographic{
		CenterX:   cx,
		CenterY:   cy,
		Scale:     scale,
		Rotation:  r,
		ClipAngle: clipAngle,
	}

	// Longitude rotation first, then latitude, then roll.
	rz := mgl64.Rotate3DZ(math.Mod(r.Yaw, 360) * radians)
	ry := mgl64.Rotate3DY(-r.Pitch * radians)
	rx := mgl64.Rotate3DX(r.Roll * radians)
	o.rot = rx.Mul3(ry).Mul3(rz)
	o.inv = o.rot.Transpose()

	if clipAngle > 0 {
		o.cosClip = math.Cos(clipAngle * radians)
	}
	return o
}

// cartesian converts a geographic position to a unit vector.
func cartesian(lat, lng float64) mgl64.Vec3 {
	sinPhi, cosPhi := math.Sincos(lat * radians)
	sinLambda, cosLambda := math.Sincos(lng * radians)
	return mgl64.Vec3{cosPhi * cosLambda, cosPhi * sinLambda, sinPhi}
}

// Rotate returns the position of (lat, lng) in the rotated frame, in degrees.
// The view center maps to (0, 0).
func (o *Orthographic) Rotate(lat, lng float64) LatLng {
	v := o.rot.Mul3x1(cartesian(lat, lng))
	return LatLng{
		Lat: math.Asin(clampUnit(v[2])) * degrees,
		Lng: math.Atan2(v[1], v[0]) * degrees,
	}
}

// Project maps (lat, lng) to screen coordinates. ok is false when clipping is
// enabled and the point lies outside the visible cap.
func (o *Orthographic) Project(lat, lng float64) (x, y float64, ok bool) {
	v := o.rot.Mul3x1(cartesian(lat, lng))
	if o.ClipAngle > 0 && v[0] <= o.cosClip {
		return 0, 0, false
	}
	return o.CenterX + o.Scale*v[1], o.CenterY - o.Scale*v[2], true
}

// ViewCenter returns the geographic position facing the camera.
func (o *Orthographic) ViewCenter() LatLng {
	return LatLng{Lat: -o.Rotation.Pitch, Lng: NormalizeDegrees(-o.Rotation.Yaw)}
}

// Facing reports whether (lat, lng) is on the camera-visible hemisphere.
// It is computed from the great-circle distance to the view center and does
// not go through Project.
func (o *Orthographic) Facing(lat, lng float64) bool {
	c := o.ViewCenter()
	d := s2.LatLngFromDegrees(lat, lng).Distance(s2.LatLngFromDegrees(c.Lat, c.Lng))
	return d.Degrees() < 90
}

// LongitudeOffset returns the longitude of lng relative to the current yaw,
// normalized to (-180, 180]. Offsets beyond +/-90 face away from the camera.
func (o *Orthographic) LongitudeOffset(lng float64) float64 {
	return NormalizeDegrees(lng + o.Rotation.Yaw)
}

// Invert maps a screen position back to the geographic position under it.
// ok is false outside the globe disc.
func (o *Orthographic) Invert(x, y float64) (LatLng, bool) {
	if o.Scale <= 0 {
		return LatLng{}, false
	}
	px := (x - o.CenterX) / o.Scale
	py := (o.CenterY - y) / o.Scale
	rho2 := px*px + py*py
	if rho2 > 1 {
		return LatLng{}, false
	}
	v := o.inv.Mul3x1(mgl64.Vec3{math.Sqrt(1 - rho2), px, py})
	return LatLng{
		Lat: math.Asin(clampUnit(v[2])) * degrees,
		Lng: math.Atan2(v[1], v[0]) * degrees,
	}, true
}

// ProjectLine projects a polyline and splits it into runs of visible points.
func (o *Orthographic) ProjectLine(path []LatLng) [][]Vec2 {
	var runs [][]Vec2
	var current []Vec2
	for _, p := range path {
		x, y, ok := o.Project(p.Lat, p.Lng)
		if !ok {
			if len(current) > 1 {
				runs = append(runs, current)
			}
			current = nil
			continue
		}
		current = append(current, Vec2{X: x, Y: y})
	}
	if len(current) > 1 {
		runs = append(runs, current)
	}
	return runs
}

// NormalizeDegrees wraps an angle to (-180, 180].
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
