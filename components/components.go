// Package components defines ECS components for the decorative field.
package components

// ScreenPos is a normalized screen position in [0, 1).
type ScreenPos struct {
	X, Y float32
}

// GeoPos is a position on the sphere in degrees.
type GeoPos struct {
	Lat, Lng float64
}

// Star is a background star. Depth scales its parallax drift.
type Star struct {
	Size       float32
	Brightness float32 // 0..1 before twinkle
	Depth      float32 // 0 (far) to 1 (near)
	Phase      float32 // twinkle noise offset
}

// Asteroid is a belt scatter body. Index gives it a stable hit-test name.
type Asteroid struct {
	Index int
	Size  float32
	Tone  float32 // 0 (dark) to 1 (light)
}
