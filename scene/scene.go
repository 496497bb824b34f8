// Package scene defines the configurations the globe displays and the
// planet/belt mode each one is rendered in.
package scene

import (
	"fmt"
	"strings"
)

// Category controls a point's marker color.
type Category uint8

const (
	CategoryCity Category = iota
	CategoryCapital
	CategoryPort
	CategoryStation
	CategoryOutpost
	CategoryAsteroid
)

var categoryNames = [...]string{
	CategoryCity:     "city",
	CategoryCapital:  "capital",
	CategoryPort:     "port",
	CategoryStation:  "station",
	CategoryOutpost:  "outpost",
	CategoryAsteroid: "asteroid",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// ParseCategory converts a category name. The empty string is a city.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryCity, nil
	}
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Point is a point of interest. Name is unique within a configuration.
type Point struct {
	Name     string
	Lat, Lng float64
	Category Category
	Meta     []string // extra label lines
}

// Configuration is one displayable scene.
type Configuration struct {
	ID       string
	Name     string
	Points   []Point
	Textures []string // optional sphere textures, first loadable one wins
	Landmass string   // optional GeoJSON path or URL for the 2D silhouette
}

// Find returns the point with the given name.
func (c *Configuration) Find(name string) (Point, bool) {
	for _, p := range c.Points {
		if p.Name == name {
			return p, true
		}
	}
	return Point{}, false
}

// Mode selects how a configuration is rendered.
type Mode uint8

const (
	// Planet is a rotatable sphere with back-face culling.
	Planet Mode = iota
	// Belt is a flat radially spread scatter with every point drawn.
	Belt
)

func (m Mode) String() string {
	switch m {
	case Planet:
		return "planet"
	case Belt:
		return "belt"
	}
	return "unknown"
}

// ModeFor returns Belt when id is one of the belt identifiers.
func ModeFor(id string, beltIDs map[string]bool) Mode {
	if beltIDs[id] {
		return Belt
	}
	return Planet
}

// ClipAngle is the projection clip angle in degrees; zero disables clipping.
func (m Mode) ClipAngle() float64 {
	if m == Belt {
		return 0
	}
	return 90
}

// DrawsSilhouette reports whether the 2D fallback sphere is drawn.
func (m Mode) DrawsSilhouette() bool {
	return m == Planet
}

// UsesSurface reports whether the 3D sphere may be rendered.
func (m Mode) UsesSurface() bool {
	return m == Planet
}

// Scatters reports whether the asteroid field is generated.
func (m Mode) Scatters() bool {
	return m == Belt
}

// AllowsFlyTo reports whether fly-to requests are honored.
func (m Mode) AllowsFlyTo() bool {
	return m == Planet
}

// Spread returns the radial exaggeration applied to screen positions.
func (m Mode) Spread(beltSpread float64) float64 {
	if m == Belt {
		return beltSpread
	}
	return 1
}

// IdleDrift returns the resting yaw velocity.
func (m Mode) IdleDrift(planetIdle float64) float64 {
	if m == Belt {
		return 0
	}
	return planetIdle
}
