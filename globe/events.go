package globe

import (
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/scene"
)

// EventKind identifies an engine event.
type EventKind uint8

const (
	EventHover       EventKind = iota // hovered point changed
	EventActivate                     // a point was clicked
	EventFlightStart                  // fly-to began
	EventFlightDone                   // fly-to reached its target
	EventScene                        // configuration replaced
	EventZoom                         // programmatic zoom
	EventLandmass                     // landmass geometry applied
)

func (k EventKind) String() string {
	switch k {
	case EventHover:
		return "hover"
	case EventActivate:
		return "activate"
	case EventFlightStart:
		return "flight_start"
	case EventFlightDone:
		return "flight_done"
	case EventScene:
		return "scene"
	case EventZoom:
		return "zoom"
	case EventLandmass:
		return "landmass"
	}
	return "unknown"
}

// Event is delivered to Options.Listeners.
type Event struct {
	Kind     EventKind
	Point    scene.Point // hover, activate and flight events
	Hovering bool        // hover events
	Scene    string      // configuration ID
	Mode     scene.Mode
	Rotation geo.Rotation // orientation when the event fired
	Zoom     float64      // zoom events, percent
}

func (g *Globe) emit(e Event) {
	e.Scene = g.config.ID
	e.Mode = g.mode
	e.Rotation = g.orbit.Rotation()
	for _, fn := range g.opts.Listeners {
		fn(e)
	}
}
