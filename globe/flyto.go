package globe

import (
	"time"

	"github.com/pthm-cable/orbis/camera"
	"github.com/pthm-cable/orbis/geo"
	"github.com/pthm-cable/orbis/scene"
)

// FlyTo animates the view until p faces the camera. It is ignored in belt
// mode. A request while a flight is running restarts from the current
// orientation.
func (g *Globe) FlyTo(p scene.Point) {
	if !g.hasScene || !g.mode.AllowsFlyTo() {
		return
	}
	g.cancelFlight()

	g.flightGen++
	gen := g.flightGen
	g.flight = camera.NewFlight(g.orbit.Rotation(), geo.LatLng{Lat: p.Lat, Lng: p.Lng}, g.params.FlyToDuration)
	g.orbit.BeginFlight()
	g.emit(Event{Kind: EventFlightStart, Point: p})

	var step func(now time.Time)
	step = func(now time.Time) {
		if gen != g.flightGen || g.flight == nil {
			return
		}
		r, done := g.flight.Step(now)
		g.orbit.SetRotation(r)
		if !done {
			g.flightID = g.sched.Request(step)
			return
		}
		g.flight = nil
		g.flightID = 0
		g.orbit.EndFlight()
		g.emit(Event{Kind: EventFlightDone, Point: p})
	}
	g.flightID = g.sched.Request(step)
}

// FlyToName flies to the named point of the current configuration.
func (g *Globe) FlyToName(name string) bool {
	p, ok := g.config.Find(name)
	if !ok {
		return false
	}
	g.FlyTo(p)
	return g.mode.AllowsFlyTo()
}

// Flying reports whether a flight is in progress.
func (g *Globe) Flying() bool {
	return g.flight != nil
}

// cancelFlight stops the step chain and returns the orbit to idle.
func (g *Globe) cancelFlight() {
	if g.flight == nil {
		return
	}
	g.flightGen++
	g.sched.Cancel(g.flightID)
	g.flightID = 0
	g.flight = nil
	g.orbit.EndFlight()
}
