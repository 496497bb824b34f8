package camera

import (
	"math"
	"time"

	"github.com/pthm-cable/orbis/geo"
)

// Flight is an eased, wall-clock timed rotation toward a target point.
type Flight struct {
	from     geo.Rotation
	to       geo.Rotation
	duration time.Duration

	t0      time.Time
	started bool
}

// NewFlight creates a flight from the given orientation that ends with
// target facing the camera.
func NewFlight(from geo.Rotation, target geo.LatLng, duration time.Duration) *Flight {
	return &Flight{
		from:     from,
		to:       geo.Rotation{Yaw: -target.Lng, Pitch: -target.Lat, Roll: 0},
		duration: duration,
	}
}

// Target returns the final orientation.
func (f *Flight) Target() geo.Rotation {
	return f.to
}

// Step returns the orientation at now. The first call fixes the start time.
// done is true once progress reaches 1, and the orientation is then exactly
// the target.
func (f *Flight) Step(now time.Time) (r geo.Rotation, done bool) {
	if !f.started {
		f.t0 = now
		f.started = true
	}

	t := 1.0
	if f.duration > 0 {
		t = float64(now.Sub(f.t0)) / float64(f.duration)
	}
	if t >= 1 {
		return f.to, true
	}
	if t < 0 {
		t = 0
	}

	e := EaseOutCubic(t)
	dYaw := geo.NormalizeDegrees(f.to.Yaw - f.from.Yaw)
	return geo.Rotation{
		Yaw:   f.from.Yaw + dYaw*e,
		Pitch: f.from.Pitch + (f.to.Pitch-f.from.Pitch)*e,
		Roll:  f.from.Roll + (f.to.Roll-f.from.Roll)*e,
	}, false
}

// EaseOutCubic decelerates toward t = 1.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}
