package camera

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/orbis/geo"
)

func TestFlightEndsExactlyOnTarget(t *testing.T) {
	starts := []geo.Rotation{
		{Yaw: 0, Pitch: 0},
		{Yaw: -170, Pitch: 60},
		{Yaw: 123.456, Pitch: -89},
		{Yaw: 74, Pitch: -40},
	}
	target := geo.LatLng{Lat: 40, Lng: -74}

	for _, start := range starts {
		f := NewFlight(start, target, 1200*time.Millisecond)
		t0 := time.Unix(100, 0)
		f.Step(t0)

		r, done := f.Step(t0.Add(1300 * time.Millisecond))
		if !done {
			t.Errorf("start %+v: expected flight done past duration", start)
		}
		if r != (geo.Rotation{Yaw: 74, Pitch: -40, Roll: 0}) {
			t.Errorf("start %+v: expected (74, -40, 0), got %+v", start, r)
		}
	}
}

func TestFlightIsFrameRateInvariant(t *testing.T) {
	start := geo.Rotation{Yaw: 10, Pitch: 5}
	target := geo.LatLng{Lat: -30, Lng: 60}
	duration := time.Second
	t0 := time.Unix(0, 0)

	// Same wall-clock instant reached through different frame counts.
	var results []geo.Rotation
	for _, step := range []time.Duration{8 * time.Millisecond, 16 * time.Millisecond, 50 * time.Millisecond} {
		f := NewFlight(start, target, duration)
		f.Step(t0)
		var r geo.Rotation
		for at := step; at <= 400*time.Millisecond; at += step {
			r, _ = f.Step(t0.Add(at))
		}
		r, _ = f.Step(t0.Add(400 * time.Millisecond))
		results = append(results, r)
	}

	for i := 1; i < len(results); i++ {
		if math.Abs(results[i].Yaw-results[0].Yaw) > 1e-9 || math.Abs(results[i].Pitch-results[0].Pitch) > 1e-9 {
			t.Errorf("frame pacing %d produced %+v, expected %+v", i, results[i], results[0])
		}
	}
}

func TestFlightTakesShortestYawPath(t *testing.T) {
	f := NewFlight(geo.Rotation{Yaw: 170}, geo.LatLng{Lng: 170}, time.Second)
	t0 := time.Unix(0, 0)
	f.Step(t0)

	// Target yaw is -170, twenty degrees away across the dateline.
	r, _ := f.Step(t0.Add(500 * time.Millisecond))
	if r.Yaw < 170 || r.Yaw > 190 {
		t.Errorf("expected yaw between 170 and 190 mid-flight, got %f", r.Yaw)
	}
}

func TestFlightStartsOnFirstStep(t *testing.T) {
	start := geo.Rotation{Yaw: 20, Pitch: 10}
	f := NewFlight(start, geo.LatLng{}, time.Second)

	r, done := f.Step(time.Unix(50, 0))
	if done || r != start {
		t.Errorf("expected first step to return start orientation, got %+v done=%v", r, done)
	}
}

func TestEaseOutCubic(t *testing.T) {
	tests := []struct{ t, want float64 }{
		{0, 0},
		{0.5, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseOutCubic(%f) = %f, want %f", tt.t, got, tt.want)
		}
	}
}
