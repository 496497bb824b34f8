package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/scene"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.Observe(globe.Event{Kind: globe.EventActivate, Mode: scene.Planet})
	m.Observe(globe.Event{Kind: globe.EventActivate, Mode: scene.Planet})
	m.Observe(globe.Event{Kind: globe.EventActivate, Mode: scene.Belt})
	m.Observe(globe.Event{Kind: globe.EventZoom, Mode: scene.Planet, Zoom: 50})
	m.Observe(globe.Event{Kind: globe.EventFlightStart, Mode: scene.Planet})

	if got := testutil.ToFloat64(m.events.WithLabelValues("activate", "planet")); got != 2 {
		t.Errorf("expected 2 planet activations, got %v", got)
	}
	if got := testutil.ToFloat64(m.events.WithLabelValues("activate", "belt")); got != 1 {
		t.Errorf("expected 1 belt activation, got %v", got)
	}
	if got := testutil.ToFloat64(m.zoom); got != 50 {
		t.Errorf("expected zoom gauge 50, got %v", got)
	}
	if got := testutil.ToFloat64(m.flying); got != 1 {
		t.Errorf("expected flight gauge 1, got %v", got)
	}

	m.Observe(globe.Event{Kind: globe.EventFlightDone, Mode: scene.Planet})
	if got := testutil.ToFloat64(m.flying); got != 0 {
		t.Errorf("expected flight gauge 0 after landing, got %v", got)
	}
}

func TestMetricsFrameHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveFrame(16 * time.Millisecond)
	m.ObserveFrame(40 * time.Millisecond)

	if n := testutil.CollectAndCount(m.frameDuration); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == "orbis_frame_duration_seconds" {
			if c := f.GetMetric()[0].GetHistogram().GetSampleCount(); c != 2 {
				t.Errorf("expected 2 samples, got %d", c)
			}
			return
		}
	}
	t.Error("frame histogram not registered")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe(globe.Event{Kind: globe.EventHover})
	m.ObserveFrame(time.Millisecond)
	m.SetZoom(10)
}
