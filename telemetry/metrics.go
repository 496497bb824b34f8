package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pthm-cable/orbis/globe"
)

// Metrics exports viewer activity to prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	events        *prometheus.CounterVec
	frameDuration prometheus.Histogram
	zoom          prometheus.Gauge
	flying        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbis_events_total",
				Help: "Globe events by kind and scene mode",
			},
			[]string{"kind", "mode"},
		),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orbis_frame_duration_seconds",
				Help:    "Time spent in one pass of the window loop",
				Buckets: []float64{0.002, 0.004, 0.008, 0.0167, 0.033, 0.05, 0.1},
			},
		),
		zoom: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbis_zoom_percent",
			Help: "Target zoom as a percentage of the scale bounds",
		}),
		flying: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbis_flight_active",
			Help: "1 while a fly-to animation runs",
		}),
	}

	reg.MustRegister(m.events, m.frameDuration, m.zoom, m.flying)
	return m
}

// Observe is a globe listener.
func (m *Metrics) Observe(ev globe.Event) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(ev.Kind.String(), ev.Mode.String()).Inc()
	switch ev.Kind {
	case globe.EventZoom:
		m.zoom.Set(ev.Zoom)
	case globe.EventFlightStart:
		m.flying.Set(1)
	case globe.EventFlightDone, globe.EventScene:
		m.flying.Set(0)
	}
}

// ObserveFrame records one loop pass.
func (m *Metrics) ObserveFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frameDuration.Observe(d.Seconds())
}

// SetZoom tracks zoom changes that did not come through an event, such as
// the wheel.
func (m *Metrics) SetZoom(percent float64) {
	if m == nil {
		return
	}
	m.zoom.Set(percent)
}
