package telemetry

import (
	"time"

	"github.com/pthm-cable/orbis/globe"
)

// Collector accumulates globe events and frame times within windows of
// frames and produces WindowStats.
type Collector struct {
	windowFrames uint64

	windowStart uint64
	scene       string
	mode        string

	counts [globe.EventLandmass + 1]int
	frames []time.Duration
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: uint64(windowFrames),
		frames:       make([]time.Duration, 0, windowFrames),
	}
}

// Observe is a globe listener.
func (c *Collector) Observe(ev globe.Event) {
	if int(ev.Kind) < len(c.counts) {
		c.counts[ev.Kind]++
	}
	c.scene = ev.Scene
	c.mode = ev.Mode.String()
}

// RecordFrame adds one frame duration to the window.
func (c *Collector) RecordFrame(d time.Duration) {
	c.frames = append(c.frames, d)
}

// ShouldFlush reports whether the window starting at the last flush is full.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces the stats for the current window and starts a new one.
func (c *Collector) Flush(frame uint64, elapsed time.Duration) WindowStats {
	mean, std, p50, p95, maxMS := FrameTimeStats(c.frames)

	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   frame,
		ElapsedSec:       elapsed.Seconds(),
		Scene:            c.scene,
		Mode:             c.mode,

		Hovers:         c.counts[globe.EventHover],
		Activations:    c.counts[globe.EventActivate],
		FlightsStarted: c.counts[globe.EventFlightStart],
		FlightsDone:    c.counts[globe.EventFlightDone],
		Zooms:          c.counts[globe.EventZoom],
		SceneChanges:   c.counts[globe.EventScene],
		LandmassLoads:  c.counts[globe.EventLandmass],

		FrameMeanMS: mean,
		FrameStdMS:  std,
		FrameP50MS:  p50,
		FrameP95MS:  p95,
		FrameMaxMS:  maxMS,
	}

	c.windowStart = frame
	clear(c.counts[:])
	c.frames = c.frames[:0]
	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() uint64 {
	return c.windowFrames
}
