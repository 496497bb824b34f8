// Package telemetry records viewer activity: interaction windows, frame
// timing, bookmarks, view snapshots and prometheus metrics.
package telemetry

import (
	"time"

	"github.com/pthm-cable/orbis/globe"
)

// EventRecord is the flat CSV form of a globe event.
type EventRecord struct {
	Frame    uint64  `csv:"frame"`
	AtMS     int64   `csv:"at_ms"`
	Kind     string  `csv:"kind"`
	Scene    string  `csv:"scene"`
	Mode     string  `csv:"mode"`
	Point    string  `csv:"point"`
	Hovering bool    `csv:"hovering"`
	Yaw      float64 `csv:"yaw"`
	Pitch    float64 `csv:"pitch"`
	Zoom     float64 `csv:"zoom"`
}

// NewEventRecord flattens ev. elapsed is the time since the viewer started.
func NewEventRecord(frame uint64, elapsed time.Duration, ev globe.Event) EventRecord {
	return EventRecord{
		Frame:    frame,
		AtMS:     elapsed.Milliseconds(),
		Kind:     ev.Kind.String(),
		Scene:    ev.Scene,
		Mode:     ev.Mode.String(),
		Point:    ev.Point.Name,
		Hovering: ev.Hovering,
		Yaw:      ev.Rotation.Yaw,
		Pitch:    ev.Rotation.Pitch,
		Zoom:     ev.Zoom,
	}
}
