package viewer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/orbis/globe"
	"github.com/pthm-cable/orbis/telemetry"
)

// recordEvent is a globe listener writing every event to the events CSV.
func (v *Viewer) recordEvent(ev globe.Event) {
	if v.output == nil {
		return
	}
	rec := telemetry.NewEventRecord(v.globe.Frames(), v.elapsed(), ev)
	if err := v.output.WriteEvent(rec); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}

func (v *Viewer) elapsed() time.Duration {
	if v.start.IsZero() {
		return 0
	}
	return v.now.Sub(v.start)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (v *Viewer) flushTelemetry() {
	frame := v.Frame()
	v.logPerf()

	if !v.collector.ShouldFlush(frame) {
		return
	}

	stats := v.collector.Flush(frame, v.elapsed())
	perfStats := v.perf.Stats()

	if v.logStats {
		stats.LogStats()
	}

	if err := v.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := v.output.WritePerf(perfStats, frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range v.bookmarks.Check(stats) {
		v.handleBookmark(bm)
	}
}

// logPerf logs loop timing every Telemetry.LogIntervalSec seconds.
func (v *Viewer) logPerf() {
	interval := time.Duration(v.cfg.Telemetry.LogIntervalSec * float64(time.Second))
	if !v.logStats || interval <= 0 {
		return
	}
	if v.now.Sub(v.lastPerfLog) < interval {
		return
	}
	v.lastPerfLog = v.now
	v.perf.Stats().LogStats()
}

// manualBookmark records the current view on user request.
func (v *Viewer) manualBookmark() {
	cfg := v.globe.Configuration()
	v.handleBookmark(telemetry.Bookmark{
		Type:        telemetry.BookmarkManual,
		Frame:       v.Frame(),
		Scene:       cfg.ID,
		Description: fmt.Sprintf("zoom %.0f%%", v.globe.ZoomPercent()),
	})
}

func (v *Viewer) handleBookmark(bm telemetry.Bookmark) {
	if v.logStats {
		bm.LogBookmark()
	}
	if err := v.output.WriteBookmark(bm); err != nil {
		slog.Error("failed to write bookmark", "error", err)
	}
	v.saveSnapshot(&bm)
}

// saveSnapshot writes a snapshot into the snapshot directory, or under the
// output directory when none was given.
func (v *Viewer) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := v.createSnapshot(bookmark)

	var path string
	var err error
	if v.snapshotDir != "" {
		path, err = telemetry.SaveSnapshot(snapshot, v.snapshotDir)
	} else {
		path, err = v.output.WriteSnapshot(snapshot)
	}
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	if path == "" {
		return
	}

	slog.Info("snapshot saved", "path", path, "frame", snapshot.Frame)
}

// createSnapshot builds a snapshot from the current view.
func (v *Viewer) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	cfg := v.globe.Configuration()
	r := v.globe.Orientation()
	s := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Frame:     v.Frame(),
		Scene:     cfg.ID,
		Mode:      v.globe.Mode().String(),
		Yaw:       r.Yaw,
		Pitch:     r.Pitch,
		Zoom:      v.globe.ZoomPercent(),
		Flying:    v.globe.Flying(),
		Surface3D: v.globe.SurfaceAvailable(),
		Bookmark:  bookmark,
	}
	if p, ok := v.selection.Selected(); ok {
		s.Selected = p.Name
	}
	if p, ok := v.globe.Hovered(); ok {
		s.Hovered = p.Name
	}
	return s
}
