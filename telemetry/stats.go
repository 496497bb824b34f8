package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated activity for one window of frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	ElapsedSec       float64 `csv:"elapsed"`

	Scene string `csv:"scene"`
	Mode  string `csv:"mode"`

	// Events during window
	Hovers         int `csv:"hovers"`
	Activations    int `csv:"activations"`
	FlightsStarted int `csv:"flights_started"`
	FlightsDone    int `csv:"flights_done"`
	Zooms          int `csv:"zooms"`
	SceneChanges   int `csv:"scene_changes"`
	LandmassLoads  int `csv:"landmass_loads"`

	// Frame time distribution (milliseconds)
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`
	FrameMaxMS  float64 `csv:"frame_max_ms"`
}

// Interactions counts user-driven events in the window.
func (s WindowStats) Interactions() int {
	return s.Activations + s.FlightsStarted + s.Zooms + s.SceneChanges
}

// Quantile returns the p-quantile of values using the empirical CDF.
// values need not be sorted. Returns 0 for an empty slice.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// FrameTimeStats summarizes frame durations in milliseconds.
func FrameTimeStats(frames []time.Duration) (mean, std, p50, p95, maxMS float64) {
	if len(frames) == 0 {
		return 0, 0, 0, 0, 0
	}
	ms := make([]float64, len(frames))
	for i, d := range frames {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	slices.Sort(ms)

	mean, std = stat.MeanStdDev(ms, nil)
	if len(ms) < 2 {
		std = 0
	}
	p50 = stat.Quantile(0.5, stat.Empirical, ms, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, ms, nil)
	return mean, std, p50, p95, ms[len(ms)-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.String("scene", s.Scene),
		slog.String("mode", s.Mode),
		slog.Int("hovers", s.Hovers),
		slog.Int("activations", s.Activations),
		slog.Int("flights_started", s.FlightsStarted),
		slog.Int("flights_done", s.FlightsDone),
		slog.Int("zooms", s.Zooms),
		slog.Int("scene_changes", s.SceneChanges),
		slog.Int("landmass_loads", s.LandmassLoads),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
