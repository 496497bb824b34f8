package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one pass of the window loop.
const (
	PhaseInput     = "input"
	PhaseRemote    = "remote"
	PhaseFrame     = "frame"
	PhaseHUD       = "hud"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseInput, PhaseRemote, PhaseFrame, PhaseHUD, PhaseTelemetry}

// Phases returns the phase names in loop order.
func Phases() []string {
	return phaseOrder
}

// PerfSample holds timing data for a single loop pass.
type PerfSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks loop timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	passStart  time.Time
	phaseStart time.Time
	lastPhase  string

	// now is swapped in tests.
	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize passes.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		current:    make(map[string]time.Duration),
		now:        time.Now,
	}
}

// StartPass begins timing a loop pass.
func (p *PerfCollector) StartPass() {
	p.passStart = p.now()
	p.current = make(map[string]time.Duration, len(phaseOrder))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndPass records the pass and returns its total duration.
func (p *PerfCollector) EndPass() time.Duration {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	d := now.Sub(p.passStart)
	p.samples[p.writeIndex] = PerfSample{Duration: d, Phases: p.current}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	return d
}

// PerfStats holds aggregated loop timing.
type PerfStats struct {
	AvgPass time.Duration
	MinPass time.Duration
	MaxPass time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // of the average pass

	FPS float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return out
	}

	durations := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		durations[i] = float64(s.Duration)
		if i == 0 || s.Duration < out.MinPass {
			out.MinPass = s.Duration
		}
		out.MaxPass = max(out.MaxPass, s.Duration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	out.AvgPass = time.Duration(stat.Mean(durations, nil))
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgPass > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgPass) * 100
		}
	}
	if out.AvgPass > 0 {
		out.FPS = float64(time.Second) / float64(out.AvgPass)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_pass_us", s.AvgPass.Microseconds()),
		slog.Int64("min_pass_us", s.MinPass.Microseconds()),
		slog.Int64("max_pass_us", s.MaxPass.Microseconds()),
		slog.Float64("fps", s.FPS),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "loop", s)
}

// PerfStatsCSV is the flat CSV form of PerfStats.
type PerfStatsCSV struct {
	Frame        uint64  `csv:"frame"`
	AvgPassUS    int64   `csv:"avg_pass_us"`
	MinPassUS    int64   `csv:"min_pass_us"`
	MaxPassUS    int64   `csv:"max_pass_us"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	RemotePct    float64 `csv:"remote_pct"`
	FramePct     float64 `csv:"frame_pct"`
	HUDPct       float64 `csv:"hud_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s for the perf log.
func (s PerfStats) ToCSV(frame uint64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:        frame,
		AvgPassUS:    s.AvgPass.Microseconds(),
		MinPassUS:    s.MinPass.Microseconds(),
		MaxPassUS:    s.MaxPass.Microseconds(),
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		RemotePct:    s.PhasePct[PhaseRemote],
		FramePct:     s.PhasePct[PhaseFrame],
		HUDPct:       s.PhasePct[PhaseHUD],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
