package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_PhaseBreakdown(t *testing.T) {
	pc, clock := newTestPerf(10)

	for i := 0; i < 5; i++ {
		pc.StartPass()
		pc.StartPhase(PhaseInput)
		clock.advance(1 * time.Millisecond)
		pc.StartPhase(PhaseFrame)
		clock.advance(3 * time.Millisecond)
		if d := pc.EndPass(); d != 4*time.Millisecond {
			t.Fatalf("expected 4ms pass, got %v", d)
		}
	}

	stats := pc.Stats()
	if stats.AvgPass != 4*time.Millisecond {
		t.Errorf("expected 4ms average, got %v", stats.AvgPass)
	}
	if stats.PhaseAvg[PhaseFrame] != 3*time.Millisecond {
		t.Errorf("expected 3ms frame phase, got %v", stats.PhaseAvg[PhaseFrame])
	}
	if pct := stats.PhasePct[PhaseInput]; pct < 24.9 || pct > 25.1 {
		t.Errorf("expected input at 25%%, got %v", pct)
	}
	if stats.FPS < 249 || stats.FPS > 251 {
		t.Errorf("expected 250 passes per second, got %v", stats.FPS)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestPerf(3)

	// Two slow passes followed by three fast ones; only the fast survive.
	for _, d := range []time.Duration{50, 50, 2, 2, 2} {
		pc.StartPass()
		pc.StartPhase(PhaseFrame)
		clock.advance(d * time.Millisecond)
		pc.EndPass()
	}

	stats := pc.Stats()
	if stats.MaxPass != 2*time.Millisecond {
		t.Errorf("expected slow passes evicted, max is %v", stats.MaxPass)
	}
	if stats.MinPass != 2*time.Millisecond {
		t.Errorf("expected min 2ms, got %v", stats.MinPass)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()
	if stats.AvgPass != 0 || stats.FPS != 0 {
		t.Error("expected zero stats for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgPass:  2 * time.Millisecond,
		PhasePct: map[string]float64{PhaseHUD: 12.5, PhaseRemote: 1},
	}
	row := s.ToCSV(480)
	if row.Frame != 480 || row.AvgPassUS != 2000 || row.HUDPct != 12.5 || row.RemotePct != 1 {
		t.Errorf("unexpected csv row %+v", row)
	}
}
