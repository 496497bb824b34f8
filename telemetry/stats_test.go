package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestQuantile(t *testing.T) {
	tens := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty slice", nil, 0.5, 0},
		{"single element", []float64{5}, 0.5, 5},
		{"p0", tens, 0, 1},
		{"p100", tens, 1, 10},
		{"p50", tens, 0.5, 5},
		{"p95", tens, 0.95, 10},
		{"p10", tens, 0.1, 1},
		{"clamped above", tens, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(tt.values, tt.p); got != tt.want {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestQuantileLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was reordered: %v", values)
	}
}

func TestFrameTimeStats(t *testing.T) {
	frames := []time.Duration{
		16 * time.Millisecond,
		16 * time.Millisecond,
		16 * time.Millisecond,
		48 * time.Millisecond,
	}
	mean, std, p50, p95, maxMS := FrameTimeStats(frames)

	if math.Abs(mean-24) > 1e-9 {
		t.Errorf("mean = %v, want 24", mean)
	}
	if std <= 0 {
		t.Errorf("expected positive std, got %v", std)
	}
	if p50 != 16 {
		t.Errorf("p50 = %v, want 16", p50)
	}
	if p95 != 48 || maxMS != 48 {
		t.Errorf("p95 = %v max = %v, want 48", p95, maxMS)
	}
}

func TestFrameTimeStatsSingleAndEmpty(t *testing.T) {
	mean, std, _, _, _ := FrameTimeStats([]time.Duration{10 * time.Millisecond})
	if mean != 10 || std != 0 {
		t.Errorf("single frame: mean %v std %v", mean, std)
	}

	mean, std, p50, p95, maxMS := FrameTimeStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p95 != 0 || maxMS != 0 {
		t.Error("empty slice should return all zeros")
	}
}
