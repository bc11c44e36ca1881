package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeMassStats(t *testing.T) {
	values := []float64{50, 10, 40, 20, 30}
	ms := ComputeMassStats(values)

	if math.Abs(ms.Mean-30) > 1e-9 {
		t.Errorf("mean = %v, want 30", ms.Mean)
	}
	// sample std of 10..50 step 10
	if math.Abs(ms.Std-math.Sqrt(250)) > 1e-9 {
		t.Errorf("std = %v, want %v", ms.Std, math.Sqrt(250))
	}
	if ms.P50 != 30 {
		t.Errorf("p50 = %v, want 30", ms.P50)
	}
	if ms.Max != 50 {
		t.Errorf("max = %v, want 50", ms.Max)
	}
	if values[0] != 50 {
		t.Error("ComputeMassStats reordered its input")
	}
}

func TestComputeMassStatsSmall(t *testing.T) {
	if ms := ComputeMassStats(nil); ms != (MassStats{}) {
		t.Errorf("expected zero stats for empty input, got %+v", ms)
	}

	ms := ComputeMassStats([]float64{42})
	if ms.Mean != 42 || ms.Std != 0 || ms.Max != 42 || ms.P90 != 42 {
		t.Errorf("unexpected stats for single value: %+v", ms)
	}
}
