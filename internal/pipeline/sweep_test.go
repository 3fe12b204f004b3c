package pipeline

import (
	"sync/atomic"
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

func TestSweepValues(t *testing.T) {
	tests := []struct {
		key   string
		n     int
		first float64
		last  float64
	}{
		{"exp_a", 20, 10000, 200000},
		{"exp_b", 20, 0.1, 2},
		{"log_b", 90, 1.1, 10},
		{"log_c", 20, -1, 0.9},
	}
	for _, tt := range tests {
		f, ok := model.LookupField(tt.key)
		if !ok {
			t.Fatalf("field %s missing", tt.key)
		}
		vals := SweepValues(f)
		if len(vals) != tt.n {
			t.Errorf("%s: %d values, want %d", tt.key, len(vals), tt.n)
			continue
		}
		if vals[0] != tt.first || vals[len(vals)-1] != tt.last {
			t.Errorf("%s: range %v..%v, want %v..%v", tt.key, vals[0], vals[len(vals)-1], tt.first, tt.last)
		}
	}
}

func TestSweep(t *testing.T) {
	base := mustPreset(t, config.PresetCurrent)
	values := []float64{1.1, 1.2, 1.3}
	var calls atomic.Int64
	points, err := Sweep(engine.New(), base, "exp_b", values, func(current, total int) {
		calls.Add(1)
		if total != len(values) || current < 1 || current > total {
			t.Errorf("progress %d/%d", current, total)
		}
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if calls.Load() != int64(len(values)) {
		t.Errorf("progress called %d times, want %d", calls.Load(), len(values))
	}
	for i, pt := range points {
		if pt.Value != values[i] {
			t.Errorf("points[%d].Value = %v, want %v", i, pt.Value, values[i])
		}
	}
	// The middle point is the preset itself.
	if !near(points[1].Totals.Revenue, 265630.14, 0.005) {
		t.Errorf("preset revenue in sweep = %.2f", points[1].Totals.Revenue)
	}
	if !(points[0].Totals.Views < points[1].Totals.Views && points[1].Totals.Views < points[2].Totals.Views) {
		t.Errorf("views should grow with exp_b: %d, %d, %d",
			points[0].Totals.Views, points[1].Totals.Views, points[2].Totals.Views)
	}
	if base.ExpB != 1.2 {
		t.Errorf("Sweep mutated base params")
	}
}

func TestSweep_UnknownParam(t *testing.T) {
	if _, err := Sweep(engine.New(), model.Params{}, "exp_z", []float64{1}, nil); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
	pts, err := Sweep(engine.New(), model.Params{}, "exp_a", nil, nil)
	if err != nil || pts != nil {
		t.Fatalf("empty sweep = %v, %v", pts, err)
	}
}
