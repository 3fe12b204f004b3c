package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		peak, want float64
	}{
		{0, 1},
		{5, 1},
		{12, 2},
		{265630, 50000},
		{1_000_000, 200000},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.peak); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.peak, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		0.5:     "0.50",
		40:      "40",
		50000:   "50k",
		1500000: "1.5M",
		2e9:     "2B",
	}
	for v, want := range tests {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestNewYScaleCoversPeak(t *testing.T) {
	for _, peak := range []float64{1, 9, 265630, 1771009} {
		for _, h := range []int{3, 7, 10} {
			s := newYScale(peak, h)
			if s.ceiling() < peak {
				t.Errorf("peak %v height %d: ceiling %v below peak", peak, h, s.ceiling())
			}
			if s.rowsPer < 2 || s.intervals > max(2, h/2) {
				t.Errorf("peak %v height %d: %+v", peak, h, s)
			}
			if s.tickAt(s.rows()) != formatChartLabel(s.ceiling()) {
				t.Errorf("top tick %q, ceiling %v", s.tickAt(s.rows()), s.ceiling())
			}
		}
	}
}

func TestFitBarsDownsamples(t *testing.T) {
	values := make([]float64, 12)
	labels := make([]string, 12)
	for i := range values {
		values[i] = float64(i)
		labels[i] = "M"
	}

	v, l, w := fitBars(values, labels, 80)
	if len(v) != 12 || w != 5 || len(l) != 12 {
		t.Fatalf("wide: %d bars of %d", len(v), w)
	}

	v, l, w = fitBars(values, labels, 20)
	if w != 2 || len(v) != 7 || len(l) != 7 {
		t.Fatalf("narrow: %d bars of %d", len(v), w)
	}
	if v[0] != 0 || v[len(v)-1] != 11 {
		t.Errorf("samples must keep both ends, got %v", v)
	}
}

func TestBarCell(t *testing.T) {
	if barCell(10, 0, 5) != '█' || barCell(0, 0, 5) != ' ' {
		t.Fatal("full/empty cell wrong")
	}
	if got := barCell(2.5, 0, 5); got != '▄' {
		t.Errorf("half cell = %q", got)
	}
	if got := barCell(0.01, 0, 5); got != '▁' {
		t.Errorf("sliver should still show, got %q", got)
	}
}

func TestXLabelsKeepsLast(t *testing.T) {
	labels := []string{"M01", "M02", "M03", "M04", "M05", "M06", "M07", "M08", "M09", "M10", "M11", "M12"}

	got := xLabels(labels, 3, 35)
	if !strings.HasPrefix(got, "M01") || !strings.HasSuffix(got, "M12") {
		t.Fatalf("labels = %q", got)
	}
	if strings.Contains(got, "M02") {
		t.Errorf("adjacent labels should be skipped: %q", got)
	}

	wide := xLabels(labels, 7, 83)
	for _, l := range labels {
		if !strings.Contains(wide, l) {
			t.Errorf("wide axis missing %s", l)
		}
	}
}

func TestBarChartShape(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	labels := make([]string, len(values))
	for i := range labels {
		labels[i] = "M" + string(rune('A'+i))
	}

	out := BarChart(values, labels, lipgloss.Color("2"), 60, 10)
	lines := strings.Split(out, "\n")
	s := newYScale(12, 10)
	// chart rows + x axis + labels
	if len(lines) != s.rows()+2 {
		t.Fatalf("lines = %d, want %d", len(lines), s.rows()+2)
	}

	if got := BarChart(values, nil, lipgloss.Color("2"), 10, 10); strings.Contains(got, "\n") {
		t.Errorf("narrow chart should fall back to a sparkline, got %q", got)
	}
}
