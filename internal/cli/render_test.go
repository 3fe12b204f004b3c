package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Totals",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Revenue", "$265,630.14"},
			SeparatorRow,
			{"Users", "542,853"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, top, header, header rule, row, separator, row, bottom
	if len(lines) != 8 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[1])
	for _, l := range lines[1:] {
		if lipgloss.Width(l) != width {
			t.Fatalf("ragged table line %q (width %d, want %d)", l, lipgloss.Width(l), width)
		}
	}
	if !strings.Contains(out, "$265,630.14") || !strings.Contains(out, "542,853") {
		t.Fatalf("missing cells:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("empty table = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Fatalf("empty sparkline = %q", got)
	}
	got := []rune(RenderSparkline([]float64{0, 50, 100}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Fatalf("sparkline = %q", string(got))
	}
	neg := []rune(RenderSparkline([]float64{-100, 0, 100}))
	if neg[0] != '▁' || neg[2] != '█' {
		t.Fatalf("signed sparkline = %q", string(neg))
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar("x", 1, 0, 10); got != "  x" {
		t.Fatalf("zero max bar = %q", got)
	}
	got := RenderHorizontalBar("half", 5, 10, 10)
	if strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Fatalf("half bar = %q", got)
	}
	over := RenderHorizontalBar("over", 20, 10, 4)
	if strings.Count(over, "█") != 4 {
		t.Fatalf("overflow bar = %q", over)
	}
}
