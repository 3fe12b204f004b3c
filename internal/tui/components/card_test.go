package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {81, 4}, {10, 7}, {0, 2}} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) len = %d", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d", len(lines), tallLines)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Revenue", Value: "$265,630.14"},
		{Label: "Net", Value: "-$4,283.96", Tone: ToneNegative},
		{Label: "Margin", Value: "-1.6%", Delta: "of revenue"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestToneOf(t *testing.T) {
	if ToneOf(1) != TonePositive || ToneOf(-1) != ToneNegative || ToneOf(0) != ToneNeutral {
		t.Error("ToneOf sign mapping wrong")
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}

func TestRenderTabBarWraps(t *testing.T) {
	if got := RenderTabBar(0, 200); strings.Contains(got, "\n") {
		t.Errorf("wide tab bar should be one row: %q", got)
	}
	if got := RenderTabBar(0, 20); !strings.Contains(got, "\n") {
		t.Error("narrow tab bar should wrap")
	}
}

func TestDivergingBarsSigns(t *testing.T) {
	theme.SetActive("flexoki-dark")
	out := DivergingBars([]float64{-50, 0, 100}, []string{"M01", "M02", "M03"}, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "█") || !strings.Contains(lines[2], "█") {
		t.Error("non-zero rows should draw bars")
	}
	if strings.Contains(lines[1], "█") {
		t.Error("zero row should not draw a bar")
	}
}

func TestMarginColorBands(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active
	tests := []struct {
		margin float64
		want   lipgloss.Color
	}{
		{-5, th.Red},
		{0, th.Orange},
		{24.9, th.Orange},
		{25, th.Yellow},
		{59.9, th.Yellow},
		{60, th.Green},
		{88, th.Green},
	}
	for _, tt := range tests {
		if got := MarginColor(tt.margin); got != tt.want {
			t.Errorf("MarginColor(%v) = %s, want %s", tt.margin, got, tt.want)
		}
	}
}
