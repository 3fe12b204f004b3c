package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// eighths are the partial-block glyphs, index 0 empty and 8 full.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	glyphs := eighths[1:]
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(len(glyphs)-1))
		out[i] = glyphs[min(len(glyphs)-1, max(0, idx))]
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(string(out))
}

// yScale is a rounded axis ceiling split into evenly spaced ticks.
type yScale struct {
	step      float64
	intervals int
	rowsPer   int
}

// newYScale fits peak into at most height/2 intervals of two or more rows.
func newYScale(peak float64, height int) yScale {
	step := chartTickStep(peak)
	limit := max(2, height/2)
	for int(math.Ceil(peak/step)) > limit {
		step *= 2
	}
	n := max(1, int(math.Ceil(peak/step)))
	return yScale{step: step, intervals: n, rowsPer: max(2, height/n)}
}

func (s yScale) ceiling() float64 { return s.step * float64(s.intervals) }

func (s yScale) rows() int { return s.rowsPer * s.intervals }

// tickAt returns the axis label drawn at row (1 is the bottom), or "".
func (s yScale) tickAt(row int) string {
	if row%s.rowsPer != 0 {
		return ""
	}
	return formatChartLabel(s.step * float64(row/s.rowsPer))
}

// fitBars downsamples values and labels until every bar is at least two
// cells wide, and returns the bar width, capped at six.
func fitBars(values []float64, labels []string, chartW int) ([]float64, []string, int) {
	n := len(values)
	if n == 1 {
		return values, labels, min(chartW, 6)
	}
	if barW := (chartW - (n - 1)) / n; barW >= 2 {
		return values, labels, min(barW, 6)
	}

	keep := max(2, (chartW+1)/3)
	sv := make([]float64, keep)
	var sl []string
	if len(labels) == n {
		sl = make([]string, keep)
	}
	for i := range sv {
		src := i * (n - 1) / (keep - 1)
		sv[i] = values[src]
		if sl != nil {
			sl[i] = labels[src]
		}
	}
	return sv, sl, 2
}

// barCell is the glyph for a bar of height v in the row spanning (lo, hi].
func barCell(v, lo, hi float64) rune {
	switch {
	case v >= hi:
		return eighths[8]
	case v > lo:
		idx := int((v - lo) / (hi - lo) * 8)
		return eighths[min(8, max(1, idx))]
	}
	return eighths[0]
}

// BarChart renders a vertical bar chart with a labelled y axis. Negative
// values draw as empty columns; use DivergingBars for signed series.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	scale := newYScale(peak, height)

	axisW := max(4, len(formatChartLabel(scale.ceiling()))+1)
	values, labels, barW := fitBars(values, labels, max(5, width-axisW-1))
	gap := 1
	if len(values) == 1 {
		gap = 0
	}
	span := len(values)*barW + (len(values)-1)*gap

	bg := lipgloss.NewStyle().Background(t.Surface)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	spacer := bg.Render(strings.Repeat(" ", gap))

	var b strings.Builder
	rows, ceil := scale.rows(), scale.ceiling()
	for row := rows; row >= 1; row-- {
		hi := ceil * float64(row) / float64(rows)
		lo := ceil * float64(row-1) / float64(rows)
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", axisW, scale.tickAt(row))))
		for i, v := range values {
			if i > 0 {
				b.WriteString(spacer)
			}
			b.WriteString(bar.Render(strings.Repeat(string(barCell(v, lo, hi)), barW)))
		}
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", span))))

	if len(labels) == len(values) {
		b.WriteString("\n")
		b.WriteString(bg.Render(strings.Repeat(" ", axisW+1)))
		b.WriteString(axis.Render(xLabels(labels, barW+gap, span)))
	}
	return b.String()
}

// xLabels places each label under its bar, skipping any that would touch
// the previous one. The last label is always drawn, shifted left to fit.
func xLabels(labels []string, pitch, span int) string {
	line := []rune(strings.Repeat(" ", span))
	last := len(labels) - 1

	limit := span
	lastRunes := []rune(labels[last])
	if pos := min(last*pitch, span-len(lastRunes)); pos >= 0 {
		copy(line[pos:], lastRunes)
		limit = pos - 1
	}

	next := 0
	for i := 0; i < last; i++ {
		r := []rune(labels[i])
		pos := i * pitch
		if pos < next || pos+len(r) > limit {
			continue
		}
		copy(line[pos:], r)
		next = pos + len(r) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// chartTickStep picks a 1/2/5 × 10^k step giving about five ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch f := rough / base; {
	case f < 1.5:
		return base
	case f < 3.5:
		return 2 * base
	}
	return 5 * base
}

var chartUnits = []struct {
	div    float64
	suffix string
}{{1e9, "B"}, {1e6, "M"}, {1e3, "k"}}

func formatChartLabel(v float64) string {
	for _, u := range chartUnits {
		if v < u.div {
			continue
		}
		q := v / u.div
		if q == math.Trunc(q) {
			return fmt.Sprintf("%.0f%s", q, u.suffix)
		}
		return fmt.Sprintf("%.1f%s", q, u.suffix)
	}
	if v >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// DivergingBars renders one horizontal row per value around a centre axis:
// negatives extend left in red, positives right in green.
func DivergingBars(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
	}
	valueW := 0
	texts := make([]string, len(values))
	peak := 0.0
	for i, v := range values {
		texts[i] = formatSignedLabel(v)
		valueW = max(valueW, len(texts[i]))
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		peak = 1
	}

	half := (width - labelW - valueW - 4) / 2
	if half < 3 {
		half = 3
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	negStyle := lipgloss.NewStyle().Foreground(t.Loss()).Background(t.Surface)
	posStyle := lipgloss.NewStyle().Foreground(t.Profit()).Background(t.Surface)

	rows := make([]string, len(values))
	for i, v := range values {
		n := int(math.Round(math.Abs(v) / peak * float64(half)))
		if v != 0 && n == 0 {
			n = 1
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		var b strings.Builder
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(bg.Render(" "))
		if v < 0 {
			b.WriteString(bg.Render(strings.Repeat(" ", half-n)))
			b.WriteString(negStyle.Render(strings.Repeat("█", n)))
		} else {
			b.WriteString(bg.Render(strings.Repeat(" ", half)))
		}
		b.WriteString(axisStyle.Render("│"))
		if v > 0 {
			b.WriteString(posStyle.Render(strings.Repeat("█", n)))
			b.WriteString(bg.Render(strings.Repeat(" ", half-n)))
		} else {
			b.WriteString(bg.Render(strings.Repeat(" ", half)))
		}
		b.WriteString(bg.Render(" "))
		b.WriteString(labelStyle.Render(fmt.Sprintf("%*s", valueW, texts[i])))
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}

// Legend renders "■ name" entries in their series colors.
func Legend(names []string, colors []lipgloss.Color) string {
	t := theme.Active
	bg := lipgloss.NewStyle().Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	parts := make([]string, 0, len(names))
	for i, name := range names {
		c := t.Accent
		if i < len(colors) {
			c = colors[i]
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(c).Background(t.Surface).Render("■")+
			bg.Render(" ")+textStyle.Render(name))
	}
	return strings.Join(parts, bg.Render("   "))
}

func formatSignedLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	return formatChartLabel(v)
}
