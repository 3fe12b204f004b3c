// Package components provides reusable widgets for the runway dashboard.
package components

import (
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tone colors a card's value.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// ToneOf returns the tone for a signed amount.
func ToneOf(v float64) Tone {
	switch {
	case v > 0:
		return TonePositive
	case v < 0:
		return ToneNegative
	}
	return ToneNeutral
}

func (tn Tone) color(t theme.Theme) lipgloss.Color {
	switch tn {
	case TonePositive:
		return t.Profit()
	case ToneNegative:
		return t.Loss()
	}
	return t.TextPrimary
}

// Metric is one card in a MetricCardRow.
type Metric struct {
	Label string
	Value string
	Delta string
	Tone  Tone
}

const (
	cardChrome   = 2 // left and right border
	cardPadding  = 2
	minCardWidth = 10
)

// LayoutRow splits total into n widths summing to total, the leading
// widths taking one extra cell each until the remainder is spent.
func LayoutRow(total, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = total / n
	}
	for i := 0; i < total%n; i++ {
		widths[i]++
	}
	return widths
}

// frame wraps content in the rounded card border at outerWidth.
func frame(content string, outerWidth int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(max(minCardWidth, outerWidth-cardChrome)).
		Padding(0, cardPadding/2).
		Render(content)
}

// MetricCard renders a label, a bold value colored by tone, and an optional
// dim delta line.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(m.Tone.color(t)).Bold(true).Render(m.Value)
	if m.Delta != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Delta)
	}
	return frame(content, outerWidth)
}

// MetricCardRow lays metric cards side by side across totalWidth.
func MetricCardRow(cards []Metric, totalWidth int) string {
	rendered := make([]string, len(cards))
	for i, w := range LayoutRow(totalWidth, len(cards)) {
		rendered[i] = MetricCard(cards[i], w)
	}
	return CardRow(rendered)
}

// ContentCard renders body in a card under an optional bold title.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		body = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return frame(body, outerWidth)
}

// CardRow joins rendered cards horizontally, top aligned.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth is the text width available inside a card of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(minCardWidth, outerWidth-cardChrome-cardPadding)
}
