package components

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// marginBands are upper bounds (exclusive) on a margin percentage.
var marginBands = []struct {
	below float64
	color func(theme.Theme) lipgloss.Color
}{
	{0, theme.Theme.Loss},
	{25, func(t theme.Theme) lipgloss.Color { return t.Orange }},
	{60, func(t theme.Theme) lipgloss.Color { return t.Yellow }},
}

// MarginColor grades a margin percentage from loss through to profit.
func MarginColor(marginPct float64) lipgloss.Color {
	t := theme.Active
	for _, b := range marginBands {
		if marginPct < b.below {
			return b.color(t)
		}
	}
	return t.Profit()
}

// ShareBar renders "label ████░░ 12.3%" for a share on a 0..100 scale.
// An empty color falls back to the theme accent.
func ShareBar(label string, share float64, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active
	if color == "" {
		color = t.Accent
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	on := lipgloss.NewStyle().Background(t.Surface)
	return on.Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s ", labelW, label)) +
		bar.ViewAs(min(1, max(0, share/100))) +
		on.Foreground(color).Bold(true).Render(fmt.Sprintf(" %5.1f%%", share))
}
