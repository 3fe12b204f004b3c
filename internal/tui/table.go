package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// column is one fixed-width table column. The first column is left-aligned.
type column struct {
	title string
	width int
}

// gridRow is one table row; emphasis renders it bold in the accent color.
type gridRow struct {
	cells    []string
	emphasis bool
	negative []bool // per cell, colors the value red
}

// renderGrid renders a header, a rule, the rows and a closing rule inside
// a card body of width innerW.
func renderGrid(cols []column, rows []gridRow, innerW int) string {
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emphStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	negStyle := lipgloss.NewStyle().Foreground(t.Loss()).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	total := 0
	for i, c := range cols {
		total += c.width
		if i > 0 {
			total++
		}
	}
	ruleW := min(total, innerW)

	cell := func(i int, s string) string {
		w := cols[i].width
		if lipgloss.Width(s) > w {
			s = truncStr(s, w)
		}
		if i == 0 {
			return fmt.Sprintf("%-*s", w, s)
		}
		return fmt.Sprintf("%*s", w, s)
	}

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(spaceStyle.Render(" "))
		}
		b.WriteString(headerStyle.Render(cell(i, c.title)))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", ruleW)))

	for _, r := range rows {
		b.WriteString("\n")
		for i := range cols {
			if i > 0 {
				b.WriteString(spaceStyle.Render(" "))
			}
			v := ""
			if i < len(r.cells) {
				v = r.cells[i]
			}
			style := valueStyle
			switch {
			case r.emphasis:
				style = emphStyle
			case i < len(r.negative) && r.negative[i]:
				style = negStyle
			case i == 0:
				style = labelStyle
			}
			b.WriteString(style.Render(cell(i, v)))
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", ruleW)))
	return b.String()
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
