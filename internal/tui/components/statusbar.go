package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the status bar shows on its right side.
type StatusInfo struct {
	Source   string
	Schedule string
	Version  uint64
	Message  string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	if info.Message != "" {
		left += "  " + lipgloss.NewStyle().Foreground(t.Accent).Render(info.Message)
	}

	var right string
	if info.Source != "" {
		right = fmt.Sprintf("%s · %s · v%d ", info.Source, info.Schedule, info.Version)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
