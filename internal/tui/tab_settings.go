package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldPreset
	settingsFieldSchedule
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func presetNames() []string {
	names := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		names[i] = p.Name
	}
	return names
}

func scheduleNames() []string {
	names := make([]string, len(config.Schedules))
	for i, s := range config.Schedules {
		names[i] = s.Name
	}
	return names
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault(a.configPath)
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldPreset:
		ti.Placeholder = strings.Join(presetNames(), ", ")
		ti.SetValue(cfg.General.Preset)
	case settingsFieldSchedule:
		ti.Placeholder = strings.Join(scheduleNames(), ", ")
		ti.SetValue(cfg.General.Schedule)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited value, applies it to the running
// dashboard and writes the config file.
func (a *App) settingsSave() {
	cfg := loadConfigOrDefault(a.configPath)
	val := strings.ToLower(strings.TrimSpace(a.settings.input.Value()))

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.SetActive(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = theme.Active.Name
	case settingsFieldPreset:
		p, ok := config.LookupPreset(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("unknown preset %q", val)
			return
		}
		cfg.General.Preset = p.Name
		cfg.Params = config.ParamOverrides{}
	case settingsFieldSchedule:
		s, ok := config.LookupSchedule(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("unknown schedule %q", val)
			return
		}
		cfg.General.Schedule = s.Name
		if s.Name != a.schedule.Name {
			a.schedule = s
			a.recompute()
		}
	}

	a.settings.saveErr = config.SaveTo(a.configPath, cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault(a.configPath)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Default Preset", cfg.General.Preset},
		{"Default Schedule", cfg.General.Schedule},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := innerW - used; pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	as := a.assumptions
	tokenRate := "tiered"
	if as.TokenCostPerUser > 0 {
		tokenRate = cli.FormatMoney(as.TokenCostPerUser) + " / user"
	}
	dbPath := cfg.General.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value) + "\n"
	}

	var info strings.Builder
	info.WriteString(line("Config file:", a.configPath))
	info.WriteString(line("Scenario db:", dbPath))
	info.WriteString(line("Conversion value:", cli.FormatMoney(as.ConversionValue)))
	info.WriteString(line("Programmer cost:", cli.FormatMoney(as.ProgrammerCost)+" / month"))
	info.WriteString(line("Infrastructure:", fmt.Sprintf("%s × %.2f^(m-1)", cli.FormatMoney(as.InfrastructureBase), as.InfrastructureGrowth)))
	info.WriteString(line("Token cost:", tokenRate))
	info.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "Published:")) +
		valueStyle.Render(fmt.Sprintf("v%d at %s", a.snap.Version, a.snap.At.Format("15:04:05"))))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Assumptions", info.String(), cw))

	return b.String()
}
