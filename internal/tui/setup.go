package tui

import (
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues holds the first-run choices.
type SetupValues struct {
	Preset   string
	Schedule string
	Theme    string
}

// Apply copies the choices into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if v.Preset != "" {
		cfg.General.Preset = v.Preset
		cfg.Params = config.ParamOverrides{}
	}
	if v.Schedule != "" {
		cfg.General.Schedule = v.Schedule
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
}

// NewSetupForm builds the first-run form. Choices are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	if vals.Preset == "" {
		vals.Preset = config.PresetCurrent
	}
	if vals.Schedule == "" {
		vals.Schedule = config.ScheduleOverview
	}
	if vals.Theme == "" {
		vals.Theme = theme.FlexokiDark.Name
	}

	presets := make([]huh.Option[string], 0, len(config.Presets))
	for _, p := range config.Presets {
		presets = append(presets, huh.NewOption(p.Label, p.Name))
	}
	schedules := make([]huh.Option[string], 0, len(config.Schedules))
	for _, s := range config.Schedules {
		schedules = append(schedules, huh.NewOption(s.Label, s.Name))
	}
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to runway").
				Description("Pick a starting scenario. Everything can be changed later\nin the Settings tab or with `runway setup`."),
			huh.NewSelect[string]().
				Title("Starting preset").
				Options(presets...).
				Value(&vals.Preset),
			huh.NewSelect[string]().
				Title("Cost schedule").
				Description("Overview and cost analysis disagree on marketing spend.").
				Options(schedules...).
				Value(&vals.Schedule),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// applySetup saves the choices and switches the dashboard to them.
func (a *App) applySetup() {
	cfg := loadConfigOrDefault(a.configPath)
	a.setupVals.Apply(&cfg)
	if err := config.SaveTo(a.configPath, cfg); err != nil {
		a.message = "config not saved: " + err.Error()
	}

	theme.SetActive(cfg.Appearance.Theme)
	if s, ok := config.LookupSchedule(cfg.General.Schedule); ok {
		a.schedule = s
	}
	if p, ok := config.LookupPreset(cfg.General.Preset); ok {
		a.params = p.Params
		a.preset = p.Name
	}
	a.recompute()
}
