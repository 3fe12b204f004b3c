// Package tui provides the interactive Bubble Tea dashboard for runway.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/state"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ScenarioSaver persists named parameter sets.
type ScenarioSaver interface {
	Save(sc model.Scenario) (model.Scenario, error)
}

// Options configures a new App.
type Options struct {
	Params      model.Params
	Preset      string // empty when Params do not come from a preset
	Schedule    string
	Assumptions config.Assumptions
	State       *state.FinancialState
	Store       ScenarioSaver // nil disables saving
	ConfigPath  string
	NeedSetup   bool
}

// Tab indices, in components.Tabs order.
const (
	tabOverview = iota
	tabModel
	tabCosts
	tabSettings
)

// Chart modes on the Model tab.
const (
	chartCurve = iota
	chartFunnel
	chartProfit
	chartModeCount
)

var chartModeNames = []string{"Traffic curve", "User funnel", "Revenue & profit"}

// inputMode says what the shared text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputParam
	inputScenario
)

// App is the root Bubble Tea model.
type App struct {
	// Inputs
	params      model.Params
	preset      string
	schedule    config.Schedule
	assumptions config.Assumptions
	state       *state.FinancialState
	store       ScenarioSaver
	configPath  string

	// Derived, rebuilt by recompute
	proj       model.Projection
	costProj   model.Projection
	split      model.CostSplit
	margins    []model.TierMargin
	weighted   float64
	plans      model.PlanBreakdown
	reductions []model.Reduction
	snap       state.Snapshot

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	message   string

	// Model tab
	cursor    int
	chartMode int
	mode      inputMode
	input     textinput.Model
	inputErr  error

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault(path string) config.Config {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the dashboard model and computes the first projection.
func NewApp(opts Options) App {
	sched, ok := config.LookupSchedule(opts.Schedule)
	if !ok {
		sched, _ = config.LookupSchedule(config.ScheduleOverview)
	}
	st := opts.State
	if st == nil {
		st = state.New()
	}
	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}

	a := App{
		params:      opts.Params,
		preset:      opts.Preset,
		schedule:    sched,
		assumptions: opts.Assumptions,
		state:       st,
		store:       opts.Store,
		configPath:  path,
		needSetup:   opts.NeedSetup,
		setupVals:   &SetupValues{},
	}
	if a.needSetup {
		a.setupForm = NewSetupForm(a.setupVals)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Snapshot returns the snapshot the dashboard last published.
func (a App) Snapshot() state.Snapshot { return a.snap }

// recompute runs the full projection for the current inputs and publishes
// the overview totals. Every parameter change goes through here exactly once.
func (a *App) recompute() {
	e := engine.New(engine.WithSchedule(a.schedule), engine.WithAssumptions(a.assumptions))
	a.proj = pipeline.Project(e, a.params, a.preset)

	costSched, _ := config.LookupSchedule(config.ScheduleCostAnalysis)
	ce := engine.New(engine.WithSchedule(costSched), engine.WithAssumptions(a.assumptions))
	a.costProj = pipeline.Project(ce, a.params, a.preset)
	a.split = pipeline.AggregateCostSplit(a.costProj.Months)

	a.margins = pipeline.TierMargins(a.assumptions)
	a.weighted = pipeline.WeightedPaidMargin(a.margins)
	a.plans = pipeline.PlanRevenue(a.proj.Totals, a.assumptions.Tiers)
	a.reductions = pipeline.Reductions()

	a.snap = a.state.PublishProjection(a.proj)
}

// setParams replaces the coefficients and recomputes.
func (a *App) setParams(p model.Params) {
	a.params = p
	a.preset = config.MatchPreset(p)
	a.recompute()
}

func (a *App) applyPreset(name string) {
	preset, ok := config.LookupPreset(name)
	if !ok {
		return
	}
	a.setParams(preset.Params)
	a.message = "preset: " + preset.Label
}

func (a *App) nudge(steps int) {
	f := model.ParamFields[a.cursor]
	p := a.params
	p.Nudge(f.Key, steps)
	if p == a.params {
		return
	}
	if err := p.Validate(); err != nil {
		a.message = err.Error()
		return
	}
	a.setParams(p)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabModel && a.cursor > 0 {
				a.cursor--
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabModel && a.cursor < len(model.ParamFields)-1 {
				a.cursor++
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.mode != inputNone {
			return a.updateInput(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.message = ""

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		} else {
			switch key {
			case "j", "down":
				if a.cursor < len(model.ParamFields)-1 {
					a.cursor++
				}
				return a, nil
			case "k", "up":
				if a.cursor > 0 {
					a.cursor--
				}
				return a, nil
			case "l", "+", "=":
				a.nudge(1)
				return a, nil
			case "h", "-":
				a.nudge(-1)
				return a, nil
			case "e", "enter":
				return a.startInput(inputParam)
			case "v":
				a.chartMode = (a.chartMode + 1) % chartModeCount
				return a, nil
			}
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "1":
			a.applyPreset(config.PresetCurrent)
		case "2":
			a.applyPreset(config.PresetCapital)
		case "s":
			return a.startInput(inputScenario)
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) startInput(mode inputMode) (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30

	switch mode {
	case inputParam:
		f := model.ParamFields[a.cursor]
		v, _ := a.params.Value(f.Key)
		ti.Placeholder = fmt.Sprintf("%g .. %g", f.Min, f.Max)
		ti.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
		a.activeTab = tabModel
	case inputScenario:
		if a.store == nil {
			a.message = "scenario store disabled"
			return a, nil
		}
		ti.Placeholder = "scenario name"
	}

	ti.Focus()
	a.mode = mode
	a.input = ti
	a.inputErr = nil
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = inputNone
		a.inputErr = nil
		return a, nil
	case "enter":
		var err error
		switch a.mode {
		case inputParam:
			err = a.commitParam(a.input.Value())
		case inputScenario:
			err = a.commitScenario(a.input.Value())
		}
		if err != nil {
			a.inputErr = err
			return a, nil
		}
		a.mode = inputNone
		a.inputErr = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// commitParam parses a typed coefficient. Typed values may leave the
// slider range but must keep the curves evaluable.
func (a *App) commitParam(raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", raw)
	}
	f := model.ParamFields[a.cursor]
	p := a.params
	p.Set(f.Key, v)
	if err := p.Validate(); err != nil {
		return err
	}
	a.setParams(p)
	return nil
}

func (a *App) commitScenario(raw string) error {
	name := strings.TrimSpace(raw)
	if name == "" {
		return errors.New("name is required")
	}
	if _, ok := config.LookupPreset(name); ok {
		return fmt.Errorf("%q is a built-in preset", name)
	}
	sc, err := a.store.Save(model.Scenario{
		Name:     name,
		Preset:   a.preset,
		Schedule: a.schedule.Name,
		Params:   a.params,
	})
	if err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}
	a.message = "saved scenario " + sc.Name
	return nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o m c x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Select parameter"},
		}},
		{"Model", []struct{ key, desc string }{
			{"h l  - +", "Step parameter down / up"},
			{"e", "Type a value"},
			{"v", "Cycle chart"},
			{"1 2", "Current / capital preset"},
			{"s", "Save scenario"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel input"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewHeader renders the tab bar and a summary line read from the shared
// financial state.
func (a App) viewHeader() string {
	t := theme.Active
	w := a.width

	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	info := pill.Render(" ") + accent.Render(presetLabel(a.preset)) +
		pill.Render(" │ ") + accent.Render(a.schedule.Label)

	if snap, ok := a.state.Snapshot(); ok {
		net := lipgloss.NewStyle().Foreground(t.Signed(snap.NetProfit)).Background(t.Surface).Bold(true)
		info += pill.Render(" │ revenue ") + accent.Render(cli.FormatCost(snap.TotalRevenue)) +
			pill.Render(" │ expenses ") + accent.Render(cli.FormatCost(snap.TotalExpenses)) +
			pill.Render(" │ net ") + net.Render(cli.FormatCost(snap.NetProfit))
	}
	info += pill.Render(" ")

	row := lipgloss.NewStyle().Background(t.Surface).Width(w)
	return components.RenderTabBar(a.activeTab, w) + "\n" + row.Render(info)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := a.viewHeader()

	status := components.StatusInfo{
		Source:   a.snap.Source,
		Schedule: a.snap.Schedule,
		Version:  a.snap.Version,
		Message:  a.message,
	}
	if a.mode == inputScenario {
		status.Message = "save as: " + a.input.View()
		if a.inputErr != nil {
			status.Message += "  " + a.inputErr.Error()
		}
	}
	statusBar := components.RenderStatusBar(w, status)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabModel:
		content = a.renderModelTab(cw)
	case tabCosts:
		content = a.renderCostsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func presetLabel(name string) string {
	if p, ok := config.LookupPreset(name); ok {
		return p.Label
	}
	if name == "" {
		return "Custom"
	}
	return name
}

func monthLabels(records []model.MonthRecord) []string {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = cli.FormatMonth(r.Month)
	}
	return labels
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow RenderTabBar: one leading space, two between tabs.
func (a App) tabAtX(x int) int {
	pos := 1
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2
	}
	return -1
}
