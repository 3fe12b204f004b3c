package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/state"
	"github.com/theirongolddev/runway/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard"},
	Short:   "Launch the interactive projection dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	opts := tui.Options{
		Params:      r.Params,
		Preset:      r.Name,
		Schedule:    r.Schedule.Name,
		Assumptions: r.Assumptions,
		State:       state.New(),
		ConfigPath:  configPath(),
		NeedSetup:   !configExists(),
	}

	if !flagNoStore {
		s, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %v (saving scenarios disabled)\n", err)
		} else {
			defer func() { _ = s.Close() }()
			opts.Store = s
		}
	}

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func configExists() bool {
	_, err := os.Stat(configPath())
	return err == nil
}
