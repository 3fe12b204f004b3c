package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := activeConfig
	vals := tui.SetupValues{
		Preset:   cfg.General.Preset,
		Schedule: cfg.General.Schedule,
		Theme:    cfg.Appearance.Theme,
	}

	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	vals.Apply(&cfg)
	if err := config.SaveTo(configPath(), cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `runway setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
