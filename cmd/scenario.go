package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var flagScenarioNotes string

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scenarios"},
	Short:   "Manage saved parameter sets",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the resolved parameters under a name",
	Long: "Save the parameters selected by --preset, the config file and any\n" +
		"--exp-*/--log-* flags, together with the schedule.",
	Args: cobra.ExactArgs(1),
	RunE: runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved scenario",
	Args:    cobra.ExactArgs(1),
	RunE:    runScenarioDelete,
}

func init() {
	scenarioSaveCmd.Flags().StringVar(&flagScenarioNotes, "notes", "", "Free-form notes stored with the scenario")

	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioDeleteCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := config.LookupPreset(name); ok {
		return fmt.Errorf("%q is a built-in preset name", name)
	}

	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sc, err := s.Save(model.Scenario{
		Name:     name,
		Preset:   r.Name,
		Schedule: r.Schedule.Name,
		Params:   r.Params,
		Notes:    flagScenarioNotes,
	})
	if err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}

	fmt.Printf("  Saved scenario %s (%s)\n", sc.Name, sc.ID)
	fmt.Printf("  Project it with: runway --preset %s\n", sc.Name)
	return nil
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	scenarios, err := s.List()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Println("\n  No saved scenarios.")
		return nil
	}

	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		base := sc.Preset
		if base == "" {
			base = "custom"
		}
		rows = append(rows, []string{
			sc.Name, base, sc.Schedule,
			sc.UpdatedAt.Local().Format("2006-01-02 15:04"),
			sc.Notes,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Saved scenarios (%s)", dbPath()),
		Headers: []string{"Name", "Based on", "Schedule", "Updated", "Notes"},
		Rows:    rows,
	}))
	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Delete(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved scenario named %q", args[0])
		}
		return err
	}
	n, err := s.Count()
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted scenario %s (%d left)\n", args[0], n)
	return nil
}
