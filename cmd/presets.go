package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in presets and saved scenarios",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func paramCells(p model.Params) []string {
	cells := make([]string, 0, len(model.ParamFields))
	for _, f := range model.ParamFields {
		v, _ := p.Value(f.Key)
		cells = append(cells, cli.FormatParam(v, f.Decimals()))
	}
	return cells
}

func paramHeaders(first ...string) []string {
	h := append([]string(nil), first...)
	for _, f := range model.ParamFields {
		h = append(h, paramFlagName(f.Key))
	}
	return h
}

func runPresets(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println(cli.RenderTitle("PRESETS"))
	fmt.Println()

	rows := make([][]string, 0, len(config.Presets))
	for _, p := range config.Presets {
		name := p.Name
		if p.Name == activeConfig.General.Preset {
			name += " *"
		}
		rows = append(rows, append([]string{name, p.Label}, paramCells(p.Params)...))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Built-in",
		Headers: paramHeaders("Name", "Label"),
		Rows:    rows,
	}))

	if flagNoStore {
		return nil
	}
	s, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
		return nil
	}
	defer func() { _ = s.Close() }()

	scenarios, err := s.List()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Println(cli.RenderNote("No saved scenarios. Save one with `runway scenario save <name>`."))
		return nil
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Saved",
		Headers: paramHeaders("Name", "Schedule"),
		Rows:    scenarioRows(scenarios),
	}))
	return nil
}

func scenarioRows(scenarios []model.Scenario) [][]string {
	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		rows = append(rows, append([]string{sc.Name, sc.Schedule}, paramCells(sc.Params)...))
	}
	return rows
}
