package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := activeConfig

	fmt.Printf("  Config file: %s\n", configPath())
	if configExists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Preset:      %s\n", cfg.General.Preset)
	fmt.Printf("    Schedule:    %s\n", cfg.General.Schedule)
	fmt.Printf("    Scenario db: %s\n", dbPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Params]")
	if cfg.Params.Empty() {
		fmt.Println("    none (preset values)")
	} else if p, err := cfg.Resolve(); err != nil {
		fmt.Printf("    invalid: %v\n", err)
	} else {
		for _, f := range model.ParamFields {
			v, _ := p.Value(f.Key)
			fmt.Printf("    %-6s %s\n", paramFlagName(f.Key)+":", cli.FormatParam(v, f.Decimals()))
		}
	}
	fmt.Println()

	a := cfg.ResolveAssumptions()
	fmt.Println("  [Assumptions]")
	fmt.Printf("    Conversion value:  %s\n", cli.FormatMoney(a.ConversionValue))
	fmt.Printf("    Programmer cost:   %s / month\n", cli.FormatMoney(a.ProgrammerCost))
	fmt.Printf("    Infrastructure:    %s × %.2f^(m-1)\n", cli.FormatMoney(a.InfrastructureBase), a.InfrastructureGrowth)
	if a.TokenCostPerUser > 0 {
		fmt.Printf("    Token cost:        %s / user\n", cli.FormatMoney(a.TokenCostPerUser))
	} else {
		fmt.Printf("    Token cost:        tiered (%d tiers)\n", len(a.Tiers))
	}
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", daemonAddr())
	fmt.Printf("    Interval: %s\n", daemonInterval())
	fmt.Println()

	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
