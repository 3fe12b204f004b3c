package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Fixed and variable costs under the cost-analysis schedule",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	// The cost breakdown always uses the per-programmer schedule unless
	// another one was asked for explicitly.
	if flagSchedule == "" {
		r.Schedule, _ = config.LookupSchedule(config.ScheduleCostAnalysis)
	}
	proj := project(r)
	split := pipeline.AggregateCostSplit(proj.Months)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COST BREAKDOWN  %s · %s", runLabel(r), r.Schedule.Label)))
	fmt.Println()

	fixedRows := make([][]string, 0, len(split.Fixed)+2)
	for _, f := range split.Fixed {
		fixedRows = append(fixedRows, []string{
			cli.FormatMonth(f.Month),
			fmt.Sprintf("%d", f.Programmers),
			cli.FormatCost(f.ProgrammerCost),
			cli.FormatCost(f.Infrastructure),
			cli.FormatCost(f.Total),
		})
	}
	fixedRows = append(fixedRows, cli.SeparatorRow, []string{"TOTAL", "", "", "", cli.FormatCost(split.FixedTotal)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Fixed costs",
		Headers: []string{"Month", "Devs", "Development", "Infra", "Total"},
		Rows:    fixedRows,
	}))

	varRows := make([][]string, 0, len(split.Variable)+2)
	for _, v := range split.Variable {
		varRows = append(varRows, []string{
			cli.FormatMonth(v.Month),
			cli.FormatCost(v.Revenue),
			cli.FormatPercent(v.MarketingRate),
			cli.FormatCost(v.Marketing),
			cli.FormatNumber(v.FreeUsers),
			cli.FormatNumber(v.PaidUsers),
			cli.FormatCost(v.Tokens),
			cli.FormatCost(v.Total),
		})
	}
	varRows = append(varRows, cli.SeparatorRow, []string{"TOTAL", "", "", "", "", "", "", cli.FormatCost(split.VariableTotal)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Variable costs",
		Headers: []string{"Month", "Revenue", "Mkt %", "Marketing", "Free", "Paid", "Tokens", "Total"},
		Rows:    varRows,
	}))

	// Fixed vs variable
	maxCost := max(split.FixedTotal, split.VariableTotal)
	fmt.Printf("  Fixed     %s  %s\n",
		cli.RenderHorizontalBar("", split.FixedTotal, maxCost, 30),
		cli.FormatCost(split.FixedTotal))
	fmt.Printf("  Variable  %s  %s\n\n",
		cli.RenderHorizontalBar("", split.VariableTotal, maxCost, 30),
		cli.FormatCost(split.VariableTotal))

	t := proj.Totals
	fmt.Printf("  Revenue %s  ·  Expenses %s  ·  Net %s\n",
		cli.FormatCost(t.Revenue),
		cli.FormatCost(split.Total()),
		cli.RenderSigned(cli.FormatCost(t.NetProfit), t.NetProfit))
	fmt.Printf("  Team size by month 12: %d programmers\n\n", split.FinalProgrammers)
	return nil
}
