package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Annual totals for the selected preset",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// project runs the engine for r.
func project(r run) model.Projection {
	e := engine.New(engine.WithSchedule(r.Schedule), engine.WithAssumptions(r.Assumptions))
	return pipeline.Project(e, r.Params, r.Name)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	proj := project(r)
	totals := proj.Totals

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUNWAY  %s · %s", runLabel(r), r.Schedule.Label)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    summaryRows(proj),
	}))

	views := pipeline.Series(proj.Months, func(m model.MonthRecord) float64 { return float64(m.Views) })
	fmt.Println()
	fmt.Println(cli.RenderNote("views  " + cli.RenderSparkline(views)))

	if ref, ok := presetReference(r); ok && !matchesReference(totals, ref) {
		fmt.Println(cli.RenderWarning(fmt.Sprintf(
			"totals differ from the documented figures for %s (revenue %s)",
			r.Name, cli.FormatCost(ref.Revenue))))
	}
	return nil
}

// summaryRows lists the annual figures of proj as metric/value rows.
func summaryRows(proj model.Projection) [][]string {
	totals := proj.Totals
	rows := [][]string{
		{"Views", cli.FormatNumber(totals.Views)},
		{"Registered users", cli.FormatNumber(totals.RegisteredUsers)},
		{"Converted users", cli.FormatNumber(totals.ConvertedUsers)},
		{"Repeat purchases", cli.FormatNumber(totals.RepeatPurchases)},
		cli.SeparatorRow,
		{"Revenue", cli.FormatCost(totals.Revenue)},
	}
	for _, cat := range model.CostCategories {
		rows = append(rows, []string{
			"  " + costLabel(cat),
			fmt.Sprintf("%s  (%s)", cli.FormatCost(totals.Costs.Get(cat)), cli.FormatPercent(totals.CostShare(cat))),
		})
	}
	rows = append(rows,
		[]string{"Expenses", cli.FormatCost(totals.Expenses())},
		cli.SeparatorRow,
		[]string{"Net profit", cli.RenderSigned(cli.FormatCost(totals.NetProfit), totals.NetProfit)},
		[]string{"Profit margin", cli.RenderSigned(cli.FormatPercent(totals.ProfitMargin), totals.ProfitMargin)},
	)

	be := "none in the first year"
	if m := pipeline.BreakEvenMonth(proj.Months); m > 0 {
		be = cli.FormatMonth(m)
	}
	rows = append(rows, []string{"First profitable month", be})

	return rows
}

func costLabel(cat string) string {
	switch cat {
	case model.CostDevelopment:
		return "Development"
	case model.CostMarketing:
		return "Marketing"
	case model.CostInfrastructure:
		return "Infrastructure"
	case model.CostTokens:
		return "AI tokens"
	}
	return cat
}

// presetReference returns the documented totals when r is an unmodified
// built-in preset on default assumptions.
func presetReference(r run) (config.Reference, bool) {
	p, ok := config.LookupPreset(r.Name)
	if !ok || p.Params != r.Params {
		return config.Reference{}, false
	}
	return p.Reference, true
}

func matchesReference(t model.Totals, ref config.Reference) bool {
	return t.RegisteredUsers == ref.RegisteredUsers &&
		t.ConvertedUsers == ref.ConvertedUsers &&
		fmt.Sprintf("%.2f", t.Revenue) == fmt.Sprintf("%.2f", ref.Revenue)
}
