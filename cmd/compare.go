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

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Built-in presets side by side, with reference totals and cost reductions",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	a := activeConfig.ResolveAssumptions()
	schedName := activeConfig.General.Schedule
	if flagSchedule != "" {
		schedName = flagSchedule
	}
	sched, ok := config.LookupSchedule(schedName)
	if !ok {
		return fmt.Errorf("unknown schedule %q", schedName)
	}

	projections := make([]model.Projection, len(config.Presets))
	for i, p := range config.Presets {
		e := engine.New(engine.WithSchedule(sched), engine.WithAssumptions(a))
		projections[i] = pipeline.Project(e, p.Params, p.Name)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PRESETS  %s", sched.Label)))
	fmt.Println()

	headers := []string{"Metric"}
	for _, p := range config.Presets {
		headers = append(headers, p.Label)
	}
	line := func(label string, f func(model.Totals) string) []string {
		row := []string{label}
		for _, pr := range projections {
			row = append(row, f(pr.Totals))
		}
		return row
	}
	rows := [][]string{
		line("Views", func(t model.Totals) string { return cli.FormatNumber(t.Views) }),
		line("Registered", func(t model.Totals) string { return cli.FormatNumber(t.RegisteredUsers) }),
		line("Converted", func(t model.Totals) string { return cli.FormatNumber(t.ConvertedUsers) }),
		line("Revenue", func(t model.Totals) string { return cli.FormatCost(t.Revenue) }),
		line("Expenses", func(t model.Totals) string { return cli.FormatCost(t.Expenses()) }),
		line("Net profit", func(t model.Totals) string { return cli.RenderSigned(cli.FormatCost(t.NetProfit), t.NetProfit) }),
		line("Margin", func(t model.Totals) string { return cli.FormatPercent(t.ProfitMargin) }),
	}
	be := []string{"Break-even"}
	for _, pr := range projections {
		s := "-"
		if m := pipeline.BreakEvenMonth(pr.Months); m > 0 {
			s = cli.FormatMonth(m)
		}
		be = append(be, s)
	}
	rows = append(rows, be)
	if len(projections) == 2 {
		headers = append(headers, "Change")
		from, to := projections[0].Totals, projections[1].Totals
		rows[3] = append(rows[3], cli.FormatDelta(to.Revenue, from.Revenue))
		rows[4] = append(rows[4], cli.FormatDelta(to.Expenses(), from.Expenses()))
		rows[5] = append(rows[5], cli.FormatDelta(to.NetProfit, from.NetProfit))
	}

	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))

	// Reference check against the documented annual figures.
	refRows := make([][]string, 0, len(config.Presets))
	for i, p := range config.Presets {
		t := projections[i].Totals
		status := "ok"
		if !matchesReference(t, p.Reference) {
			status = "differs"
		}
		refRows = append(refRows, []string{
			p.Name,
			cli.FormatCost(p.Reference.Revenue), cli.FormatCost(t.Revenue),
			cli.FormatNumber(p.Reference.RegisteredUsers), cli.FormatNumber(t.RegisteredUsers),
			cli.FormatNumber(p.Reference.ConvertedUsers), cli.FormatNumber(t.ConvertedUsers),
			status,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Reference totals",
		Headers: []string{"Preset", "Revenue (ref)", "Revenue", "Reg (ref)", "Reg", "Conv (ref)", "Conv", "Check"},
		Rows:    refRows,
	}))

	// Net profit under each schedule; the two disagree on marketing and staffing.
	schedRows := make([][]string, 0, len(config.Presets))
	for _, p := range config.Presets {
		row := []string{p.Name}
		for _, s := range config.Schedules {
			e := engine.New(engine.WithSchedule(s), engine.WithAssumptions(a))
			t := pipeline.Aggregate(e.Compute(p.Params))
			row = append(row, cli.RenderSigned(cli.FormatCost(t.NetProfit), t.NetProfit))
		}
		schedRows = append(schedRows, row)
	}
	schedHeaders := []string{"Net profit"}
	for _, s := range config.Schedules {
		schedHeaders = append(schedHeaders, s.Label)
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "By schedule", Headers: schedHeaders, Rows: schedRows}))

	redRows := make([][]string, 0, 3)
	for _, r := range pipeline.Reductions() {
		redRows = append(redRows, []string{
			r.Label, formatUnit(r.Before, r.Unit), formatUnit(r.After, r.Unit),
			formatUnit(r.Saved, r.Unit), cli.FormatPercent(r.Percent),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cost reductions",
		Headers: []string{"Change", "Before", "After", "Saved", "%"},
		Rows:    redRows,
	}))
	return nil
}

func formatUnit(v float64, unit string) string {
	if unit == "usd" {
		return cli.FormatCost(v)
	}
	return fmt.Sprintf("%.0f %s", v, unit)
}
