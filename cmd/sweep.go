package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var flagSweepValues []float64

var sweepCmd = &cobra.Command{
	Use:   "sweep <param>",
	Short: "Annual totals across one coefficient's range",
	Long: "Recompute the projection for every step of a coefficient's slider range\n" +
		"(or the values given with --values), holding the others fixed.",
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().Float64SliceVar(&flagSweepValues, "values", nil, "Explicit values to evaluate instead of the full range")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	key := strings.ReplaceAll(strings.ToLower(args[0]), "-", "_")
	field, ok := model.LookupField(key)
	if !ok {
		keys := make([]string, len(model.ParamFields))
		for i, f := range model.ParamFields {
			keys[i] = paramFlagName(f.Key)
		}
		return fmt.Errorf("unknown parameter %q (one of %s)", args[0], strings.Join(keys, ", "))
	}

	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}

	values := flagSweepValues
	if len(values) == 0 {
		values = pipeline.SweepValues(field)
	}

	var progressFn pipeline.ProgressFunc
	var bar *progressbar.ProgressBar
	if !flagQuiet {
		bar = progressbar.NewOptions(len(values),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("  sweeping "+paramFlagName(key)),
			progressbar.OptionClearOnFinish(),
		)
		progressFn = func(_, _ int) { _ = bar.Add(1) }
	}

	e := engine.New(engine.WithSchedule(r.Schedule), engine.WithAssumptions(r.Assumptions))
	points, err := pipeline.Sweep(e, r.Params, key, values, progressFn)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	base, _ := r.Params.Value(key)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SWEEP  %s  (%s)", field.Label, runLabel(r))))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		label := cli.FormatParam(p.Value, field.Decimals())
		if p.Value == base {
			label += " *"
		}
		be := "-"
		if p.BreakEven > 0 {
			be = cli.FormatMonth(p.BreakEven)
		}
		rows = append(rows, []string{
			label,
			cli.FormatCompact(p.Totals.Views),
			cli.FormatNumber(p.Totals.ConvertedUsers),
			cli.FormatCost(p.Totals.Revenue),
			cli.FormatCost(p.Totals.Expenses()),
			cli.RenderSigned(cli.FormatCost(p.Totals.NetProfit), p.Totals.NetProfit),
			be,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{field.Label, "Views", "Converted", "Revenue", "Expenses", "Net", "Break-even"},
		Rows:    rows,
	}))

	net := make([]float64, len(points))
	for i, p := range points {
		net[i] = p.Totals.NetProfit
	}
	fmt.Println(cli.RenderNote("net profit  " + cli.RenderSparkline(net)))
	fmt.Println(cli.RenderNote(fmt.Sprintf("* current value; schedule %s", r.Schedule.Label)))
	return nil
}
