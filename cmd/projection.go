package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"

	"github.com/spf13/cobra"
)

var projectionCmd = &cobra.Command{
	Use:     "projection",
	Aliases: []string{"table"},
	Short:   "Month-by-month projection table",
	RunE:    runProjection,
}

func init() {
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	proj := project(r)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("12-MONTH PROJECTION  %s", runLabel(r))))
	fmt.Println()

	rows := make([][]string, 0, len(proj.Months)+2)
	for _, m := range proj.Months {
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatNumber(m.Views),
			fmt.Sprintf("%.2f%%", m.RegistrationRate),
			cli.FormatNumber(m.RegisteredUsers),
			fmt.Sprintf("%.2f%%", m.ConversionRate),
			cli.FormatNumber(m.ConvertedUsers),
			fmt.Sprintf("%.0f%%", m.RepeatPurchaseRate),
			cli.FormatNumber(m.RepeatPurchases),
			cli.FormatCost(m.Revenue),
			cli.FormatCost(m.Costs.Total()),
			cli.RenderSigned(cli.FormatCost(m.NetProfit), m.NetProfit),
		})
	}

	t := proj.Totals
	rows = append(rows, cli.SeparatorRow, []string{
		"Total",
		cli.FormatNumber(t.Views),
		"",
		cli.FormatNumber(t.RegisteredUsers),
		"",
		cli.FormatNumber(t.ConvertedUsers),
		"",
		cli.FormatNumber(t.RepeatPurchases),
		cli.FormatCost(t.Revenue),
		cli.FormatCost(t.Expenses()),
		cli.RenderSigned(cli.FormatCost(t.NetProfit), t.NetProfit),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Views", "Reg %", "Registered", "Conv %", "Converted", "Rep %", "Repeat", "Revenue", "Expenses", "Net"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderNote(fmt.Sprintf("schedule: %s", r.Schedule.Label)))
	return nil
}
