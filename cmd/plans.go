package cmd

import (
	"fmt"
	"math"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagProvider string

var plansCmd = &cobra.Command{
	Use:     "plans",
	Aliases: []string{"tiers"},
	Short:   "Subscription tier margins",
	RunE:    runPlans,
}

func init() {
	plansCmd.Flags().StringVar(&flagProvider, "provider", config.DefaultProvider, "AI provider model to compare list prices against")
	rootCmd.AddCommand(plansCmd)
}

func runPlans(cmd *cobra.Command, _ []string) error {
	r, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	a := r.Assumptions
	margins := pipeline.TierMargins(a)

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLAN MARGINS"))
	fmt.Println()

	_, priced := config.LookupProviderPricing(flagProvider)

	rows := make([][]string, 0, len(margins))
	for _, m := range margins {
		list := "-"
		if priced {
			list = cli.FormatMoney(pipeline.ProviderListCost(flagProvider, m.Tier))
		}
		rows = append(rows, []string{
			m.Name,
			cli.FormatMoney(m.Price),
			cli.FormatCompact(m.InputTokens),
			cli.FormatMoney(m.TokenCost),
			list,
			cli.RenderSigned(cli.FormatMoney(m.Margin), m.Margin),
			cli.RenderSigned(cli.FormatPercent(m.MarginPercent), m.MarginPercent),
			cli.FormatPercent(m.Share),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Tier", "Price", "Tokens", "Token cost", "List cost", "Margin", "Margin %", "Users"},
		Rows:    rows,
	}))

	for _, m := range margins {
		fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-8s %s", m.Name, cli.FormatPercent(m.Share)), m.Share, 100, 30))
	}
	fmt.Println()
	fmt.Printf("  Weighted paid margin: %s\n", cli.FormatPercent(pipeline.WeightedPaidMargin(margins)))
	fmt.Println(cli.RenderNote(fmt.Sprintf("token cost: %s per %s-token block; list cost at %s rates",
		cli.FormatMoney(a.TokenBlockPrice), cli.FormatCompact(a.TokenBlockSize), flagProvider)))
	if !priced {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("no list pricing for provider %q", flagProvider)))
	}

	plans := pipeline.PlanRevenue(project(r).Totals, a.Tiers)
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Revenue by plan (%s)", runLabel(r)),
		Headers: []string{"Plan", "Price", "Mix", "Users", "Revenue"},
		Rows:    planRows(plans),
	}))
	fmt.Println(cli.RenderNote("converted users split by paid-tier mix, billed at list price"))
	fmt.Println()
	return nil
}

// planRows renders a plan breakdown with a trailing total row.
func planRows(b model.PlanBreakdown) [][]string {
	rows := make([][]string, 0, len(b.Plans)+2)
	for _, p := range b.Plans {
		rows = append(rows, []string{
			p.Name,
			cli.FormatMoney(p.Price),
			cli.FormatPercent(p.Mix),
			cli.FormatNumber(int64(math.Round(p.Users))),
			cli.FormatCost(p.Revenue),
		})
	}
	return append(rows,
		cli.SeparatorRow,
		[]string{"Total", "", cli.FormatPercent(100), cli.FormatNumber(b.Users), cli.FormatCost(b.Revenue)},
	)
}
