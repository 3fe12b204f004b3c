package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var costLabels = map[string]string{
	model.CostDevelopment:    "Development",
	model.CostMarketing:      "Marketing",
	model.CostInfrastructure: "Infrastructure",
	model.CostTokens:         "AI tokens",
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	snap, _ := a.state.Snapshot()
	totals := a.proj.Totals
	months := a.proj.Months
	var b strings.Builder

	// Row 1: cards read from the shared state so they match the header.
	var last model.MonthRecord
	if len(months) > 0 {
		last = months[len(months)-1]
	}
	cards := []components.Metric{
		{
			Label: "Annual revenue",
			Value: cli.FormatCost(snap.TotalRevenue),
			Delta: cli.FormatCost(last.Revenue) + " in month 12",
		},
		{
			Label: "Annual expenses",
			Value: cli.FormatCost(snap.TotalExpenses),
			Delta: cli.FormatCost(last.Costs.Total()) + " in month 12",
		},
		{
			Label: "Net profit",
			Value: cli.FormatCost(snap.NetProfit),
			Delta: cli.FormatPercent(snap.ProfitMargin) + " margin",
			Tone:  components.ToneOf(snap.NetProfit),
		},
		{
			Label: "Registered users",
			Value: cli.FormatCompact(snap.RegisteredUsers),
			Delta: cli.FormatCompact(snap.PaidUsers) + " paid",
		},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: revenue vs expenses per month
	labels := monthLabels(months)
	revenue := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.Revenue })
	expenses := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.Costs.Total() })

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	halves := components.LayoutRow(cw, 2)
	revCard := components.ContentCard(
		"Revenue ("+cli.FormatCost(totals.Revenue)+")",
		components.BarChart(revenue, labels, t.Profit(), components.CardInnerWidth(halves[0]), chartH),
		halves[0],
	)
	expCard := components.ContentCard(
		"Expenses ("+cli.FormatCost(totals.Expenses())+")",
		components.BarChart(expenses, labels, t.Orange, components.CardInnerWidth(halves[1]), chartH),
		halves[1],
	)
	if a.isCompactLayout() {
		b.WriteString(revCard)
		b.WriteString("\n")
		b.WriteString(expCard)
	} else {
		b.WriteString(components.CardRow([]string{revCard, expCard}))
	}
	b.WriteString("\n")

	// Row 3: cost split + monthly net profit
	barW := components.CardInnerWidth(halves[0]) - 24
	if barW < 8 {
		barW = 8
	}
	var split strings.Builder
	for i, cat := range model.CostCategories {
		if i > 0 {
			split.WriteString("\n")
		}
		split.WriteString(components.ShareBar(costLabels[cat], totals.CostShare(cat), t.CostColor(cat), 15, barW))
	}
	split.WriteString("\n\n")
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if m := pipeline.BreakEvenMonth(months); m > 0 {
		split.WriteString(muted.Render(fmt.Sprintf("First profitable month: %s", cli.FormatMonth(m))))
	} else {
		split.WriteString(muted.Render("No profitable month in the first year"))
	}

	splitCard := components.ContentCard("Where the money goes", split.String(), halves[0])

	net := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.NetProfit })
	netCard := components.ContentCard(
		"Net profit by month",
		components.DivergingBars(net, labels, components.CardInnerWidth(halves[1])),
		halves[1],
	)

	if a.isCompactLayout() {
		b.WriteString(splitCard)
		b.WriteString("\n")
		b.WriteString(netCard)
	} else {
		b.WriteString(components.CardRow([]string{splitCard, netCard}))
	}

	return b.String()
}
