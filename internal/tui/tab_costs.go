package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderCostsTab shows the cost-analysis schedule, which staffs
// development per programmer and spends less on marketing than the overview.
func (a App) renderCostsTab(cw int) string {
	split := a.split
	totals := a.costProj.Totals
	var b strings.Builder

	cards := []components.Metric{
		{Label: "Fixed costs", Value: cli.FormatCost(split.FixedTotal), Delta: "development + infrastructure"},
		{Label: "Variable costs", Value: cli.FormatCost(split.VariableTotal), Delta: "marketing + AI tokens"},
		{
			Label: "Net profit",
			Value: cli.FormatCost(totals.NetProfit),
			Delta: cli.FormatPercent(totals.ProfitMargin) + " margin",
			Tone:  components.ToneOf(totals.NetProfit),
		},
		{Label: "Team size", Value: fmt.Sprintf("%d programmers", split.FinalProgrammers), Delta: "by month 12"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	fixedW, varW := halves[0], halves[1]
	if a.isCompactLayout() {
		fixedW, varW = cw, cw
	}

	fixedRows := make([]gridRow, 0, len(split.Fixed)+1)
	for _, r := range split.Fixed {
		fixedRows = append(fixedRows, gridRow{cells: []string{
			cli.FormatMonth(r.Month), fmt.Sprintf("%d", r.Programmers),
			cli.FormatCost(r.ProgrammerCost), cli.FormatCost(r.Infrastructure), cli.FormatCost(r.Total),
		}})
	}
	fixedRows = append(fixedRows, gridRow{emphasis: true, cells: []string{
		"Total", "", "", "", cli.FormatCost(split.FixedTotal),
	}})
	fixedCard := components.ContentCard("Fixed costs", renderGrid([]column{
		{"Month", 5}, {"Devs", 4}, {"Development", 11}, {"Infra", 8}, {"Total", 10},
	}, fixedRows, components.CardInnerWidth(fixedW)), fixedW)

	varRows := make([]gridRow, 0, len(split.Variable)+1)
	for _, r := range split.Variable {
		varRows = append(varRows, gridRow{cells: []string{
			cli.FormatMonth(r.Month), cli.FormatPercent(r.MarketingRate), cli.FormatCost(r.Marketing),
			cli.FormatCompact(r.PaidUsers), cli.FormatCost(r.Tokens), cli.FormatCost(r.Total),
		}})
	}
	varRows = append(varRows, gridRow{emphasis: true, cells: []string{
		"Total", "", "", "", "", cli.FormatCost(split.VariableTotal),
	}})
	varCard := components.ContentCard("Variable costs", renderGrid([]column{
		{"Month", 5}, {"Mkt %", 6}, {"Marketing", 10}, {"Paid", 6}, {"Tokens", 9}, {"Total", 10},
	}, varRows, components.CardInnerWidth(varW)), varW)

	if a.isCompactLayout() {
		b.WriteString(fixedCard)
		b.WriteString("\n")
		b.WriteString(varCard)
	} else {
		b.WriteString(components.CardRow([]string{fixedCard, varCard}))
	}
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderTierCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderReductionCard(cw))
	} else {
		b.WriteString(components.CardRow([]string{
			a.renderTierCard(halves[0]),
			a.renderReductionCard(halves[1]),
		}))
	}

	return b.String()
}

func (a App) renderTierCard(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	rows := make([]gridRow, 0, len(a.margins))
	for _, m := range a.margins {
		neg := []bool{false, false, false, m.Margin < 0, m.MarginPercent < 0}
		rows = append(rows, gridRow{negative: neg, cells: []string{
			m.Name, cli.FormatMoney(m.Price), cli.FormatMoney(m.TokenCost),
			cli.FormatMoney(m.Margin), cli.FormatPercent(m.MarginPercent),
		}})
	}

	var body strings.Builder
	body.WriteString(renderGrid([]column{
		{"Tier", 8}, {"Price", 8}, {"Tokens", 8}, {"Margin", 8}, {"Margin %", 8},
	}, rows, innerW))
	body.WriteString("\n\n")

	barW := innerW - 17
	if barW < 8 {
		barW = 8
	}
	for i, m := range a.margins {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(components.ShareBar(m.Name, m.Share, components.MarginColor(m.MarginPercent), 8, barW))
	}

	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	body.WriteString("\n\n")
	body.WriteString(muted.Render("Weighted paid margin: ") + accent.Render(cli.FormatPercent(a.weighted)))

	return components.ContentCard("Plan margins", body.String(), outerW)
}

func (a App) renderReductionCard(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	rows := make([]gridRow, 0, len(a.reductions))
	for _, r := range a.reductions {
		rows = append(rows, gridRow{cells: []string{
			r.Label, formatUnit(r.Before, r.Unit), formatUnit(r.After, r.Unit), cli.FormatPercent(r.Percent),
		}})
	}

	var body strings.Builder
	body.WriteString(renderGrid([]column{
		{"Change", 18}, {"Before", 9}, {"After", 9}, {"Saved", 7},
	}, rows, innerW))

	barW := innerW - 21
	if barW < 8 {
		barW = 8
	}
	for _, r := range a.reductions {
		body.WriteString("\n")
		body.WriteString(components.ShareBar(truncStr(r.Label, 12), r.Percent, t.Profit(), 12, barW))
	}

	return components.ContentCard("Before / after", body.String(), outerW)
}

func formatUnit(v float64, unit string) string {
	if unit == "usd" {
		return cli.FormatCost(v)
	}
	return fmt.Sprintf("%.0f %s", v, unit)
}
