package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderModelTab(cw int) string {
	var b strings.Builder

	paramW := 46
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Parameters", a.renderParamList(cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard(chartModeNames[a.chartMode]+"  [v]", a.renderModelChart(cw), cw))
	} else {
		chartW := cw - paramW
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Parameters", a.renderParamList(paramW), paramW),
			components.ContentCard(chartModeNames[a.chartMode]+"  [v]", a.renderModelChart(chartW), chartW),
		}))
	}
	b.WriteString("\n")
	b.WriteString(components.ContentCard("12-month projection", a.renderMonthTable(cw), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Revenue by plan", a.renderPlanTable(cw), cw))
	return b.String()
}

// renderPlanTable splits the year's converted users over the paid tiers.
func (a App) renderPlanTable(cw int) string {
	cols := []column{{"Plan", 8}, {"Price", 8}, {"Mix", 7}, {"Users", 10}, {"Revenue", 13}}
	rows := make([]gridRow, 0, len(a.plans.Plans)+1)
	for _, p := range a.plans.Plans {
		rows = append(rows, gridRow{cells: []string{
			p.Name, cli.FormatMoney(p.Price), cli.FormatPercent(p.Mix),
			cli.FormatNumber(int64(math.Round(p.Users))), cli.FormatCost(p.Revenue),
		}})
	}
	rows = append(rows, gridRow{emphasis: true, cells: []string{
		"Total", "", cli.FormatPercent(100), cli.FormatNumber(a.plans.Users), cli.FormatCost(a.plans.Revenue),
	}})
	return renderGrid(cols, rows, components.CardInnerWidth(cw))
}

func (a App) renderParamList(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	groupStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	rangeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	selValueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	groupTitles := map[string]string{
		model.GroupTraffic:    "Traffic  a·b^(m−c)+d",
		model.GroupConversion: "Conversion  a·ln(m−c)/ln(b)+d",
	}

	var body strings.Builder
	group := ""
	for i, f := range model.ParamFields {
		if f.Group != group {
			if group != "" {
				body.WriteString("\n")
			}
			group = f.Group
			body.WriteString(groupStyle.Render(groupTitles[group]))
			body.WriteString("\n")
		}

		v, _ := a.params.Value(f.Key)
		value := cli.FormatParam(v, f.Decimals())

		if i == a.cursor && a.mode == inputParam {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selLabelStyle.Render(fmt.Sprintf("%-16s ", f.Label)))
			body.WriteString(a.input.View())
			body.WriteString("\n")
			continue
		}

		if i == a.cursor {
			line := markerStyle.Render("▸ ") +
				selLabelStyle.Render(fmt.Sprintf("%-16s ", f.Label)) +
				selValueStyle.Render(fmt.Sprintf("%10s", value))
			body.WriteString(line)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			body.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.Label)))
			body.WriteString(valueStyle.Render(fmt.Sprintf("%10s", value)))
			if v < f.Min || v > f.Max {
				body.WriteString(rangeStyle.Render(" *"))
			}
		}
		body.WriteString("\n")
	}

	f := model.ParamFields[a.cursor]
	body.WriteString("\n")
	body.WriteString(rangeStyle.Render(fmt.Sprintf("range %s .. %s, step %s",
		cli.FormatParam(f.Min, f.Decimals()),
		cli.FormatParam(f.Max, f.Decimals()),
		cli.FormatParam(f.Step, f.Decimals()))))
	if a.inputErr != nil {
		body.WriteString("\n")
		body.WriteString(warnStyle.Render(a.inputErr.Error()))
	}
	return body.String()
}

func (a App) renderModelChart(outerW int) string {
	t := theme.Active
	months := a.proj.Months
	labels := monthLabels(months)
	innerW := components.CardInnerWidth(outerW)
	h := 10
	if a.isCompactLayout() {
		h = 7
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	switch a.chartMode {
	case chartFunnel:
		registered := pipeline.Series(months, func(r model.MonthRecord) float64 { return float64(r.RegisteredUsers) })
		converted := pipeline.Series(months, func(r model.MonthRecord) float64 { return float64(r.TotalConversions) })
		return components.BarChart(registered, labels, t.Blue, innerW, h/2+2) + "\n" +
			components.Legend([]string{"registered"}, []lipgloss.Color{t.Blue}) + "\n" +
			components.BarChart(converted, labels, t.Green, innerW, h/2+2) + "\n" +
			components.Legend([]string{"conversions incl. repeat"}, []lipgloss.Color{t.Green})

	case chartProfit:
		revenue := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.Revenue })
		net := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.NetProfit })
		return components.BarChart(revenue, labels, t.Green, innerW, h/2+2) + "\n" +
			components.Legend([]string{"revenue"}, []lipgloss.Color{t.Green}) + "\n\n" +
			components.DivergingBars(net, labels, innerW)

	default:
		views := pipeline.Series(months, func(r model.MonthRecord) float64 { return float64(r.Views) })
		conv := pipeline.Series(months, func(r model.MonthRecord) float64 { return r.ConversionRate })
		return components.BarChart(views, labels, t.Accent, innerW, h) + "\n" +
			components.Legend([]string{"views"}, []lipgloss.Color{t.Accent}) + "\n" +
			muted.Render("conversion ") + components.Sparkline(conv, t.Magenta) +
			muted.Render(fmt.Sprintf("  %s → %s",
				cli.FormatRate(first(conv)), cli.FormatRate(lastOf(conv))))
	}
}

func (a App) renderMonthTable(cw int) string {
	innerW := components.CardInnerWidth(cw)
	months := a.proj.Months
	totals := a.proj.Totals

	cols := []column{
		{"Month", 5}, {"Views", 10}, {"Reg %", 6}, {"Registered", 10},
		{"Conv %", 6}, {"Converted", 9}, {"Rep %", 5}, {"Repeat", 7},
		{"Revenue", 11}, {"Expenses", 11}, {"Net", 12},
	}
	if a.isCompactLayout() {
		cols = []column{
			{"Month", 5}, {"Views", 9}, {"Registered", 10}, {"Converted", 9},
			{"Revenue", 11}, {"Net", 12},
		}
	}

	rows := make([]gridRow, 0, len(months)+1)
	for _, m := range months {
		var cells []string
		if a.isCompactLayout() {
			cells = []string{
				cli.FormatMonth(m.Month), cli.FormatNumber(m.Views), cli.FormatNumber(m.RegisteredUsers),
				cli.FormatNumber(m.ConvertedUsers), cli.FormatCost(m.Revenue), cli.FormatCost(m.NetProfit),
			}
		} else {
			cells = []string{
				cli.FormatMonth(m.Month), cli.FormatNumber(m.Views), fmt.Sprintf("%.2f", m.RegistrationRate),
				cli.FormatNumber(m.RegisteredUsers), fmt.Sprintf("%.2f", m.ConversionRate),
				cli.FormatNumber(m.ConvertedUsers), fmt.Sprintf("%.0f", m.RepeatPurchaseRate),
				cli.FormatNumber(m.RepeatPurchases), cli.FormatCost(m.Revenue),
				cli.FormatCost(m.Costs.Total()), cli.FormatCost(m.NetProfit),
			}
		}
		neg := make([]bool, len(cells))
		neg[len(cells)-1] = m.NetProfit < 0
		rows = append(rows, gridRow{cells: cells, negative: neg})
	}

	var total []string
	if a.isCompactLayout() {
		total = []string{
			"Total", cli.FormatNumber(totals.Views), cli.FormatNumber(totals.RegisteredUsers),
			cli.FormatNumber(totals.ConvertedUsers), cli.FormatCost(totals.Revenue), cli.FormatCost(totals.NetProfit),
		}
	} else {
		total = []string{
			"Total", cli.FormatNumber(totals.Views), "", cli.FormatNumber(totals.RegisteredUsers),
			"", cli.FormatNumber(totals.ConvertedUsers), "", cli.FormatNumber(totals.RepeatPurchases),
			cli.FormatCost(totals.Revenue), cli.FormatCost(totals.Expenses()), cli.FormatCost(totals.NetProfit),
		}
	}
	rows = append(rows, gridRow{cells: total, emphasis: true})

	return renderGrid(cols, rows, innerW)
}

func first(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

func lastOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}
