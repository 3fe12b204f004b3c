// Package pipeline turns computed projections into totals, cost splits,
// plan economics, and parameter sweeps.
package pipeline

import (
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

// Aggregate reduces monthly records to annual totals.
// ProfitMargin is 0 when there is no revenue.
func Aggregate(records []model.MonthRecord) model.Totals {
	var t model.Totals
	for _, r := range records {
		t.Views += r.Views
		t.RegisteredUsers += r.RegisteredUsers
		t.ConvertedUsers += r.ConvertedUsers
		t.RepeatPurchases += r.RepeatPurchases
		t.TotalConversions += r.TotalConversions
		t.Revenue += r.Revenue
		t.Costs = t.Costs.Add(r.Costs)
	}

	t.NetProfit = t.Revenue - t.Costs.Total()
	if t.Revenue > 0 {
		t.ProfitMargin = t.NetProfit / t.Revenue * 100
	}
	return t
}

// AggregateCostSplit separates expenses into fixed costs (staff and
// infrastructure) and variable costs (marketing and AI tokens).
func AggregateCostSplit(records []model.MonthRecord) model.CostSplit {
	split := model.CostSplit{
		Fixed:    make([]model.FixedCostRow, 0, len(records)),
		Variable: make([]model.VariableCostRow, 0, len(records)),
	}

	for _, r := range records {
		fixed := model.FixedCostRow{
			Month:          r.Month,
			Programmers:    r.Programmers,
			ProgrammerCost: r.Costs.Development,
			Infrastructure: r.Costs.Infrastructure,
		}
		fixed.Total = fixed.ProgrammerCost + fixed.Infrastructure

		variable := model.VariableCostRow{
			Month:           r.Month,
			Revenue:         r.Revenue,
			MarketingRate:   r.MarketingRate,
			Marketing:       r.Costs.Marketing,
			RegisteredUsers: r.RegisteredUsers,
			FreeUsers:       r.FreeUsers,
			PaidUsers:       r.PaidUsers,
			Tokens:          r.Costs.Tokens,
		}
		variable.Total = variable.Marketing + variable.Tokens

		split.Fixed = append(split.Fixed, fixed)
		split.Variable = append(split.Variable, variable)
		split.FixedTotal += fixed.Total
		split.VariableTotal += variable.Total
	}

	if n := len(records); n > 0 {
		split.FinalProgrammers = records[n-1].Programmers
	}
	return split
}

// Project computes the table for p and its totals in one step.
func Project(e *engine.Engine, p model.Params, preset string) model.Projection {
	months := e.Compute(p)
	return model.Projection{
		Preset:   preset,
		Schedule: e.Schedule().Name,
		Params:   p,
		Months:   months,
		Totals:   Aggregate(months),
	}
}

// Series extracts one numeric column from a table for charting.
func Series(records []model.MonthRecord, column func(model.MonthRecord) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = column(r)
	}
	return out
}

// BreakEvenMonth returns the first month with positive net profit, or 0.
func BreakEvenMonth(records []model.MonthRecord) int {
	for _, r := range records {
		if r.NetProfit > 0 {
			return r.Month
		}
	}
	return 0
}
