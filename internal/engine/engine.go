// Package engine computes 12-month projections from curve coefficients.
//
// The first two months are pinned to observed figures. Later months follow
// an exponential traffic curve and a logarithmic conversion curve; revenue
// and costs derive from those. Every call recomputes the full table.
package engine

import (
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// Months is the number of records in a projection.
const Months = lastMonth

// Engine evaluates projections under fixed assumptions and a cost schedule.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	assumptions config.Assumptions
	schedule    config.Schedule
}

// Option configures an Engine.
type Option func(*Engine)

// WithAssumptions replaces the default business constants.
func WithAssumptions(a config.Assumptions) Option {
	return func(e *Engine) { e.assumptions = a }
}

// WithSchedule selects the cost schedule.
func WithSchedule(s config.Schedule) Option {
	return func(e *Engine) { e.schedule = s }
}

// New returns an Engine using the overview schedule and default
// assumptions unless overridden.
func New(opts ...Option) *Engine {
	sched, _ := config.LookupSchedule(config.ScheduleOverview)
	e := &Engine{
		assumptions: config.DefaultAssumptions(),
		schedule:    sched,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assumptions returns the constants the engine evaluates with.
func (e *Engine) Assumptions() config.Assumptions { return e.assumptions }

// Schedule returns the engine's cost schedule.
func (e *Engine) Schedule() config.Schedule { return e.schedule }

// Compute is a convenience for New(opts...).Compute(p).
func Compute(p model.Params, opts ...Option) []model.MonthRecord {
	return New(opts...).Compute(p)
}

// Compute returns the 12 monthly records for p, months 1..12 in order.
func (e *Engine) Compute(p model.Params) []model.MonthRecord {
	a := e.assumptions
	records := make([]model.MonthRecord, 0, Months)

	for month := 1; month <= Months; month++ {
		var r model.MonthRecord
		r.Month = month

		if month <= len(a.BaseMonths) {
			base := a.BaseMonths[month-1]
			r.Views = base.Views
			r.RegistrationRate = base.RegistrationRate
			r.ConversionRate = clampPercent(base.ConversionRate)
			r.RepeatPurchaseRate = base.RepeatRate
		} else {
			r.Views = Views(p, month)
			r.RegistrationRate = RegistrationRate(a, month)
			r.ConversionRate = ConversionRate(p, month)
			r.RepeatPurchaseRate = RepeatRate(a, month)
		}

		r.RegisteredUsers = roundCount(float64(r.Views) * r.RegistrationRate / 100)
		r.ConvertedUsers = roundCount(float64(r.RegisteredUsers) * r.ConversionRate / 100)
		if month > 1 {
			prev := records[month-2]
			r.RepeatPurchases = roundCount(float64(prev.ConvertedUsers) * r.RepeatPurchaseRate / 100)
		}
		r.TotalConversions = r.ConvertedUsers + r.RepeatPurchases
		r.Revenue = float64(r.TotalConversions) * a.ConversionValue

		e.applyCosts(&r)
		records = append(records, r)
	}
	return records
}

// applyCosts fills the cost drivers, breakdown, and net profit of r.
func (e *Engine) applyCosts(r *model.MonthRecord) {
	a := e.assumptions
	s := e.schedule

	r.Programmers = Programmers(r.Month)
	if s.PerProgrammer {
		r.Costs.Development = float64(r.Programmers) * a.ProgrammerCost
	} else {
		r.Costs.Development = float64(r.Month) * a.ProgrammerCost
	}

	r.MarketingRate = MarketingRate(s, r.Month)
	r.Costs.Marketing = r.Revenue * r.MarketingRate / 100
	r.Costs.Infrastructure = Infrastructure(a, r.Month)

	r.FreeUsers = roundCount(float64(r.RegisteredUsers) * a.FreeShare() / 100)
	r.PaidUsers = r.RegisteredUsers - r.FreeUsers
	if a.TokenCostPerUser > 0 {
		r.Costs.Tokens = float64(r.RegisteredUsers) * a.TokenCostPerUser
	} else {
		r.Costs.Tokens = float64(r.FreeUsers)*a.FreeUserCost + float64(r.PaidUsers)*a.PaidUserCost()
	}

	r.NetProfit = r.Revenue - r.Costs.Total()
}
