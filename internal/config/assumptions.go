package config

import (
	"sort"
	"strings"

	"github.com/theirongolddev/runway/internal/model"
)

// Schedule names.
const (
	ScheduleOverview     = "overview"
	ScheduleCostAnalysis = "cost-analysis"
)

// Schedule is a named per-month cost formula set. The two built-in
// schedules disagree on marketing spend and development staffing; both
// are kept so each view reproduces its own figures.
type Schedule struct {
	Name           string
	Label          string
	MarketingStart float64 // % of revenue in month 1
	MarketingEnd   float64 // % of revenue in month 12
	// PerProgrammer charges development per programmer (max(0, month-2))
	// instead of per elapsed month.
	PerProgrammer bool
}

// Schedules lists the built-in cost schedules.
var Schedules = []Schedule{
	{Name: ScheduleOverview, Label: "Revenue overview", MarketingStart: 60, MarketingEnd: 35},
	{Name: ScheduleCostAnalysis, Label: "Cost analysis", MarketingStart: 50, MarketingEnd: 25, PerProgrammer: true},
}

// LookupSchedule finds a schedule by name.
func LookupSchedule(name string) (Schedule, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Schedules {
		if s.Name == name {
			return s, true
		}
	}
	return Schedule{}, false
}

// BaseMonth is a literal, observed month that anchors the curves.
type BaseMonth struct {
	Views            int64
	RegistrationRate float64
	ConversionRate   float64
	RepeatRate       float64
}

// Assumptions are the fixed business constants behind a projection.
type Assumptions struct {
	ConversionValue float64
	BaseMonths      [2]BaseMonth

	RegistrationStart float64 // % in month 1
	RegistrationEnd   float64 // % in month 12
	RepeatStart       float64 // % in month 2
	RepeatEnd         float64 // % in month 12

	ProgrammerCost       float64
	InfrastructureBase   float64
	InfrastructureGrowth float64

	// TokenCostPerUser, when positive, replaces the tiered blend with a
	// flat charge per registered user.
	TokenCostPerUser float64
	FreeUserCost     float64
	TokenBlockSize   int64
	TokenBlockPrice  float64
	Tiers            []model.Tier
}

// DefaultAssumptions returns the constants the presets were calibrated on.
func DefaultAssumptions() Assumptions {
	tiers := make([]model.Tier, len(DefaultTiers))
	copy(tiers, DefaultTiers)
	return Assumptions{
		ConversionValue: 10.11,
		BaseMonths: [2]BaseMonth{
			{Views: 100801, RegistrationRate: 5.42, ConversionRate: 0.60, RepeatRate: 0},
			{Views: 200000, RegistrationRate: 5.42, ConversionRate: 1.20, RepeatRate: 10},
		},
		RegistrationStart:    5.42,
		RegistrationEnd:      7.11,
		RepeatStart:          10,
		RepeatEnd:            30,
		ProgrammerCost:       1500,
		InfrastructureBase:   150,
		InfrastructureGrowth: 1.1,
		FreeUserCost:         0.05,
		TokenBlockSize:       250000,
		TokenBlockPrice:      0.05,
		Tiers:                tiers,
	}
}

// ResolveAssumptions applies the config overrides to the defaults.
func (c Config) ResolveAssumptions() Assumptions {
	a := DefaultAssumptions()
	o := c.Assumptions
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&a.ConversionValue, o.ConversionValue)
	set(&a.ProgrammerCost, o.ProgrammerCost)
	set(&a.InfrastructureBase, o.InfrastructureBase)
	set(&a.InfrastructureGrowth, o.InfrastructureGrowth)
	set(&a.TokenCostPerUser, o.TokenCostPerUser)
	set(&a.FreeUserCost, o.FreeUserCost)

	if len(c.Tiers) == 0 {
		return a
	}
	names := make([]string, 0, len(c.Tiers))
	for name := range c.Tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ov := c.Tiers[name]
		i := tierIndex(a.Tiers, name)
		if i < 0 {
			a.Tiers = append(a.Tiers, model.Tier{Name: strings.ToLower(name)})
			i = len(a.Tiers) - 1
		}
		t := &a.Tiers[i]
		set(&t.Price, ov.Price)
		set(&t.Share, ov.Share)
		if ov.InputTokens != nil {
			t.InputTokens = *ov.InputTokens
		}
	}
	return a
}

func tierIndex(tiers []model.Tier, name string) int {
	name = strings.ToLower(name)
	for i, t := range tiers {
		if t.Name == name {
			return i
		}
	}
	return -1
}
