package pipeline

import (
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// TierMargins computes per-tier unit economics for the catalogue.
// A free tier's margin percentage is -100 by convention.
func TierMargins(a config.Assumptions) []model.TierMargin {
	out := make([]model.TierMargin, 0, len(a.Tiers))
	for _, t := range a.Tiers {
		m := model.TierMargin{Tier: t, TokenCost: a.TierTokenCost(t)}
		m.Margin = t.Price - m.TokenCost
		if t.Price == 0 {
			m.MarginPercent = -100
		} else {
			m.MarginPercent = m.Margin / t.Price * 100
		}
		out = append(out, m)
	}
	return out
}

// WeightedPaidMargin averages paid tiers' margin percentages, weighted
// by population share. It is 0 when no paid tier has a share.
func WeightedPaidMargin(margins []model.TierMargin) float64 {
	var weighted, shares float64
	for _, m := range margins {
		if m.Free() {
			continue
		}
		weighted += m.MarginPercent * m.Share
		shares += m.Share
	}
	if shares == 0 {
		return 0
	}
	return weighted / shares
}

// PlanRevenue distributes the year's converted users over the paid tiers.
// Each tier's mix is its share divided by the sum of paid shares, so the
// mix always totals 100%. Revenue per plan is users times the tier price.
func PlanRevenue(totals model.Totals, tiers []model.Tier) model.PlanBreakdown {
	var paid float64
	for _, t := range tiers {
		if !t.Free() {
			paid += t.Share
		}
	}

	b := model.PlanBreakdown{Users: totals.ConvertedUsers}
	if paid <= 0 {
		return b
	}
	for _, t := range tiers {
		if t.Free() {
			continue
		}
		p := model.PlanRevenue{Tier: t, Mix: t.Share / paid * 100}
		p.Users = float64(totals.ConvertedUsers) * p.Mix / 100
		p.Revenue = p.Users * t.Price
		b.Revenue += p.Revenue
		b.Plans = append(b.Plans, p)
	}
	return b
}

// ProviderListCost prices a tier's token allowance at a provider's
// standard input rate, for comparison with the block pricing.
func ProviderListCost(provider string, t model.Tier) float64 {
	return config.ProviderCost(provider, t.InputTokens, 0, false)
}

// Illustrative before/after figures for past cost reductions. They are
// fixed reference numbers, not derived from a projection.
const (
	aiDailyBefore = 360.0 // previous AI provider, USD per day
	aiDailyAfter  = 90.0  // current AI provider, USD per day
	dbBefore      = 100.0 // database load before query fixes, relative units
	dbAfter       = 5.0
)

// NewReduction builds a before/after comparison. Percent is 0 when the
// before figure is 0.
func NewReduction(label, unit string, before, after float64) model.Reduction {
	r := model.Reduction{Label: label, Unit: unit, Before: before, After: after, Saved: before - after}
	if before != 0 {
		r.Percent = r.Saved / before * 100
	}
	return r
}

// Reductions returns the illustrative cost-reduction comparisons.
func Reductions() []model.Reduction {
	return []model.Reduction{
		NewReduction("AI provider (daily)", "usd", aiDailyBefore, aiDailyAfter),
		NewReduction("AI provider (monthly)", "usd", aiDailyBefore*30, aiDailyAfter*30),
		NewReduction("Database load", "units", dbBefore, dbAfter),
	}
}
