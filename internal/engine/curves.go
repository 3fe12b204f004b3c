package engine

import (
	"math"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"
)

// lastMonth is the index of the final projected month.
const lastMonth = 12

// MaxCount caps every per-month count. Twelve months of it, plus the
// repeat purchases added to conversions, still fit in an int64.
const MaxCount = 1 << 53

// roundCount rounds half up to a count in [0, MaxCount].
// Non-finite and negative inputs count as zero.
func roundCount(x float64) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
		return 0
	}
	if x >= MaxCount {
		return MaxCount
	}
	return int64(math.Floor(x + 0.5))
}

// clampPercent limits a rate to [0, 100]. NaN becomes 0.
func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// lerp interpolates linearly between from (at step 0) and to (at step n).
func lerp(from, to float64, step, n int) float64 {
	return from + (to-from)/float64(n)*float64(step)
}

// Views evaluates the traffic curve a*b^(month-c)+d.
func Views(p model.Params, month int) int64 {
	return roundCount(p.ExpA*math.Pow(p.ExpB, float64(month)-p.ExpC) + p.ExpD)
}

// ConversionRate evaluates the conversion curve a*ln(month-c)/ln(b)+d,
// clamped to a percentage. Outside the logarithm's domain, or for a base
// whose logarithm is zero or undefined, the rate is 0.
func ConversionRate(p model.Params, month int) float64 {
	x := float64(month) - p.LogC
	if x <= 0 || p.LogB <= 0 {
		return 0
	}
	den := math.Log(p.LogB)
	if den == 0 {
		return 0
	}
	return clampPercent(p.LogA*math.Log(x)/den + p.LogD)
}

// RegistrationRate grows linearly from the month-1 rate to the month-12 rate.
func RegistrationRate(a config.Assumptions, month int) float64 {
	return lerp(a.RegistrationStart, a.RegistrationEnd, month-1, lastMonth-1)
}

// RepeatRate grows linearly from the month-2 rate to the month-12 rate.
func RepeatRate(a config.Assumptions, month int) float64 {
	if month < 2 {
		return 0
	}
	return lerp(a.RepeatStart, a.RepeatEnd, month-2, lastMonth-2)
}

// MarketingRate returns the schedule's share of revenue spent on marketing.
func MarketingRate(s config.Schedule, month int) float64 {
	return lerp(s.MarketingStart, s.MarketingEnd, month-1, lastMonth-1)
}

// Programmers is the headcount hired by month: none for the first two
// months, then one more each month.
func Programmers(month int) int {
	return max(0, month-2)
}

// Infrastructure compounds the base hosting spend monthly.
func Infrastructure(a config.Assumptions, month int) float64 {
	return a.InfrastructureBase * math.Pow(a.InfrastructureGrowth, float64(month-1))
}
