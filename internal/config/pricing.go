package config

import (
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/model"
)

// Tier names.
const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierStarter = "starter"
	TierPro     = "pro"
	TierUltra   = "ultra"
)

// DefaultTiers is the subscription catalogue. Shares are percentages of
// registered users and sum to 100.
var DefaultTiers = []model.Tier{
	{Name: TierFree, Price: 0, InputTokens: 250_000, Share: 85},
	{Name: TierBasic, Price: 5, InputTokens: 3_125_000, Share: 8.79},
	{Name: TierStarter, Price: 10, InputTokens: 6_875_000, Share: 2.81},
	{Name: TierPro, Price: 20, InputTokens: 15_000_000, Share: 2.34},
	{Name: TierUltra, Price: 50, InputTokens: 40_625_000, Share: 0.94},
}

// TierTokenCost returns the monthly AI cost of one user on tier t.
// Free users cost a flat amount; paid tiers are billed per started block.
func (a Assumptions) TierTokenCost(t model.Tier) float64 {
	if t.Free() {
		return a.FreeUserCost
	}
	if a.TokenBlockSize <= 0 {
		return 0
	}
	blocks := math.Ceil(float64(t.InputTokens) / float64(a.TokenBlockSize))
	return blocks * a.TokenBlockPrice
}

// FreeShare returns the combined share of unpaid tiers.
func (a Assumptions) FreeShare() float64 {
	var s float64
	for _, t := range a.Tiers {
		if t.Free() {
			s += t.Share
		}
	}
	return s
}

// PaidUserCost is the blended cost of one paid user: the share-weighted
// sum of paid tier costs, with shares taken as % of all users.
func (a Assumptions) PaidUserCost() float64 {
	var c float64
	for _, t := range a.Tiers {
		if !t.Free() {
			c += t.Share * a.TierTokenCost(t) / 100
		}
	}
	return c
}

// ProviderPricing holds per-million-token prices for an AI provider.
type ProviderPricing struct {
	InputPerMTok          float64
	OutputPerMTok         float64
	DiscountInputPerMTok  float64
	DiscountOutputPerMTok float64
}

// DefaultProviderPricing maps provider model names to list prices.
var DefaultProviderPricing = map[string]ProviderPricing{
	"deepseek-chat": {
		InputPerMTok: 0.27, OutputPerMTok: 1.10,
		DiscountInputPerMTok: 0.135, DiscountOutputPerMTok: 0.55,
	},
}

// DefaultProvider is the model the tier catalogue is priced against.
const DefaultProvider = "deepseek-chat"

// NormalizeProviderName lowercases a model identifier and strips a
// trailing version or date segment, e.g. "DeepSeek-Chat-20250101".
func NormalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := DefaultProviderPricing[name]; ok {
		return name
	}
	parts := strings.Split(name, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if isAllDigits(strings.TrimPrefix(last, "v")) {
			candidate := strings.Join(parts[:len(parts)-1], "-")
			if _, ok := DefaultProviderPricing[candidate]; ok {
				return candidate
			}
		}
	}
	return name
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// LookupProviderPricing returns the pricing for a provider model.
func LookupProviderPricing(name string) (ProviderPricing, bool) {
	p, ok := DefaultProviderPricing[NormalizeProviderName(name)]
	return p, ok
}

// ProviderCost computes the list-price cost in USD of a token volume.
func ProviderCost(name string, inputTokens, outputTokens int64, discount bool) float64 {
	p, ok := LookupProviderPricing(name)
	if !ok {
		return 0
	}
	in, out := p.InputPerMTok, p.OutputPerMTok
	if discount {
		in, out = p.DiscountInputPerMTok, p.DiscountOutputPerMTok
	}
	return float64(inputTokens)*in/1_000_000 + float64(outputTokens)*out/1_000_000
}
