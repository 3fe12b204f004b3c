package model

// Tier is a subscription plan in the pricing catalogue.
type Tier struct {
	Name        string  `json:"name" yaml:"name" toml:"name"`
	Price       float64 `json:"price" yaml:"price" toml:"price"`
	InputTokens int64   `json:"input_tokens" yaml:"input_tokens" toml:"input_tokens"`
	Share       float64 `json:"share" yaml:"share" toml:"share"` // % of registered users
}

// Free reports whether the tier is unpaid.
func (t Tier) Free() bool { return t.Price == 0 }

// TierMargin is the unit economics of one tier.
type TierMargin struct {
	Tier
	TokenCost     float64 `json:"token_cost"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"margin_percent"`
}

// Reduction compares an illustrative cost before and after a change.
type Reduction struct {
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Before  float64 `json:"before"`
	After   float64 `json:"after"`
	Saved   float64 `json:"saved"`
	Percent float64 `json:"percent"`
}

// PlanRevenue is one paid tier's slice of the year's converted users.
type PlanRevenue struct {
	Tier
	Mix     float64 `json:"mix"`   // % of paid users
	Users   float64 `json:"users"` // fractional; round for display
	Revenue float64 `json:"revenue"`
}

// PlanBreakdown splits converted users and their subscription revenue
// across the paid tiers.
type PlanBreakdown struct {
	Plans   []PlanRevenue `json:"plans"`
	Users   int64         `json:"users"`
	Revenue float64       `json:"revenue"`
}
