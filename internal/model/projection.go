package model

// Cost categories tracked per month.
const (
	CostDevelopment    = "development"
	CostMarketing      = "marketing"
	CostInfrastructure = "infrastructure"
	CostTokens         = "tokens"
)

// CostCategories lists the categories in display order.
var CostCategories = []string{CostDevelopment, CostMarketing, CostInfrastructure, CostTokens}

// CostBreakdown holds one month's (or a year's) expenses by category.
type CostBreakdown struct {
	Development    float64 `json:"development" yaml:"development"`
	Marketing      float64 `json:"marketing" yaml:"marketing"`
	Infrastructure float64 `json:"infrastructure" yaml:"infrastructure"`
	Tokens         float64 `json:"tokens" yaml:"tokens"`
}

// Total returns the sum of all categories.
func (c CostBreakdown) Total() float64 {
	return c.Development + c.Marketing + c.Infrastructure + c.Tokens
}

// Get returns the amount for a category name, 0 for unknown names.
func (c CostBreakdown) Get(category string) float64 {
	switch category {
	case CostDevelopment:
		return c.Development
	case CostMarketing:
		return c.Marketing
	case CostInfrastructure:
		return c.Infrastructure
	case CostTokens:
		return c.Tokens
	}
	return 0
}

// Add returns the element-wise sum of c and o.
func (c CostBreakdown) Add(o CostBreakdown) CostBreakdown {
	return CostBreakdown{
		Development:    c.Development + o.Development,
		Marketing:      c.Marketing + o.Marketing,
		Infrastructure: c.Infrastructure + o.Infrastructure,
		Tokens:         c.Tokens + o.Tokens,
	}
}

// MonthRecord is one row of a 12-month projection.
type MonthRecord struct {
	Month              int     `json:"month" yaml:"month"`
	Views              int64   `json:"views" yaml:"views"`
	RegistrationRate   float64 `json:"registration_rate" yaml:"registration_rate"`
	RegisteredUsers    int64   `json:"registered_users" yaml:"registered_users"`
	ConversionRate     float64 `json:"conversion_rate" yaml:"conversion_rate"`
	ConvertedUsers     int64   `json:"converted_users" yaml:"converted_users"`
	RepeatPurchaseRate float64 `json:"repeat_purchase_rate" yaml:"repeat_purchase_rate"`
	RepeatPurchases    int64   `json:"repeat_purchases" yaml:"repeat_purchases"`
	TotalConversions   int64   `json:"total_conversions" yaml:"total_conversions"`
	Revenue            float64 `json:"revenue" yaml:"revenue"`

	// Cost drivers.
	Programmers   int     `json:"programmers" yaml:"programmers"`
	MarketingRate float64 `json:"marketing_rate" yaml:"marketing_rate"`
	FreeUsers     int64   `json:"free_users" yaml:"free_users"`
	PaidUsers     int64   `json:"paid_users" yaml:"paid_users"`

	Costs     CostBreakdown `json:"costs" yaml:"costs"`
	NetProfit float64       `json:"net_profit" yaml:"net_profit"`
}

// Projection is a computed table together with the inputs that produced it.
type Projection struct {
	Preset   string        `json:"preset,omitempty" yaml:"preset,omitempty"`
	Schedule string        `json:"schedule" yaml:"schedule"`
	Params   Params        `json:"params" yaml:"params"`
	Months   []MonthRecord `json:"months" yaml:"months"`
	Totals   Totals        `json:"totals" yaml:"totals"`
}
