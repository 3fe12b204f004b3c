package model

// Totals is the annual aggregate of a projection.
type Totals struct {
	Views            int64         `json:"views" yaml:"views"`
	RegisteredUsers  int64         `json:"registered_users" yaml:"registered_users"`
	ConvertedUsers   int64         `json:"converted_users" yaml:"converted_users"`
	RepeatPurchases  int64         `json:"repeat_purchases" yaml:"repeat_purchases"`
	TotalConversions int64         `json:"total_conversions" yaml:"total_conversions"`
	Revenue          float64       `json:"revenue" yaml:"revenue"`
	Costs            CostBreakdown `json:"costs" yaml:"costs"`
	NetProfit        float64       `json:"net_profit" yaml:"net_profit"`
	ProfitMargin     float64       `json:"profit_margin" yaml:"profit_margin"`
}

// Expenses is the sum of every cost category.
func (t Totals) Expenses() float64 {
	return t.Costs.Total()
}

// CostShare returns a category's percentage of total expenses.
func (t Totals) CostShare(category string) float64 {
	total := t.Expenses()
	if total == 0 {
		return 0
	}
	return t.Costs.Get(category) / total * 100
}

// FixedCostRow is one month of costs that do not scale with revenue.
type FixedCostRow struct {
	Month          int     `json:"month"`
	Programmers    int     `json:"programmers"`
	ProgrammerCost float64 `json:"programmer_cost"`
	Infrastructure float64 `json:"infrastructure"`
	Total          float64 `json:"total"`
}

// VariableCostRow is one month of costs driven by revenue and users.
type VariableCostRow struct {
	Month           int     `json:"month"`
	Revenue         float64 `json:"revenue"`
	MarketingRate   float64 `json:"marketing_rate"`
	Marketing       float64 `json:"marketing"`
	RegisteredUsers int64   `json:"registered_users"`
	FreeUsers       int64   `json:"free_users"`
	PaidUsers       int64   `json:"paid_users"`
	Tokens          float64 `json:"tokens"`
	Total           float64 `json:"total"`
}

// CostSplit is the fixed/variable view of a projection's expenses.
type CostSplit struct {
	Fixed            []FixedCostRow    `json:"fixed"`
	Variable         []VariableCostRow `json:"variable"`
	FixedTotal       float64           `json:"fixed_total"`
	VariableTotal    float64           `json:"variable_total"`
	FinalProgrammers int               `json:"final_programmers"`
}

// Total returns fixed plus variable expenses.
func (s CostSplit) Total() float64 {
	return s.FixedTotal + s.VariableTotal
}
