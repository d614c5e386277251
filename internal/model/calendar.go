package model

import "github.com/shopspring/decimal"

// Contribution is one holding's share of a single month's projected
// dividend income.
type Contribution struct {
	Symbol string          `json:"symbol"`
	Shares int64           `json:"shares"`
	Gross  decimal.Decimal `json:"gross"`
	Tax    decimal.Decimal `json:"tax"`
	Net    decimal.Decimal `json:"net"`
}

// MonthlyAggregate is the projected dividend cash flow for one calendar
// month, with the per-holding breakdown that produced it. Contributions
// keep the order in which positions were supplied to the aggregator.
type MonthlyAggregate struct {
	Month         int             `json:"month"`
	Gross         decimal.Decimal `json:"gross"`
	Tax           decimal.Decimal `json:"tax"`
	Net           decimal.Decimal `json:"net"`
	Contributions []Contribution  `json:"contributions"`
}

// CalendarYear is a full 12-month projected dividend calendar. Months is
// always length 12 and ordered January through December; months with no
// payers carry zero totals and no contributions.
type CalendarYear struct {
	Months      [12]MonthlyAggregate `json:"months"`
	AnnualGross decimal.Decimal      `json:"annualGross"`
	AnnualTax   decimal.Decimal      `json:"annualTax"`
	AnnualNet   decimal.Decimal      `json:"annualNet"`
}
