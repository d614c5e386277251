package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a tracked equity or ETF as stored in the assets table.
// Price, dividend and classification fields are refreshed together from the
// market data feed; Platforms is user-maintained metadata.
type Asset struct {
	Symbol                 string          `json:"symbol"`
	Name                   string          `json:"name"`
	Sector                 string          `json:"sector"`
	Industry               string          `json:"industry"`
	CurrentPrice           decimal.Decimal `json:"currentPrice"`
	AnnualDividendPerShare decimal.Decimal `json:"annualDividendPerShare"`
	DividendYieldPct       decimal.Decimal `json:"dividendYieldPct"`
	Cadence                Cadence         `json:"cadence"`
	PaymentMonths          []int           `json:"paymentMonths"`
	MarketCap              int64           `json:"marketCap"`
	Platforms              []string        `json:"platforms"`
	LastUpdated            time.Time       `json:"lastUpdated"`
	CreatedAt              time.Time       `json:"createdAt"`
}

// Profile extracts the stored dividend classification of the asset in the
// shape the calendar aggregator consumes.
func (a Asset) Profile() DividendProfile {
	return DividendProfile{
		Symbol:                 a.Symbol,
		Cadence:                a.Cadence,
		PaymentMonths:          a.PaymentMonths,
		AnnualDividendPerShare: a.AnnualDividendPerShare,
	}
}

// AssetStats is the aggregate view over all stored assets.
type AssetStats struct {
	TotalAssets           int             `json:"totalAssets"`
	FrequencyDistribution map[string]int  `json:"frequencyDistribution"`
	AverageYieldPct       decimal.Decimal `json:"averageYieldPct"`
}
