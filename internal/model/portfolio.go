package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one position in a hypothetical dividend portfolio: a share
// count and the flat tax rate applied to that asset's dividends.
type Holding struct {
	Symbol     string          `json:"symbol"`
	Shares     int64           `json:"shares"`
	TaxRatePct decimal.Decimal `json:"taxRatePct"`
}

// Portfolio is a saved, named set of holdings. Holdings are kept sorted by
// symbol when loaded from the database.
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Holdings    []Holding `json:"holdings"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PortfolioSummary is the income projection for a saved portfolio: the
// dividend calendar plus cost and yield roll-ups. Positions that failed
// validation or reference unknown symbols are reported in Skipped rather
// than aborting the whole projection.
type PortfolioSummary struct {
	Name              string            `json:"name"`
	Calendar          CalendarYear      `json:"calendar"`
	TotalInvestedCost decimal.Decimal   `json:"totalInvestedCost"`
	NetYieldPct       decimal.Decimal   `json:"netYieldPct"`
	Skipped           []SkippedPosition `json:"skipped,omitempty"`
}

// SkippedPosition records a portfolio row that was excluded from a
// projection, with the reason it was excluded.
type SkippedPosition struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}
