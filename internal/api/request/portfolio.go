package request

// HoldingRequest is one portfolio row: a symbol, a share count and the flat
// tax rate applied to that asset's dividends.
type HoldingRequest struct {
	Symbol     string  `json:"symbol"`
	Shares     int64   `json:"shares"`
	TaxRatePct float64 `json:"taxRatePct"`
}

// SavePortfolioRequest represents the request body for creating or replacing
// a named portfolio.
type SavePortfolioRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Holdings    []HoldingRequest `json:"holdings"`
}
