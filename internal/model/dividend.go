package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cadence is the classified dividend payment frequency of an asset.
// The string values double as the stored labels in the assets table.
type Cadence string

const (
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceIrregular Cadence = "irregular"
	CadenceNone      Cadence = "none"
)

// Valid reports whether c is one of the known cadence labels.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceMonthly, CadenceQuarterly, CadenceIrregular, CadenceNone:
		return true
	}
	return false
}

// DividendEvent is a single historical dividend payment for one asset,
// as delivered by the market data feed. Events reaching the classifier
// are assumed validated: positive amount, non-zero date. Filtering
// malformed feed rows is the market data layer's responsibility.
type DividendEvent struct {
	PaymentDate time.Time
	Amount      decimal.Decimal
}

// DividendProfile is the classified dividend behaviour of one asset over
// the trailing 365-day window.
//
// PaymentMonths holds the distinct calendar months (1-12) with at least one
// payment in the window, sorted ascending. It is non-empty exactly when
// Cadence is not CadenceNone.
type DividendProfile struct {
	Symbol                 string          `json:"symbol"`
	Cadence                Cadence         `json:"cadence"`
	PaymentMonths          []int           `json:"paymentMonths"`
	AnnualDividendPerShare decimal.Decimal `json:"annualDividendPerShare"`
}
