// Package calendar turns a basket of holdings plus their stored dividend
// profiles into a 12-month projected cash-flow calendar with gross, tax and
// net breakdowns.
//
// The projection applies an equal-split policy: a holding's annual dividend
// is divided evenly across the months it pays in. The tool deliberately does
// not model dividend growth across a year; every payment in the trailing
// window is treated as equal-sized.
//
// All arithmetic is decimal and unrounded; callers round at presentation
// boundaries only.
package calendar

import (
	"fmt"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/shopspring/decimal"
)

// Position pairs a holding with the dividend profile of the held asset.
// Joining holdings to profiles by symbol is the caller's job; the aggregator
// performs no lookups of its own.
type Position struct {
	Holding model.Holding
	Profile model.DividendProfile
}

// Options carries the fallback payment schedules used when a profile has a
// cadence but no stored month list (manually entered assets, mostly). The
// defaults mirror typical US payer behaviour; they are a policy choice, not
// derived from data, which is why they are overridable.
type Options struct {
	QuarterlyFallback []int
	IrregularFallback []int
}

var (
	defaultQuarterlyFallback = []int{3, 6, 9, 12}
	defaultIrregularFallback = []int{6, 12}
)

var hundred = decimal.NewFromInt(100)

// ValidatePosition checks a single position against the aggregator's input
// contract: non-negative shares, tax rate inside [0,100], payment months
// inside 1-12. Invalid financial input fails fast rather than being clamped;
// silent coercion could hide a data-entry mistake that changes reported
// income.
//
// Errors wrap apperrors.ErrInvalidHolding or apperrors.ErrInvalidProfile.
func ValidatePosition(p Position) error {
	if p.Holding.Shares < 0 {
		return fmt.Errorf("%w: %s: shares must not be negative, got %d",
			apperrors.ErrInvalidHolding, p.Holding.Symbol, p.Holding.Shares)
	}
	if p.Holding.TaxRatePct.IsNegative() || p.Holding.TaxRatePct.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s: tax rate must be within 0-100, got %s",
			apperrors.ErrInvalidHolding, p.Holding.Symbol, p.Holding.TaxRatePct)
	}
	if !p.Profile.Cadence.Valid() {
		return fmt.Errorf("%w: %s: unknown cadence %q",
			apperrors.ErrInvalidProfile, p.Profile.Symbol, p.Profile.Cadence)
	}
	for _, m := range p.Profile.PaymentMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("%w: %s: payment month %d outside 1-12",
				apperrors.ErrInvalidProfile, p.Profile.Symbol, m)
		}
	}
	return nil
}

// Build computes the 12-month dividend calendar for a set of positions.
//
// Positions with zero shares, cadence none, or a non-positive annual
// dividend contribute nothing and are silently skipped. Build validates
// every position and fails on the first invalid one; callers that want
// skip-and-report semantics filter with ValidatePosition first.
//
// opts may be nil, which selects the default fallback schedules. Calling
// Build twice with the same inputs returns the same calendar.
func Build(positions []Position, opts *Options) (model.CalendarYear, error) {
	var year model.CalendarYear
	for i := range year.Months {
		year.Months[i].Month = i + 1
		year.Months[i].Gross = decimal.Zero
		year.Months[i].Tax = decimal.Zero
		year.Months[i].Net = decimal.Zero
	}
	year.AnnualGross = decimal.Zero
	year.AnnualTax = decimal.Zero
	year.AnnualNet = decimal.Zero

	for _, p := range positions {
		if err := ValidatePosition(p); err != nil {
			return model.CalendarYear{}, err
		}
		if p.Holding.Shares == 0 || p.Profile.Cadence == model.CadenceNone ||
			!p.Profile.AnnualDividendPerShare.IsPositive() {
			continue
		}

		months := effectiveMonths(p.Profile, opts)
		if len(months) == 0 {
			continue
		}

		totalAnnual := p.Profile.AnnualDividendPerShare.Mul(decimal.NewFromInt(p.Holding.Shares))
		perPayment := totalAnnual.Div(decimal.NewFromInt(int64(len(months))))
		tax := perPayment.Mul(p.Holding.TaxRatePct).Div(hundred)
		net := perPayment.Sub(tax)

		for _, m := range months {
			slot := &year.Months[m-1]
			slot.Gross = slot.Gross.Add(perPayment)
			slot.Tax = slot.Tax.Add(tax)
			slot.Net = slot.Net.Add(net)
			slot.Contributions = append(slot.Contributions, model.Contribution{
				Symbol: p.Holding.Symbol,
				Shares: p.Holding.Shares,
				Gross:  perPayment,
				Tax:    tax,
				Net:    net,
			})
		}
	}

	for i := range year.Months {
		year.AnnualGross = year.AnnualGross.Add(year.Months[i].Gross)
		year.AnnualTax = year.AnnualTax.Add(year.Months[i].Tax)
		year.AnnualNet = year.AnnualNet.Add(year.Months[i].Net)
	}

	return year, nil
}

// effectiveMonths returns the months a profile pays in, substituting the
// cadence-default schedule when no month list is stored.
func effectiveMonths(profile model.DividendProfile, opts *Options) []int {
	if len(profile.PaymentMonths) > 0 {
		return profile.PaymentMonths
	}

	switch profile.Cadence {
	case model.CadenceMonthly:
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	case model.CadenceQuarterly:
		if opts != nil && len(opts.QuarterlyFallback) > 0 {
			return opts.QuarterlyFallback
		}
		return defaultQuarterlyFallback
	case model.CadenceIrregular:
		if opts != nil && len(opts.IrregularFallback) > 0 {
			return opts.IrregularFallback
		}
		return defaultIrregularFallback
	default:
		return nil
	}
}

// Yield computes the net portfolio yield in percent: annual net dividends
// over total invested cost. A zero or negative cost yields zero rather than
// dividing by it.
func Yield(annualNet, totalInvestedCost decimal.Decimal) decimal.Decimal {
	if !totalInvestedCost.IsPositive() {
		return decimal.Zero
	}
	return annualNet.Div(totalInvestedCost).Mul(hundred)
}
