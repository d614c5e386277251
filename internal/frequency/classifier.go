// Package frequency infers an asset's dividend payment cadence from its raw
// payment history. Market data APIs do not report cadence directly, so it is
// derived by counting distinct payment dates inside the trailing 365-day
// window.
//
// Classification is a pure function of its inputs: no I/O, no retained
// state, safe to call concurrently for many symbols.
package frequency

import (
	"sort"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/shopspring/decimal"
)

// WindowDays is the length of the trailing classification window.
const WindowDays = 365

// Payment-count breakpoints, inclusive and evaluated in order. A monthly
// payer that skipped or merged a couple of payments still reads as monthly
// (10 of 12), and 3-4 payments a year reads as quarterly. These are business
// rules, not arithmetic; callers depend on the exact breakpoints.
const (
	monthlyMinPayments   = 10
	quarterlyMinPayments = 3
)

// Classify derives the dividend profile of one asset from its full payment
// history, considering only events inside the trailing 365-day window ending
// at asOf.
//
// Same-day duplicate payments count as a single payment date for cadence
// purposes, but every event's amount is included in the annual total, since
// an investor receives all of them. Events are assumed validated by the
// feed layer: Classify does not defend against negative amounts or zero
// dates.
func Classify(symbol string, events []model.DividendEvent, asOf time.Time) model.DividendProfile {
	cutoff := asOf.AddDate(0, 0, -WindowDays)

	annual := decimal.Zero
	dates := make(map[string]struct{})
	months := make(map[int]struct{})

	for _, ev := range events {
		if ev.PaymentDate.Before(cutoff) {
			continue
		}
		annual = annual.Add(ev.Amount)
		day := ev.PaymentDate.UTC()
		dates[day.Format("2006-01-02")] = struct{}{}
		months[int(day.Month())] = struct{}{}
	}

	if len(dates) == 0 {
		return model.DividendProfile{
			Symbol:                 symbol,
			Cadence:                model.CadenceNone,
			AnnualDividendPerShare: decimal.Zero,
		}
	}

	paymentMonths := make([]int, 0, len(months))
	for m := range months {
		paymentMonths = append(paymentMonths, m)
	}
	sort.Ints(paymentMonths)

	return model.DividendProfile{
		Symbol:                 symbol,
		Cadence:                classifyCount(len(dates)),
		PaymentMonths:          paymentMonths,
		AnnualDividendPerShare: annual,
	}
}

func classifyCount(paymentCount int) model.Cadence {
	switch {
	case paymentCount >= monthlyMinPayments:
		return model.CadenceMonthly
	case paymentCount >= quarterlyMinPayments:
		return model.CadenceQuarterly
	case paymentCount >= 1:
		return model.CadenceIrregular
	default:
		return model.CadenceNone
	}
}
