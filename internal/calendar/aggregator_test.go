package calendar_test

import (
	"errors"
	"testing"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/calendar"
	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func quarterlyPosition(symbol string, shares int64, annual, taxRate string, months []int) calendar.Position {
	return calendar.Position{
		Holding: model.Holding{Symbol: symbol, Shares: shares, TaxRatePct: dec(taxRate)},
		Profile: model.DividendProfile{
			Symbol:                 symbol,
			Cadence:                model.CadenceQuarterly,
			PaymentMonths:          months,
			AnnualDividendPerShare: dec(annual),
		},
	}
}

// TestBuild_QuarterlyHolding tests Scenario C: 100 shares, $2.00 annual,
// quarterly, 15% tax.
//
// WHY: This is the canonical projection the calendar page renders; gross,
// tax and net must land in exactly the four paying months with exact values.
func TestBuild_QuarterlyHolding(t *testing.T) {
	pos := quarterlyPosition("AAPL", 100, "2.00", "15", []int{3, 6, 9, 12})

	year, err := calendar.Build([]calendar.Position{pos}, nil)
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	paying := map[int]bool{3: true, 6: true, 9: true, 12: true}
	for _, m := range year.Months {
		if !paying[m.Month] {
			if !m.Gross.IsZero() || len(m.Contributions) != 0 {
				t.Errorf("Month %d should be empty, got gross=%s", m.Month, m.Gross)
			}
			continue
		}

		if want := dec("50.00"); !m.Gross.Equal(want) {
			t.Errorf("Month %d gross = %s, want %s", m.Month, m.Gross, want)
		}
		if want := dec("7.50"); !m.Tax.Equal(want) {
			t.Errorf("Month %d tax = %s, want %s", m.Month, m.Tax, want)
		}
		if want := dec("42.50"); !m.Net.Equal(want) {
			t.Errorf("Month %d net = %s, want %s", m.Month, m.Net, want)
		}
		if len(m.Contributions) != 1 || m.Contributions[0].Symbol != "AAPL" || m.Contributions[0].Shares != 100 {
			t.Errorf("Month %d contributions = %+v", m.Month, m.Contributions)
		}
	}

	if want := dec("170.00"); !year.AnnualNet.Equal(want) {
		t.Errorf("Annual net = %s, want %s", year.AnnualNet, want)
	}
	if want := dec("200.00"); !year.AnnualGross.Equal(want) {
		t.Errorf("Annual gross = %s, want %s", year.AnnualGross, want)
	}
}

// TestBuild_SkipsNonPayers tests Scenario D plus the other skip conditions.
//
// WHY: Assets with no dividends, zero-share rows and zero annual dividends
// must contribute nothing to any month without erroring.
func TestBuild_SkipsNonPayers(t *testing.T) {
	positions := []calendar.Position{
		{
			Holding: model.Holding{Symbol: "GROW", Shares: 50, TaxRatePct: decimal.Zero},
			Profile: model.DividendProfile{Symbol: "GROW", Cadence: model.CadenceNone, AnnualDividendPerShare: decimal.Zero},
		},
		quarterlyPosition("ZERO", 0, "2.00", "0", []int{3, 6, 9, 12}),
		quarterlyPosition("FREE", 10, "0", "0", []int{3, 6, 9, 12}),
	}

	year, err := calendar.Build(positions, nil)
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	for _, m := range year.Months {
		if !m.Gross.IsZero() || !m.Net.IsZero() || len(m.Contributions) != 0 {
			t.Errorf("Month %d not empty: gross=%s contributions=%d", m.Month, m.Gross, len(m.Contributions))
		}
	}
	if !year.AnnualGross.IsZero() {
		t.Errorf("Annual gross = %s, want 0", year.AnnualGross)
	}
}

// TestBuild_Conservation tests that the equal split neither loses nor gains
// money.
//
// WHY: Summed over all months, gross must equal the sum of each holding's
// annual dividend times shares. Per-payment division carries finite decimal
// precision, so the comparison allows a sub-cent tolerance.
func TestBuild_Conservation(t *testing.T) {
	positions := []calendar.Position{
		quarterlyPosition("A", 137, "1.37", "21", []int{1, 4, 7, 10}),
		quarterlyPosition("B", 9, "0.07", "30", []int{2, 8, 11}),
		{
			Holding: model.Holding{Symbol: "C", Shares: 61, TaxRatePct: dec("12.5")},
			Profile: model.DividendProfile{
				Symbol:                 "C",
				Cadence:                model.CadenceMonthly,
				PaymentMonths:          []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
				AnnualDividendPerShare: dec("2.95"),
			},
		},
	}

	year, err := calendar.Build(positions, nil)
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	want := dec("1.37").Mul(decimal.NewFromInt(137)).
		Add(dec("0.07").Mul(decimal.NewFromInt(9))).
		Add(dec("2.95").Mul(decimal.NewFromInt(61)))
	if diff := year.AnnualGross.Sub(want).Abs(); diff.GreaterThan(dec("0.0000000001")) {
		t.Errorf("Annual gross = %s, want %s (diff %s)", year.AnnualGross, want, diff)
	}

	// Tax exactness per contribution: net == gross - gross*rate/100.
	for _, m := range year.Months {
		for _, c := range m.Contributions {
			if !c.Net.Equal(c.Gross.Sub(c.Tax)) {
				t.Errorf("Contribution %s month %d: net %s != gross %s - tax %s", c.Symbol, m.Month, c.Net, c.Gross, c.Tax)
			}
		}
	}
}

// TestBuild_FallbackSchedules tests the cadence-default month schedules.
//
// WHY: Manually entered assets can carry a cadence without a stored month
// list; projections for them rely on the documented fallbacks.
func TestBuild_FallbackSchedules(t *testing.T) {
	tests := []struct {
		name       string
		cadence    model.Cadence
		wantMonths []int
	}{
		{"monthly falls back to all months", model.CadenceMonthly, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{"quarterly falls back to 3,6,9,12", model.CadenceQuarterly, []int{3, 6, 9, 12}},
		{"irregular falls back to 6,12", model.CadenceIrregular, []int{6, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := calendar.Position{
				Holding: model.Holding{Symbol: "X", Shares: 10, TaxRatePct: decimal.Zero},
				Profile: model.DividendProfile{
					Symbol:                 "X",
					Cadence:                tt.cadence,
					AnnualDividendPerShare: dec("1.20"),
				},
			}

			year, err := calendar.Build([]calendar.Position{pos}, nil)
			if err != nil {
				t.Fatalf("Build() returned unexpected error: %v", err)
			}

			want := map[int]bool{}
			for _, m := range tt.wantMonths {
				want[m] = true
			}
			perPayment := dec("12.00").Div(decimal.NewFromInt(int64(len(tt.wantMonths))))

			for _, m := range year.Months {
				if want[m.Month] {
					if !m.Gross.Equal(perPayment) {
						t.Errorf("Month %d gross = %s, want %s", m.Month, m.Gross, perPayment)
					}
				} else if !m.Gross.IsZero() {
					t.Errorf("Month %d should be empty, got %s", m.Month, m.Gross)
				}
			}
		})
	}

	t.Run("custom fallback overrides default", func(t *testing.T) {
		pos := calendar.Position{
			Holding: model.Holding{Symbol: "X", Shares: 1, TaxRatePct: decimal.Zero},
			Profile: model.DividendProfile{
				Symbol:                 "X",
				Cadence:                model.CadenceQuarterly,
				AnnualDividendPerShare: dec("4.00"),
			},
		}
		opts := &calendar.Options{QuarterlyFallback: []int{1, 4, 7, 10}}

		year, err := calendar.Build([]calendar.Position{pos}, opts)
		if err != nil {
			t.Fatalf("Build() returned unexpected error: %v", err)
		}

		if !year.Months[0].Gross.Equal(dec("1.00")) {
			t.Errorf("January gross = %s, want 1.00", year.Months[0].Gross)
		}
		if !year.Months[2].Gross.IsZero() {
			t.Errorf("March should be empty with custom fallback, got %s", year.Months[2].Gross)
		}
	})

	t.Run("stored months win over fallback", func(t *testing.T) {
		pos := quarterlyPosition("X", 1, "4.00", "0", []int{2, 5, 8, 11})

		year, err := calendar.Build([]calendar.Position{pos}, nil)
		if err != nil {
			t.Fatalf("Build() returned unexpected error: %v", err)
		}

		if !year.Months[1].Gross.Equal(dec("1.00")) {
			t.Errorf("February gross = %s, want 1.00", year.Months[1].Gross)
		}
		if !year.Months[2].Gross.IsZero() {
			t.Errorf("March should be empty, got %s", year.Months[2].Gross)
		}
	})
}

// TestBuild_InvalidPositions tests fail-fast validation.
//
// WHY: Negative shares or out-of-range tax rates are data-entry mistakes in
// financial input; clamping them silently would change reported income.
func TestBuild_InvalidPositions(t *testing.T) {
	tests := []struct {
		name    string
		pos     calendar.Position
		wantErr error
	}{
		{
			"negative shares",
			quarterlyPosition("BAD", -5, "1.00", "10", []int{3}),
			apperrors.ErrInvalidHolding,
		},
		{
			"tax rate above 100",
			quarterlyPosition("BAD", 5, "1.00", "101", []int{3}),
			apperrors.ErrInvalidHolding,
		},
		{
			"negative tax rate",
			quarterlyPosition("BAD", 5, "1.00", "-1", []int{3}),
			apperrors.ErrInvalidHolding,
		},
		{
			"payment month out of range",
			quarterlyPosition("BAD", 5, "1.00", "10", []int{0, 13}),
			apperrors.ErrInvalidProfile,
		},
		{
			"unknown cadence",
			calendar.Position{
				Holding: model.Holding{Symbol: "BAD", Shares: 1, TaxRatePct: decimal.Zero},
				Profile: model.DividendProfile{Symbol: "BAD", Cadence: "weekly", AnnualDividendPerShare: dec("1")},
			},
			apperrors.ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := calendar.ValidatePosition(tt.pos); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePosition() error = %v, want %v", err, tt.wantErr)
			}

			_, err := calendar.Build([]calendar.Position{tt.pos}, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestBuild_Idempotent tests that repeated calls give identical output.
func TestBuild_Idempotent(t *testing.T) {
	positions := []calendar.Position{
		quarterlyPosition("A", 100, "2.00", "15", []int{3, 6, 9, 12}),
		quarterlyPosition("B", 25, "1.10", "0", nil),
	}

	first, err := calendar.Build(positions, nil)
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	second, err := calendar.Build(positions, nil)
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	if !first.AnnualGross.Equal(second.AnnualGross) || !first.AnnualNet.Equal(second.AnnualNet) {
		t.Errorf("Build() not idempotent: %s/%s vs %s/%s",
			first.AnnualGross, first.AnnualNet, second.AnnualGross, second.AnnualNet)
	}
	for i := range first.Months {
		if !first.Months[i].Gross.Equal(second.Months[i].Gross) {
			t.Errorf("Month %d differs between calls", i+1)
		}
	}
}

// TestYield tests the derived portfolio yield helper.
func TestYield(t *testing.T) {
	if got := calendar.Yield(dec("170.00"), dec("5000.00")); !got.Equal(dec("3.4")) {
		t.Errorf("Yield() = %s, want 3.4", got)
	}
	if got := calendar.Yield(dec("170.00"), decimal.Zero); !got.IsZero() {
		t.Errorf("Yield() with zero cost = %s, want 0", got)
	}
}
