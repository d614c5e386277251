package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults (a quarterly payer)
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithSymbol("O").
//	    Monthly().
//	    WithAnnualDividend("3.00").
//	    Build(t, db)
type AssetBuilder struct {
	Symbol         string
	Name           string
	Sector         string
	Industry       string
	CurrentPrice   decimal.Decimal
	AnnualDividend decimal.Decimal
	Cadence        model.Cadence
	PaymentMonths  []int
	Platforms      []string
}

// NewAsset creates an AssetBuilder with sensible defaults: a quarterly
// payer on the usual March/June/September/December schedule.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		Symbol:         MakeSymbol(""),
		Name:           "Test Asset",
		Sector:         "Technology",
		Industry:       "Software",
		CurrentPrice:   decimal.NewFromInt(100),
		AnnualDividend: decimal.RequireFromString("2.00"),
		Cadence:        model.CadenceQuarterly,
		PaymentMonths:  []int{3, 6, 9, 12},
	}
}

// WithSymbol sets a custom symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithPrice sets the current price from a decimal string.
func (b *AssetBuilder) WithPrice(price string) *AssetBuilder {
	b.CurrentPrice = decimal.RequireFromString(price)
	return b
}

// WithAnnualDividend sets the trailing annual dividend per share from a
// decimal string.
func (b *AssetBuilder) WithAnnualDividend(amount string) *AssetBuilder {
	b.AnnualDividend = decimal.RequireFromString(amount)
	return b
}

// WithPaymentMonths sets the payment month schedule.
func (b *AssetBuilder) WithPaymentMonths(months ...int) *AssetBuilder {
	b.PaymentMonths = months
	return b
}

// WithPlatforms sets the platform tags.
func (b *AssetBuilder) WithPlatforms(platforms ...string) *AssetBuilder {
	b.Platforms = platforms
	return b
}

// Monthly marks the asset as a monthly payer across all twelve months.
func (b *AssetBuilder) Monthly() *AssetBuilder {
	b.Cadence = model.CadenceMonthly
	b.PaymentMonths = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	return b
}

// Irregular marks the asset as an irregular payer with no known schedule.
func (b *AssetBuilder) Irregular() *AssetBuilder {
	b.Cadence = model.CadenceIrregular
	b.PaymentMonths = nil
	return b
}

// NonPayer marks the asset as paying no dividends.
func (b *AssetBuilder) NonPayer() *AssetBuilder {
	b.Cadence = model.CadenceNone
	b.PaymentMonths = nil
	b.AnnualDividend = decimal.Zero
	return b
}

// Build persists the asset and returns the stored row.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	yield := decimal.Zero
	if b.CurrentPrice.IsPositive() {
		yield = b.AnnualDividend.Div(b.CurrentPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}

	asset := model.Asset{
		Symbol:                 b.Symbol,
		Name:                   b.Name,
		Sector:                 b.Sector,
		Industry:               b.Industry,
		CurrentPrice:           b.CurrentPrice,
		AnnualDividendPerShare: b.AnnualDividend,
		DividendYieldPct:       yield,
		Cadence:                b.Cadence,
		PaymentMonths:          b.PaymentMonths,
		Platforms:              b.Platforms,
		LastUpdated:            time.Now().UTC(),
	}

	repo := repository.NewAssetRepository(db)
	if err := repo.UpsertAsset(asset); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	stored, err := repo.GetAsset(asset.Symbol)
	if err != nil {
		t.Fatalf("Failed to read back test asset: %v", err)
	}
	return stored
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio().
//	    WithName("Income").
//	    WithHolding("O", 100, "15").
//	    Build(t, db)
type PortfolioBuilder struct {
	Name        string
	Description string
	Holdings    []model.Holding
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// WithHolding appends a holding; taxRate is a percentage as a decimal
// string.
func (b *PortfolioBuilder) WithHolding(symbol string, shares int64, taxRate string) *PortfolioBuilder {
	b.Holdings = append(b.Holdings, model.Holding{
		Symbol:     symbol,
		Shares:     shares,
		TaxRatePct: decimal.RequireFromString(taxRate),
	})
	return b
}

// Build persists the portfolio and returns the stored row.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	repo := repository.NewPortfolioRepository(db)
	stored, err := repo.Save(model.Portfolio{
		Name:        b.Name,
		Description: b.Description,
		Holdings:    b.Holdings,
	})
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return stored
}
