package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/frequency"
	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/validation"
	"github.com/mrivero/dividend-hunter-backend/internal/yahoo"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AssetService orchestrates asset lookups: fetching market data, classifying
// dividend cadence, and persisting the resulting profile.
type AssetService struct {
	assetRepo   *repository.AssetRepository
	marketData  yahoo.Client
	concurrency int
	now         func() time.Time
}

// NewAssetService creates a new AssetService. concurrency bounds parallel
// market data calls during batch refreshes; values below 1 mean sequential.
func NewAssetService(assetRepo *repository.AssetRepository, marketData yahoo.Client, concurrency int) *AssetService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AssetService{
		assetRepo:   assetRepo,
		marketData:  marketData,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Lookup fetches current market data and the trailing dividend history for
// a symbol, classifies its payment cadence, stores the result and returns
// the stored asset.
//
// Classification happens on the already-filtered event feed; the yahoo layer
// drops malformed rows before they reach the classifier.
func (s *AssetService) Lookup(ctx context.Context, symbol string) (model.Asset, error) {
	symbol = validation.NormalizeSymbol(symbol)

	quote, err := s.marketData.QueryQuote(symbol)
	if err != nil {
		return model.Asset{}, fmt.Errorf("quote lookup for %s failed: %w", symbol, err)
	}

	events, err := s.marketData.QueryDividendHistory(symbol)
	if err != nil {
		return model.Asset{}, fmt.Errorf("dividend history for %s failed: %w", symbol, err)
	}

	profile := frequency.Classify(symbol, events, s.now())

	price := decimal.NewFromFloat(quote.Price)
	asset := model.Asset{
		Symbol:                 symbol,
		Name:                   assetName(quote, symbol),
		Sector:                 quote.InstrumentType,
		CurrentPrice:           price,
		AnnualDividendPerShare: profile.AnnualDividendPerShare,
		DividendYieldPct:       dividendYield(profile.AnnualDividendPerShare, price),
		Cadence:                profile.Cadence,
		PaymentMonths:          profile.PaymentMonths,
		LastUpdated:            s.now().UTC(),
	}

	if err := s.assetRepo.UpsertAsset(asset); err != nil {
		return model.Asset{}, err
	}

	return s.assetRepo.GetAsset(symbol)
}

// RefreshResult is the row-level outcome of one symbol in a batch refresh.
type RefreshResult struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error,omitempty"`
}

// RefreshAll re-runs Lookup for the given symbols, or for every stored
// symbol when the list is empty. Lookups run concurrently up to the
// configured bound.
//
// One failing symbol never aborts the batch: each symbol reports its own
// status and the batch as a whole only errors when the symbol list itself
// cannot be loaded.
func (s *AssetService) RefreshAll(ctx context.Context, symbols []string) ([]RefreshResult, error) {
	if len(symbols) == 0 {
		stored, err := s.assetRepo.GetAllSymbols()
		if err != nil {
			return nil, err
		}
		symbols = stored
	}

	results := make([]RefreshResult, 0, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			result := RefreshResult{Symbol: symbol, Status: "ok"}
			if _, err := s.Lookup(ctx, symbol); err != nil {
				result.Status = "error"
				result.Error = err.Error()
				log.Printf("refresh failed for %s: %v", symbol, err)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only observes context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })
	return results, nil
}

// GetAsset retrieves one stored asset by symbol.
func (s *AssetService) GetAsset(symbol string) (model.Asset, error) {
	return s.assetRepo.GetAsset(validation.NormalizeSymbol(symbol))
}

// GetAllAssets retrieves stored assets, optionally filtered by cadence
// and/or by a payment month (1-12, zero means no month filter).
func (s *AssetService) GetAllAssets(cadence model.Cadence, month int) ([]model.Asset, error) {
	if month != 0 {
		assets, err := s.assetRepo.GetAssetsByPaymentMonth(month)
		if err != nil {
			return nil, err
		}
		if cadence == "" {
			return assets, nil
		}
		filtered := make([]model.Asset, 0, len(assets))
		for _, a := range assets {
			if a.Cadence == cadence {
				filtered = append(filtered, a)
			}
		}
		return filtered, nil
	}
	return s.assetRepo.GetAllAssets(cadence)
}

// DeleteAsset removes a stored asset.
func (s *AssetService) DeleteAsset(symbol string) error {
	return s.assetRepo.DeleteAsset(validation.NormalizeSymbol(symbol))
}

// UpdatePlatforms replaces the broker platforms an asset is available on
// and returns the updated asset.
func (s *AssetService) UpdatePlatforms(symbol string, platforms []string) (model.Asset, error) {
	symbol = validation.NormalizeSymbol(symbol)
	if err := s.assetRepo.UpdatePlatforms(symbol, platforms); err != nil {
		return model.Asset{}, err
	}
	return s.assetRepo.GetAsset(symbol)
}

// Stats returns aggregate statistics over all stored assets.
func (s *AssetService) Stats() (model.AssetStats, error) {
	return s.assetRepo.Stats()
}

// dividendYield computes annual dividend over price in percent, rounded to
// two decimals for storage. A zero price yields zero.
func dividendYield(annual, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return annual.Div(price).Mul(decimal.NewFromInt(100)).Round(2)
}

func assetName(quote yahoo.Quote, symbol string) string {
	if quote.LongName != "" {
		return quote.LongName
	}
	if quote.ShortName != "" {
		return quote.ShortName
	}
	return symbol
}
