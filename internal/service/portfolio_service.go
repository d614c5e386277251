package service

import (
	"errors"

	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/calendar"
	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/validation"

	"github.com/shopspring/decimal"
)

// PortfolioService handles saved portfolios and their dividend calendar
// projections.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	assetRepo     *repository.AssetRepository
	calendarOpts  *calendar.Options
}

// NewPortfolioService creates a new PortfolioService. calendarOpts may be
// nil to use the default fallback payment schedules.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	assetRepo *repository.AssetRepository,
	calendarOpts *calendar.Options,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		assetRepo:     assetRepo,
		calendarOpts:  calendarOpts,
	}
}

// Save creates or replaces a named portfolio from a validated request.
func (s *PortfolioService) Save(req request.SavePortfolioRequest) (model.Portfolio, error) {
	holdings := make([]model.Holding, 0, len(req.Holdings))
	for _, h := range req.Holdings {
		holdings = append(holdings, model.Holding{
			Symbol:     validation.NormalizeSymbol(h.Symbol),
			Shares:     h.Shares,
			TaxRatePct: decimal.NewFromFloat(h.TaxRatePct),
		})
	}

	return s.portfolioRepo.Save(model.Portfolio{
		Name:        req.Name,
		Description: req.Description,
		Holdings:    holdings,
	})
}

// Get retrieves a saved portfolio by name.
func (s *PortfolioService) Get(name string) (model.Portfolio, error) {
	return s.portfolioRepo.Get(name)
}

// GetAll retrieves all saved portfolios.
func (s *PortfolioService) GetAll() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetAll()
}

// Delete removes a saved portfolio by name.
func (s *PortfolioService) Delete(name string) error {
	return s.portfolioRepo.Delete(name)
}

// Calendar builds the 12-month dividend projection for a saved portfolio.
//
// Each holding is joined with its stored asset profile and validated
// individually. Rows referencing unknown symbols or carrying invalid data
// are reported in Skipped and excluded; they never abort the projection of
// the remaining rows. Invested cost sums shares times the stored current
// price, and the net yield relates annual net income to that cost.
func (s *PortfolioService) Calendar(name string) (model.PortfolioSummary, error) {
	portfolio, err := s.portfolioRepo.Get(name)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	positions := make([]calendar.Position, 0, len(portfolio.Holdings))
	skipped := []model.SkippedPosition{}
	investedCost := decimal.Zero

	for _, holding := range portfolio.Holdings {
		asset, err := s.assetRepo.GetAsset(holding.Symbol)
		if err != nil {
			if errors.Is(err, apperrors.ErrAssetNotFound) {
				skipped = append(skipped, model.SkippedPosition{
					Symbol: holding.Symbol,
					Reason: "asset not found; look it up before projecting",
				})
				continue
			}
			return model.PortfolioSummary{}, err
		}

		pos := calendar.Position{Holding: holding, Profile: asset.Profile()}
		if err := calendar.ValidatePosition(pos); err != nil {
			skipped = append(skipped, model.SkippedPosition{
				Symbol: holding.Symbol,
				Reason: err.Error(),
			})
			continue
		}

		positions = append(positions, pos)
		investedCost = investedCost.Add(asset.CurrentPrice.Mul(decimal.NewFromInt(holding.Shares)))
	}

	year, err := calendar.Build(positions, s.calendarOpts)
	if err != nil {
		// Positions were validated above; Build can only reject what
		// ValidatePosition already accepted if the two drift apart.
		return model.PortfolioSummary{}, err
	}

	return model.PortfolioSummary{
		Name:              portfolio.Name,
		Calendar:          year,
		TotalInvestedCost: investedCost,
		NetYieldPct:       calendar.Yield(year.AnnualNet, investedCost),
		Skipped:           skipped,
	}, nil
}
