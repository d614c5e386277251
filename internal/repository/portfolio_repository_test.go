package repository_test

import (
	"errors"
	"testing"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/testutil"
)

// TestPortfolioRepository_Save tests creating and replacing portfolios.
//
// WHY: Saving under an existing name must replace the holding set as one
// transaction. A half-applied save would mix old and new rows and the
// calendar built from it would be silently wrong.
func TestPortfolioRepository_Save(t *testing.T) {
	t.Run("creates a new portfolio with holdings", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)

		// Execute
		stored := testutil.NewPortfolio().
			WithName("Income").
			WithHolding("O", 50, "15").
			WithHolding("MSFT", 10, "15").
			Build(t, db)

		// Assert
		if stored.ID == "" {
			t.Error("Expected generated portfolio ID")
		}
		if len(stored.Holdings) != 2 {
			t.Fatalf("Expected 2 holdings, got %d", len(stored.Holdings))
		}
		// Holdings come back sorted by symbol
		if stored.Holdings[0].Symbol != "MSFT" || stored.Holdings[1].Symbol != "O" {
			t.Errorf("Expected holdings sorted [MSFT O], got [%s %s]",
				stored.Holdings[0].Symbol, stored.Holdings[1].Symbol)
		}
		if stored.Holdings[0].Shares != 10 {
			t.Errorf("Expected 10 MSFT shares, got %d", stored.Holdings[0].Shares)
		}
		if stored.Holdings[0].TaxRatePct.String() != "15" {
			t.Errorf("Expected tax rate 15, got %s", stored.Holdings[0].TaxRatePct)
		}
	})

	t.Run("saving under the same name replaces holdings", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewPortfolioRepository(db)

		first := testutil.NewPortfolio().
			WithName("Income").
			WithHolding("O", 50, "15").
			Build(t, db)

		// Execute
		second := testutil.NewPortfolio().
			WithName("Income").
			WithDescription("rebalanced").
			WithHolding("SCHD", 100, "0").
			Build(t, db)

		// Assert: same row, fully rewritten holdings
		if second.ID != first.ID {
			t.Errorf("Expected save to reuse portfolio ID %s, got %s", first.ID, second.ID)
		}
		if second.Description != "rebalanced" {
			t.Errorf("Expected updated description, got '%s'", second.Description)
		}
		if len(second.Holdings) != 1 || second.Holdings[0].Symbol != "SCHD" {
			t.Errorf("Expected holdings replaced with [SCHD], got %v", second.Holdings)
		}

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("Expected 1 portfolio after re-save, got %d", len(all))
		}
	})

	t.Run("zero-share holdings are stored", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)

		// Execute: watchlist-style row
		stored := testutil.NewPortfolio().
			WithHolding("O", 0, "15").
			Build(t, db)

		// Assert
		if len(stored.Holdings) != 1 || stored.Holdings[0].Shares != 0 {
			t.Errorf("Expected zero-share holding to persist, got %v", stored.Holdings)
		}
	})
}

// TestPortfolioRepository_GetDelete tests retrieval and removal.
//
// WHY: Both map missing names to the sentinel error so handlers produce
// 404s, and delete must cascade to holdings or replaced portfolios would
// leak rows.
func TestPortfolioRepository_GetDelete(t *testing.T) {
	t.Run("unknown name returns ErrPortfolioNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPortfolioRepository(db)

		_, err := repo.Get("nope")
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("delete cascades to holdings", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewPortfolioRepository(db)

		p := testutil.NewPortfolio().
			WithName("Doomed").
			WithHolding("O", 10, "15").
			Build(t, db)

		// Execute
		if err := repo.Delete("Doomed"); err != nil {
			t.Fatalf("Delete() returned unexpected error: %v", err)
		}

		// Assert
		if _, err := repo.Get("Doomed"); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound after delete, got %v", err)
		}

		var count int
		if err := db.QueryRow(
			`SELECT COUNT(*) FROM portfolio_holding WHERE portfolio_id = ?`, p.ID,
		).Scan(&count); err != nil {
			t.Fatalf("Failed to count holdings: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected holdings to cascade on delete, %d rows remain", count)
		}
	})

	t.Run("delete of unknown name returns ErrPortfolioNotFound", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPortfolioRepository(db)

		if err := repo.Delete("nope"); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("GetAll orders by name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPortfolioRepository(db)

		testutil.NewPortfolio().WithName("Zeta").Build(t, db)
		testutil.NewPortfolio().WithName("Alpha").Build(t, db)

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if len(all) != 2 || all[0].Name != "Alpha" || all[1].Name != "Zeta" {
			t.Errorf("Expected [Alpha Zeta], got %v", all)
		}
	})
}
