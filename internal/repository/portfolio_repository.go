package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PortfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Save creates a portfolio or replaces an existing one with the same name.
// The portfolio row and its holdings are written in one transaction;
// replacing rewrites the full holding set.
func (r *PortfolioRepository) Save(portfolio model.Portfolio) (model.Portfolio, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := time.Now().UTC()

	var id string
	err = tx.QueryRow(`SELECT id FROM portfolio WHERE name = ?`, portfolio.Name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New().String()
		_, err = tx.Exec(
			`INSERT INTO portfolio (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			id, portfolio.Name, portfolio.Description, now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to insert portfolio: %w", err)
		}
	case err != nil:
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE portfolio SET description = ?, updated_at = ? WHERE id = ?`,
			portfolio.Description, now.Format(time.RFC3339), id,
		)
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to update portfolio: %w", err)
		}
		if _, err = tx.Exec(`DELETE FROM portfolio_holding WHERE portfolio_id = ?`, id); err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to clear holdings: %w", err)
		}
	}

	for _, h := range portfolio.Holdings {
		_, err = tx.Exec(
			`INSERT INTO portfolio_holding (id, portfolio_id, symbol, shares, tax_rate_pct) VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), id, h.Symbol, h.Shares, h.TaxRatePct.InexactFloat64(),
		)
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to commit portfolio: %w", err)
	}

	return r.Get(portfolio.Name)
}

// Get retrieves a portfolio and its holdings by name.
func (r *PortfolioRepository) Get(name string) (model.Portfolio, error) {
	var p model.Portfolio
	var description sql.NullString
	var createdAt, updatedAt string

	err := r.db.QueryRow(
		`SELECT id, name, description, created_at, updated_at FROM portfolio WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, name)
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio %s: %w", name, err)
	}

	p.Description = description.String
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	p.Holdings, err = r.holdings(p.ID)
	if err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

// GetAll retrieves all saved portfolios with their holdings, ordered by
// name.
func (r *PortfolioRepository) GetAll() ([]model.Portfolio, error) {
	rows, err := r.db.Query(`SELECT name FROM portfolio ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	portfolios := make([]model.Portfolio, 0, len(names))
	for _, name := range names {
		p, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

// Delete removes a portfolio by name; holdings cascade.
func (r *PortfolioRepository) Delete(name string) error {
	result, err := r.db.Exec(`DELETE FROM portfolio WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, name)
	}
	return nil
}

func (r *PortfolioRepository) holdings(portfolioID string) ([]model.Holding, error) {
	rows, err := r.db.Query(
		`SELECT symbol, shares, tax_rate_pct FROM portfolio_holding
		 WHERE portfolio_id = ? ORDER BY symbol ASC`, portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		var h model.Holding
		var taxRate float64
		if err := rows.Scan(&h.Symbol, &h.Shares, &taxRate); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		h.TaxRatePct = decimal.NewFromFloat(taxRate)
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
