package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/model"

	"github.com/shopspring/decimal"
)

type AssetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `symbol, name, sector, industry, current_price, annual_dividend,
	dividend_yield, dividend_frequency, dividend_payment_months, market_cap,
	platforms, last_updated, created_at`

// UpsertAsset inserts a new asset or replaces the market data fields of an
// existing one. Platforms and created_at are preserved on update: they are
// user-maintained, not feed data.
func (r *AssetRepository) UpsertAsset(asset model.Asset) error {
	query := `
		INSERT INTO asset (symbol, name, sector, industry, current_price, annual_dividend,
			dividend_yield, dividend_frequency, dividend_payment_months, market_cap,
			platforms, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			sector = excluded.sector,
			industry = excluded.industry,
			current_price = excluded.current_price,
			annual_dividend = excluded.annual_dividend,
			dividend_yield = excluded.dividend_yield,
			dividend_frequency = excluded.dividend_frequency,
			dividend_payment_months = excluded.dividend_payment_months,
			market_cap = excluded.market_cap,
			last_updated = excluded.last_updated
	`

	_, err := r.db.Exec(query,
		asset.Symbol,
		asset.Name,
		asset.Sector,
		asset.Industry,
		asset.CurrentPrice.InexactFloat64(),
		asset.AnnualDividendPerShare.InexactFloat64(),
		asset.DividendYieldPct.InexactFloat64(),
		string(asset.Cadence),
		FormatPaymentMonths(asset.PaymentMonths),
		asset.MarketCap,
		FormatPlatforms(asset.Platforms),
		asset.LastUpdated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset %s: %w", asset.Symbol, err)
	}
	return nil
}

// GetAsset retrieves a single asset by symbol.
func (r *AssetRepository) GetAsset(symbol string) (model.Asset, error) {
	row := r.db.QueryRow(`SELECT `+assetColumns+` FROM asset WHERE symbol = ?`, symbol)

	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, fmt.Errorf("%w: %s", apperrors.ErrAssetNotFound, symbol)
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset %s: %w", symbol, err)
	}
	return asset, nil
}

// GetAllAssets retrieves all stored assets ordered by dividend yield
// descending. An empty frequency returns everything; otherwise only assets
// with that cadence label.
func (r *AssetRepository) GetAllAssets(frequency model.Cadence) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset`
	args := []any{}
	if frequency != "" {
		query += ` WHERE dividend_frequency = ?`
		args = append(args, string(frequency))
	}
	query += ` ORDER BY dividend_yield DESC, symbol ASC`

	return r.queryAssets(query, args...)
}

// GetAssetsByPaymentMonth retrieves assets that pay a dividend in the given
// calendar month. The month list is a comma-joined column, so candidates are
// filtered in Go after a coarse LIKE match.
func (r *AssetRepository) GetAssetsByPaymentMonth(month int) ([]model.Asset, error) {
	assets, err := r.queryAssets(
		`SELECT `+assetColumns+` FROM asset
		 WHERE dividend_payment_months LIKE '%' || ? || '%'
		 ORDER BY dividend_yield DESC, symbol ASC`,
		fmt.Sprintf("%d", month),
	)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		for _, m := range a.PaymentMonths {
			if m == month {
				matched = append(matched, a)
				break
			}
		}
	}
	return matched, nil
}

// GetAllSymbols retrieves every stored symbol, ordered alphabetically.
func (r *AssetRepository) GetAllSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT symbol FROM asset ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

// DeleteAsset removes an asset by symbol.
func (r *AssetRepository) DeleteAsset(symbol string) error {
	result, err := r.db.Exec(`DELETE FROM asset WHERE symbol = ?`, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", symbol, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAssetNotFound, symbol)
	}
	return nil
}

// UpdatePlatforms replaces the broker platform list of an asset.
func (r *AssetRepository) UpdatePlatforms(symbol string, platforms []string) error {
	result, err := r.db.Exec(
		`UPDATE asset SET platforms = ? WHERE symbol = ?`,
		FormatPlatforms(platforms), symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to update platforms for %s: %w", symbol, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAssetNotFound, symbol)
	}
	return nil
}

// Stats computes aggregate statistics over all stored assets: total count,
// per-cadence distribution, and the average yield across yield-bearing
// assets.
func (r *AssetRepository) Stats() (model.AssetStats, error) {
	stats := model.AssetStats{
		FrequencyDistribution: make(map[string]int),
		AverageYieldPct:       decimal.Zero,
	}

	if err := r.db.QueryRow(`SELECT COUNT(*) FROM asset`).Scan(&stats.TotalAssets); err != nil {
		return model.AssetStats{}, fmt.Errorf("failed to count assets: %w", err)
	}

	rows, err := r.db.Query(`SELECT dividend_frequency, COUNT(*) FROM asset GROUP BY dividend_frequency`)
	if err != nil {
		return model.AssetStats{}, fmt.Errorf("failed to query frequency distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var freq string
		var count int
		if err := rows.Scan(&freq, &count); err != nil {
			return model.AssetStats{}, fmt.Errorf("failed to scan frequency distribution: %w", err)
		}
		stats.FrequencyDistribution[freq] = count
	}
	if err := rows.Err(); err != nil {
		return model.AssetStats{}, fmt.Errorf("failed to read frequency distribution: %w", err)
	}

	var avgYield sql.NullFloat64
	err = r.db.QueryRow(`SELECT AVG(dividend_yield) FROM asset WHERE dividend_yield > 0`).Scan(&avgYield)
	if err != nil {
		return model.AssetStats{}, fmt.Errorf("failed to query average yield: %w", err)
	}
	if avgYield.Valid {
		stats.AverageYieldPct = decimal.NewFromFloat(avgYield.Float64).Round(2)
	}

	return stats, nil
}

func (r *AssetRepository) queryAssets(query string, args ...any) ([]model.Asset, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (model.Asset, error) {
	var a model.Asset
	var sector, industry, months, platforms, lastUpdated, createdAt sql.NullString
	var price, annual, yield sql.NullFloat64
	var marketCap sql.NullInt64
	var frequency string

	err := row.Scan(
		&a.Symbol,
		&a.Name,
		&sector,
		&industry,
		&price,
		&annual,
		&yield,
		&frequency,
		&months,
		&marketCap,
		&platforms,
		&lastUpdated,
		&createdAt,
	)
	if err != nil {
		return model.Asset{}, err
	}

	a.Sector = sector.String
	a.Industry = industry.String
	a.CurrentPrice = decimal.NewFromFloat(price.Float64)
	a.AnnualDividendPerShare = decimal.NewFromFloat(annual.Float64)
	a.DividendYieldPct = decimal.NewFromFloat(yield.Float64)
	a.Cadence = model.Cadence(frequency)
	a.PaymentMonths = ParsePaymentMonths(months.String)
	a.MarketCap = marketCap.Int64
	a.Platforms = ParsePlatforms(platforms.String)

	if lastUpdated.Valid && lastUpdated.String != "" {
		a.LastUpdated, err = ParseTime(lastUpdated.String)
		if err != nil {
			return model.Asset{}, fmt.Errorf("failed to parse last_updated: %w", err)
		}
	}
	if createdAt.Valid && createdAt.String != "" {
		a.CreatedAt, err = parseTimestamp(createdAt.String)
		if err != nil {
			return model.Asset{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
	}

	return a, nil
}

// parseTimestamp handles SQLite's CURRENT_TIMESTAMP format alongside the
// formats ParseTime accepts.
func parseTimestamp(str string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", str); err == nil {
		return t.UTC(), nil
	}
	return ParseTime(str)
}
