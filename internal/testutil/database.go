package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the migrations in internal/database.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table
		CREATE TABLE asset (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sector VARCHAR(100),
			industry VARCHAR(100),
			current_price FLOAT,
			annual_dividend FLOAT,
			dividend_yield FLOAT,
			dividend_frequency VARCHAR(10) NOT NULL,
			dividend_payment_months TEXT,
			market_cap INTEGER,
			platforms TEXT,
			last_updated DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_asset_dividend_frequency ON asset(dividend_frequency);
		CREATE INDEX idx_asset_dividend_yield ON asset(dividend_yield);

		-- Portfolio table
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Portfolio holding table
		CREATE TABLE portfolio_holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			shares INTEGER NOT NULL,
			tax_rate_pct FLOAT NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT unique_portfolio_symbol UNIQUE (portfolio_id, symbol)
		);

		-- System setting table
		CREATE TABLE system_setting (
			"key" VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}
