// Package apperrors defines the sentinel errors shared across the
// application layers. Handlers map these to HTTP status codes with
// errors.Is.
package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrAssetNotFound indicates that no asset with the given symbol is stored.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPortfolioNotFound indicates that no portfolio with the given name exists.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrSymbolNotFound indicates that a market data lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrSettingNotFound indicates that a system setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint
// violations in user-facing financial input. These fail fast rather than
// clamping: silently coerced input could change reported income.
var (
	// ErrInvalidHolding indicates a malformed holding (negative shares or a
	// tax rate outside 0-100).
	ErrInvalidHolding = errors.New("invalid holding")

	// ErrInvalidProfile indicates a malformed dividend profile (unknown
	// cadence or payment months outside 1-12).
	ErrInvalidProfile = errors.New("invalid dividend profile")

	// ErrInvalidSymbol indicates an empty or malformed ticker symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrEmptyName indicates a required name parameter is empty or missing.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrDuplicateEntry indicates an entity with the same unique constraint
	// already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveAssets     = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset      = errors.New("failed to retrieve asset")
	ErrFailedToLookupSymbol       = errors.New("failed to look up symbol")
	ErrFailedToRefreshAssets      = errors.New("failed to refresh assets")
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePortfolio  = errors.New("failed to retrieve portfolio")
	ErrFailedToSavePortfolio      = errors.New("failed to save portfolio")
	ErrFailedToBuildCalendar      = errors.New("failed to build dividend calendar")
	ErrFailedToRetrieveStats      = errors.New("failed to retrieve stats")
	ErrFailedToStoreSetting       = errors.New("failed to store setting")
)
