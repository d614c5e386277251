package validation

import (
	"fmt"
	"strings"

	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
)

// NormalizeSymbol trims and uppercases a ticker symbol for storage and
// lookups.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks that a ticker symbol is plausible: 1-10 characters,
// letters and digits plus the '.', '-' and '^' separators some exchanges
// use (BRK.B, ^GSPC).
func ValidateSymbol(symbol string) error {
	symbol = NormalizeSymbol(symbol)

	if symbol == "" {
		return fmt.Errorf("%w: symbol is required", apperrors.ErrInvalidSymbol)
	}
	if len(symbol) > 10 {
		return fmt.Errorf("%w: %s exceeds 10 characters", apperrors.ErrInvalidSymbol, symbol)
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '^':
		default:
			return fmt.Errorf("%w: %s contains invalid character %q", apperrors.ErrInvalidSymbol, symbol, r)
		}
	}
	return nil
}
