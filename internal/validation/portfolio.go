package validation

import (
	"fmt"
	"strings"

	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
)

// ValidateSavePortfolio validates a portfolio save request.
//
// Required fields:
//   - name: non-empty after trimming, at most 100 characters
//   - holdings: every row needs a valid symbol, non-negative shares and a
//     tax rate within 0-100; duplicate symbols are rejected
//
// Share counts of zero are allowed here: a saved portfolio may park a symbol
// without a position, and the calendar aggregator skips those rows.
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateSavePortfolio(req request.SavePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must not exceed 100 characters"
	}

	seen := make(map[string]bool)
	for i, h := range req.Holdings {
		field := fmt.Sprintf("holdings[%d]", i)

		if err := ValidateSymbol(h.Symbol); err != nil {
			errors[field] = err.Error()
			continue
		}

		symbol := NormalizeSymbol(h.Symbol)
		if seen[symbol] {
			errors[field] = fmt.Sprintf("duplicate symbol %s", symbol)
			continue
		}
		seen[symbol] = true

		if h.Shares < 0 {
			errors[field] = "shares must not be negative"
		}
		if h.TaxRatePct < 0 || h.TaxRatePct > 100 {
			errors[field] = "tax rate must be within 0-100"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
