package validation

import (
	"strings"

	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
)

// ValidateLookupAsset validates a symbol lookup request.
//
// Required fields:
//   - symbol: 1-10 characters, letters/digits/separators
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateLookupAsset(req request.LookupAssetRequest) error {
	errors := make(map[string]string)

	if err := ValidateSymbol(req.Symbol); err != nil {
		errors["symbol"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateRefreshAssets validates a batch refresh request. The symbol list
// is optional (empty means refresh everything), but every listed symbol must
// be well-formed.
func ValidateRefreshAssets(req request.RefreshAssetsRequest) error {
	errors := make(map[string]string)

	for _, symbol := range req.Symbols {
		if err := ValidateSymbol(symbol); err != nil {
			errors["symbols"] = err.Error()
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePlatforms validates a platform update request. Platform
// names must be non-empty after trimming.
func ValidateUpdatePlatforms(req request.UpdatePlatformsRequest) error {
	errors := make(map[string]string)

	for _, platform := range req.Platforms {
		if strings.TrimSpace(platform) == "" {
			errors["platforms"] = "platform names must not be empty"
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
