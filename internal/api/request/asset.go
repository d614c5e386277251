package request

// LookupAssetRequest represents the request body for looking up a symbol
// against the market data feed and storing its dividend profile.
type LookupAssetRequest struct {
	Symbol string `json:"symbol"`
}

// RefreshAssetsRequest represents the request body for a batch refresh.
// An empty Symbols list refreshes every stored asset.
type RefreshAssetsRequest struct {
	Symbols []string `json:"symbols,omitempty"`
}

// UpdatePlatformsRequest represents the request body for replacing the
// broker platforms an asset is available on.
type UpdatePlatformsRequest struct {
	Platforms []string `json:"platforms"`
}
