package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
	"github.com/mrivero/dividend-hunter-backend/internal/api/response"
	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/model"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
	"github.com/mrivero/dividend-hunter-backend/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints. It is the HTTP
// layer adapter, parsing requests and delegating to the asset service.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependency.
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Lookup handles POST requests to look up a symbol against the market data
// feed, classify its dividend cadence and store the result.
//
// Endpoint: POST /api/asset/lookup
// Request Body: LookupAssetRequest (symbol)
// Response: 200 OK with the stored Asset
// Error: 400 Bad Request if validation fails
// Error: 502 Bad Gateway if the market data feed fails
func (h *AssetHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LookupAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLookupAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.Lookup(r.Context(), req.Symbol)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToLookupSymbol.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// Refresh handles POST requests to re-run lookups for a list of symbols, or
// for every stored asset when the list is empty. Failures are reported per
// symbol, never as a batch failure.
//
// Endpoint: POST /api/asset/refresh
// Request Body: RefreshAssetsRequest (symbols, optional)
// Response: 200 OK with array of RefreshResult
// Error: 400 Bad Request if a listed symbol is malformed
// Error: 500 Internal Server Error if the stored symbol list cannot be read
func (h *AssetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RefreshAssetsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRefreshAssets(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	results, err := h.assetService.RefreshAll(r.Context(), req.Symbols)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, results)
}

// GetAllAssets handles GET requests to list stored assets, optionally
// filtered by cadence label and/or payment month.
//
// Endpoint: GET /api/asset?frequency=quarterly&month=6
// Response: 200 OK with array of Asset, ordered by yield descending
// Error: 400 Bad Request if a filter value is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAllAssets(w http.ResponseWriter, r *http.Request) {
	var cadence model.Cadence
	if f := r.URL.Query().Get("frequency"); f != "" {
		cadence = model.Cadence(f)
		if !cadence.Valid() {
			response.RespondError(w, http.StatusBadRequest, "invalid frequency filter", f)
			return
		}
	}

	month := 0
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.RespondError(w, http.StatusBadRequest, "invalid month filter", m)
			return
		}
		month = parsed
	}

	assets, err := h.assetService.GetAllAssets(cadence, month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests for a single stored asset.
//
// Endpoint: GET /api/asset/{symbol}
// Response: 200 OK with Asset
// Error: 404 Not Found if the symbol is not stored
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	asset, err := h.assetService.GetAsset(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove a stored asset.
//
// Endpoint: DELETE /api/asset/{symbol}
// Response: 204 No Content
// Error: 404 Not Found if the symbol is not stored
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.assetService.DeleteAsset(symbol); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// UpdatePlatforms handles PUT requests to replace the broker platforms an
// asset is available on.
//
// Endpoint: PUT /api/asset/{symbol}/platforms
// Request Body: UpdatePlatformsRequest (platforms)
// Response: 200 OK with the updated Asset
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the symbol is not stored
func (h *AssetHandler) UpdatePlatforms(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	req, err := parseJSON[request.UpdatePlatformsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePlatforms(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdatePlatforms(symbol, req.Platforms)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update platforms", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}
