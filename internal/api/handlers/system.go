package handlers

import (
	"errors"
	"net/http"

	"github.com/mrivero/dividend-hunter-backend/internal/api/response"
	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/secrets"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
	assetService  *service.AssetService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, assetService *service.AssetService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		assetService:  assetService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
//
// Endpoint: GET /api/system/health
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Version reports application and schema versions.
//
// Endpoint: GET /api/system/version
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.systemService.Version()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// Stats reports aggregate statistics over all stored assets.
//
// Endpoint: GET /api/system/stats
func (h *SystemHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.assetService.Stats()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// providerTokenRequest is the request body for storing a provider token.
type providerTokenRequest struct {
	Token string `json:"token"`
}

// SetProviderToken stores the market data provider token, encrypted at
// rest.
//
// Endpoint: PUT /api/system/provider-token
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid or the token empty
// Error: 409 Conflict if no secret key is configured
func (h *SystemHandler) SetProviderToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[providerTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Token == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.systemService.SetProviderToken(req.Token); err != nil {
		if errors.Is(err, secrets.ErrNoKey) {
			response.RespondError(w, http.StatusConflict, secrets.ErrNoKey.Error(),
				"set SECRET_KEY to enable encrypted settings")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreSetting.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
