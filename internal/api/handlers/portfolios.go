package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrivero/dividend-hunter-backend/internal/api/request"
	"github.com/mrivero/dividend-hunter-backend/internal/api/response"
	"github.com/mrivero/dividend-hunter-backend/internal/apperrors"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
	"github.com/mrivero/dividend-hunter-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for saved portfolios and their
// dividend calendar projections.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// GetAllPortfolios handles GET requests to list all saved portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetAllPortfolios(w http.ResponseWriter, _ *http.Request) {
	portfolios, err := h.portfolioService.GetAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// SavePortfolio handles POST requests to create or replace a named
// portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: SavePortfolioRequest (name, description, holdings)
// Response: 201 Created with the stored Portfolio
// Error: 400 Bad Request if validation fails
func (h *PortfolioHandler) SavePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SavePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSavePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.Save(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// GetPortfolio handles GET requests for a single saved portfolio.
//
// Endpoint: GET /api/portfolio/{name}
// Response: 200 OK with Portfolio
// Error: 404 Not Found if no portfolio has that name
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	portfolio, err := h.portfolioService.Get(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a saved portfolio.
//
// Endpoint: DELETE /api/portfolio/{name}
// Response: 204 No Content
// Error: 404 Not Found if no portfolio has that name
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.portfolioService.Delete(name); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Calendar handles GET requests for the 12-month dividend projection of a
// saved portfolio. Rows that could not be projected are reported in the
// summary's skipped list rather than failing the request.
//
// Endpoint: GET /api/portfolio/{name}/calendar
// Response: 200 OK with PortfolioSummary
// Error: 404 Not Found if no portfolio has that name
// Error: 500 Internal Server Error if the projection fails
func (h *PortfolioHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.portfolioService.Calendar(name)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildCalendar.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
