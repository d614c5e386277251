package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrivero/dividend-hunter-backend/internal/api/handlers"
	custommiddleware "github.com/mrivero/dividend-hunter-backend/internal/api/middleware"
	"github.com/mrivero/dividend-hunter-backend/internal/config"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, assetService *service.AssetService, portfolioService *service.PortfolioService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, assetService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/stats", systemHandler.Stats)
			r.Put("/provider-token", systemHandler.SetProviderToken)
		})

		// Asset namespace
		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(assetService)
			r.Get("/", assetHandler.GetAllAssets)
			r.Post("/lookup", assetHandler.Lookup)
			r.Post("/refresh", assetHandler.Refresh)
			r.Get("/{symbol}", assetHandler.GetAsset)
			r.Delete("/{symbol}", assetHandler.DeleteAsset)
			r.Put("/{symbol}/platforms", assetHandler.UpdatePlatforms)
		})

		// Portfolio namespace
		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.GetAllPortfolios)
			r.Post("/", portfolioHandler.SavePortfolio)
			r.Get("/{name}", portfolioHandler.GetPortfolio)
			r.Delete("/{name}", portfolioHandler.DeletePortfolio)
			r.Get("/{name}/calendar", portfolioHandler.Calendar)
		})
	})

	return r
}
