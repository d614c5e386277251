package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrivero/dividend-hunter-backend/internal/api"
	"github.com/mrivero/dividend-hunter-backend/internal/config"
	"github.com/mrivero/dividend-hunter-backend/internal/database"
	"github.com/mrivero/dividend-hunter-backend/internal/repository"
	"github.com/mrivero/dividend-hunter-backend/internal/scheduler"
	"github.com/mrivero/dividend-hunter-backend/internal/secrets"
	"github.com/mrivero/dividend-hunter-backend/internal/service"
	"github.com/mrivero/dividend-hunter-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Encrypted settings are optional: without SECRET_KEY the server
	// runs, but provider tokens cannot be stored.
	cipher, err := secrets.NewCipher(cfg.Secrets.Key)
	if err != nil {
		if !errors.Is(err, secrets.ErrNoKey) {
			log.Fatalf("Failed to load secret key: %v", err)
		}
		log.Println("SECRET_KEY not set, encrypted settings disabled")
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db, settingRepo, cipher)

	marketData := yahoo.NewFinanceClient()
	if cipher != nil {
		if token, err := systemService.ProviderToken(); err == nil {
			marketData.SetAuthToken(token)
		}
	}

	assetService := service.NewAssetService(assetRepo, marketData, cfg.Refresh.Concurrency)
	portfolioService := service.NewPortfolioService(portfolioRepo, assetRepo, nil)

	// Start the nightly asset refresh
	refreshScheduler, err := scheduler.New(assetService, cfg.Refresh.CronSpec)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	refreshScheduler.Start()
	defer refreshScheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, assetService, portfolioService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
