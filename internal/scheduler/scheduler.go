// Package scheduler runs the periodic background refresh of stored asset
// profiles, keeping prices and dividend classifications current without
// user interaction.
package scheduler

import (
	"context"
	"log"

	"github.com/mrivero/dividend-hunter-backend/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron runner for background asset refreshes.
type Scheduler struct {
	cron         *cron.Cron
	assetService *service.AssetService
}

// New creates a scheduler that refreshes every stored asset on the given
// cron spec (standard five-field syntax).
func New(assetService *service.AssetService, cronSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:         cron.New(),
		assetService: assetService,
	}

	_, err := s.cron.AddFunc(cronSpec, s.refresh)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running scheduled refreshes in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refresh() {
	log.Println("Starting scheduled asset refresh")

	results, err := s.assetService.RefreshAll(context.Background(), nil)
	if err != nil {
		log.Printf("Scheduled refresh failed: %v", err)
		return
	}

	failed := 0
	for _, r := range results {
		if r.Status != "ok" {
			failed++
		}
	}
	log.Printf("Scheduled refresh finished: %d assets, %d failed", len(results), failed)
}
