package cron

import (
	"context"
	"log"
	"time"

	"liga-api/packages/league/cache"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	dataCache *cache.Cache
}

func NewScheduler(dataCache *cache.Cache) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:      c,
		dataCache: dataCache,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Reconciliation reload every hour, in case a change notification was
	// dropped. Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runReconciliation)
	if err != nil {
		log.Printf("Error scheduling reconciliation job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runReconciliation refreshes the cache from the database
func (s *Scheduler) runReconciliation() {
	log.Println("Running cache reconciliation job...")

	if err := s.ReloadNow(); err != nil {
		log.Printf("Error during cache reconciliation: %v", err)
		return
	}

	log.Println("Cache reconciliation job completed successfully")
}

// ReloadNow triggers a cache reload immediately
func (s *Scheduler) ReloadNow() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.dataCache.Reload(ctx)
	return err
}
