// Command planner-worker polls for draft itinerary plans and builds them.
// It is the asynchronous counterpart to the synchronous build the HTTP API
// triggers inline on plan creation: a bulk-import or retry path can insert
// a plan as a bare draft and let this process pick it up.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/exotic-travel-booking/backend/internal/config"
	"github.com/exotic-travel-booking/backend/internal/metrics"
	"github.com/exotic-travel-booking/backend/internal/repositories"
	"github.com/exotic-travel-booking/backend/internal/tasks"
	"github.com/exotic-travel-booking/backend/pkg/database"
)

const pollInterval = 2 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	metrics.InitGlobalCollector()
	defer metrics.StopGlobalCollector()

	shell, err := tasks.Build(cfg, db, metrics.PlannerCounter(metrics.GetGlobalCollector()))
	if err != nil {
		log.Fatalf("Failed to wire planning stack: %v", err)
	}
	plans := repositories.NewPlanRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("planner-worker started, polling for draft plans")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("planner-worker shutting down")
			return
		case <-ticker.C:
			processOneDraft(ctx, plans, shell)
		}
	}
}

// processOneDraft claims at most one waiting plan per tick, so a single
// slow build never starves the shutdown signal check.
func processOneDraft(ctx context.Context, plans repositories.PlanRepository, shell *tasks.Shell) {
	plan, err := plans.ClaimNextDraft(ctx)
	if err != nil {
		log.Printf("claim next draft plan: %v", err)
		return
	}
	if plan == nil {
		return
	}

	// One first attempt plus up to maxRetries retries, waiting 1s, 2s, 4s.
	const maxRetries = 3
	var buildErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			}
		}
		if buildErr = shell.GeneratePlan(ctx, plan.ID); buildErr == nil {
			log.Printf("plan %s ready", plan.ID)
			return
		}
		log.Printf("plan %s build attempt %d/%d failed: %v", plan.ID, attempt+1, maxRetries+1, buildErr)
	}
}
