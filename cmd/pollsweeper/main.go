package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/castvox/castvox/internal/adapters/repository/postgres"
	"github.com/castvox/castvox/internal/config"
	"github.com/castvox/castvox/internal/core/services"
)

// One-shot job, meant for a cron schedule: persists `closed` on polls whose
// close time has passed. Reads derive the effective status regardless; this
// just keeps the stored field from drifting.
func main() {
	cfg := config.Load()

	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Job timeout")
	flag.Parse()

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	lifecycleService := services.NewLifecycleService(pollRepo)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Println("Starting poll close sweep...")

	if err := lifecycleService.CloseEndedPolls(ctx); err != nil {
		log.Fatalf("Error closing ended polls: %v", err)
	}

	log.Println("Poll close sweep completed successfully.")
}
