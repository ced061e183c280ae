package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "greenmile/internal/adapters/http"
	pg "greenmile/internal/adapters/postgres"
	"greenmile/internal/carrier"
	"greenmile/internal/config"
	"greenmile/internal/emissions"
	"greenmile/internal/ports"
	comparesvc "greenmile/internal/services/compare"
	ingestsvc "greenmile/internal/services/ingest"
	recommendsvc "greenmile/internal/services/recommend"
	syncworker "greenmile/internal/workers/syncrunner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for Postgres adapters")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	// Wire repositories to services (ports)
	var _ ports.ProviderCatalog = db
	var _ ports.OrderRepository = db
	var _ ports.ShippingRecordRepository = db
	var _ ports.EmissionRepository = db
	var _ ports.SettingsRepository = db
	var _ ports.StatsRepository = db
	var _ ports.JobRepository = db

	// Remote estimator is optional; without an API key every calculation
	// uses the local fallback factors.
	var remote emissions.ShippingEstimator
	if est := emissions.NewClimatiqEstimator(cfg.ClimatiqAPIKey, cfg.ClimatiqBaseURL, cfg.ClimatiqTimeout); est != nil {
		remote = est
	}
	calculator := emissions.NewCalculator(remote)
	matcher := carrier.NewMatcher(db)

	comparer := comparesvc.New(db)
	recommender := recommendsvc.New(db, db, db, db, comparer)
	ingestor := ingestsvc.New(db, db, db, matcher, calculator, cfg.OriginAddress)

	handler := httpadapter.New(httpadapter.Deps{
		Catalog:       db,
		Orders:        db,
		Records:       db,
		Emissions:     db,
		Settings:      db,
		Stats:         db,
		Jobs:          db,
		Comparer:      comparer,
		Recommender:   recommender,
		Ingestor:      ingestor,
		WebhookSecret: cfg.WebhookSecret,
	})

	// Optional background corrective workers
	if cfg.SyncWorkers > 0 {
		processor := syncworker.ProcessorFunc(ingestor.RepairMissingEmissions)
		go syncworker.Run(ctx, db, processor, cfg.SyncWorkers, 500*time.Millisecond)
		log.Printf("sync workers started: %d", cfg.SyncWorkers)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, handler) }()
	log.Printf("listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
