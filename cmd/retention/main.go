package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frogman715/hims-app-sub002/internal/config"
	"github.com/frogman715/hims-app-sub002/internal/repository/postgres"
	"github.com/frogman715/hims-app-sub002/internal/service"
)

// One-shot retention job: marks ACTIVE documents whose retention window has
// elapsed as OBSOLETE. Intended to run from cron.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	docRepo := postgres.NewDocumentRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	retentionSvc := service.NewRetentionService(docRepo, auditRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	docs, err := retentionSvc.EnforceRetention(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("retention enforcement failed: %w", err)
	}

	for _, d := range docs {
		log.Printf("retired %s (%s)", d.Code, d.ID)
	}
	return nil
}
