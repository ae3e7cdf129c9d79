package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gamefolio/gamefolio-api/internal/app/api"
	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	catalogpostgres "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/gamefolio/gamefolio-api/internal/domains/catalog/application"
	"github.com/gamefolio/gamefolio-api/internal/platform/migrations"
	platformpostgres "github.com/gamefolio/gamefolio-api/internal/platform/postgres"
)

// One-shot catalog import, intended for cron or manual seeding.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, cleanup := platformpostgres.ConnectAny(ctx, logger, cfg.PostgresDSN, cfg.SQLitePath)
	defer cleanup()
	if db == nil {
		log.Fatal("no database configured; cannot import catalog")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	service := catalogapp.NewService(
		catalogpostgres.NewRepository(db),
		steam.NewClient(cfg.SteamAPIKey),
		catalogapp.Config{
			ImportPageSize: cfg.ImportPageSize,
			ImportSoftCap:  cfg.ImportSoftCap,
			DetailTTL:      cfg.DetailCacheTTL,
			FeaturedTTL:    cfg.FeaturedCacheTTL,
		},
	)
	report, err := service.RunImport(ctx)
	if err != nil {
		log.Fatalf("catalog import failed after %d rows: %v", report.Imported, err)
	}
	log.Printf("catalog import completed: %d rows over %d pages (capHit=%v)", report.Imported, report.Pages, report.CapHit)
}
