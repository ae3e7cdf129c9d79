package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/gamefolio/gamefolio-api/internal/app/api"
	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	catalogmemory "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/gamefolio/gamefolio-api/internal/domains/catalog/application"
	catalogports "github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	catalogworkflows "github.com/gamefolio/gamefolio-api/internal/durable/temporal/workflows/catalog"
	"github.com/gamefolio/gamefolio-api/internal/platform/migrations"
	platformobservability "github.com/gamefolio/gamefolio-api/internal/platform/observability"
	platformpostgres "github.com/gamefolio/gamefolio-api/internal/platform/postgres"
	catalogactivities "github.com/gamefolio/gamefolio-api/internal/platform/temporal/activities/catalog"
)

func main() {
	ctx := context.Background()
	const serviceName = "gamefolio-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalogRepo, cleanupRepo := buildCatalogRepository(ctx, logger, cfg)
	defer cleanupRepo()
	coreCatalog := catalogapp.NewService(catalogRepo, steam.NewClient(cfg.SteamAPIKey), catalogapp.Config{
		ImportPageSize: cfg.ImportPageSize,
		ImportSoftCap:  cfg.ImportSoftCap,
		DetailTTL:      cfg.DetailCacheTTL,
		FeaturedTTL:    cfg.FeaturedCacheTTL,
	})
	catalogService := catalogobs.New(
		coreCatalog,
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	activities := catalogactivities.NewActivities(catalogService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, catalogworkflows.ImportTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(catalogworkflows.ImportWorkflow, workflow.RegisterOptions{Name: catalogworkflows.ImportWorkflowName})
	w.RegisterActivityWithOptions(activities.RunImport, activity.RegisterOptions{Name: catalogactivities.RunImportActivityName})

	logger.Info("worker listening", slog.String("taskQueue", catalogworkflows.ImportTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildCatalogRepository(ctx context.Context, logger *slog.Logger, cfg api.Config) (catalogports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectAny(ctx, logger, cfg.PostgresDSN, cfg.SQLitePath)
	if db == nil {
		return catalogmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return catalogmemory.NewRepository(), func() {}
	}
	return catalogpostgres.NewRepository(db), cleanup
}
