package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	gamefolioserver "github.com/gamefolio/gamefolio-api/go"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	catalogmemory "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogworkflows "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/gamefolio/gamefolio-api/internal/domains/catalog/application"
	catalogports "github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	socialresolver "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/catalog"
	socialmemory "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/memory"
	socialobs "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/observability"
	socialpostgres "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/persistence/postgres"
	socialapp "github.com/gamefolio/gamefolio-api/internal/domains/social/application"
	socialports "github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
	"github.com/gamefolio/gamefolio-api/internal/platform/migrations"
	platformobservability "github.com/gamefolio/gamefolio-api/internal/platform/observability"
	platformpostgres "github.com/gamefolio/gamefolio-api/internal/platform/postgres"
)

// Run boots the Gamefolio HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "gamefolio-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if cfg.SteamAPIKey == "" {
		logger.Warn("STEAM_API_KEY not set, app list requests will be rejected upstream")
	}

	db, cleanupDB := platformpostgres.ConnectAny(ctx, logger, cfg.PostgresDSN, cfg.SQLitePath)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var catalogRepo catalogports.Repository
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
	} else {
		catalogRepo = catalogmemory.NewRepository()
	}

	steamClient := steam.NewClient(cfg.SteamAPIKey)
	coreCatalog := catalogapp.NewService(catalogRepo, steamClient, catalogapp.Config{
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

	var imports catalogports.ImportOrchestrator = catalogworkflows.NewInlineImports(catalogService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running imports inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		imports = catalogworkflows.NewTemporalImports(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	comments, likes, recs, lists := buildSocialRepositories(db)
	resolver := socialresolver.NewResolver(catalogRepo, catalogService)
	coreSocial := socialapp.NewService(comments, likes, recs, lists, resolver)
	socialService := socialobs.New(
		coreSocial,
		socialobs.WithLogger(logger),
		socialobs.WithTracer(instruments.Tracer("internal.social.application")),
		socialobs.WithMeter(instruments.Meter("internal.social.application")),
	)

	handlers := gamefolioserver.ApiHandleFunctions{
		SteamAPI:  gamefolioserver.NewSteamAPI(catalogService, imports),
		GamesAPI:  gamefolioserver.NewGamesAPI(catalogService),
		SocialAPI: gamefolioserver.NewSocialAPI(socialService),
	}

	router := gamefolioserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Gamefolio API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Gamefolio API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildSocialRepositories(db *gorm.DB) (socialports.CommentRepository, socialports.LikeRepository, socialports.RecommendationRepository, socialports.ListRepository) {
	if db != nil {
		return socialpostgres.NewCommentRepository(db),
			socialpostgres.NewLikeRepository(db),
			socialpostgres.NewRecommendationRepository(db),
			socialpostgres.NewListRepository(db)
	}
	return socialmemory.NewCommentRepository(),
		socialmemory.NewLikeRepository(),
		socialmemory.NewRecommendationRepository(),
		socialmemory.NewListRepository()
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
