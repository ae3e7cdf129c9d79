//go:build pact
// +build pact

package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/gamefolio/gamefolio-api/test/pact"

	gamefolioserver "github.com/gamefolio/gamefolio-api/go"
	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	catalogmemory "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/observability"
	catalogworkflows "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/gamefolio/gamefolio-api/internal/domains/catalog/application"
	catalogdomain "github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	socialresolver "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/catalog"
	socialmemory "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/memory"
	socialobs "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/observability"
	socialapp "github.com/gamefolio/gamefolio-api/internal/domains/social/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCatalogProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateGameExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedGame(t, pacttest.ExistingAppID)
			}
			return nil, nil
		},
		pacttest.StateAppUnknown: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// stubGateway serves a single known app without touching the network.
type stubGateway struct{}

func (stubGateway) ListApps(_ context.Context, _ int64, _ int) (steam.AppPage, error) {
	return steam.AppPage{}, nil
}

func (stubGateway) AppDetails(_ context.Context, appID int64) (*steam.AppDetail, error) {
	if appID != pacttest.ExistingAppID {
		return nil, nil
	}
	return &steam.AppDetail{
		AppID:       appID,
		Name:        "Team Fortress 2",
		HeaderImage: "https://example.pact/apps/440/header.jpg",
		IsFree:      true,
	}, nil
}

func (stubGateway) FeaturedCategories(_ context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (stubGateway) Search(_ context.Context, _ string) (json.RawMessage, error) {
	return json.RawMessage(`{"total":0,"items":[]}`), nil
}

func (stubGateway) UpToDateCheck(_ context.Context, _ int64, _ string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

type contractProviderApp struct {
	repo   *catalogmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := catalogmemory.NewRepository()
	catalogService := catalogobs.New(catalogapp.NewService(repo, stubGateway{}, catalogapp.Config{}))
	imports := catalogworkflows.NewInlineImports(catalogService)

	socialService := socialobs.New(socialapp.NewService(
		socialmemory.NewCommentRepository(),
		socialmemory.NewLikeRepository(),
		socialmemory.NewRecommendationRepository(),
		socialmemory.NewListRepository(),
		socialresolver.NewResolver(repo, catalogService),
	))

	handlers := gamefolioserver.ApiHandleFunctions{
		SteamAPI:  gamefolioserver.NewSteamAPI(catalogService, imports),
		GamesAPI:  gamefolioserver.NewGamesAPI(catalogService),
		SocialAPI: gamefolioserver.NewSocialAPI(socialService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = gamefolioserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

// seedGame is idempotent: Create converges on the existing row, so repeated
// state setup across interactions is safe.
func (a *contractProviderApp) seedGame(t testing.TB, appID int64) {
	t.Helper()
	game, err := catalogdomain.NewGame(appID, "Team Fortress 2")
	require.NoError(t, err)
	game.Image = "https://example.pact/apps/440/header.jpg"
	game.IsFree = true
	_, err = a.repo.Create(context.Background(), game)
	require.NoError(t, err)
}
