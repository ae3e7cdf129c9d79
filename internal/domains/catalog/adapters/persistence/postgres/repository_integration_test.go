//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	"github.com/gamefolio/gamefolio-api/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("gamefolio_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_CreateAndFindByAppID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	game, err := domain.NewGame(440, "Team Fortress 2")
	require.NoError(t, err)
	game.Genres = []string{"Action", "Free To Play"}
	game.SetPlatforms(map[string]bool{"windows": true, "linux": true})
	game.Price = &domain.PriceOverview{Currency: "USD", Initial: 0, Final: 0}
	game.IsFree = true

	saved, err := repo.Create(ctx, game)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	fetched, err := repo.FindByAppID(ctx, 440)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "Team Fortress 2", fetched.Name)
	assert.Equal(t, []string{"Action", "Free To Play"}, fetched.Genres)
	assert.Equal(t, []string{"windows", "linux"}, fetched.PlatformList)
	require.NotNil(t, fetched.Price)
	assert.Equal(t, "USD", fetched.Price.Currency)
	assert.True(t, fetched.IsFree)
}

func TestRepository_CreateConvergesOnConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewGame(570, "Dota 2")
	require.NoError(t, err)
	saved, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewGame(570, "Dota 2 (duplicate)")
	require.NoError(t, err)
	converged, err := repo.Create(ctx, second)
	require.NoError(t, err)

	// The second create keeps the existing row rather than inserting.
	assert.Equal(t, saved.ID, converged.ID)
	assert.Equal(t, "Dota 2", converged.Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_UpsertManySkipsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	batch := make([]domain.Game, 0, 3)
	for appID, name := range map[int64]string{10: "Counter-Strike", 20: "Team Fortress Classic", 30: "Day of Defeat"} {
		game, err := domain.NewGame(appID, name)
		require.NoError(t, err)
		batch = append(batch, *game)
	}

	inserted, err := repo.UpsertMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)

	inserted, err = repo.UpsertMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRepository_FindByAppIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)

	_, err := repo.FindByAppID(context.Background(), 999999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
