// Package application orchestrates the catalog bounded context: the cached
// upstream proxy, the paginated importer, and the ensure-exists resolver.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	"github.com/gamefolio/gamefolio-api/internal/shared/ttlcache"
)

// Reference constants; all overridable through Config.
const (
	DefaultImportPageSize = 30
	DefaultImportSoftCap  = 100
	DefaultDetailTTL      = time.Hour
	DefaultFeaturedTTL    = 5 * time.Minute
)

// Config tunes the cache and importer behavior.
type Config struct {
	ImportPageSize int
	ImportSoftCap  int
	DetailTTL      time.Duration
	FeaturedTTL    time.Duration
	// Clock overrides the cache time source for tests.
	Clock ttlcache.Clock
}

func (c Config) withDefaults() Config {
	if c.ImportPageSize <= 0 {
		c.ImportPageSize = DefaultImportPageSize
	}
	if c.ImportSoftCap <= 0 {
		c.ImportSoftCap = DefaultImportSoftCap
	}
	if c.DetailTTL <= 0 {
		c.DetailTTL = DefaultDetailTTL
	}
	if c.FeaturedTTL <= 0 {
		c.FeaturedTTL = DefaultFeaturedTTL
	}
	return c
}

// Service implements the catalog use cases on top of the repository and the
// Steam gateway. Cache state is owned here, not in package globals.
type Service struct {
	repo     ports.Repository
	gateway  ports.SteamGateway
	cfg      Config
	details  *ttlcache.Keyed[int64, *steam.AppDetail]
	featured *ttlcache.Slot[json.RawMessage]
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository, gateway ports.SteamGateway, cfg Config) *Service {
	cfg = cfg.withDefaults()
	details := ttlcache.NewKeyed[int64, *steam.AppDetail](cfg.DetailTTL)
	featured := ttlcache.NewSlot[json.RawMessage](cfg.FeaturedTTL)
	if cfg.Clock != nil {
		details.WithClock(cfg.Clock)
		featured.WithClock(cfg.Clock)
	}
	return &Service{
		repo:     repo,
		gateway:  gateway,
		cfg:      cfg,
		details:  details,
		featured: featured,
	}
}

// ListCatalog returns every known entry. An empty store is the invalidation
// signal for this path: it triggers one import run before answering.
func (s *Service) ListCatalog(ctx context.Context) ([]*domain.Game, error) {
	games, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(games) > 0 {
		return games, nil
	}
	if _, err := s.RunImport(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// BatchDetails resolves each id independently and concurrently. One id's
// upstream failure yields a nil entry for that id only.
func (s *Service) BatchDetails(ctx context.Context, appIDs []int64) map[int64]*steam.AppDetail {
	out := make(map[int64]*steam.AppDetail, len(appIDs))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range appIDs {
		id := id
		g.Go(func() error {
			detail := s.detail(ctx, id)
			mu.Lock()
			out[id] = detail
			mu.Unlock()
			// Per-id outcomes are independent; never abort siblings.
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// detail serves one id through the TTL cache, fetching on a miss. Failures
// and upstream absence both come back nil; only successes are cached.
func (s *Service) detail(ctx context.Context, appID int64) *steam.AppDetail {
	if cached, ok := s.details.Get(appID); ok {
		return cached
	}
	fetched, err := s.gateway.AppDetails(ctx, appID)
	if err != nil || fetched == nil {
		return nil
	}
	s.details.Put(appID, fetched)
	return fetched
}

// Ensure resolves "known upstream id, no local row" by materializing the row
// lazily. (nil, nil) means the upstream has no record either, which is a
// normal outcome, not an error.
func (s *Service) Ensure(ctx context.Context, steamAppID int64) (*domain.Game, error) {
	existing, err := s.repo.FindByAppID(ctx, steamAppID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	detail, err := s.gateway.AppDetails(ctx, steamAppID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}
	game, err := domain.NewGame(steamAppID, detail.Name)
	if err != nil {
		return nil, mapError(err)
	}
	game.Description = detail.ShortDescription
	game.Image = detail.Image()
	game.Genres = detail.Genres
	game.IsFree = detail.Free()
	game.AgeRestricted = detail.AgeRestricted()
	game.SetPlatforms(detail.Platforms)
	if detail.Price != nil {
		game.Price = &domain.PriceOverview{
			Currency:       detail.Price.Currency,
			Initial:        detail.Price.Initial,
			Final:          detail.Price.Final,
			FinalFormatted: detail.Price.FinalFormatted,
		}
	}
	return s.repo.Create(ctx, game)
}

// GetBySteamID merges the local row with a best-effort live detail. Detail
// failures are swallowed so the row is still served.
func (s *Service) GetBySteamID(ctx context.Context, steamAppID int64) (*domain.Game, *steam.AppDetail, error) {
	game, err := s.repo.FindByAppID(ctx, steamAppID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, nil, err
	}
	return game, s.detail(ctx, steamAppID), nil
}

// GetByID loads a single entry by its local identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.FindByID(ctx, id)
}

// Featured serves the volatile featured-categories payload through the
// short-lived slot cache.
func (s *Service) Featured(ctx context.Context) (json.RawMessage, error) {
	if cached, ok := s.featured.Get(); ok {
		return cached, nil
	}
	payload, err := s.gateway.FeaturedCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.featured.Put(payload)
	return payload, nil
}

// Search proxies the storefront search without caching.
func (s *Service) Search(ctx context.Context, term string) (json.RawMessage, error) {
	return s.gateway.Search(ctx, term)
}

// UpToDate proxies the build-version freshness check.
func (s *Service) UpToDate(ctx context.Context, appID int64, version string) (json.RawMessage, error) {
	return s.gateway.UpToDateCheck(ctx, appID, version)
}

var _ ports.Service = (*Service)(nil)
