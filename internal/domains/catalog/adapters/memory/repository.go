// Package memory provides an in-memory catalog repository for development
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps catalog entries keyed by Steam app id.
type Repository struct {
	mu    sync.RWMutex
	byApp map[int64]*domain.Game
	byID  map[string]*domain.Game
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		byApp: map[int64]*domain.Game{},
		byID:  map[string]*domain.Game{},
	}
}

// FindByAppID returns the entry for the Steam app id or ErrNotFound.
func (r *Repository) FindByAppID(_ context.Context, steamAppID int64) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	game, ok := r.byApp[steamAppID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *game
	return &clone, nil
}

// FindByID returns the entry for the local id or ErrNotFound.
func (r *Repository) FindByID(_ context.Context, id string) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	game, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *game
	return &clone, nil
}

// FindAll returns every stored entry.
func (r *Repository) FindAll(_ context.Context) ([]*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	games := make([]*domain.Game, 0, len(r.byApp))
	for _, game := range r.byApp {
		clone := *game
		games = append(games, &clone)
	}
	return games, nil
}

// Count reports the number of stored entries.
func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byApp)), nil
}

// Create inserts the entry; an existing row for the same app id wins.
func (r *Repository) Create(_ context.Context, game *domain.Game) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byApp[game.SteamAppID]; ok {
		clone := *existing
		return &clone, nil
	}
	clone := *game
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.byApp[clone.SteamAppID] = &clone
	r.byID[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

// UpsertMany inserts entries, silently skipping app ids already present.
func (r *Repository) UpsertMany(_ context.Context, entries []domain.Game) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inserted int64
	for _, entry := range entries {
		if _, ok := r.byApp[entry.SteamAppID]; ok {
			continue
		}
		clone := entry
		if clone.ID == "" {
			clone.ID = uuid.NewString()
		}
		r.byApp[clone.SteamAppID] = &clone
		r.byID[clone.ID] = &clone
		inserted++
	}
	return inserted, nil
}
