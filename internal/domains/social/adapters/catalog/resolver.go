package catalog

import (
	"context"
	"errors"

	catalogports "github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

var _ ports.GameResolver = (*Resolver)(nil)

// Resolver bridges the social context to the catalog repository and service.
type Resolver struct {
	repo    catalogports.Repository
	service catalogports.Service
}

func NewResolver(repo catalogports.Repository, service catalogports.Service) *Resolver {
	return &Resolver{repo: repo, service: service}
}

// Find looks up a locally known entry without touching the upstream.
func (r *Resolver) Find(ctx context.Context, steamAppID int64) (*ports.GameRef, error) {
	game, err := r.repo.FindByAppID(ctx, steamAppID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.GameRef{ID: game.ID, SteamAppID: game.SteamAppID, Name: game.Name}, nil
}

// Ensure materializes the entry through the catalog import-on-demand flow.
func (r *Resolver) Ensure(ctx context.Context, steamAppID int64) (*ports.GameRef, error) {
	game, err := r.service.Ensure(ctx, steamAppID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}
	return &ports.GameRef{ID: game.ID, SteamAppID: game.SteamAppID, Name: game.Name}, nil
}
