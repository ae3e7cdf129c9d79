package ports

import (
	"context"
	"errors"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("game not found")

// Repository persists catalog entries. All writes are keyed on the Steam app
// id; the store never holds two rows for the same id.
type Repository interface {
	// FindByAppID returns ErrNotFound when no row exists for the id.
	FindByAppID(ctx context.Context, steamAppID int64) (*domain.Game, error)
	// FindByID looks a row up by its local identifier.
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	FindAll(ctx context.Context) ([]*domain.Game, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	// UpsertMany inserts entries with skip-on-conflict semantics: rows whose
	// app id already exists are left untouched. Returns the number of rows
	// actually inserted.
	UpsertMany(ctx context.Context, entries []domain.Game) (int64, error)
}
