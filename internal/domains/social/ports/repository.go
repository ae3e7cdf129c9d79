package ports

import (
	"context"
	"errors"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
)

var (
	// ErrNotFound indicates the record does not exist in the store.
	ErrNotFound = errors.New("social record not found")
	// ErrDuplicate indicates the record already exists.
	ErrDuplicate = errors.New("social record already exists")
)

// CommentRepository persists comments. Create assigns ID and CreatedAt.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByGame returns comments newest first.
	ListByGame(ctx context.Context, gameID string) ([]*domain.Comment, error)
}

// LikeRepository tracks which users like which apps.
type LikeRepository interface {
	Toggle(ctx context.Context, steamAppID int64, userID string) (domain.LikeToggle, error)
	Summary(ctx context.Context, steamAppID int64, userID string) (domain.LikeSummary, error)
}

// RecommendationRepository persists recommendations. Create assigns ID and CreatedAt.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	ExistsForRecipient(ctx context.Context, toID, gameID string) (bool, error)
	// ListForRecipient returns recommendations newest first.
	ListForRecipient(ctx context.Context, toID string) ([]*domain.Recommendation, error)
	UpdateStatus(ctx context.Context, id string, status domain.RecommendationStatus) (*domain.Recommendation, error)
}

// ListRepository tracks per-user played and wishlist entries.
type ListRepository interface {
	Get(ctx context.Context, userID string) (domain.GameLists, error)
	// Add returns ErrDuplicate when the entry is already present.
	Add(ctx context.Context, userID string, kind domain.ListKind, steamAppID int64) error
	// Remove is a no-op when the entry is absent.
	Remove(ctx context.Context, userID string, kind domain.ListKind, steamAppID int64) error
}
