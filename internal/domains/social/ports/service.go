package ports

import (
	"context"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
)

// RecommendInput carries a new recommendation request.
type RecommendInput struct {
	FromID     string
	ToID       string
	SteamAppID int64
	Reason     string
}

// Service exposes the social use cases around catalog entries.
type Service interface {
	ListComments(ctx context.Context, steamAppID int64) ([]*domain.Comment, error)
	AddComment(ctx context.Context, userID string, steamAppID int64, content string, rating *int) (*domain.Comment, error)

	LikeSummary(ctx context.Context, steamAppID int64, userID string) (domain.LikeSummary, error)
	ToggleLike(ctx context.Context, steamAppID int64, userID string) (domain.LikeToggle, error)

	Recommend(ctx context.Context, input RecommendInput) (*domain.Recommendation, error)
	RecommendationsFor(ctx context.Context, userID string) ([]*domain.Recommendation, error)
	UpdateRecommendationStatus(ctx context.Context, id, status string) (*domain.Recommendation, error)

	Lists(ctx context.Context, userID string) (domain.GameLists, error)
	MarkPlayed(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error)
	AddToWishlist(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error)
}
