package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

// Service orchestrates the social use cases. Every flow that attaches data to
// a catalog entry resolves the entry first, importing it on demand.
type Service struct {
	comments ports.CommentRepository
	likes    ports.LikeRepository
	recs     ports.RecommendationRepository
	lists    ports.ListRepository
	resolver ports.GameResolver
}

func NewService(
	comments ports.CommentRepository,
	likes ports.LikeRepository,
	recs ports.RecommendationRepository,
	lists ports.ListRepository,
	resolver ports.GameResolver,
) *Service {
	return &Service{
		comments: comments,
		likes:    likes,
		recs:     recs,
		lists:    lists,
		resolver: resolver,
	}
}

// ListComments returns comments for a locally known entry, newest first.
// An app id with no local row yields an empty list, not an error.
func (s *Service) ListComments(ctx context.Context, steamAppID int64) ([]*domain.Comment, error) {
	game, err := s.resolver.Find(ctx, steamAppID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return []*domain.Comment{}, nil
	}
	return s.comments.ListByGame(ctx, game.ID)
}

// AddComment attaches a comment to the entry, materializing it on demand.
func (s *Service) AddComment(ctx context.Context, userID string, steamAppID int64, content string, rating *int) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, mapError(domain.ErrEmptyContent)
	}
	game, err := s.resolver.Ensure(ctx, steamAppID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	comment, err := domain.NewComment(userID, game.ID, content, rating)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// LikeSummary reports the like count and whether the given user likes the app.
func (s *Service) LikeSummary(ctx context.Context, steamAppID int64, userID string) (domain.LikeSummary, error) {
	return s.likes.Summary(ctx, steamAppID, userID)
}

// ToggleLike flips the user's like on the app and reports the new count.
func (s *Service) ToggleLike(ctx context.Context, steamAppID int64, userID string) (domain.LikeToggle, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.LikeToggle{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.likes.Toggle(ctx, steamAppID, userID)
}

// Recommend sends a game suggestion to another user. The referenced entry is
// materialized on demand; the recipient must not already have the game in a
// list, and only one recommendation per recipient and game may exist.
func (s *Service) Recommend(ctx context.Context, input ports.RecommendInput) (*domain.Recommendation, error) {
	if strings.TrimSpace(input.ToID) == "" || input.SteamAppID <= 0 {
		return nil, fmt.Errorf("%w: toId and steamAppId are required", ErrInvalidInput)
	}
	game, err := s.resolver.Ensure(ctx, input.SteamAppID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	exists, err := s.recs.ExistsForRecipient(ctx, input.ToID, game.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: recommendation already exists for this user and game", ErrConflict)
	}
	recipientLists, err := s.lists.Get(ctx, input.ToID)
	if err != nil {
		return nil, err
	}
	if recipientLists.Contains(domain.ListPlayed, input.SteamAppID) {
		return nil, ErrAlreadyPlayed
	}
	if recipientLists.Contains(domain.ListWishlist, input.SteamAppID) {
		return nil, ErrAlreadyWishlisted
	}
	rec, err := domain.NewRecommendation(input.FromID, input.ToID, game.ID, input.Reason)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.recs.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecommendationsFor lists recommendations sent to the user, newest first.
func (s *Service) RecommendationsFor(ctx context.Context, userID string) ([]*domain.Recommendation, error) {
	return s.recs.ListForRecipient(ctx, userID)
}

// UpdateRecommendationStatus moves a recommendation to a new status.
func (s *Service) UpdateRecommendationStatus(ctx context.Context, id, status string) (*domain.Recommendation, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, mapError(err)
	}
	return s.recs.UpdateStatus(ctx, id, parsed)
}

// Lists returns the user's played and wishlist entries.
func (s *Service) Lists(ctx context.Context, userID string) (domain.GameLists, error) {
	return s.lists.Get(ctx, userID)
}

// MarkPlayed records the app as played, removing it from the wishlist.
func (s *Service) MarkPlayed(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error) {
	if steamAppID <= 0 {
		return domain.GameLists{}, fmt.Errorf("%w: steamAppId is required", ErrInvalidInput)
	}
	current, err := s.lists.Get(ctx, userID)
	if err != nil {
		return domain.GameLists{}, err
	}
	if current.Contains(domain.ListPlayed, steamAppID) {
		return domain.GameLists{}, fmt.Errorf("%w: game already in played list", ErrConflict)
	}
	if err := s.lists.Remove(ctx, userID, domain.ListWishlist, steamAppID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return domain.GameLists{}, err
	}
	if err := s.lists.Add(ctx, userID, domain.ListPlayed, steamAppID); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return domain.GameLists{}, fmt.Errorf("%w: game already in played list", ErrConflict)
		}
		return domain.GameLists{}, err
	}
	return s.lists.Get(ctx, userID)
}

// AddToWishlist records the app on the wishlist. Played games are rejected.
func (s *Service) AddToWishlist(ctx context.Context, userID string, steamAppID int64) (domain.GameLists, error) {
	if steamAppID <= 0 {
		return domain.GameLists{}, fmt.Errorf("%w: steamAppId is required", ErrInvalidInput)
	}
	current, err := s.lists.Get(ctx, userID)
	if err != nil {
		return domain.GameLists{}, err
	}
	if current.Contains(domain.ListWishlist, steamAppID) {
		return domain.GameLists{}, fmt.Errorf("%w: game already in wishlist", ErrConflict)
	}
	if current.Contains(domain.ListPlayed, steamAppID) {
		return domain.GameLists{}, ErrAlreadyPlayed
	}
	if err := s.lists.Add(ctx, userID, domain.ListWishlist, steamAppID); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return domain.GameLists{}, fmt.Errorf("%w: game already in wishlist", ErrConflict)
		}
		return domain.GameLists{}, err
	}
	return s.lists.Get(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
