package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

var (
	_ ports.CommentRepository        = (*CommentRepository)(nil)
	_ ports.LikeRepository           = (*LikeRepository)(nil)
	_ ports.RecommendationRepository = (*RecommendationRepository)(nil)
	_ ports.ListRepository           = (*ListRepository)(nil)
)

// CommentRepository keeps comments in process memory.
type CommentRepository struct {
	mu     sync.RWMutex
	byGame map[string][]*domain.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{byGame: map[string][]*domain.Comment{}}
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	stored := *comment
	r.byGame[comment.GameID] = append(r.byGame[comment.GameID], &stored)
	return nil
}

func (r *CommentRepository) ListByGame(_ context.Context, gameID string) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byGame[gameID]
	out := make([]*domain.Comment, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		clone := *stored[i]
		out = append(out, &clone)
	}
	return out, nil
}

// LikeRepository keeps per-app like sets in process memory.
type LikeRepository struct {
	mu    sync.Mutex
	byApp map[int64]map[string]struct{}
}

func NewLikeRepository() *LikeRepository {
	return &LikeRepository{byApp: map[int64]map[string]struct{}{}}
}

func (r *LikeRepository) Toggle(_ context.Context, steamAppID int64, userID string) (domain.LikeToggle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.byApp[steamAppID]
	if users == nil {
		users = map[string]struct{}{}
		r.byApp[steamAppID] = users
	}
	action := domain.LikeAdded
	if _, ok := users[userID]; ok {
		delete(users, userID)
		action = domain.LikeRemoved
	} else {
		users[userID] = struct{}{}
	}
	return domain.LikeToggle{Action: action, Count: len(users)}, nil
}

func (r *LikeRepository) Summary(_ context.Context, steamAppID int64, userID string) (domain.LikeSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := r.byApp[steamAppID]
	_, liked := users[userID]
	return domain.LikeSummary{Count: len(users), LikedByUser: liked}, nil
}

// RecommendationRepository keeps recommendations in process memory.
type RecommendationRepository struct {
	mu      sync.RWMutex
	records []*domain.Recommendation
}

func NewRecommendationRepository() *RecommendationRepository {
	return &RecommendationRepository{}
}

func (r *RecommendationRepository) Create(_ context.Context, rec *domain.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	stored := *rec
	r.records = append(r.records, &stored)
	return nil
}

func (r *RecommendationRepository) ExistsForRecipient(_ context.Context, toID, gameID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ToID == toID && rec.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (r *RecommendationRepository) ListForRecipient(_ context.Context, toID string) ([]*domain.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Recommendation{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ToID == toID {
			clone := *r.records[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *RecommendationRepository) UpdateStatus(_ context.Context, id string, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			rec.Status = status
			clone := *rec
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

// ListRepository keeps per-user game lists in process memory.
type ListRepository struct {
	mu     sync.Mutex
	byUser map[string]*domain.GameLists
}

func NewListRepository() *ListRepository {
	return &ListRepository{byUser: map[string]*domain.GameLists{}}
}

func (r *ListRepository) Get(_ context.Context, userID string) (domain.GameLists, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lists := r.byUser[userID]
	if lists == nil {
		return domain.GameLists{}, nil
	}
	out := domain.GameLists{
		Played:   append([]int64(nil), lists.Played...),
		Wishlist: append([]int64(nil), lists.Wishlist...),
	}
	return out, nil
}

func (r *ListRepository) Add(_ context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lists := r.byUser[userID]
	if lists == nil {
		lists = &domain.GameLists{}
		r.byUser[userID] = lists
	}
	if lists.Contains(kind, steamAppID) {
		return ports.ErrDuplicate
	}
	if kind == domain.ListPlayed {
		lists.Played = append(lists.Played, steamAppID)
	} else {
		lists.Wishlist = append(lists.Wishlist, steamAppID)
	}
	return nil
}

func (r *ListRepository) Remove(_ context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lists := r.byUser[userID]
	if lists == nil {
		return nil
	}
	target := &lists.Played
	if kind == domain.ListWishlist {
		target = &lists.Wishlist
	}
	kept := (*target)[:0]
	for _, id := range *target {
		if id != steamAppID {
			kept = append(kept, id)
		}
	}
	*target = kept
	return nil
}
