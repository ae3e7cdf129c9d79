package mapper

import (
	"time"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
)

// CommentView is the wire representation of a comment.
type CommentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	GameID    string    `json:"gameId"`
	Content   string    `json:"content"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentPayload carries a new comment request body.
type CommentPayload struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating"`
}

// FromComment maps a comment aggregate to its wire representation.
func FromComment(comment *domain.Comment) *CommentView {
	if comment == nil {
		return nil
	}
	return &CommentView{
		ID:        comment.ID,
		UserID:    comment.UserID,
		GameID:    comment.GameID,
		Content:   comment.Content,
		Rating:    comment.Rating,
		CreatedAt: comment.CreatedAt,
	}
}

// FromCommentList maps a slice of comments.
func FromCommentList(comments []*domain.Comment) []*CommentView {
	out := make([]*CommentView, 0, len(comments))
	for _, comment := range comments {
		out = append(out, FromComment(comment))
	}
	return out
}

// LikeSummaryView is the wire representation of a like aggregate.
type LikeSummaryView struct {
	Count       int  `json:"count"`
	LikedByUser bool `json:"likedByUser"`
}

// LikeToggleView reports the result of a like toggle.
type LikeToggleView struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// FromLikeSummary maps the like aggregate state.
func FromLikeSummary(summary domain.LikeSummary) LikeSummaryView {
	return LikeSummaryView{Count: summary.Count, LikedByUser: summary.LikedByUser}
}

// FromLikeToggle maps a toggle outcome.
func FromLikeToggle(toggle domain.LikeToggle) LikeToggleView {
	return LikeToggleView{Action: string(toggle.Action), Count: toggle.Count}
}

// RecommendationView is the wire representation of a recommendation.
type RecommendationView struct {
	ID        string    `json:"id"`
	FromID    string    `json:"fromId"`
	ToID      string    `json:"toId"`
	GameID    string    `json:"gameId"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecommendPayload carries a new recommendation request body.
type RecommendPayload struct {
	ToID       string `json:"toId"`
	SteamAppID int64  `json:"steamAppId"`
	Reason     string `json:"reason"`
}

// StatusPayload carries a recommendation status change.
type StatusPayload struct {
	Status string `json:"status"`
}

// FromRecommendation maps a recommendation aggregate.
func FromRecommendation(rec *domain.Recommendation) *RecommendationView {
	if rec == nil {
		return nil
	}
	return &RecommendationView{
		ID:        rec.ID,
		FromID:    rec.FromID,
		ToID:      rec.ToID,
		GameID:    rec.GameID,
		Reason:    rec.Reason,
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
}

// FromRecommendationList maps a slice of recommendations.
func FromRecommendationList(recs []*domain.Recommendation) []*RecommendationView {
	out := make([]*RecommendationView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecommendation(rec))
	}
	return out
}

// ListsView is the wire representation of per-user game lists.
type ListsView struct {
	Played   []int64 `json:"played"`
	Wishlist []int64 `json:"wishlist"`
}

// ListEntryPayload carries a list mutation request body.
type ListEntryPayload struct {
	SteamAppID int64 `json:"steamAppId"`
}

// FromLists maps the lists aggregate, keeping empty lists as [] on the wire.
func FromLists(lists domain.GameLists) ListsView {
	view := ListsView{Played: lists.Played, Wishlist: lists.Wishlist}
	if view.Played == nil {
		view.Played = []int64{}
	}
	if view.Wishlist == nil {
		view.Wishlist = []int64{}
	}
	return view
}
