package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamefolio/gamefolio-api/internal/domains/social/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

var (
	_ ports.CommentRepository        = (*CommentRepository)(nil)
	_ ports.LikeRepository           = (*LikeRepository)(nil)
	_ ports.RecommendationRepository = (*RecommendationRepository)(nil)
	_ ports.ListRepository           = (*ListRepository)(nil)
)

var errNilDB = errors.New("social repository requires a gorm DB")

type commentRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;index"`
	GameID    string `gorm:"size:36;index"`
	Content   string `gorm:"type:text"`
	Rating    *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (commentRecord) TableName() string { return "comments" }

// CommentRepository persists comments through GORM.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	record := commentRecord{
		ID:      comment.ID,
		UserID:  comment.UserID,
		GameID:  comment.GameID,
		Content: comment.Content,
		Rating:  comment.Rating,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	comment.CreatedAt = record.CreatedAt
	return nil
}

func (r *CommentRepository) ListByGame(ctx context.Context, gameID string) ([]*domain.Comment, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	var records []commentRecord
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Comment, 0, len(records))
	for _, record := range records {
		out = append(out, &domain.Comment{
			ID:        record.ID,
			UserID:    record.UserID,
			GameID:    record.GameID,
			Content:   record.Content,
			Rating:    record.Rating,
			CreatedAt: record.CreatedAt,
		})
	}
	return out, nil
}

type likeRecord struct {
	SteamAppID int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID     string    `gorm:"primaryKey;size:36"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (likeRecord) TableName() string { return "game_likes" }

// LikeRepository persists per-app like sets through GORM.
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Toggle(ctx context.Context, steamAppID int64, userID string) (domain.LikeToggle, error) {
	if r == nil || r.db == nil {
		return domain.LikeToggle{}, errNilDB
	}
	action := domain.LikeRemoved
	res := r.db.WithContext(ctx).
		Where("steam_app_id = ? AND user_id = ?", steamAppID, userID).
		Delete(&likeRecord{})
	if res.Error != nil {
		return domain.LikeToggle{}, res.Error
	}
	if res.RowsAffected == 0 {
		record := likeRecord{SteamAppID: steamAppID, UserID: userID}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&record).Error
		if err != nil {
			return domain.LikeToggle{}, err
		}
		action = domain.LikeAdded
	}
	count, err := r.count(ctx, steamAppID)
	if err != nil {
		return domain.LikeToggle{}, err
	}
	return domain.LikeToggle{Action: action, Count: count}, nil
}

func (r *LikeRepository) Summary(ctx context.Context, steamAppID int64, userID string) (domain.LikeSummary, error) {
	if r == nil || r.db == nil {
		return domain.LikeSummary{}, errNilDB
	}
	count, err := r.count(ctx, steamAppID)
	if err != nil {
		return domain.LikeSummary{}, err
	}
	summary := domain.LikeSummary{Count: count}
	if userID != "" {
		var liked int64
		err := r.db.WithContext(ctx).Model(&likeRecord{}).
			Where("steam_app_id = ? AND user_id = ?", steamAppID, userID).
			Count(&liked).Error
		if err != nil {
			return domain.LikeSummary{}, err
		}
		summary.LikedByUser = liked > 0
	}
	return summary, nil
}

func (r *LikeRepository) count(ctx context.Context, steamAppID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&likeRecord{}).
		Where("steam_app_id = ?", steamAppID).
		Count(&count).Error
	return int(count), err
}

type recommendationRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	FromID    string `gorm:"size:36;index"`
	ToID      string `gorm:"size:36;index:idx_recommendations_to_game"`
	GameID    string `gorm:"size:36;index:idx_recommendations_to_game"`
	Reason    string `gorm:"type:text"`
	Status    string `gorm:"size:16"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (recommendationRecord) TableName() string { return "recommendations" }

// RecommendationRepository persists recommendations through GORM.
type RecommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	record := recommendationRecord{
		ID:     rec.ID,
		FromID: rec.FromID,
		ToID:   rec.ToID,
		GameID: rec.GameID,
		Reason: rec.Reason,
		Status: string(rec.Status),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}
	rec.CreatedAt = record.CreatedAt
	return nil
}

func (r *RecommendationRepository) ExistsForRecipient(ctx context.Context, toID, gameID string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNilDB
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&recommendationRecord{}).
		Where("to_id = ? AND game_id = ?", toID, gameID).
		Count(&count).Error
	return count > 0, err
}

func (r *RecommendationRepository) ListForRecipient(ctx context.Context, toID string) ([]*domain.Recommendation, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	var records []recommendationRecord
	err := r.db.WithContext(ctx).
		Where("to_id = ?", toID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Recommendation, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (r *RecommendationRepository) UpdateStatus(ctx context.Context, id string, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	res := r.db.WithContext(ctx).Model(&recommendationRecord{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	var record recommendationRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (record recommendationRecord) toDomain() *domain.Recommendation {
	return &domain.Recommendation{
		ID:        record.ID,
		FromID:    record.FromID,
		ToID:      record.ToID,
		GameID:    record.GameID,
		Reason:    record.Reason,
		Status:    domain.RecommendationStatus(record.Status),
		CreatedAt: record.CreatedAt,
	}
}

type listEntryRecord struct {
	UserID     string    `gorm:"primaryKey;size:36"`
	Kind       string    `gorm:"primaryKey;size:16"`
	SteamAppID int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (listEntryRecord) TableName() string { return "user_game_list_entries" }

// ListRepository persists per-user game lists through GORM.
type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Get(ctx context.Context, userID string) (domain.GameLists, error) {
	if r == nil || r.db == nil {
		return domain.GameLists{}, errNilDB
	}
	var records []listEntryRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return domain.GameLists{}, err
	}
	var lists domain.GameLists
	for _, record := range records {
		if record.Kind == string(domain.ListWishlist) {
			lists.Wishlist = append(lists.Wishlist, record.SteamAppID)
		} else {
			lists.Played = append(lists.Played, record.SteamAppID)
		}
	}
	return lists, nil
}

func (r *ListRepository) Add(ctx context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	record := listEntryRecord{UserID: userID, Kind: string(kind), SteamAppID: steamAppID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrDuplicate
	}
	return nil
}

func (r *ListRepository) Remove(ctx context.Context, userID string, kind domain.ListKind, steamAppID int64) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND steam_app_id = ?", userID, string(kind), steamAppID).
		Delete(&listEntryRecord{}).Error
}
