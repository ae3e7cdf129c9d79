// Package postgres persists catalog entries using GORM.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists games in a relational store. Caller manages the DB
// lifecycle.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type priceOverview struct {
	Currency       string `json:"currency"`
	Initial        int64  `json:"initial"`
	Final          int64  `json:"final"`
	FinalFormatted string `json:"final_formatted"`
}

type gameRecord struct {
	ID            string         `gorm:"primaryKey;column:id;size:36"`
	SteamAppID    int64          `gorm:"column:steam_app_id;uniqueIndex"`
	Name          string         `gorm:"column:name"`
	Description   string         `gorm:"column:description"`
	Image         string         `gorm:"column:image"`
	Genres        pq.StringArray `gorm:"column:genres;type:text[]"`
	Platforms     pq.StringArray `gorm:"column:platforms;type:text[]"`
	Price         *priceOverview `gorm:"column:price_overview;serializer:json"`
	IsFree        bool           `gorm:"column:is_free"`
	AgeRestricted bool           `gorm:"column:age_restricted"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
}

func (gameRecord) TableName() string { return "games" }

// FindByAppID fetches a game by its Steam app id.
func (r *Repository) FindByAppID(ctx context.Context, steamAppID int64) (*domain.Game, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record gameRecord
	if err := r.db.WithContext(ctx).First(&record, "steam_app_id = ?", steamAppID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByID fetches a game by its local identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record gameRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindAll returns every stored game.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Game, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []gameRecord
	if err := r.db.WithContext(ctx).Order("steam_app_id").Find(&records).Error; err != nil {
		return nil, err
	}
	games := make([]*domain.Game, 0, len(records))
	for i := range records {
		games = append(games, records[i].toDomain())
	}
	return games, nil
}

// Count reports the number of stored games.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&gameRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the game with skip-on-conflict semantics and returns the
// row that won, so concurrent ensure calls converge on one entry.
func (r *Repository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if game == nil {
		return nil, errors.New("game is nil")
	}
	record := toRecord(game)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "steam_app_id"}},
			DoNothing: true,
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindByAppID(ctx, game.SteamAppID)
}

// UpsertMany bulk-inserts entries keyed on steam_app_id, leaving existing
// rows untouched. Returns the number of rows actually inserted.
func (r *Repository) UpsertMany(ctx context.Context, entries []domain.Game) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	records := make([]gameRecord, 0, len(entries))
	for i := range entries {
		record := toRecord(&entries[i])
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		records = append(records, record)
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "steam_app_id"}},
			DoNothing: true,
		}).
		Create(&records)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("catalog repository not configured")
	}
	return nil
}

func toRecord(game *domain.Game) gameRecord {
	record := gameRecord{
		ID:            game.ID,
		SteamAppID:    game.SteamAppID,
		Name:          game.Name,
		Description:   game.Description,
		Image:         game.Image,
		Genres:        append(pq.StringArray{}, game.Genres...),
		Platforms:     append(pq.StringArray{}, game.PlatformList...),
		IsFree:        game.IsFree,
		AgeRestricted: game.AgeRestricted,
	}
	if game.Price != nil {
		record.Price = &priceOverview{
			Currency:       game.Price.Currency,
			Initial:        game.Price.Initial,
			Final:          game.Price.Final,
			FinalFormatted: game.Price.FinalFormatted,
		}
	}
	return record
}

func (r gameRecord) toDomain() *domain.Game {
	game := &domain.Game{
		ID:            r.ID,
		SteamAppID:    r.SteamAppID,
		Name:          r.Name,
		Description:   r.Description,
		Image:         r.Image,
		Genres:        append([]string{}, r.Genres...),
		PlatformList:  append([]string{}, r.Platforms...),
		IsFree:        r.IsFree,
		AgeRestricted: r.AgeRestricted,
	}
	if r.Price != nil {
		game.Price = &domain.PriceOverview{
			Currency:       r.Price.Currency,
			Initial:        r.Price.Initial,
			Final:          r.Price.Final,
			FinalFormatted: r.Price.FinalFormatted,
		}
	}
	return game
}
