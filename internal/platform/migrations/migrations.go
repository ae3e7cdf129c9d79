package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&gameRecord{},
		&commentRecord{},
		&likeRecord{},
		&recommendationRecord{},
		&listEntryRecord{},
	)
}

type priceOverview struct {
	Currency       string `json:"currency"`
	Initial        int64  `json:"initial"`
	Final          int64  `json:"final"`
	FinalFormatted string `json:"final_formatted"`
}

// Game schema mirrors the catalog Postgres adapter.
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

// Comment schema mirrors the social Postgres adapter.
type commentRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;index"`
	GameID    string    `gorm:"size:36;index"`
	Content   string    `gorm:"type:text"`
	Rating    *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (commentRecord) TableName() string { return "comments" }

// Like schema keys on app id and user id.
type likeRecord struct {
	SteamAppID int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID     string    `gorm:"primaryKey;size:36"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (likeRecord) TableName() string { return "game_likes" }

// Recommendation schema mirrors the social Postgres adapter.
type recommendationRecord struct {
	ID        string    `gorm:"primaryKey;size:36"`
	FromID    string    `gorm:"size:36;index"`
	ToID      string    `gorm:"size:36;index:idx_recommendations_to_game"`
	GameID    string    `gorm:"size:36;index:idx_recommendations_to_game"`
	Reason    string    `gorm:"type:text"`
	Status    string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (recommendationRecord) TableName() string { return "recommendations" }

// List entry schema keys on user, list kind, and app id.
type listEntryRecord struct {
	UserID     string    `gorm:"primaryKey;size:36"`
	Kind       string    `gorm:"primaryKey;size:16"`
	SteamAppID int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (listEntryRecord) TableName() string { return "user_game_list_entries" }
