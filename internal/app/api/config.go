package api

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	SteamAPIKey string `env:"STEAM_API_KEY"`

	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH"`

	ImportPageSize   int           `env:"CATALOG_IMPORT_PAGE_SIZE" envDefault:"30"`
	ImportSoftCap    int           `env:"CATALOG_IMPORT_CAP" envDefault:"100"`
	DetailCacheTTL   time.Duration `env:"DETAIL_CACHE_TTL" envDefault:"1h"`
	FeaturedCacheTTL time.Duration `env:"FEATURED_CACHE_TTL" envDefault:"5m"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.ImportPageSize <= 0 {
		return Config{}, fmt.Errorf("CATALOG_IMPORT_PAGE_SIZE must be a positive integer")
	}
	if cfg.ImportSoftCap <= 0 {
		return Config{}, fmt.Errorf("CATALOG_IMPORT_CAP must be a positive integer")
	}
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	return cfg, nil
}
