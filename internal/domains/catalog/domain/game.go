package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PriceOverview captures the upstream price structure for a game. Final is
// in the currency's minor unit.
type PriceOverview struct {
	Currency       string
	Initial        int64
	Final          int64
	FinalFormatted string
}

// Game is the local catalog entry for an upstream Steam app. Rows are
// immutable once imported; uniqueness is enforced on SteamAppID.
type Game struct {
	ID            string
	SteamAppID    int64
	Name          string
	Description   string
	Image         string
	Genres        []string
	PlatformList  []string
	Price         *PriceOverview
	IsFree        bool
	AgeRestricted bool
}

var (
	ErrInvalidAppID = errors.New("steam app id must be positive")
	ErrEmptyName    = errors.New("game name is required")
)

// NewGame validates the invariants and builds a catalog entry. An empty name
// falls back to the placeholder "App <id>".
func NewGame(steamAppID int64, name string) (*Game, error) {
	if steamAppID <= 0 {
		return nil, ErrInvalidAppID
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("App %d", steamAppID)
	}
	return &Game{SteamAppID: steamAppID, Name: name}, nil
}

// Rename mutates the game name ensuring the invariant.
func (g *Game) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	g.Name = name
	return nil
}

// SetPlatforms stores the platform names with availability true, sorted input
// order preserved.
func (g *Game) SetPlatforms(available map[string]bool) {
	g.PlatformList = nil
	for _, p := range []string{"windows", "mac", "linux"} {
		if available[p] {
			g.PlatformList = append(g.PlatformList, p)
		}
	}
}
