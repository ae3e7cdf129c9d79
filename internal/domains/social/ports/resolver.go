package ports

import "context"

// GameRef is the catalog projection social flows need.
type GameRef struct {
	ID         string
	SteamAppID int64
	Name       string
}

// GameResolver bridges social flows to the catalog bounded context.
type GameResolver interface {
	// Find looks up a locally known entry. (nil, nil) when absent.
	Find(ctx context.Context, steamAppID int64) (*GameRef, error)
	// Ensure materializes the entry from upstream when missing.
	// (nil, nil) when the app id is unknown upstream.
	Ensure(ctx context.Context, steamAppID int64) (*GameRef, error)
}
