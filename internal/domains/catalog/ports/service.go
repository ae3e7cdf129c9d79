package ports

import (
	"context"
	"encoding/json"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
)

// ImportReport summarizes one catalog import run.
type ImportReport struct {
	Imported int   `json:"imported"`
	Pages    int   `json:"pages"`
	LastID   int64 `json:"last_appid"`
	CapHit   bool  `json:"cap_hit"`
}

// Service exposes the catalog use cases to transport and orchestration.
type Service interface {
	// ListCatalog returns all known entries, importing from upstream first
	// when the store is empty.
	ListCatalog(ctx context.Context) ([]*domain.Game, error)
	// RunImport walks the upstream catalog until exhaustion or the soft cap.
	RunImport(ctx context.Context) (ImportReport, error)
	// BatchDetails resolves details for each id independently; a failed or
	// absent id maps to nil without affecting its siblings.
	BatchDetails(ctx context.Context, appIDs []int64) map[int64]*steam.AppDetail
	// Ensure materializes a local row for the app id, returning (nil, nil)
	// when the upstream has no record either.
	Ensure(ctx context.Context, steamAppID int64) (*domain.Game, error)
	// GetBySteamID returns the local row together with a best-effort live
	// detail record; detail failures are swallowed.
	GetBySteamID(ctx context.Context, steamAppID int64) (*domain.Game, *steam.AppDetail, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	Featured(ctx context.Context) (json.RawMessage, error)
	Search(ctx context.Context, term string) (json.RawMessage, error)
	UpToDate(ctx context.Context, appID int64, version string) (json.RawMessage, error)
}

// ImportOrchestrator abstracts how an import run is executed (inline or as a
// durable workflow).
type ImportOrchestrator interface {
	RunImport(ctx context.Context) (ImportReport, error)
}
