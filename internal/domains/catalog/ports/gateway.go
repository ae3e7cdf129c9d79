package ports

import (
	"context"
	"encoding/json"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
)

// SteamGateway is the outbound port to the upstream catalog and detail APIs.
// The steam client package owns the normalized shapes; nothing rawer than
// steam.AppDetail crosses this boundary.
type SteamGateway interface {
	ListApps(ctx context.Context, lastAppID int64, maxResults int) (steam.AppPage, error)
	// AppDetails returns (nil, nil) when the upstream has no record.
	AppDetails(ctx context.Context, appID int64) (*steam.AppDetail, error)
	FeaturedCategories(ctx context.Context) (json.RawMessage, error)
	Search(ctx context.Context, term string) (json.RawMessage, error)
	UpToDateCheck(ctx context.Context, appID int64, version string) (json.RawMessage, error)
}
