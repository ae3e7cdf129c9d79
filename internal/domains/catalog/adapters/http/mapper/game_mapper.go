package mapper

import (
	"strconv"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	"github.com/gamefolio/gamefolio-api/internal/domains/catalog/domain"
)

// GameView is the wire representation of a catalog entry.
type GameView struct {
	ID            string     `json:"id"`
	SteamAppID    int64      `json:"steamAppId"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Image         string     `json:"image,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
	PriceOverview *PriceView `json:"priceOverview,omitempty"`
	IsFree        bool       `json:"isFree"`
	AgeRestricted bool       `json:"ageRestricted"`
}

// PriceView mirrors the storefront price overview. Amounts are in cents.
type PriceView struct {
	Currency       string `json:"currency"`
	Initial        int64  `json:"initial"`
	Final          int64  `json:"final"`
	FinalFormatted string `json:"final_formatted,omitempty"`
}

// FromGame maps a catalog aggregate to its wire representation.
func FromGame(game *domain.Game) *GameView {
	if game == nil {
		return nil
	}
	view := &GameView{
		ID:            game.ID,
		SteamAppID:    game.SteamAppID,
		Name:          game.Name,
		Description:   game.Description,
		Image:         game.Image,
		Genres:        game.Genres,
		Platforms:     game.PlatformList,
		IsFree:        game.IsFree,
		AgeRestricted: game.AgeRestricted,
	}
	if game.Price != nil {
		view.PriceOverview = &PriceView{
			Currency:       game.Price.Currency,
			Initial:        game.Price.Initial,
			Final:          game.Price.Final,
			FinalFormatted: game.Price.FinalFormatted,
		}
	}
	return view
}

// FromGameList maps a slice of catalog aggregates.
func FromGameList(games []*domain.Game) []*GameView {
	out := make([]*GameView, 0, len(games))
	for _, game := range games {
		out = append(out, FromGame(game))
	}
	return out
}

// AppListView wraps the catalog listing in the upstream envelope shape.
type AppListView struct {
	AppList AppListBody `json:"applist"`
}

type AppListBody struct {
	Apps []*GameView `json:"apps"`
}

// FromCatalog wraps the listing the way the storefront app list does.
func FromCatalog(games []*domain.Game) AppListView {
	return AppListView{AppList: AppListBody{Apps: FromGameList(games)}}
}

// FromDetailBatch keys detail payloads by their decimal app id. Absent apps
// map to explicit nulls.
func FromDetailBatch(details map[int64]*steam.AppDetail) map[string]*steam.AppDetail {
	out := make(map[string]*steam.AppDetail, len(details))
	for appID, detail := range details {
		out[strconv.FormatInt(appID, 10)] = detail
	}
	return out
}
