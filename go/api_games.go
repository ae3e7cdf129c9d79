package gamefolioserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

// GamesAPI wires HTTP transport with the catalog lookup use cases.
type GamesAPI struct {
	service catalogports.Service
}

// NewGamesAPI creates a GamesAPI backed by the provided service.
func NewGamesAPI(service catalogports.Service) GamesAPI {
	return GamesAPI{service: service}
}

type fetchGamePayload struct {
	SteamAppID int64 `json:"steamAppId"`
}

// Post /games/fetch
// Ensures a local row exists for the app id, importing it on demand
func (api *GamesAPI) FetchGame(c *gin.Context) {
	var payload fetchGamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.SteamAppID <= 0 {
		respondError(c, http.StatusBadRequest, errors.New("steamAppId required"))
		return
	}
	game, err := api.service.Ensure(c.Request.Context(), payload.SteamAppID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	if game == nil {
		respondError(c, http.StatusNotFound, errors.New("Steam app not found"))
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromGame(game))
}

// Get /games/steam/:steamAppId
// Returns the local row merged with a best-effort live detail
func (api *GamesAPI) GetGameBySteamId(c *gin.Context) {
	appID, ok := parseAppIDParam(c)
	if !ok {
		return
	}
	game, detail, err := api.service.GetBySteamID(c.Request.Context(), appID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game":   catalogmapper.FromGame(game),
		"detail": detail,
	})
}

func parseAppIDParam(c *gin.Context) (int64, bool) {
	value := c.Param("steamAppId")
	appID, err := strconv.ParseInt(value, 10, 64)
	if err != nil || appID <= 0 {
		respondError(c, http.StatusBadRequest, errors.New("invalid steamAppId"))
		return 0, false
	}
	return appID, true
}
