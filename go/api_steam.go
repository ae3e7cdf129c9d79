package gamefolioserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	catalogmapper "github.com/gamefolio/gamefolio-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/gamefolio/gamefolio-api/internal/domains/catalog/application"
	catalogports "github.com/gamefolio/gamefolio-api/internal/domains/catalog/ports"
)

// SteamAPI wires HTTP transport with the catalog bounded context service and
// the durable import orchestrator.
type SteamAPI struct {
	service catalogports.Service
	imports catalogports.ImportOrchestrator
}

// NewSteamAPI creates a SteamAPI backed by the provided service.
func NewSteamAPI(service catalogports.Service, imports catalogports.ImportOrchestrator) SteamAPI {
	return SteamAPI{service: service, imports: imports}
}

// Get /steam/apps
// Lists the catalog, importing from the upstream app list when empty
func (api *SteamAPI) GetApps(c *gin.Context) {
	result, err := api.service.ListCatalog(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromCatalog(result))
}

// Get /steam/appdetails
// Resolves storefront details for a comma-separated list of app ids
func (api *SteamAPI) GetAppDetails(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("appids"))
	if raw == "" {
		respondError(c, http.StatusBadRequest, errors.New("appids query required"))
		return
	}
	out := map[string]*steam.AppDetail{}
	var appIDs []int64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		appID, err := strconv.ParseInt(token, 10, 64)
		if err != nil || appID <= 0 {
			out[token] = nil
			continue
		}
		appIDs = append(appIDs, appID)
	}
	details := api.service.BatchDetails(c.Request.Context(), appIDs)
	for key, detail := range catalogmapper.FromDetailBatch(details) {
		out[key] = detail
	}
	c.JSON(http.StatusOK, out)
}

// Get /steam/featuredcategories
// Proxies the storefront featured categories with a short-lived cache
func (api *SteamAPI) GetFeaturedCategories(c *gin.Context) {
	payload, err := api.service.Featured(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Get /steam/search
// Proxies the storefront search
func (api *SteamAPI) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"total": 0, "items": []any{}})
		return
	}
	payload, err := api.service.Search(c.Request.Context(), term)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Get /steam/uptodate
// Proxies the build-version freshness check
func (api *SteamAPI) UpToDateCheck(c *gin.Context) {
	rawAppID := strings.TrimSpace(c.Query("appid"))
	version := strings.TrimSpace(c.Query("version"))
	if rawAppID == "" || version == "" {
		respondError(c, http.StatusBadRequest, errors.New("appid and version query parameters are required"))
		return
	}
	appID, err := strconv.ParseInt(rawAppID, 10, 64)
	if err != nil || appID <= 0 {
		respondError(c, http.StatusBadRequest, errors.New("invalid appid"))
		return
	}
	payload, err := api.service.UpToDate(c.Request.Context(), appID, version)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Post /steam/import
// Runs a paginated catalog import and reports the outcome
func (api *SteamAPI) ImportCatalog(c *gin.Context) {
	report, err := api.imports.RunImport(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func respondCatalogError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, steam.ErrUpstreamUnavailable), errors.Is(err, steam.ErrUpstreamMalformed):
		respondError(c, http.StatusBadGateway, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
