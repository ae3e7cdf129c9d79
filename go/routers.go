package gamefolioserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated Route.
type Routes []Route

// ApiHandleFunctions groups the handlers for every API group.
type ApiHandleFunctions struct {
	SteamAPI  SteamAPI
	GamesAPI  GamesAPI
	SocialAPI SocialAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc returns a 501 for routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"GetSteamApps",
			http.MethodGet,
			"/steam/apps",
			handleFunctions.SteamAPI.GetApps,
		},
		{
			"GetSteamAppDetails",
			http.MethodGet,
			"/steam/appdetails",
			handleFunctions.SteamAPI.GetAppDetails,
		},
		{
			"GetFeaturedCategories",
			http.MethodGet,
			"/steam/featuredcategories",
			handleFunctions.SteamAPI.GetFeaturedCategories,
		},
		{
			"SearchStore",
			http.MethodGet,
			"/steam/search",
			handleFunctions.SteamAPI.Search,
		},
		{
			"UpToDateCheck",
			http.MethodGet,
			"/steam/uptodate",
			handleFunctions.SteamAPI.UpToDateCheck,
		},
		{
			"ImportCatalog",
			http.MethodPost,
			"/steam/import",
			handleFunctions.SteamAPI.ImportCatalog,
		},
		{
			"FetchGame",
			http.MethodPost,
			"/games/fetch",
			handleFunctions.GamesAPI.FetchGame,
		},
		{
			"GetGameBySteamId",
			http.MethodGet,
			"/games/steam/:steamAppId",
			handleFunctions.GamesAPI.GetGameBySteamId,
		},
		{
			"GetGameComments",
			http.MethodGet,
			"/games/steam/:steamAppId/comments",
			handleFunctions.SocialAPI.GetComments,
		},
		{
			"AddGameComment",
			http.MethodPost,
			"/games/steam/:steamAppId/comments",
			handleFunctions.SocialAPI.AddComment,
		},
		{
			"GetGameLikes",
			http.MethodGet,
			"/games/steam/:steamAppId/likes",
			handleFunctions.SocialAPI.GetLikes,
		},
		{
			"ToggleGameLike",
			http.MethodPost,
			"/games/steam/:steamAppId/likes",
			handleFunctions.SocialAPI.ToggleLike,
		},
		{
			"CreateRecommendation",
			http.MethodPost,
			"/recommendations",
			handleFunctions.SocialAPI.CreateRecommendation,
		},
		{
			"GetUserRecommendations",
			http.MethodGet,
			"/users/:userId/recommendations",
			handleFunctions.SocialAPI.GetUserRecommendations,
		},
		{
			"UpdateRecommendation",
			http.MethodPatch,
			"/recommendations/:recommendationId",
			handleFunctions.SocialAPI.UpdateRecommendation,
		},
		{
			"GetMyGames",
			http.MethodGet,
			"/me/games",
			handleFunctions.SocialAPI.GetMyGames,
		},
		{
			"MarkGamePlayed",
			http.MethodPost,
			"/me/games/played",
			handleFunctions.SocialAPI.MarkPlayed,
		},
		{
			"AddGameToWishlist",
			http.MethodPost,
			"/me/games/wishlist",
			handleFunctions.SocialAPI.AddToWishlist,
		},
	}
}
