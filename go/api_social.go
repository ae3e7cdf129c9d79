package gamefolioserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamefolio/gamefolio-api/internal/clients/http/steam"
	socialmapper "github.com/gamefolio/gamefolio-api/internal/domains/social/adapters/http/mapper"
	socialapp "github.com/gamefolio/gamefolio-api/internal/domains/social/application"
	socialports "github.com/gamefolio/gamefolio-api/internal/domains/social/ports"
)

// userIDHeader carries the caller identity established by the edge proxy.
const userIDHeader = "X-User-ID"

// SocialAPI wires HTTP transport with the social bounded context service.
type SocialAPI struct {
	service socialports.Service
}

// NewSocialAPI creates a SocialAPI backed by the provided service.
func NewSocialAPI(service socialports.Service) SocialAPI {
	return SocialAPI{service: service}
}

// Get /games/steam/:steamAppId/comments
// Lists comments for a game, newest first
func (api *SocialAPI) GetComments(c *gin.Context) {
	appID, ok := parseAppIDParam(c)
	if !ok {
		return
	}
	comments, err := api.service.ListComments(c.Request.Context(), appID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromCommentList(comments))
}

// Post /games/steam/:steamAppId/comments
// Adds a comment, materializing the game on demand
func (api *SocialAPI) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	appID, ok := parseAppIDParam(c)
	if !ok {
		return
	}
	var payload socialmapper.CommentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	comment, err := api.service.AddComment(c.Request.Context(), userID, appID, payload.Content, payload.Rating)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, socialmapper.FromComment(comment))
}

// Get /games/steam/:steamAppId/likes
// Reports the like count and whether the caller likes the game
func (api *SocialAPI) GetLikes(c *gin.Context) {
	appID, ok := parseAppIDParam(c)
	if !ok {
		return
	}
	summary, err := api.service.LikeSummary(c.Request.Context(), appID, currentUserID(c))
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromLikeSummary(summary))
}

// Post /games/steam/:steamAppId/likes
// Toggles the caller's like on the game
func (api *SocialAPI) ToggleLike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	appID, ok := parseAppIDParam(c)
	if !ok {
		return
	}
	toggle, err := api.service.ToggleLike(c.Request.Context(), appID, userID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromLikeToggle(toggle))
}

// Post /recommendations
// Sends a game recommendation to another user
func (api *SocialAPI) CreateRecommendation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var payload socialmapper.RecommendPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rec, err := api.service.Recommend(c.Request.Context(), socialports.RecommendInput{
		FromID:     userID,
		ToID:       payload.ToID,
		SteamAppID: payload.SteamAppID,
		Reason:     payload.Reason,
	})
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, socialmapper.FromRecommendation(rec))
}

// Get /users/:userId/recommendations
// Lists recommendations sent to the user, newest first
func (api *SocialAPI) GetUserRecommendations(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, errors.New("userId required"))
		return
	}
	recs, err := api.service.RecommendationsFor(c.Request.Context(), userID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromRecommendationList(recs))
}

// Patch /recommendations/:recommendationId
// Moves a recommendation to a new status
func (api *SocialAPI) UpdateRecommendation(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id := strings.TrimSpace(c.Param("recommendationId"))
	var payload socialmapper.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rec, err := api.service.UpdateRecommendationStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromRecommendation(rec))
}

// Get /me/games
// Returns the caller's played and wishlist entries
func (api *SocialAPI) GetMyGames(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lists, err := api.service.Lists(c.Request.Context(), userID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, socialmapper.FromLists(lists))
}

// Post /me/games/played
// Marks a game as played, removing it from the wishlist
func (api *SocialAPI) MarkPlayed(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var payload socialmapper.ListEntryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	lists, err := api.service.MarkPlayed(c.Request.Context(), userID, payload.SteamAppID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, socialmapper.FromLists(lists))
}

// Post /me/games/wishlist
// Adds a game to the caller's wishlist
func (api *SocialAPI) AddToWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var payload socialmapper.ListEntryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	lists, err := api.service.AddToWishlist(c.Request.Context(), userID, payload.SteamAppID)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, socialmapper.FromLists(lists))
}

func currentUserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(userIDHeader))
}

func requireUser(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, errors.New("missing "+userIDHeader+" header"))
		return "", false
	}
	return userID, true
}

func respondSocialError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, socialapp.ErrGameNotFound), errors.Is(err, socialports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, socialapp.ErrConflict):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, socialapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, steam.ErrUpstreamUnavailable), errors.Is(err, steam.ErrUpstreamMalformed):
		respondError(c, http.StatusBadGateway, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
