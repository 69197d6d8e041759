package handler

import (
	"gamestore-backend/internal/domains/game/model"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /games on both version groups; writes exist on v1 only
func (h *GameHandler) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	games := v1.Group("/games")
	{
		games.GET("", h.ListGames(model.V1))
		games.GET("/:id", h.GetGame(model.V1))
		games.POST("", h.CreateGame(model.V1))
		games.PUT("/:id", h.UpdateGame(model.V1))
		games.DELETE("/:id", h.DeleteGame(model.V1))
	}

	gamesV2 := v2.Group("/games")
	{
		gamesV2.GET("", h.ListGames(model.V2))
		gamesV2.GET("/:id", h.GetGame(model.V2))
	}
}

// RegisterQueryVersionedRoutes mounts /games on api, resolving the version from the
// api-version query parameter (default 1.0). Writes accept only 1.0.
func (h *GameHandler) RegisterQueryVersionedRoutes(api *gin.RouterGroup) {
	games := api.Group("/games")
	{
		games.GET("", byQueryVersion(h.ListGames, model.V1, model.V2))
		games.GET("/:id", byQueryVersion(h.GetGame, model.V1, model.V2))
		games.POST("", byQueryVersion(h.CreateGame, model.V1))
		games.PUT("/:id", byQueryVersion(h.UpdateGame, model.V1))
		games.DELETE("/:id", byQueryVersion(h.DeleteGame, model.V1))
	}
}
