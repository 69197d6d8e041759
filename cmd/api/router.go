package main

import (
	"context"
	"net/http"
	"time"

	"gamestore-backend/internal/domains/game/handler"
	"gamestore-backend/internal/shared/middleware"
	"gamestore-backend/internal/shared/response"
	"gamestore-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.RequestTiming(c.Metrics),
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: []string{c.Config.CORS.AllowedOrigin},
			ExposedHeaders: []string{handler.PaginationHeader, "Location", "X-Request-ID"},
		}),
		middleware.Authenticate(c.JWTManager),
	)

	if c.Config.Metrics.Enabled {
		router.GET(c.Config.Metrics.Path, gin.WrapH(c.Metrics.Handler()))
	}

	api := router.Group("/api")
	v1 := api.Group("/v1")
	v2 := api.Group("/v2")

	v1.GET("/health", healthCheckHandler(c))
	c.GameHandler.RegisterRoutes(v1, v2)
	// /api/games?api-version=2.0
	c.GameHandler.RegisterQueryVersionedRoutes(api)

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.GameService.Health(checkCtx); err != nil {
			log.Error().
				Err(err).
				Str("request_id", ctx.GetString(middleware.RequestIDKey)).
				Str("repository", c.Config.Store.Type).
				Msg("health check failed")
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "Service unavailable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":     "ok",
			"repository": c.Config.Store.Type,
			"version":    c.Config.App.Version,
		})
	}
}
