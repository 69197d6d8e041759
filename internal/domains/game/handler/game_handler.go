package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/internal/domains/game/service"
	"gamestore-backend/internal/shared/middleware"
	"gamestore-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PaginationHeader carries service.PaginationMeta as JSON
const PaginationHeader = "X-Pagination"

// APIVersionQuery chọn version cho các route không có /v{n} trong path
const (
	APIVersionQuery   = "api-version"
	DefaultAPIVersion = "1.0"
)

// GameHandler - thin HTTP layer, mọi quyết định nằm trong service.Dispatch
type GameHandler struct {
	service service.ServiceInterface
}

// NewGameHandler creates a new game handler instance
func NewGameHandler(service service.ServiceInterface) *GameHandler {
	return &GameHandler{service: service}
}

// GameLocation - URL của game vừa tạo; luôn trỏ về v1
func GameLocation(id int) string {
	return fmt.Sprintf("/api/v1/games/%d", id)
}

// ListGames - GET /api/v{n}/games
// Query params: pageNumber, pageSize, filter (genre)
func (h *GameHandler) ListGames(version model.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, err := model.ParseListGamesQuery(
			c.Query("pageNumber"),
			c.Query("pageSize"),
			c.Query("filter"),
		)
		if err != nil {
			writeError(c, err)
			return
		}

		h.dispatch(c, service.Request{
			Operation: service.OpList,
			Version:   version,
			Principal: middleware.GetPrincipal(c),
			Query:     query,
		})
	}
}

// GetGame - GET /api/v{n}/games/:id
func (h *GameHandler) GetGame(version model.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, service.Request{
			Operation: service.OpGet,
			Version:   version,
			Principal: middleware.GetPrincipal(c),
			ID:        pathID(c),
		})
	}
}

// CreateGame - POST /api/v1/games
func (h *GameHandler) CreateGame(version model.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}

		h.dispatch(c, service.Request{
			Operation: service.OpCreate,
			Version:   version,
			Principal: middleware.GetPrincipal(c),
			Body:      body,
		})
	}
}

// UpdateGame - PUT /api/v1/games/:id
func (h *GameHandler) UpdateGame(version model.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}

		h.dispatch(c, service.Request{
			Operation: service.OpUpdate,
			Version:   version,
			Principal: middleware.GetPrincipal(c),
			ID:        pathID(c),
			Body:      body,
		})
	}
}

// DeleteGame - DELETE /api/v1/games/:id
func (h *GameHandler) DeleteGame(version model.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.dispatch(c, service.Request{
			Operation: service.OpDelete,
			Version:   version,
			Principal: middleware.GetPrincipal(c),
			ID:        pathID(c),
		})
	}
}

// byQueryVersion builds one handler per supported version and picks it from ?api-version
func byQueryVersion(build func(model.Version) gin.HandlerFunc, supported ...model.Version) gin.HandlerFunc {
	handlers := make(map[model.Version]gin.HandlerFunc, len(supported))
	for _, v := range supported {
		handlers[v] = build(v)
	}

	return func(c *gin.Context) {
		raw := c.DefaultQuery(APIVersionQuery, DefaultAPIVersion)
		version, ok := model.ParseVersion(raw)
		h, found := handlers[version]
		if !ok || !found {
			writeError(c, model.NewFieldError(APIVersionQuery, fmt.Sprintf("unsupported api version %q", raw)))
			return
		}
		h(c)
	}
}

func (h *GameHandler) dispatch(c *gin.Context, req service.Request) {
	outcome, err := h.service.Dispatch(c.Request.Context(), req)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("operation", string(req.Operation)).
			Str("version", req.Version.String()).
			Msg("game request failed")
		response.InternalServerError(c, "Internal server error")
		return
	}
	writeOutcome(c, outcome)
}

func writeOutcome(c *gin.Context, outcome service.Outcome) {
	if outcome.Pagination != nil {
		if raw, err := json.Marshal(outcome.Pagination); err == nil {
			c.Header(PaginationHeader, string(raw))
		}
	}

	switch outcome.Status {
	case service.StatusOK:
		response.Success(c, http.StatusOK, outcome.Body)
	case service.StatusCreated:
		c.Header("Location", GameLocation(outcome.LocationID))
		response.Success(c, http.StatusCreated, outcome.Body)
	case service.StatusNoContent:
		c.Status(http.StatusNoContent)
	default:
		writeError(c, outcome.Err)
	}
}

func writeError(c *gin.Context, err error) {
	m := model.MapErrorToHTTP(err)
	response.ErrorWithDetails(c, m.StatusCode, m.Code, m.Message, m.Details)
}

// pathID returns 0 for a non-numeric id; the dispatcher rejects it after the authorization gate
func pathID(c *gin.Context) int {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0
	}
	return id
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "could not read request body")
		return nil, false
	}
	return body, true
}
