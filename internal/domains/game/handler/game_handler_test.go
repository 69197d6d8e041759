package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/internal/domains/game/repository"
	"gamestore-backend/internal/domains/game/service"
	"gamestore-backend/internal/shared/middleware"
	"gamestore-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router *gin.Engine
	repo   repository.RepositoryInterface
	tokens *jwt.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository(model.SeedGames()...)
	tokens := jwt.NewManager(testSecret, "", "")

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Authenticate(tokens))
	h := NewGameHandler(service.NewDispatcher(repo))
	api := router.Group("/api")
	h.RegisterRoutes(api.Group("/v1"), api.Group("/v2"))
	h.RegisterQueryVersionedRoutes(api)

	return &testServer{router: router, repo: repo, tokens: tokens}
}

func (s *testServer) token(t *testing.T, scopes ...string) string {
	t.Helper()
	tok, err := s.tokens.GenerateToken("tester", scopes, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

const createBody = `{
	"name": "Hades",
	"genre": "Roguelike",
	"price": 24.99,
	"releaseDate": "2020-09-17T00:00:00Z",
	"imageUri": "https://placehold.co/100"
}`

func TestListGames_PaginationHeader(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/games?pageNumber=2&pageSize=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var meta service.PaginationMeta
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get(PaginationHeader)), &meta))
	assert.Equal(t, service.PaginationMeta{TotalCount: 3, PageSize: 2, TotalPages: 2}, meta)

	var games []model.GameV1
	require.NoError(t, json.Unmarshal(env.Data, &games))
	require.Len(t, games, 1)
	assert.Equal(t, 3, games[0].ID)
}

func TestListGames_Filter(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v2/games?filter=Roleplaying", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get(PaginationHeader), `"totalCount":1`)

	var games []model.GameV2
	require.NoError(t, json.Unmarshal(env.Data, &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Final Fantasy XIV", games[0].Name)
}

func TestListGames_BadQuery(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{"pageSize=101", "pageNumber=0", "pageNumber=abc"} {
		w, env := s.do(t, http.MethodGet, "/api/v1/games?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		require.NotNil(t, env.Error, q)
		assert.Equal(t, model.CodeValidationFailed, env.Error.Code)
	}
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t)
	reader := s.token(t, model.CapabilityRead)

	w, _ := s.do(t, http.MethodGet, "/api/v1/games/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/games/1", reader, "")
	require.Equal(t, http.StatusOK, w.Code)
	var game model.GameV1
	require.NoError(t, json.Unmarshal(env.Data, &game))
	assert.Equal(t, "Yakuza 0", game.Name)

	w, env = s.do(t, http.MethodGet, "/api/v2/games/404", reader, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.CodeGameNotFound, env.Error.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/games/abc", reader, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/games", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/v1/games", s.token(t, model.CapabilityRead), createBody)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, model.CodeForbidden, env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/games", s.token(t, model.CapabilityWrite), createBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/games/4", w.Header().Get("Location"))

	var created model.GameV1
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, "Hades", created.Name)
}

func TestCreateGame_ValidationDetails(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"","genre":"Action","price":200,"releaseDate":"2020-01-01T00:00:00Z","imageUri":"cover.png"}`

	w, env := s.do(t, http.MethodPost, "/api/v1/games", s.token(t, model.CapabilityWrite), body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "name")
	assert.Contains(t, env.Error.Details, "price")
	assert.Contains(t, env.Error.Details, "imageUri")
	assert.NotContains(t, env.Error.Details, "genre")

	total, err := s.repo.Count(context.Background(), model.GameFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestUpdateGame(t *testing.T) {
	s := newTestServer(t)
	writer := s.token(t, model.CapabilityRead, model.CapabilityWrite)

	w, _ := s.do(t, http.MethodPut, "/api/v1/games/2", writer, createBody)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w, env := s.do(t, http.MethodGet, "/api/v1/games/2", writer, "")
	require.Equal(t, http.StatusOK, w.Code)
	var game model.GameV1
	require.NoError(t, json.Unmarshal(env.Data, &game))
	assert.Equal(t, "Hades", game.Name)

	w, _ = s.do(t, http.MethodPut, "/api/v1/games/77", writer, createBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer(t)
	writer := s.token(t, model.CapabilityWrite)

	w, _ := s.do(t, http.MethodDelete, "/api/v1/games/3", writer, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/games/3", writer, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/games/3", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestV2HasNoWriteRoutes(t *testing.T) {
	s := newTestServer(t)
	writer := s.token(t, model.CapabilityWrite)

	w, _ := s.do(t, http.MethodPost, "/api/v2/games", writer, createBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/games", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, model.CodeUnauthenticated, env.Error.Code)
}

func TestQueryVersion_Writes(t *testing.T) {
	s := newTestServer(t)
	writer := s.token(t, model.CapabilityWrite)

	w, env := s.do(t, http.MethodPost, "/api/games?api-version=2.0", writer, createBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, APIVersionQuery)

	w, _ = s.do(t, http.MethodPost, "/api/games", writer, createBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/games/4", w.Header().Get("Location"))

	w, _ = s.do(t, http.MethodPost, "/api/games?api-version=1.0", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQueryVersion_Reads(t *testing.T) {
	s := newTestServer(t)
	reader := s.token(t, model.CapabilityRead)

	for _, q := range []string{"", "?api-version=1.0", "?api-version=2.0"} {
		w, env := s.do(t, http.MethodGet, "/api/games/2"+q, reader, "")
		require.Equal(t, http.StatusOK, w.Code, q)

		var g model.GameV2
		require.NoError(t, json.Unmarshal(env.Data, &g), q)
		assert.Equal(t, 2, g.ID, q)
	}

	w, _ := s.do(t, http.MethodGet, "/api/games?api-version=9.9", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
