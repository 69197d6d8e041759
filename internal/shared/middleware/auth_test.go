package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalRouter(manager *jwt.Manager, got *model.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(manager))
	r.GET("/whoami", func(c *gin.Context) {
		*got = GetPrincipal(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	manager := jwt.NewManager("secret", "gamestore", "")
	other := jwt.NewManager("other-secret", "gamestore", "")

	valid, err := manager.GenerateToken("alice", []string{model.CapabilityRead, model.CapabilityWrite}, time.Hour)
	require.NoError(t, err)
	expired, err := manager.GenerateToken("alice", []string{model.CapabilityRead}, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.GenerateToken("mallory", []string{model.CapabilityWrite}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantAuth   bool
	}{
		{"no header is anonymous", "", http.StatusOK, false},
		{"valid bearer", "Bearer " + valid, http.StatusOK, true},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, true},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, false},
		{"missing token", "Bearer ", http.StatusUnauthorized, false},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, false},
		{"wrong signature", "Bearer " + foreign, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.Principal
			r := principalRouter(manager, &got)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantAuth, got.Authenticated)
			}
			if tt.wantAuth {
				assert.Equal(t, "alice", got.Subject)
				assert.True(t, got.Has(model.CapabilityWrite))
			}
		})
	}
}

func TestGetPrincipalDefaultsToAnonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	p := GetPrincipal(c)
	assert.False(t, p.Authenticated)
	assert.Empty(t, p.Capabilities)
}
