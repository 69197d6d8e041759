package middleware

import (
	"strings"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/internal/shared/response"
	"gamestore-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PrincipalKey - key lưu model.Principal trong gin context
const PrincipalKey = "principal"

// Authenticate resolves the caller once per request.
// No Authorization header → anonymous principal (capability checks happen later).
// A header that is present but malformed or invalid → 401 immediately.
func Authenticate(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(PrincipalKey, model.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AbortWithError(c, 401, model.CodeUnauthenticated, "invalid authorization header format")
			return
		}

		claims, err := manager.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("token rejected")
			response.AbortWithError(c, 401, model.CodeUnauthenticated, "invalid token")
			return
		}

		c.Set(PrincipalKey, model.NewPrincipal(claims.Subject, claims.Scopes()...))
		c.Next()
	}
}

// GetPrincipal returns the principal set by Authenticate, or an anonymous one
func GetPrincipal(c *gin.Context) model.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(model.Principal); ok {
			return p
		}
	}
	return model.Anonymous()
}
