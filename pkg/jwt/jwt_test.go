package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "gamestore", "gamestore-api")

	token, err := m.GenerateToken("alice", []string{"games:read", "games:write"}, time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, []string{"games:read", "games:write"}, claims.Scopes())
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("secret", "gamestore", "")

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewManager("secret", "someone-else", "").GenerateToken("bob", nil, time.Hour)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := m.GenerateToken("bob", nil, -time.Second)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   "mallory",
				Issuer:    "gamestore",
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		token, err := unsigned.SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("a.b.c")
		assert.Error(t, err)
	})
}

func TestScopesEmpty(t *testing.T) {
	assert.Empty(t, (&Claims{}).Scopes())
}
