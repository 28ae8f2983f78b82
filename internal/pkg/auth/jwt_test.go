// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-do-not-use"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	return cfg
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateAccessToken(42, "user@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateRefreshToken(42, "user@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
	// Admin status never rides in refresh tokens
	assert.False(t, claims.IsAdmin)
}

func TestJWTManager_RejectsWrongTokenType(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	access, err := manager.GenerateAccessToken(1, "user@example.com", false)
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken(1, "user@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTManager_RejectsTamperedSecret(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateAccessToken(1, "user@example.com", false)
	require.NoError(t, err)

	other := jwtTestConfig()
	other.JWT.Secret = "a-different-secret"

	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken(1, "user@example.com", false)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Empty(t, ExtractTokenFromHeader("abc123"))
	assert.Empty(t, ExtractTokenFromHeader("bearer abc123"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}
