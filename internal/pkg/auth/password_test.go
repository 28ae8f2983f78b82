// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
)

func passwordTestConfig() *config.Config {
	cfg := &config.Config{}
	// Minimum cost keeps hashing fast in tests
	cfg.Security.BcryptCost = 4
	return cfg
}

func TestPasswordManager_HashAndVerify(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	hash, err := manager.HashPassword("correcthorse1")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse1", hash)

	assert.NoError(t, manager.VerifyPassword("correcthorse1", hash))
	assert.Error(t, manager.VerifyPassword("wronghorse1", hash))
}

func TestPasswordManager_ValidatePassword(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password1", false},
		{"too short", "abc1", true},
		{"no numbers", "passwordonly", true},
		{"no letters", "1234567890", true},
		{"too long", strings.Repeat("a", 70) + "123", true},
		{"exactly 72 bytes", strings.Repeat("a", 71) + "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordManager_HashRejectsWeakPassword(t *testing.T) {
	manager := NewPasswordManager(passwordTestConfig())

	_, err := manager.HashPassword("short1")
	assert.Error(t, err)
}
