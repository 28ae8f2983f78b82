// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Storefront Backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(999), cfg.Checkout.ShippingFee)
	assert.Equal(t, 30*24*time.Hour, cfg.Checkout.CartTTL)
	assert.Equal(t, "USD", cfg.Checkout.Currency)
	assert.Equal(t, 8, cfg.Catalog.PageSize)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CHECKOUT_SHIPPING_FEE", "500")
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("CART_TTL", "72h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(500), cfg.Checkout.ShippingFee)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 72*time.Hour, cfg.Checkout.CartTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Security.CORSAllowedOrigins)
}

func TestLoad_RejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_RejectsInvalidPageSize(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "CATALOG_PAGE_SIZE")
}

func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{}

	cfg.App.Environment = "development"
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database = DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "storefront",
		SSLMode:  "require",
	}

	dsn := cfg.GetDatabaseDSN()
	assert.Equal(t, "host=db.internal port=5432 user=app password=secret dbname=storefront sslmode=require", dsn)
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Host = "cache.internal"
	cfg.Redis.Port = "6380"

	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}
