package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "0x539", cfg.Blockchain.ChainID)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "8081",
		"DB_DRIVER":       "mysql",
		"JWT_SECRET":      "s3cret",
		"BCRYPT_COST":     "12",
		"ALLOWED_ORIGINS": "https://a.example,https://b.example",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER": "oracle",
	}))
	assert.Error(t, err)
}

func TestReleaseModeNeedsSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"GIN_MODE": "release",
	}))
	require.Error(t, err)

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"GIN_MODE":   "release",
		"JWT_SECRET": "prod-secret",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsRelease())
}

func TestPostgresDefaultPort(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"DB_DRIVER": "postgres",
	}))
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.Database.Port)
}
