// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/database"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Config returns a sqlite configuration rooted in a per-test temp dir.
func Config(t testing.TB) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{GinMode: "test"},
		Database: config.DatabaseConfig{
			Driver:  "sqlite",
			Path:    filepath.Join(t.TempDir(), "test.db"),
			Timeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{Secret: "test-secret"},
		Seed: config.SeedConfig{
			AdminEmail:     "admin@example.com",
			AdminPassword:  "password",
			AdminFirstName: "Admin",
			AdminLastName:  "User",
		},
		Blockchain: config.BlockchainConfig{NetworkName: "Test Network", ChainID: "0x539"},
	}
}

// New returns a migrated, empty database that is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(Config(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
