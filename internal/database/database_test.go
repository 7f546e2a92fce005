package database_test

import (
	"context"
	"testing"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/database"
	"healthcare-admin-api/internal/database/dbtest"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := database.Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestDialectorNames(t *testing.T) {
	cases := map[string]string{"mysql": "mysql", "postgres": "postgres"}
	for driver, name := range cases {
		d, err := database.Dialector(config.DatabaseConfig{Driver: driver, Host: "localhost", Port: "1"})
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, table := range []string{"users", "hospitals", "blockchain_connections", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestSeedDefaultAdminOnce(t *testing.T) {
	db := dbtest.New(t)
	hasher := utils.NewPasswordHasher(bcrypt.MinCost)
	seed := dbtest.Config(t).Seed

	created, err := database.SeedDefaultAdmin(context.Background(), db, hasher, seed, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = database.SeedDefaultAdmin(context.Background(), db, hasher, seed, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.True(t, users[0].IsActive)
	assert.True(t, hasher.Verify(users[0].PasswordHash, "password"))
}

func TestHospitalForeignKeyEnforced(t *testing.T) {
	db := dbtest.New(t)

	missing := "no-such-hospital"
	err := db.Create(&models.User{
		ID:           "u1",
		FirstName:    "A",
		LastName:     "B",
		Email:        "a@example.com",
		PasswordHash: "x",
		Role:         models.RoleDoctor,
		HospitalID:   &missing,
		IsActive:     true,
	}).Error
	assert.Error(t, err)
}
