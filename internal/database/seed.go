package database

import (
	"context"
	"fmt"
	"strings"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SeedDefaultAdmin inserts the configured admin account if no account uses
// its email yet. It reports whether a row was created.
func SeedDefaultAdmin(ctx context.Context, db *gorm.DB, hasher *utils.PasswordHasher, seed config.SeedConfig, log zerolog.Logger) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check default admin: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := hasher.Hash(seed.AdminPassword)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		FirstName:    seed.AdminFirstName,
		LastName:     seed.AdminLastName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}

	log.Info().Str("email", email).Msg("default admin user created")
	return true, nil
}
