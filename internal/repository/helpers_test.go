package repository

import (
	"testing"

	"healthcare-admin-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func insertHospital(t *testing.T, db *gorm.DB, name, email string) *models.Hospital {
	t.Helper()
	h := &models.Hospital{ID: uuid.NewString(), Name: name, Email: email, IsActive: true}
	require.NoError(t, db.Create(h).Error)
	return h
}

func insertUser(t *testing.T, db *gorm.DB, email, role string, active bool, hospitalID *string) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.NewString(),
		FirstName:    "First",
		LastName:     "Last",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		HospitalID:   hospitalID,
		IsActive:     active,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
