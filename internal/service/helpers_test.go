package service

import (
	"context"
	"testing"

	"healthcare-admin-api/internal/database"
	"healthcare-admin-api/internal/database/dbtest"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	hasher      *utils.PasswordHasher
	tokens      *utils.TokenManager
	auth        *AuthService
	users       *UserService
	hospitals   *HospitalService
	blockchain  *BlockchainService
	audit       *AuditService
	auditRepo   *repository.AuditRepository
	seededAdmin *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := dbtest.Config(t)
	db := dbtest.New(t)
	hasher := utils.NewPasswordHasher(bcrypt.MinCost)
	tokens := utils.NewTokenManager("test-secret", 0)
	log := zerolog.Nop()

	_, err := database.SeedDefaultAdmin(context.Background(), db, hasher, cfg.Seed, log)
	require.NoError(t, err)

	userRepo := repository.NewUserRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	admin, err := userRepo.FindUserByEmail(context.Background(), cfg.Seed.AdminEmail)
	require.NoError(t, err)

	return &fixture{
		db:          db,
		hasher:      hasher,
		tokens:      tokens,
		auth:        NewAuthService(userRepo, auditRepo, hasher, tokens, log),
		users:       NewUserService(userRepo, hospitalRepo, auditRepo, hasher, log),
		hospitals:   NewHospitalService(hospitalRepo, auditRepo, log),
		blockchain:  NewBlockchainService(repository.NewBlockchainRepo(db), auditRepo, cfg.Blockchain, log),
		audit:       NewAuditService(auditRepo),
		auditRepo:   auditRepo,
		seededAdmin: admin,
	}
}

func (f *fixture) adminActor() Actor {
	return Actor{ID: f.seededAdmin.ID, Email: f.seededAdmin.Email, Role: models.RoleAdmin}
}

func (f *fixture) hospital(t *testing.T, name, email string) *models.Hospital {
	t.Helper()
	h := &models.Hospital{ID: uuid.NewString(), Name: name, Email: email, IsActive: true}
	require.NoError(t, f.db.Create(h).Error)
	return h
}

// account inserts an account whose password is "secret1".
func (f *fixture) account(t *testing.T, email, role string, active bool, hospitalID *string) *models.User {
	t.Helper()
	hash, err := f.hasher.Hash("secret1")
	require.NoError(t, err)

	u := &models.User{
		ID:           uuid.NewString(),
		FirstName:    "Test",
		LastName:     role,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		HospitalID:   hospitalID,
		IsActive:     active,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func actorOf(u *models.User) Actor {
	return Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
