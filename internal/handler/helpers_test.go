package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/database"
	"healthcare-admin-api/internal/database/dbtest"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	hasher *utils.PasswordHasher
	tokens *utils.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := dbtest.Config(t)
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	db := dbtest.New(t)
	hasher := utils.NewPasswordHasher(bcrypt.MinCost)
	tokens := utils.NewTokenManager(cfg.JWT.Secret, utils.DefaultTokenTTL)

	_, err := database.SeedDefaultAdmin(context.Background(), db, hasher, cfg.Seed, zerolog.Nop())
	require.NoError(t, err)

	return &testServer{
		router: NewRouter(Dependencies{Config: cfg, DB: db, Hasher: hasher, Tokens: tokens, Log: zerolog.Nop()}),
		db:     db,
		cfg:    cfg,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login returns a token for email/password or fails the test.
func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res.Token
}

func (s *testServer) adminToken(t *testing.T) string {
	return s.login(t, "admin@example.com", "password")
}

// account inserts an account whose password is "secret1" and returns it.
func (s *testServer) account(t *testing.T, email, role string, hospitalID *string) *models.User {
	t.Helper()
	hash, err := s.hasher.Hash("secret1")
	require.NoError(t, err)

	u := &models.User{
		ID:           uuid.NewString(),
		FirstName:    "Test",
		LastName:     "Account",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		HospitalID:   hospitalID,
		IsActive:     true,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *testServer) hospital(t *testing.T, name, email string) *models.Hospital {
	t.Helper()
	h := &models.Hospital{ID: uuid.NewString(), Name: name, Email: email, IsActive: true}
	require.NoError(t, s.db.Create(h).Error)
	return h
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}
