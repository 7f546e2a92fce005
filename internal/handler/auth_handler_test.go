package handler

import (
	"net/http"
	"testing"

	"healthcare-admin-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SeededAdmin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "password",
		"role":     "admin",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "admin", user["role"])
	assert.Equal(t, "admin@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestLogin_StatusCodes(t *testing.T) {
	s := newTestServer(t)
	inactive := s.account(t, "gone@example.com", models.RoleNurse, nil)
	require.NoError(t, s.db.Model(inactive).Update("is_active", false).Error)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"malformed json", `{"email":`, http.StatusBadRequest},
		{"missing password", gin.H{"email": "admin@example.com"}, http.StatusBadRequest},
		{"bad email", gin.H{"email": "admin", "password": "password"}, http.StatusBadRequest},
		{"bad role filter", gin.H{"email": "admin@example.com", "password": "password", "role": "root"}, http.StatusBadRequest},
		{"unknown email", gin.H{"email": "nobody@example.com", "password": "password"}, http.StatusUnauthorized},
		{"wrong password", gin.H{"email": "admin@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"role mismatch", gin.H{"email": "admin@example.com", "password": "password", "role": "hospital"}, http.StatusUnauthorized},
		{"inactive with wrong password", gin.H{"email": "gone@example.com", "password": "nope"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "error", decode(t, rec)["status"])
		})
	}
}

func TestLogin_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	s := newTestServer(t)

	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "password"})
	wrong := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "nope"})

	assert.Equal(t, unknown.Code, wrong.Code)
	assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
}

func TestLogin_UserFilter(t *testing.T) {
	s := newTestServer(t)
	s.account(t, "pat@example.com", models.RolePatient, nil)

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "pat@example.com", "password": "secret1", "role": "user"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "admin@example.com", "password": "password", "role": "user"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	rec := s.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["valid"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])
	assert.NotEmpty(t, user["id"])

	rec = s.do(t, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/verify", "tampered."+token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decode(t, rec)["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthcare_http_requests_total")
}
