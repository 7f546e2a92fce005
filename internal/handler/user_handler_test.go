package handler

import (
	"net/http"
	"testing"

	"healthcare-admin-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoutes_AdminFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	h := s.hospital(t, "General", "general@example.com")

	rec := s.do(t, http.MethodPost, "/api/users", admin, gin.H{
		"firstName":  "Dana",
		"lastName":   "Doe",
		"email":      "dana@example.com",
		"phone":      "+1 555 010 0200",
		"role":       "doctor",
		"hospitalId": h.ID,
		"password":   "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "General", created["hospitalName"])
	assert.NotContains(t, created, "password")
	id := created["id"].(string)

	rec = s.do(t, http.MethodGet, "/api/users?search=dana&limit=5", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	assert.Len(t, list["users"], 1)
	pagination := list["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])
	assert.Equal(t, float64(5), pagination["limit"])

	rec = s.do(t, http.MethodPut, "/api/users/"+id, admin, gin.H{"lastName": "Smith"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Smith", decode(t, rec)["lastName"])

	rec = s.do(t, http.MethodPatch, "/api/users/"+id+"/status", admin, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["isActive"])

	rec = s.do(t, http.MethodGet, "/api/users/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(1), stats["inactive"])

	rec = s.do(t, http.MethodDelete, "/api/users/"+id, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/users/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserRoutes_Validation(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad role", gin.H{"firstName": "A", "lastName": "B", "email": "a@example.com", "role": "root", "password": "secret1"}},
		{"short password", gin.H{"firstName": "A", "lastName": "B", "email": "a@example.com", "role": "nurse", "password": "1"}},
		{"bad phone", gin.H{"firstName": "A", "lastName": "B", "email": "a@example.com", "role": "nurse", "password": "secret1", "phone": "call me"}},
		{"missing names", gin.H{"email": "a@example.com", "role": "nurse", "password": "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/users", admin, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := s.do(t, http.MethodPost, "/api/users", admin, gin.H{
		"firstName": "A", "lastName": "B", "email": "admin@example.com", "role": "nurse", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/users/whatever", admin, gin.H{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserRoutes_Gates(t *testing.T) {
	s := newTestServer(t)
	own := s.hospital(t, "Own", "own@example.com")
	s.account(t, "mgr@example.com", models.RoleHospital, &own.ID)
	patient := s.account(t, "pat@example.com", models.RolePatient, nil)

	manager := s.login(t, "mgr@example.com", "secret1")
	patientToken := s.login(t, "pat@example.com", "secret1")

	rec := s.do(t, http.MethodGet, "/api/users/stats", manager, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/users", patientToken, gin.H{
		"firstName": "A", "lastName": "B", "email": "x@example.com", "role": "nurse", "password": "secret1",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/users", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/users/"+patient.ID, patientToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/users/"+patient.ID, patientToken, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/users", manager, gin.H{
		"firstName": "N", "lastName": "N", "email": "nurse@example.com", "role": "nurse", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, own.ID, decode(t, rec)["hospitalId"])

	rec = s.do(t, http.MethodGet, "/api/users", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["users"], 2)
}

func TestUserRoutes_LastAdminIsProtected(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	var seeded models.User
	require.NoError(t, s.db.Where("email = ?", "admin@example.com").First(&seeded).Error)

	rec := s.do(t, http.MethodDelete, "/api/users/"+seeded.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/users/"+seeded.ID+"/status", admin, gin.H{"isActive": false})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/users/"+seeded.ID+"/status", admin, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserRoutes_HospitalCannotResetAdmin(t *testing.T) {
	s := newTestServer(t)
	own := s.hospital(t, "Own", "own@example.com")
	s.account(t, "mgr@example.com", models.RoleHospital, &own.ID)
	target := s.account(t, "adm2@example.com", models.RoleAdmin, &own.ID)
	manager := s.login(t, "mgr@example.com", "secret1")

	rec := s.do(t, http.MethodPut, "/api/users/"+target.ID, manager, gin.H{"password": "takeover1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "adm2@example.com", "password": "takeover1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "adm2@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
