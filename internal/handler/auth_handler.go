package handler

import (
	"net/http"

	"healthcare-admin-api/internal/middleware"
	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin hospital user"`
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, res)
}

// Logout is informational; tokens are stateless and stay valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.MessageResponse(c, h.authService.Logout())
}

// Verify echoes the identity of a valid token. AuthMiddleware has already
// rejected anything else.
func (h *AuthHandler) Verify(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    c.GetString(middleware.ContextUserID),
			"email": c.GetString(middleware.ContextEmail),
			"role":  c.GetString(middleware.ContextRole),
		},
	})
}
