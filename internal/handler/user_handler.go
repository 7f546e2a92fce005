package handler

import (
	"net/http"
	"strconv"

	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

func NewUserHandler(userService *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

type CreateUserRequest struct {
	FirstName  string  `json:"firstName" binding:"required,max=50"`
	LastName   string  `json:"lastName" binding:"required,max=50"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone" binding:"omitempty,phone"`
	Role       string  `json:"role" binding:"required,oneof=admin doctor nurse patient staff hospital"`
	HospitalID *string `json:"hospitalId"`
	Password   string  `json:"password" binding:"required,min=6"`
	IsActive   *bool   `json:"isActive"`
}

type UpdateUserRequest struct {
	FirstName  *string `json:"firstName" binding:"omitempty,max=50"`
	LastName   *string `json:"lastName" binding:"omitempty,max=50"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,phone"`
	Role       *string `json:"role" binding:"omitempty,oneof=admin doctor nurse patient staff hospital"`
	HospitalID *string `json:"hospitalId"`
	Password   *string `json:"password" binding:"omitempty,min=6"`
	IsActive   *bool   `json:"isActive"`
}

type StatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CreateUser registers an account (admin or hospital)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actorFrom(c), service.CreateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		HospitalID: req.HospitalID,
		Password:   req.Password,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.CreatedResponse(c, user)
}

// ListUsers returns a page of users visible to the caller
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Search:     c.Query("search"),
		Role:       c.Query("role"),
		HospitalID: c.Query("hospitalId"),
		Status:     c.Query("status"),
	}

	res, err := h.userService.ListUsers(c.Request.Context(), actorFrom(c), filter, pageFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, res)
}

// GetUserStats returns account counts (admin only)
func (h *UserHandler) GetUserStats(c *gin.Context) {
	stats, err := h.userService.GetUserStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GetUser retrieves a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// UpdateUser applies a partial update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actorFrom(c), c.Param("id"), service.UpdateUserInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		HospitalID: req.HospitalID,
		Password:   req.Password,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// SetUserStatus activates or deactivates an account (admin only)
func (h *UserHandler) SetUserStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	id := c.Param("id")
	if err := h.userService.SetUserStatus(c.Request.Context(), actorFrom(c), id, *req.IsActive); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  statusMessage("User", *req.IsActive),
		"id":       id,
		"isActive": *req.IsActive,
	})
}

// DeleteUser removes an account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.MessageResponse(c, "User deleted successfully")
}

// pageFrom reads page and limit query parameters. Bad values fall back to
// the defaults applied by models.Page.Normalize.
func pageFrom(c *gin.Context) models.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return models.Page{Page: page, Limit: limit}
}

func statusMessage(entity string, active bool) string {
	if active {
		return entity + " activated successfully"
	}
	return entity + " deactivated successfully"
}
