package handler

import (
	"net/http"

	"healthcare-admin-api/internal/repository"
	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
	log             zerolog.Logger
}

func NewHospitalHandler(hospitalService *service.HospitalService, log zerolog.Logger) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		log:             log,
	}
}

type CreateHospitalRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	Address       *string `json:"address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	ZipCode       *string `json:"zipCode" binding:"omitempty,max=20"`
	ContactPerson *string `json:"contactPerson" binding:"omitempty,max=100"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone" binding:"omitempty,phone"`
	IsActive      *bool   `json:"isActive"`
}

type UpdateHospitalRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Address       *string `json:"address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	ZipCode       *string `json:"zipCode" binding:"omitempty,max=20"`
	ContactPerson *string `json:"contactPerson" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,phone"`
	IsActive      *bool   `json:"isActive"`
}

// CreateHospital creates a new hospital (admin only)
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	hospital, err := h.hospitalService.CreateHospital(c.Request.Context(), actorFrom(c), service.HospitalInput{
		Name:          &req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		ContactPerson: req.ContactPerson,
		Email:         &req.Email,
		Phone:         req.Phone,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.CreatedResponse(c, hospital)
}

// ListHospitals returns a page of hospitals
func (h *HospitalHandler) ListHospitals(c *gin.Context) {
	filter := repository.HospitalFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	res, err := h.hospitalService.ListHospitals(c.Request.Context(), filter, pageFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, res)
}

// GetHospitalStats returns hospital counts (admin only)
func (h *HospitalHandler) GetHospitalStats(c *gin.Context) {
	stats, err := h.hospitalService.GetHospitalStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	hospital, err := h.hospitalService.GetHospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// UpdateHospital updates an existing hospital (admin only)
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	var req UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	hospital, err := h.hospitalService.UpdateHospital(c.Request.Context(), actorFrom(c), c.Param("id"), service.HospitalInput{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// DeleteHospital removes a hospital (admin only)
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	if err := h.hospitalService.DeleteHospital(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.MessageResponse(c, "Hospital deleted successfully")
}

// SetHospitalStatus activates or deactivates a hospital (admin only)
func (h *HospitalHandler) SetHospitalStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	id := c.Param("id")
	if err := h.hospitalService.SetHospitalStatus(c.Request.Context(), actorFrom(c), id, *req.IsActive); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  statusMessage("Hospital", *req.IsActive),
		"id":       id,
		"isActive": *req.IsActive,
	})
}
