package handler

import (
	"net/http"

	"healthcare-admin-api/internal/database"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const serviceName = "healthcare-admin-api"

type HealthHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewHealthHandler(db *gorm.DB, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health reports liveness and whether the store answers a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		h.log.Error().Err(err).Msg("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
