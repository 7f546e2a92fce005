package handler

import (
	"strconv"

	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuditHandler struct {
	auditService *service.AuditService
	log          zerolog.Logger
}

func NewAuditHandler(auditService *service.AuditService, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		log:          log,
	}
}

// ListAuditLogs returns recent audit entries (admin only)
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.auditService.ListAuditLogs(c.Request.Context(), actorFrom(c), c.Query("action"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}
