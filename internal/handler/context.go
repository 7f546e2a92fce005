package handler

import (
	"healthcare-admin-api/internal/middleware"
	"healthcare-admin-api/internal/service"

	"github.com/gin-gonic/gin"
)

// actorFrom reads the caller identity stored by middleware.AuthMiddleware.
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:    c.GetString(middleware.ContextUserID),
		Email: c.GetString(middleware.ContextEmail),
		Role:  c.GetString(middleware.ContextRole),
	}
}
