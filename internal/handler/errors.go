package handler

import (
	"errors"
	"net/http"

	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var errorStatus = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{utils.ErrInvalidToken, http.StatusUnauthorized},
	{utils.ErrExpiredToken, http.StatusUnauthorized},
	{service.ErrAccountInactive, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
}

// respondError maps a service error onto a status and JSON body. Anything
// unknown is logged and answered with a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	for _, e := range errorStatus {
		if !errors.Is(err, e.kind) {
			continue
		}

		body := gin.H{"status": "error", "message": err.Error()}
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			body["message"] = svcErr.Message
			for k, v := range svcErr.Fields {
				body[k] = v
			}
		}
		c.JSON(e.status, body)
		return
	}

	_ = c.Error(err)
	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
