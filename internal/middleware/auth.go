package middleware

import (
	"net/http"
	"strings"

	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextClaims = "claims"
)

const invalidTokenMessage = "Invalid or expired token"

// AuthMiddleware validates the bearer token in the Authorization header and
// stores its claims on the context. Every failure gets the same 401 body.
func AuthMiddleware(tokens *utils.TokenManager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug().Str("path", c.FullPath()).Msg("missing or malformed authorization header")
			utils.ErrorResponse(c, http.StatusUnauthorized, invalidTokenMessage)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.FullPath()).Msg("token rejected")
			utils.ErrorResponse(c, http.StatusUnauthorized, invalidTokenMessage)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireRole lets the request through only when the authenticated role is
// one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		r, _ := role.(string)
		if _, ok := allowed[r]; !ok {
			utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin checks if the authenticated user has admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

func RequireAdminOrHospital() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin, models.RoleHospital)
}
