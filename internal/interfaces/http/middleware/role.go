package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// RequireRole allows the request through only when the authenticated user
// holds one of the given roles.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[string(role)] = true
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role"))
			return
		}
		c.Next()
	}
}

// RequireWriter shorthand for routes that mutate warehouse state
func RequireWriter() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin, identity.RoleOperator)
}

// RequireAdmin shorthand for user management routes
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
