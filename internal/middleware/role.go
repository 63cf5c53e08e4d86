package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"museumguide/internal/domain"
	"museumguide/internal/pkg/response"
)

// StaffOnly admits admins and superadmins; everyone else gets 403.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !domain.Role(role.(string)).IsStaff() {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SuperadminOnly gates museum and user management endpoints.
func SuperadminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if domain.Role(role.(string)) != domain.RoleSuperadmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
