package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/rbac"
	"github.com/viniciusmecosta/spe-api/internal/shared/apperror"
	"github.com/viniciusmecosta/spe-api/internal/shared/response"
)

// RBACAuthorize gates a route on a (resource, action) pair for the
// authenticated role. Must run after AuthMiddleware.
func RBACAuthorize(rbacService rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		allowed, err := rbacService.Check(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
