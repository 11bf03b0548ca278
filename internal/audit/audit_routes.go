package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware(jwtSecret))
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), h.ListByEntity)
	}
}
