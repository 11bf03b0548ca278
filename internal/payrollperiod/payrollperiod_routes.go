package payrollperiod

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	periods := r.Group("/payroll")
	periods.Use(middleware.AuthMiddleware(jwtSecret))
	{
		periods.GET("/closed", middleware.RBACAuthorize(rbacService, "payroll", "close"), h.ListClosed)
		periods.POST("/close", middleware.RBACAuthorize(rbacService, "payroll", "close"), h.Close)
		periods.DELETE("/reopen/:year/:month", middleware.RBACAuthorize(rbacService, "payroll", "reopen"), h.Reopen)
	}
}
