package workhour

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	balances := r.Group("/work-hours")
	balances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		balances.GET("/my", middleware.RBACAuthorize(rbacService, "workhour", "read"), h.GetMyBalance)
		balances.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "workhour", "read_all"), h.GetUserBalance)
		balances.GET("", middleware.RBACAuthorize(rbacService, "workhour", "read_all"), h.GetAllBalances)
		balances.GET("/report", middleware.RBACAuthorize(rbacService, "workhour", "read_all"), h.ExportReport)
	}
}
