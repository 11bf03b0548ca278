package anomaly

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	anomalies := r.Group("/anomalies")
	anomalies.Use(middleware.AuthMiddleware(jwtSecret))
	{
		anomalies.GET("/my", middleware.RBACAuthorize(rbacService, "anomaly", "read"), h.GetMine)
		anomalies.GET("", middleware.RBACAuthorize(rbacService, "anomaly", "read_all"), h.GetForAllEmployees)
		anomalies.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "anomaly", "read_all"), h.GetForUser)
	}
}
