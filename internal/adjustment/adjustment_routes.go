package adjustment

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	adjustments := r.Group("/adjustments")
	adjustments.Use(middleware.AuthMiddleware(jwtSecret))
	{
		adjustments.POST("", middleware.RBACAuthorize(rbacService, "adjustment", "create"), h.Create)
		adjustments.GET("/my", middleware.RBACAuthorize(rbacService, "adjustment", "read"), h.GetMine)
		adjustments.GET("/pending", middleware.RBACAuthorize(rbacService, "adjustment", "review"), h.GetPending)
		adjustments.PATCH("/:id/review", middleware.RBACAuthorize(rbacService, "adjustment", "review"), h.Review)
	}
}
