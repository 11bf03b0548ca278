package timerecord

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	records := r.Group("/time-records")
	records.Use(middleware.AuthMiddleware(jwtSecret))
	{
		records.POST("/entry", middleware.RBACAuthorize(rbacService, "timerecord", "create"), h.RegisterEntry)
		records.POST("/exit", middleware.RBACAuthorize(rbacService, "timerecord", "create"), h.RegisterExit)
		records.GET("/my", middleware.RBACAuthorize(rbacService, "timerecord", "read"), h.GetMyRecords)
		records.PATCH("/:id/toggle", middleware.RBACAuthorize(rbacService, "timerecord", "toggle"), h.ToggleType)

		records.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.GetUserRecords)
		records.POST("", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.AdminCreate)
		records.PUT("/:id", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.AdminUpdate)
		records.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.AdminDelete)

		records.POST("/manual-auth/:userId", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.GrantManualAuth)
		records.DELETE("/manual-auth/:userId", middleware.RBACAuthorize(rbacService, "timerecord", "admin"), h.RevokeManualAuth)
	}
}
