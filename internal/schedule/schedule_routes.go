package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	schedules := r.Group("/work-schedules")
	schedules.Use(middleware.AuthMiddleware(jwtSecret))
	{
		schedules.GET("/user/:userId", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.GetByUser)
		schedules.PUT("/user/:userId", middleware.RBACAuthorize(rbacService, "schedule", "write"), h.Replace)
	}

	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(jwtSecret))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.ListHolidays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "write"), h.CreateHoliday)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "write"), h.DeleteHoliday)
	}
}
