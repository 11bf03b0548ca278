package user

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	r.POST("/auth/login", h.Login)

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtSecret))
	{
		users.GET("/me", h.GetMe)
		users.GET("", middleware.RBACAuthorize(rbacService, "user", "manage"), h.GetAll)
		users.POST("", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, "user", "manage"), h.Update)
	}
}
