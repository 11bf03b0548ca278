package biometric

import (
	"github.com/gin-gonic/gin"

	"github.com/viniciusmecosta/spe-api/internal/middleware"
	"github.com/viniciusmecosta/spe-api/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, jwtSecret string) {
	biometrics := r.Group("/biometrics")
	biometrics.Use(middleware.AuthMiddleware(jwtSecret))
	biometrics.Use(middleware.RBACAuthorize(rbacService, "biometric", "manage"))
	{
		biometrics.POST("", h.Enroll)
		biometrics.GET("/user/:userId", h.GetByUser)
		biometrics.DELETE("/:id", h.Delete)
		biometrics.POST("/sync", h.SyncAll)
	}
}
