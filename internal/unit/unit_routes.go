package unit

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	units := r.Group("/units")
	units.Use(middleware.AuthMiddleware())
	{
		units.GET("", middleware.Authorize(enforcer, "unit", "read"), handler.GetAll)
		units.GET("/:id", middleware.Authorize(enforcer, "unit", "read"), handler.GetById)
		units.POST("", middleware.Authorize(enforcer, "unit", "manage"), handler.Create)
		units.PUT("/:id", middleware.Authorize(enforcer, "unit", "manage"), handler.Update)
		units.DELETE("/:id", middleware.Authorize(enforcer, "unit", "manage"), handler.Delete)
	}
}
