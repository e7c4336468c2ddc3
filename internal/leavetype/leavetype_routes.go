package leavetype

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.Authorize(enforcer, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.Authorize(enforcer, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.Authorize(enforcer, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.Authorize(enforcer, "leave_type", "manage"), handler.Update)
		types.DELETE("/:id", middleware.Authorize(enforcer, "leave_type", "manage"), handler.Delete)
	}
}
