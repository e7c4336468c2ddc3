package department

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	depts := r.Group("/departments")
	depts.Use(middleware.AuthMiddleware())
	{
		depts.GET("", middleware.Authorize(enforcer, "department", "read"), handler.GetAll)
		depts.GET("/:id", middleware.Authorize(enforcer, "department", "read"), handler.GetById)
		depts.POST("", middleware.Authorize(enforcer, "department", "manage"), handler.Create)
		depts.PUT("/:id", middleware.Authorize(enforcer, "department", "manage"), handler.Update)
		depts.DELETE("/:id", middleware.Authorize(enforcer, "department", "manage"), handler.Delete)
	}
}
