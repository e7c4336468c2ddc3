package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	emps := r.Group("/employees")
	emps.Use(middleware.AuthMiddleware())
	{
		emps.POST("", middleware.Authorize(enforcer, "employee", "register"), handler.Register)
		emps.GET("", middleware.Authorize(enforcer, "employee", "read"), handler.GetAll)
		emps.GET("/:id", middleware.Authorize(enforcer, "employee", "read"), handler.GetById)
		emps.PUT("/:id", middleware.Authorize(enforcer, "employee", "update"), handler.Update)
		emps.PATCH("/:id/status", middleware.Authorize(enforcer, "employee", "status"), handler.ChangeStatus)
	}
}
