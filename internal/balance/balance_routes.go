package balance

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", middleware.Authorize(enforcer, "balance", "read"), handler.GetMine)
		balances.GET("/employees/:id", middleware.Authorize(enforcer, "balance", "read_any"), handler.GetForEmployee)
	}
}
