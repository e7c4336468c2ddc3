package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	aud := r.Group("/audit")
	aud.Use(middleware.AuthMiddleware(), middleware.Authorize(enforcer, "audit", "read"))
	{
		aud.GET("/login-history", handler.GetLoginHistory)
		aud.GET("/login-history/statistics", handler.GetLoginStatistics)
		aud.GET("/status-history", handler.GetStatusHistory)
		aud.GET("/status-history/statistics", handler.GetStatusStatistics)
	}
}
