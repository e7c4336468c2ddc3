package calendar

import (
	"github.com/gin-gonic/gin"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.Authorize(enforcer, "holiday", "read"), handler.GetHolidays)
		holidays.POST("", middleware.Authorize(enforcer, "holiday", "manage"), handler.CreateHoliday)
		holidays.DELETE("/:id", middleware.Authorize(enforcer, "holiday", "manage"), handler.DeleteHoliday)
	}

	calendar := r.Group("/calendar")
	calendar.Use(middleware.AuthMiddleware())
	{
		calendar.GET("/working-days", middleware.Authorize(enforcer, "holiday", "read"), handler.WorkingDays)
		calendar.GET("/end-date", middleware.Authorize(enforcer, "holiday", "read"), handler.EndDate)
	}
}
