package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/fmcmkdict/LMA-App/internal/middleware"
	"github.com/fmcmkdict/LMA-App/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer, redisClient *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.Authorize(enforcer, "leave", "create"),
			middleware.Idempotency(redisClient),
			handler.Submit,
		)
		leaves.GET("/mine", middleware.Authorize(enforcer, "leave", "read"), handler.GetMine)
		leaves.GET("", middleware.Authorize(enforcer, "leave", "read_any"), handler.GetAll)
		leaves.GET("/:id", middleware.Authorize(enforcer, "leave", "read"), handler.GetById)
		leaves.PUT("/:id", middleware.Authorize(enforcer, "leave", "edit"), handler.Edit)
		leaves.POST("/:id/recommend", middleware.Authorize(enforcer, "leave", "recommend"), handler.Recommend)
		leaves.POST("/:id/decision", middleware.Authorize(enforcer, "leave", "approve"), handler.Decide)
		leaves.POST("/:id/cancel", middleware.Authorize(enforcer, "leave", "cancel"), handler.Cancel)
		leaves.POST("/:id/exhaust", middleware.Authorize(enforcer, "leave", "exhaust"), handler.MarkExhausted)
		leaves.DELETE("/:id", middleware.Authorize(enforcer, "leave", "delete"), handler.Delete)
	}
}
