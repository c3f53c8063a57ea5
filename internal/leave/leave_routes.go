package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/alok-mishra143/leave-management-backend/internal/middleware"
	"github.com/alok-mishra143/leave-management-backend/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/dashboard", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.GetApproved)
		leaves.GET("/personal/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetPersonal)
		leaves.GET("/balance/:id", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetBalance)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetByID)
		if redisClient != nil {
			leaves.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "leave", "create"),
				handler.Apply,
			)
		} else {
			leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Apply)
		}
		leaves.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		leaves.PATCH("/:id", middleware.RBACAuthorize(rbacService, "leave", "edit"), handler.Edit)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
	}
}
