package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/alok-mishra143/leave-management-backend/internal/middleware"
	"github.com/alok-mishra143/leave-management-backend/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetMine)
		notifications.PATCH("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.MarkRead)
	}
}
