package user

import (
	"github.com/gin-gonic/gin"

	"github.com/alok-mishra143/leave-management-backend/internal/middleware"
	"github.com/alok-mishra143/leave-management-backend/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	users := r.Group("/users")

	// self-service signup, no auth
	users.POST("/register-student", handler.RegisterStudent)

	authed := users.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", middleware.RBACAuthorize(rbacService, "user", "create"), handler.Create)
		authed.GET("", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetAll)
		authed.GET("/approvers/:department", middleware.RBACAuthorize(rbacService, "approver", "read"), handler.ListApprovers)
		authed.GET("/:id", middleware.RBACAuthorize(rbacService, "user", "read"), handler.GetByID)
		authed.PATCH("/:id", middleware.RBACAuthorize(rbacService, "user", "update"), handler.Update)
		authed.DELETE("/:id", middleware.RBACAuthorize(rbacService, "user", "delete"), handler.Delete)
	}
}
