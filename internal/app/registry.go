package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/auth"
	"github.com/alok-mishra143/leave-management-backend/internal/leave"
	"github.com/alok-mishra143/leave-management-backend/internal/messaging/kafka"
	"github.com/alok-mishra143/leave-management-backend/internal/notification"
	"github.com/alok-mishra143/leave-management-backend/internal/rbac"
	"github.com/alok-mishra143/leave-management-backend/internal/shared/counter"
	"github.com/alok-mishra143/leave-management-backend/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, counterRepo, outboxRepo, rdb)
	notificationService := notification.NewService(notificationRepo)
	userService := user.NewService(db, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	userHandler := user.NewHandler(userService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
