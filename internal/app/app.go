package app

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alok-mishra143/leave-management-backend/internal/leave"
	"github.com/alok-mishra143/leave-management-backend/internal/notification"
	"github.com/alok-mishra143/leave-management-backend/internal/shared/connection"
	"github.com/alok-mishra143/leave-management-backend/internal/user"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&user.User{},
		&leave.LeaveRequest{},
		&leave.LeaveBalance{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	// Tables owned by raw-SQL repositories, outside gorm's entity set.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS academic_counters (
			academic_year varchar(10) NOT NULL,
			counter_type varchar(50) NOT NULL,
			last_value bigint NOT NULL DEFAULT 0,
			updated_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (academic_year, counter_type)
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id uuid PRIMARY KEY,
			request_id varchar(64),
			aggregate_type varchar(50) NOT NULL,
			aggregate_id uuid NOT NULL,
			event_type varchar(100) NOT NULL,
			topic varchar(200) NOT NULL,
			payload jsonb NOT NULL,
			status varchar(20) NOT NULL DEFAULT 'pending',
			retry_count int NOT NULL DEFAULT 0,
			error_message varchar(500),
			next_retry_at timestamptz,
			processed_at timestamptz,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_retry
			ON outbox_events (status, next_retry_at)`,
	}

	for _, stmt := range statements {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
