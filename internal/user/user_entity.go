package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password   string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'STUDENT';index:idx_users_role"`
	Department string    `gorm:"type:varchar(20);not null;index:idx_users_department"`
	Gender     string    `gorm:"type:varchar(10)"`
	Phone      string    `gorm:"type:varchar(20)"`
	Address    string    `gorm:"type:text"`
	Image      string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
