package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the auth-side view of the users table: just what login and
// token issuance need.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
}

func (Account) TableName() string {
	return "users"
}
