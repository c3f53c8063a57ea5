package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`
	LeaveID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_notifications_leave_status"`

	// Status the notification reports on, part of the dedupe key so a
	// replayed event never produces a second row.
	LeaveStatus string `gorm:"type:varchar(20);not null;uniqueIndex:uq_notifications_leave_status"`
	Message     string `gorm:"type:text;not null"`
	IsRead      bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
