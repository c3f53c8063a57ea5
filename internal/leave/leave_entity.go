package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user"`

	// RequestedTo is who the request is routed to; ApprovedBy is whoever
	// actually decided, set only on a terminal decision.
	RequestedTo uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_requested_to"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`

	LeaveType LeaveType `gorm:"type:varchar(20);not null;default:'FULL_DAY'"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`

	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User *LeaveUser `gorm:"foreignKey:UserID;references:ID"`
}

// LeaveUser is the minimal join projection of the owning user for listings.
type LeaveUser struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	Name       string    `gorm:"column:name"`
	Email      string    `gorm:"column:email"`
	Role       string    `gorm:"column:role"`
	Department string    `gorm:"column:department"`
}

func (LeaveUser) TableName() string {
	return "users"
}

// LeaveBalance is the per-user pool of leave days for one academic year.
// AvailableLeave may go negative; the reconciler applies deltas unchecked.
type LeaveBalance struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_user_year"`
	AcademicYear string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_leave_balances_user_year"`

	TotalLeaves    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	UsedLeaves     decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	AvailableLeave decimal.Decimal `gorm:"type:numeric(6,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultTotalLeaves is the yearly allotment granted at registration.
var DefaultTotalLeaves = decimal.NewFromInt(20)

// NewBalance builds the initial balance row created alongside a new user.
func NewBalance(userID uuid.UUID, academicYear string) *LeaveBalance {
	return &LeaveBalance{
		ID:             uuid.New(),
		UserID:         userID,
		AcademicYear:   academicYear,
		TotalLeaves:    DefaultTotalLeaves,
		UsedLeaves:     decimal.Zero,
		AvailableLeave: DefaultTotalLeaves,
	}
}

// CurrentAcademicYear tags balances with the calendar year, matching how
// accounts are provisioned.
func CurrentAcademicYear(now time.Time) string {
	return now.UTC().Format("2006")
}
