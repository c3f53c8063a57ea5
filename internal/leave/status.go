package leave

import "github.com/shopspring/decimal"

// Status is the single enumeration shared by request validation and the
// balance reconciler.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status is a decision outcome.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type LeaveType string

const (
	TypeFullDay   LeaveType = "FULL_DAY"
	TypeHalfDay   LeaveType = "HALF_DAY"
	TypeMedical   LeaveType = "MEDICAL"
	TypeCasual    LeaveType = "CASUAL"
	TypeEmergency LeaveType = "EMERGENCY"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeFullDay, TypeHalfDay, TypeMedical, TypeCasual, TypeEmergency:
		return true
	}
	return false
}

var (
	weightHalf = decimal.NewFromFloat(0.5)
	weightFull = decimal.NewFromInt(1)
)

// Weight is the fraction of a leave day each calendar day of this type
// consumes.
func (t LeaveType) Weight() decimal.Decimal {
	if t == TypeHalfDay {
		return weightHalf
	}
	return weightFull
}
