package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	leaveerrors "github.com/alok-mishra143/leave-management-backend/internal/leave/errors"
)

// Decision is the paired update a status transition produces. The caller
// persists NewStatus/ApprovedBy on the request and BalanceDelta on the
// owner's balance as one atomic unit.
type Decision struct {
	NewStatus    Status
	ApprovedBy   uuid.UUID
	BalanceDelta decimal.Decimal
}

// DaysSpanned is the inclusive calendar-day span between two dates,
// independent of month boundaries and the time-of-day of either bound.
func DaysSpanned(startDate, endDate time.Time) int64 {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	return int64(end.Sub(start).Hours()/24) + 1
}

// Cost is the number of leave days a request consumes when approved:
// per-day weight times the inclusive day span.
func Cost(leaveType LeaveType, startDate, endDate time.Time) decimal.Decimal {
	days := decimal.NewFromInt(DaysSpanned(startDate, endDate))
	return leaveType.Weight().Mul(days)
}

// Reconcile computes the balance delta for moving a request from current
// to proposed and returns the combined update to persist. It is pure: no
// lookups, no writes.
//
// Transition table (delta applied to available leave):
//
//	PENDING  -> APPROVED   -cost
//	PENDING  -> REJECTED    0
//	APPROVED -> REJECTED   +cost
//	REJECTED -> APPROVED   -cost
//
// Same-status proposals fail with ErrNoOpTransition; anything that is not
// a decision (including re-opening to PENDING) fails with
// ErrUnsupportedTransition.
func Reconcile(
	current, proposed Status,
	leaveType LeaveType,
	startDate, endDate time.Time,
	actingUser uuid.UUID,
) (Decision, error) {
	if proposed == current {
		return Decision{}, leaveerrors.ErrNoOpTransition
	}
	if !proposed.Terminal() {
		return Decision{}, leaveerrors.ErrUnsupportedTransition
	}

	cost := Cost(leaveType, startDate, endDate)

	var delta decimal.Decimal
	switch {
	case current == StatusPending && proposed == StatusApproved:
		delta = cost.Neg()
	case current == StatusPending && proposed == StatusRejected:
		delta = decimal.Zero
	case current == StatusApproved && proposed == StatusRejected:
		delta = cost
	case current == StatusRejected && proposed == StatusApproved:
		delta = cost.Neg()
	default:
		return Decision{}, leaveerrors.ErrUnsupportedTransition
	}

	return Decision{
		NewStatus:    proposed,
		ApprovedBy:   actingUser,
		BalanceDelta: delta,
	}, nil
}
