package leave

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	leaveerrors "github.com/alok-mishra143/leave-management-backend/internal/leave/errors"
)

const minReasonLength = 5

// RoutingPolicy maps a requester role onto the approver roles that may
// receive its leave requests. Kept as configuration rather than branching
// on roles inside the validation code.
type RoutingPolicy map[string][]string

// DefaultRouting: students route to staff, staff to their HOD, HODs and
// admins to admin.
var DefaultRouting = RoutingPolicy{
	domain.RoleStudent: {domain.RoleStaff},
	domain.RoleStaff:   {domain.RoleHOD},
	domain.RoleHOD:     {domain.RoleAdmin},
	domain.RoleAdmin:   {domain.RoleAdmin},
}

func (p RoutingPolicy) Allowed(requesterRole, approverRole string) bool {
	for _, role := range p[requesterRole] {
		if role == approverRole {
			return true
		}
	}
	return false
}

// leaveFields is the validated shape shared by create and edit.
type leaveFields struct {
	RequestedTo uuid.UUID
	LeaveType   LeaveType
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// validateLeaveFields enforces the structural invariants of a request:
// parseable ids and dates, end date not before start date, a known leave
// type, and a minimum-length reason. Note requested_to may equal the
// owner; only routing rules constrain who receives the request.
func validateLeaveFields(req ApplyLeaveRequest) (leaveFields, error) {
	requestedTo, err := uuid.Parse(req.RequestedTo)
	if err != nil {
		return leaveFields{}, leaveerrors.ErrInvalidApproverID
	}

	leaveType := LeaveType(req.LeaveType)
	if !leaveType.Valid() {
		return leaveFields{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return leaveFields{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return leaveFields{}, err
	}
	if startDate.After(endDate) {
		return leaveFields{}, leaveerrors.ErrInvalidDateRange
	}

	if len(strings.TrimSpace(req.Reason)) < minReasonLength {
		return leaveFields{}, leaveerrors.ErrReasonTooShort
	}

	return leaveFields{
		RequestedTo: requestedTo,
		LeaveType:   leaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
