package leave

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alok-mishra143/leave-management-backend/internal/domain"
	leaveerrors "github.com/alok-mishra143/leave-management-backend/internal/leave/errors"
)

func validApplyRequest() ApplyLeaveRequest {
	return ApplyLeaveRequest{
		RequestedTo: uuid.NewString(),
		LeaveType:   string(TypeFullDay),
		StartDate:   "2026-03-10",
		EndDate:     "2026-03-12",
		Reason:      "family function out of town",
	}
}

func TestValidateLeaveFields(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validApplyRequest()

		fields, err := validateLeaveFields(req)

		assert.NoError(t, err)
		assert.Equal(t, req.RequestedTo, fields.RequestedTo.String())
		assert.Equal(t, TypeFullDay, fields.LeaveType)
		assert.True(t, fields.StartDate.Before(fields.EndDate))
	})

	t.Run("same day range is valid", func(t *testing.T) {
		req := validApplyRequest()
		req.EndDate = req.StartDate

		_, err := validateLeaveFields(req)

		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		mutate  func(*ApplyLeaveRequest)
		wantErr error
	}{
		{
			"bad approver id",
			func(r *ApplyLeaveRequest) { r.RequestedTo = "not-a-uuid" },
			leaveerrors.ErrInvalidApproverID,
		},
		{
			"unknown leave type",
			func(r *ApplyLeaveRequest) { r.LeaveType = "SABBATICAL" },
			leaveerrors.ErrInvalidLeaveType,
		},
		{
			"bad start date format",
			func(r *ApplyLeaveRequest) { r.StartDate = "10-03-2026" },
			leaveerrors.ErrInvalidDateFormat,
		},
		{
			"bad end date format",
			func(r *ApplyLeaveRequest) { r.EndDate = "soon" },
			leaveerrors.ErrInvalidDateFormat,
		},
		{
			"end before start",
			func(r *ApplyLeaveRequest) { r.StartDate, r.EndDate = r.EndDate, r.StartDate },
			leaveerrors.ErrInvalidDateRange,
		},
		{
			"reason too short",
			func(r *ApplyLeaveRequest) { r.Reason = "sick" },
			leaveerrors.ErrReasonTooShort,
		},
		{
			"reason all whitespace",
			func(r *ApplyLeaveRequest) { r.Reason = "         " },
			leaveerrors.ErrReasonTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validApplyRequest()
			tt.mutate(&req)

			_, err := validateLeaveFields(req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoutingPolicy(t *testing.T) {
	tests := []struct {
		requester string
		approver  string
		want      bool
	}{
		{domain.RoleStudent, domain.RoleStaff, true},
		{domain.RoleStudent, domain.RoleHOD, false},
		{domain.RoleStudent, domain.RoleAdmin, false},
		{domain.RoleStaff, domain.RoleHOD, true},
		{domain.RoleStaff, domain.RoleStaff, false},
		{domain.RoleHOD, domain.RoleAdmin, true},
		{domain.RoleHOD, domain.RoleStaff, false},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{"UNKNOWN", domain.RoleStaff, false},
	}

	for _, tt := range tests {
		t.Run(tt.requester+"_to_"+tt.approver, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRouting.Allowed(tt.requester, tt.approver))
		})
	}
}
