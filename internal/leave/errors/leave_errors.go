package leaveerrors

import (
	"net/http"

	"github.com/alok-mishra143/leave-management-backend/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidApproverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requested_to id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"reason must be at least 5 characters long",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave status",
		http.StatusBadRequest,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeInvalidApprover,
		"requested_to does not resolve to an existing user",
		http.StatusBadRequest,
	)
	ErrRoutingNotAllowed = apperror.New(
		apperror.CodeInvalidApprover,
		"requests from this role cannot be routed to that approver",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"leave request belongs to another user",
		http.StatusForbidden,
	)
	ErrLeaveNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be edited",
		http.StatusBadRequest,
	)
	ErrNoOpTransition = apperror.New(
		apperror.CodeNoOpTransition,
		"proposed status equals the current status",
		http.StatusBadRequest,
	)
	ErrUnsupportedTransition = apperror.New(
		apperror.CodeUnsupportedTransition,
		"proposed status is not a supported decision",
		http.StatusBadRequest,
	)
	ErrStaleState = apperror.New(
		apperror.CodeStaleState,
		"leave request was decided concurrently, reload and retry",
		http.StatusConflict,
	)
)
