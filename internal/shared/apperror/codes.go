package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInvalidApprover       = "INVALID_APPROVER"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeInvalidState          = "INVALID_STATE"
	CodeNoOpTransition        = "NO_OP_TRANSITION"
	CodeUnsupportedTransition = "UNSUPPORTED_TRANSITION"
	CodeStaleState            = "STALE_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
