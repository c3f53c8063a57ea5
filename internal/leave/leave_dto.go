package leave

type ApplyLeaveRequest struct {
	RequestedTo string `json:"requested_to" binding:"required,uuid"`
	LeaveType   string `json:"leave_type" binding:"required,oneof=FULL_DAY HALF_DAY MEDICAL CASUAL EMERGENCY"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required,min=5"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	RequestNumber string  `json:"request_number"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name,omitempty"`
	RequestedTo   string  `json:"requested_to"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int64   `json:"total_days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	DecidedAt     *string `json:"decided_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type BalanceResponse struct {
	UserID         string `json:"user_id"`
	AcademicYear   string `json:"academic_year"`
	TotalLeaves    string `json:"total_leaves"`
	UsedLeaves     string `json:"used_leaves"`
	AvailableLeave string `json:"available_leave"`
}

type DecisionResponse struct {
	Leave   LeaveResponse   `json:"leave"`
	Balance BalanceResponse `json:"balance"`
}
