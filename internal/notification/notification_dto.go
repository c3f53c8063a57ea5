package notification

type NotificationResponse struct {
	ID          string `json:"id"`
	LeaveID     string `json:"leave_id"`
	LeaveStatus string `json:"leave_status"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}
