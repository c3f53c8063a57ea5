package events

import "time"

const LeaveDecisionTopic = "campus.leave.decision.v1"

type LeaveDecisionEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	LeaveID      string    `json:"leave_id"`
	UserID       string    `json:"user_id"`
	DecidedBy    string    `json:"decided_by"`
	Status       string    `json:"status"`
	BalanceDelta string    `json:"balance_delta"`
	OccurredAt   time.Time `json:"occurred_at"`
}
