package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	NotifyDecision(ctx context.Context, userID, leaveID, status string) (NotificationResponse, error)
	GetForUser(ctx context.Context, userID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) NotifyDecision(ctx context.Context, userID, leaveID, status string) (NotificationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return NotificationResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	lid, err := uuid.Parse(leaveID)
	if err != nil {
		return NotificationResponse{}, fmt.Errorf("invalid leave id: %w", err)
	}

	n := &Notification{
		ID:          uuid.New(),
		UserID:      uid,
		LeaveID:     lid,
		LeaveStatus: status,
		Message:     fmt.Sprintf("Your leave request has been %s", status),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("user_id", userID),
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}

	s.logger.Info("decision notification stored",
		zap.String("user_id", userID),
		zap.String("leave_id", leaveID),
		zap.String("status", status),
	)

	return mapToResponse(*n), nil
}

func (s *service) GetForUser(ctx context.Context, userID string) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByUser(ctx, userID, 50)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID.String(),
		LeaveID:     n.LeaveID.String(),
		LeaveStatus: n.LeaveStatus,
		Message:     n.Message,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
