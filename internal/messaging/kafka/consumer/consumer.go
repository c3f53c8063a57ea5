package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/alok-mishra143/leave-management-backend/internal/events"
	"github.com/alok-mishra143/leave-management-backend/internal/notification"
)

// ConsumeLeaveDecisions turns decision events into user notifications.
// Redelivered events hit the notification unique index and are skipped.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.NotifyDecision(ctx, event.UserID, event.LeaveID, event.Status)
		if err != nil {
			if isDuplicateNotification(err) {
				log.Warn("notification already exists for event, skipping",
					zap.String("leave_id", event.LeaveID),
					zap.String("status", event.Status),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create decision notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("notification created from leave_decision event",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.String("status", event.Status),
		)
	}
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notifications_leave_status"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notifications_leave_status")
}
