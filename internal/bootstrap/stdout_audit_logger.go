package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alok-mishra143/leave-management-backend/internal/shared/contextutil"
)

// StdoutAuditLogger writes server lifecycle audit events through the
// process logger. The leave system keeps no audit table; the log stream
// is the record.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}

	zap.L().Named("audit").Info("audit event", fields...)
}
