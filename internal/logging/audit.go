package logging

import (
	"context"
	"log/slog"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// AuditLogger writes audit events as structured log lines. Failed events are
// logged at warn level.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.With("component", "audit")}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	attrs := []any{
		"event_type", string(event.EventType),
		"success", event.Success,
		"timestamp", event.Timestamp,
	}
	if event.UserID != 0 {
		attrs = append(attrs, "user_id", event.UserID)
	}
	if event.Email != "" {
		attrs = append(attrs, "email", event.Email)
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, "metadata", event.Metadata)
	}

	logger := FromContext(ctx, a.logger)
	if !event.Success {
		logger.WarnContext(ctx, "audit event", append(attrs, "error", event.ErrorMsg)...)
		return
	}
	logger.InfoContext(ctx, "audit event", attrs...)
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
