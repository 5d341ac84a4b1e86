package notifications

import (
	"context"
	"log/slog"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// LogServiceImpl writes passcodes to the log instead of sending them.
// Only meant for local development.
type LogServiceImpl struct {
	logger *slog.Logger
}

// NewLogService creates a log-only notification service
func NewLogService(logger *slog.Logger) *LogServiceImpl {
	return &LogServiceImpl{logger: logger}
}

// SendOTP implements domain.NotificationService
func (l *LogServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	l.logger.InfoContext(ctx, "otp email (not sent)", "to", to, "purpose", string(purpose), "code", code)
	return nil
}

var _ domain.NotificationService = (*LogServiceImpl)(nil)
