package notifications

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// Options selects and configures the passcode delivery backend
type Options struct {
	Provider string // smtp, mailersend or log

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	MailerSendAPIKey string

	From     string
	FromName string
	ValidFor time.Duration
}

// New returns the configured notification backend
func New(opts Options, logger *slog.Logger) (domain.NotificationService, error) {
	switch opts.Provider {
	case "smtp":
		if opts.SMTPHost == "" || opts.From == "" {
			return nil, fmt.Errorf("smtp provider requires SMTP_HOST and MAIL_FROM")
		}
		return NewSMTPService(opts.SMTPHost, opts.SMTPPort, opts.SMTPUsername, opts.SMTPPassword, opts.From, opts.FromName, opts.ValidFor), nil
	case "mailersend":
		if opts.MailerSendAPIKey == "" || opts.From == "" {
			return nil, fmt.Errorf("mailersend provider requires MAILERSEND_API_KEY and MAIL_FROM")
		}
		return NewMailerSendService(opts.MailerSendAPIKey, opts.From, opts.FromName, opts.ValidFor), nil
	case "log", "":
		return NewLogService(logger), nil
	default:
		return nil, fmt.Errorf("unknown notification provider %q", opts.Provider)
	}
}
