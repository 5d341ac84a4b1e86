package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"gopkg.in/gomail.v2"
)

// mailSender is the part of gomail.Dialer used to deliver messages
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPServiceImpl implements domain.NotificationService over SMTP
type SMTPServiceImpl struct {
	sender   mailSender
	from     string
	fromName string
	validFor time.Duration
}

// NewSMTPService creates a new SMTP notification service
func NewSMTPService(host string, port int, username, password, from, fromName string, validFor time.Duration) *SMTPServiceImpl {
	return &SMTPServiceImpl{
		sender:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
		validFor: validFor,
	}
}

// SendOTP implements domain.NotificationService
func (s *SMTPServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderOTPMessage(code, purpose, s.validFor)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", content.Subject)
	m.SetBody("text/plain", content.Text)
	m.AddAlternative("text/html", content.HTML)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: smtp: %v", domain.ErrNotification, err)
	}
	return nil
}

var _ domain.NotificationService = (*SMTPServiceImpl)(nil)
