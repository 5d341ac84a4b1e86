package notifications

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MailerSendServiceImpl implements domain.NotificationService over the MailerSend API
type MailerSendServiceImpl struct {
	client   *mailersend.Mailersend
	from     mailersend.From
	validFor time.Duration
	timeout  time.Duration
}

// NewMailerSendService creates a new MailerSend notification service
func NewMailerSendService(apiKey, from, fromName string, validFor time.Duration) *MailerSendServiceImpl {
	return &MailerSendServiceImpl{
		client:   mailersend.NewMailersend(apiKey),
		from:     mailersend.From{Name: fromName, Email: from},
		validFor: validFor,
		timeout:  10 * time.Second,
	}
}

// SendOTP implements domain.NotificationService
func (m *MailerSendServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	content := renderOTPMessage(code, purpose, m.validFor)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: to}})
	msg.SetSubject(content.Subject)
	msg.SetText(content.Text)
	msg.SetHTML(content.HTML)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: mailersend: %v", domain.ErrNotification, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%w: mailersend status=%d body=%s", domain.ErrNotification, res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

var _ domain.NotificationService = (*MailerSendServiceImpl)(nil)
