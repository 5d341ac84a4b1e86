package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	messages []*gomail.Message
	err      error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.messages = append(f.messages, m...)
	return f.err
}

func TestSMTPServiceImpl_SendOTP(t *testing.T) {
	sender := &fakeSender{}
	svc := NewSMTPService("smtp.example.com", 587, "u", "p", "no-reply@example.com", "Site", 10*time.Minute)
	svc.sender = sender

	err := svc.SendOTP(context.Background(), "admin@example.com", "123456", domain.OTPPurposeLogin)

	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, []string{"admin@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Admin login verification code"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "123456")
}

func TestSMTPServiceImpl_SendOTP_Failure(t *testing.T) {
	svc := NewSMTPService("smtp.example.com", 587, "u", "p", "no-reply@example.com", "Site", 10*time.Minute)
	svc.sender = &fakeSender{err: errors.New("connection refused")}

	err := svc.SendOTP(context.Background(), "admin@example.com", "123456", domain.OTPPurposeLogin)

	assert.ErrorIs(t, err, domain.ErrNotification)
}

func TestRenderOTPMessage(t *testing.T) {
	tests := []struct {
		purpose domain.OTPPurpose
		subject string
	}{
		{domain.OTPPurposeLogin, "Admin login verification code"},
		{domain.OTPPurposeChangePassword, "Password change verification code"},
		{domain.OTPPurposeResetPassword, "Password reset verification code"},
	}

	for _, tt := range tests {
		t.Run(string(tt.purpose), func(t *testing.T) {
			msg := renderOTPMessage("004217", tt.purpose, 10*time.Minute)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Contains(t, msg.Text, "004217")
			assert.Contains(t, msg.Text, "10 minutes")
			assert.Contains(t, msg.HTML, "004217")
		})
	}
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		opts    Options
		want    string
		wantErr bool
	}{
		{name: "default is log", opts: Options{}, want: "*notifications.LogServiceImpl"},
		{name: "smtp", opts: Options{Provider: "smtp", SMTPHost: "h", SMTPPort: 25, From: "a@b.c"}, want: "*notifications.SMTPServiceImpl"},
		{name: "smtp missing host", opts: Options{Provider: "smtp", From: "a@b.c"}, wantErr: true},
		{name: "mailersend", opts: Options{Provider: "mailersend", MailerSendAPIKey: "k", From: "a@b.c"}, want: "*notifications.MailerSendServiceImpl"},
		{name: "mailersend missing key", opts: Options{Provider: "mailersend", From: "a@b.c"}, wantErr: true},
		{name: "unknown", opts: Options{Provider: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := New(tt.opts, logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fmt.Sprintf("%T", svc))
		})
	}
}

func TestLogServiceImpl_SendOTP(t *testing.T) {
	var buf bytes.Buffer
	svc := NewLogService(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, svc.SendOTP(context.Background(), "admin@example.com", "123456", domain.OTPPurposeLogin))

	out := buf.String()
	assert.True(t, strings.Contains(out, "admin@example.com") && strings.Contains(out, "123456"))
}
