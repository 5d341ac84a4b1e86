package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// SentOTP is one passcode handed to MockNotificationService
type SentOTP struct {
	To      string
	Code    string
	Purpose domain.OTPPurpose
}

// MockNotificationService implements domain.NotificationService and records
// every delivery
type MockNotificationService struct {
	SendOTPFunc func(ctx context.Context, to, code string, purpose domain.OTPPurpose) error

	mu   sync.Mutex
	Sent []SentOTP
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentOTP{To: to, Code: code, Purpose: purpose})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, to, code, purpose)
	}
	return nil
}

// LastCode returns the most recently sent code, or "" when nothing was sent
func (m *MockNotificationService) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Code
}

// MockMediaService implements domain.MediaService. By default uploads succeed
// with a URL derived from folder and public id, and every call is recorded.
type MockMediaService struct {
	UploadFunc          func(ctx context.Context, file *domain.UploadFile, folder, publicID string) (*domain.ImageRef, error)
	DeleteFunc          func(ctx context.Context, publicID string) error
	PublicIDFromURLFunc func(url string) string

	mu       sync.Mutex
	Uploaded []string
	Deleted  []string
}

func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) Upload(ctx context.Context, file *domain.UploadFile, folder, publicID string) (*domain.ImageRef, error) {
	if file != nil && file.Content != nil {
		_, _ = io.Copy(io.Discard, file.Content)
	}
	m.mu.Lock()
	m.Uploaded = append(m.Uploaded, folder+"/"+publicID)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file, folder, publicID)
	}
	id := folder + "/" + publicID
	return &domain.ImageRef{URL: fmt.Sprintf("https://media.test/upload/v1/%s.png", id), PublicID: id}, nil
}

func (m *MockMediaService) Delete(ctx context.Context, publicID string) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, publicID)
	m.mu.Unlock()

	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, publicID)
	}
	return nil
}

// PublicIDFromURL defaults to the path after /upload/v1/ without extension
func (m *MockMediaService) PublicIDFromURL(url string) string {
	if m.PublicIDFromURLFunc != nil {
		return m.PublicIDFromURLFunc(url)
	}
	_, rest, ok := strings.Cut(url, "/upload/v1/")
	if !ok {
		return ""
	}
	if dot := strings.LastIndex(rest, "."); dot >= 0 {
		rest = rest[:dot]
	}
	return rest
}

// MockAuditLogger implements domain.AuditLogger and keeps the events
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in order
func (m *MockAuditLogger) Types() []domain.AuditEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.AuditEventType, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.EventType
	}
	return types
}

// Compile-time interface compliance verification
var (
	_ domain.NotificationService = (*MockNotificationService)(nil)
	_ domain.MediaService        = (*MockMediaService)(nil)
	_ domain.AuditLogger         = (*MockAuditLogger)(nil)
)
