package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// OTP events
	OTPRequestEvent       AuditEventType = "OTP_REQUESTED"
	OTPVerifyEvent        AuditEventType = "OTP_VERIFIED"
	OTPVerifyFailureEvent AuditEventType = "OTP_VERIFICATION_FAILED"

	// Authentication events
	AdminLoginEvent        AuditEventType = "ADMIN_LOGIN"
	AdminLoginFailureEvent AuditEventType = "ADMIN_LOGIN_FAILED"
	PasswordChangedEvent   AuditEventType = "PASSWORD_CHANGED"
	PasswordResetEvent     AuditEventType = "PASSWORD_RESET"

	// Content events
	SectionUpdatedEvent   AuditEventType = "SECTION_UPDATED"
	ContactSubmittedEvent AuditEventType = "CONTACT_SUBMITTED"
	ContactDeletedEvent   AuditEventType = "CONTACT_DELETED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithEmail adds email to the audit event
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithError marks the event as failed
func (e *AuditEvent) WithError(err error) *AuditEvent {
	if err != nil {
		e.ErrorMsg = err.Error()
		e.Success = false
	}
	return e
}

// WithMetadata adds one metadata entry
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
