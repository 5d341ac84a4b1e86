package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("Contact_Email", "is required"))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected wrapped ValidationError to match ErrValidation")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected errors.As to find ValidationError")
	}
	if vErr.Field != "Contact_Email" {
		t.Errorf("expected field Contact_Email, got %s", vErr.Field)
	}
}

func TestInvalidOTPError(t *testing.T) {
	err := &InvalidOTPError{AttemptsLeft: 2}

	if !errors.Is(err, ErrOTPInvalid) {
		t.Error("expected InvalidOTPError to match ErrOTPInvalid")
	}
	if errors.Is(err, ErrOTPMaxAttempts) {
		t.Error("InvalidOTPError must not match ErrOTPMaxAttempts")
	}
	if err.Error() != "invalid otp code, 2 attempts left" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestUser_IsAdmin(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleAdmin, true},
		{RoleSuperAdmin, true},
		{"editor", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			u := &User{Role: tt.role}
			if u.IsAdmin() != tt.expected {
				t.Errorf("IsAdmin() for %q = %v, want %v", tt.role, u.IsAdmin(), tt.expected)
			}
		})
	}
}
