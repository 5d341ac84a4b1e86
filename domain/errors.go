package domain

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrValidation           = errors.New("validation failed")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrOldPasswordIncorrect = errors.New("old password is incorrect")
	ErrPasswordReused       = errors.New("new password must be different from old password")
	ErrUnsupportedFileType  = errors.New("only image files are allowed")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotVerified    = errors.New("user is not verified")
	ErrNotAdmin           = errors.New("administrator role required")
	ErrEmailMismatch      = errors.New("email does not match token")
)

// OTP errors
var (
	ErrOTPExpired      = errors.New("otp has expired")
	ErrOTPInvalid      = errors.New("invalid otp code")
	ErrOTPMaxAttempts  = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound     = errors.New("otp not found")
	ErrOTPEmailMissing = errors.New("otp email cookie missing")
)

// Token errors
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenPurpose   = errors.New("token not valid for this operation")
)

// Authorization errors
var (
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("access denied")
	ErrPolicyExists   = errors.New("policy already exists")
	ErrPolicyNotFound = errors.New("policy not found")
)

// Content errors
var (
	ErrPageNotFound    = errors.New("page not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrContentTooLarge = errors.New("content too large")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNothingToUpdate = errors.New("no content or image provided")
)

// Dependency errors
var (
	ErrMediaUpload  = errors.New("media upload failed")
	ErrMediaDelete  = errors.New("media delete failed")
	ErrNotification = errors.New("notification delivery failed")
)

// ValidationError reports malformed or missing input on a named field
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidOTPError is a code mismatch that still leaves attempts on the code
type InvalidOTPError struct {
	AttemptsLeft int
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("invalid otp code, %d attempts left", e.AttemptsLeft)
}

// Is makes InvalidOTPError match ErrOTPInvalid
func (e *InvalidOTPError) Is(target error) bool {
	return target == ErrOTPInvalid
}
