// Package response writes the JSON envelopes of the API and maps domain
// errors to HTTP statuses.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/logging"
)

// ServerError is the only message a client sees for unexpected failures
const ServerError = "Server error"

type mapping struct {
	err     error
	status  int
	message string
}

// mappings is checked in order; the first errors.Is match wins
var mappings = []mapping{
	// validation
	{domain.ErrOTPInvalid, http.StatusBadRequest, "Invalid OTP"},
	{domain.ErrPasswordMismatch, http.StatusBadRequest, "New password and confirm password do not match"},
	{domain.ErrPasswordTooShort, http.StatusBadRequest, "New password must be at least 6 characters"},
	{domain.ErrOldPasswordIncorrect, http.StatusBadRequest, "Old password is incorrect"},
	{domain.ErrPasswordReused, http.StatusBadRequest, "New password must be different from old password"},
	{domain.ErrUnsupportedFileType, http.StatusBadRequest, "Only image files are allowed (jpg, png, webp, gif)"},
	{domain.ErrNothingToUpdate, http.StatusBadRequest, "Content to update or image file is required"},
	{domain.ErrContentTooLarge, http.StatusBadRequest, "Content size exceeds limit"},
	// 400 rather than 401: the admin frontend restarts the login flow on this status
	{domain.ErrEmailMismatch, http.StatusBadRequest, "Email mismatch. Start from email verification."},
	{domain.ErrOTPEmailMissing, http.StatusBadRequest, "Request OTP first"},
	{domain.ErrOTPNotFound, http.StatusBadRequest, "No OTP found. Request a new one."},
	{domain.ErrOTPExpired, http.StatusBadRequest, "OTP expired. Request a new one."},
	{domain.ErrValidation, http.StatusBadRequest, "Validation error"},

	// not found
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrPageNotFound, http.StatusNotFound, "Page not found"},
	{domain.ErrSectionNotFound, http.StatusNotFound, "Section not found"},
	{domain.ErrContactNotFound, http.StatusNotFound, "Contact not found"},
	{domain.ErrPolicyNotFound, http.StatusNotFound, "Policy not found"},

	// authentication
	{domain.ErrTokenMissing, http.StatusUnauthorized, "Unauthorized. No token provided."},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrTokenInvalid, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrTokenMalformed, http.StatusUnauthorized, "Invalid or expired token"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid password"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},

	// authorization
	{domain.ErrTokenPurpose, http.StatusForbidden, "Invalid token purpose"},
	{domain.ErrNotAdmin, http.StatusForbidden, "Access denied. Only admins are allowed"},
	{domain.ErrUserNotVerified, http.StatusForbidden, "Account not verified"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
	{domain.ErrOTPMaxAttempts, http.StatusForbidden, "Too many failed attempts. Request a new OTP."},

	// conflict
	{domain.ErrPolicyExists, http.StatusConflict, "Policy already exists"},
	{domain.ErrUserAlreadyExists, http.StatusConflict, "User already exists"},

	// dependencies
	{domain.ErrNotification, http.StatusInternalServerError, "Failed to send OTP email"},
	{domain.ErrMediaUpload, http.StatusInternalServerError, "Failed to upload image"},
	{domain.ErrMediaDelete, http.StatusInternalServerError, "Delete failed"},
}

// Status returns the HTTP status and client message for err
func Status(err error) (int, string) {
	var otpErr *domain.InvalidOTPError
	if errors.As(err, &otpErr) {
		return http.StatusBadRequest, fmt.Sprintf("Invalid OTP. Attempts left: %d", otpErr.AttemptsLeft)
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, ServerError
}

// OK writes 200 with message merged into fields
func OK(c *gin.Context, message string, fields gin.H) {
	write(c, http.StatusOK, message, fields)
}

// Created writes 201 with message merged into fields
func Created(c *gin.Context, message string, fields gin.H) {
	write(c, http.StatusCreated, message, fields)
}

// Message writes a bare {message} body with status
func Message(c *gin.Context, status int, message string) {
	write(c, status, message, nil)
}

// Error maps err and aborts the request. Server-side failures are logged with
// the request's logger and never exposed.
func Error(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrFileTooLarge) {
		FileTooLarge(c)
		return
	}
	status, message := Status(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context(), slog.Default()).
			ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	body := gin.H{"message": message}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		body["field"] = vErr.Field
	}
	c.AbortWithStatusJSON(status, body)
}

// FileTooLarge is the oversized-upload reply the frontend expects
func FileTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": "File too large"})
}

func write(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}
