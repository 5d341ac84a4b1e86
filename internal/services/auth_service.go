package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MinPasswordLength is the shortest accepted new password
const MinPasswordLength = 6

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	auditLogger domain.AuditLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	auditLogger domain.AuditLogger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		auditLogger: auditLogger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) audit(ctx context.Context, event *domain.AuditEvent) {
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, event)
	}
}

// findAdmin loads the account behind email and requires an administrator role
func (s *AuthServiceImpl) findAdmin(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.ErrNotAdmin
	}
	return user, nil
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) error {
	err := s.otpSvc.Issue(ctx, user, purpose)
	s.audit(ctx, domain.NewAuditEvent(domain.OTPRequestEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("purpose", string(purpose)).
		WithError(err))
	return err
}

func (s *AuthServiceImpl) verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("otp", "OTP is required")
	}
	user, err := s.otpSvc.Verify(ctx, email, strings.TrimSpace(code), purpose)
	if err != nil {
		s.audit(ctx, domain.NewAuditEvent(domain.OTPVerifyFailureEvent, 0).
			WithEmail(email).
			WithMetadata("purpose", string(purpose)).
			WithError(err))
		return nil, err
	}
	s.audit(ctx, domain.NewAuditEvent(domain.OTPVerifyEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("purpose", string(purpose)))
	return user, nil
}

// RequestLoginOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestLoginOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.NewValidationError("email", "Email is required")
	}
	user, err := s.findAdmin(ctx, email)
	if err != nil {
		return err
	}
	return s.issue(ctx, user, domain.OTPPurposeLogin)
}

// VerifyLoginOTP implements domain.AuthService. The returned session token
// authorizes the password step of the login.
func (s *AuthServiceImpl) VerifyLoginOTP(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domain.NewValidationError("email", "Email is required")
	}
	user, err := s.verify(ctx, email, code, domain.OTPPurposeLogin)
	if err != nil {
		return "", err
	}
	token, err := s.tokenSvc.GenerateScopedToken(user, domain.PurposeLoginSession)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, sessionToken, email, password string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Validate(sessionToken, domain.PurposeLoginSession)
	if err != nil {
		return nil, err
	}

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "Email and password are required")
	}
	if email != normalizeEmail(claims.Email) {
		s.audit(ctx, domain.NewAuditEvent(domain.AdminLoginFailureEvent, claims.UserID).
			WithEmail(email).
			WithError(domain.ErrEmailMismatch))
		return nil, domain.ErrEmailMismatch
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsAdmin() {
		return nil, domain.ErrNotAdmin
	}
	if !user.Verified {
		return nil, domain.ErrUserNotVerified
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit(ctx, domain.NewAuditEvent(domain.AdminLoginFailureEvent, user.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.audit(ctx, domain.NewAuditEvent(domain.AdminLoginEvent, user.ID).WithEmail(user.Email))

	return &domain.AuthResult{User: user, AccessToken: accessToken}, nil
}

// RequestPasswordChangeOTP implements domain.AuthService. email is optional;
// when given it must be the address the access token was issued to.
func (s *AuthServiceImpl) RequestPasswordChangeOTP(ctx context.Context, accessToken, email string) (*domain.OTPSession, error) {
	claims, err := s.tokenSvc.Validate(accessToken, domain.PurposeAccess)
	if err != nil {
		return nil, err
	}
	tokenEmail := normalizeEmail(claims.Email)
	if email = normalizeEmail(email); email != "" && email != tokenEmail {
		return nil, domain.ErrEmailMismatch
	}
	token, err := s.issuePasswordChangeOTP(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.OTPSession{Token: token, Email: tokenEmail}, nil
}

// ResendPasswordChangeOTP implements domain.AuthService. email comes from the
// otpEmail cookie set by the request step.
func (s *AuthServiceImpl) ResendPasswordChangeOTP(ctx context.Context, otpSessionToken, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domain.ErrOTPEmailMissing
	}
	claims, err := s.tokenSvc.Validate(otpSessionToken, domain.PurposeChangePasswordOTP)
	if err != nil {
		return "", err
	}
	if email != normalizeEmail(claims.Email) {
		return "", domain.ErrEmailMismatch
	}
	return s.issuePasswordChangeOTP(ctx, claims.UserID)
}

func (s *AuthServiceImpl) issuePasswordChangeOTP(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.issue(ctx, user, domain.OTPPurposeChangePassword); err != nil {
		return "", err
	}
	token, err := s.tokenSvc.GenerateScopedToken(user, domain.PurposeChangePasswordOTP)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp session token: %w", err)
	}
	return token, nil
}

// VerifyPasswordChangeOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyPasswordChangeOTP(ctx context.Context, otpSessionToken, code string) (string, error) {
	claims, err := s.tokenSvc.Validate(otpSessionToken, domain.PurposeChangePasswordOTP)
	if err != nil {
		return "", err
	}
	user, err := s.verify(ctx, normalizeEmail(claims.Email), code, domain.OTPPurposeChangePassword)
	if err != nil {
		return "", err
	}
	token, err := s.tokenSvc.GenerateScopedToken(user, domain.PurposeChangePassword)
	if err != nil {
		return "", fmt.Errorf("failed to generate change password token: %w", err)
	}
	return token, nil
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, changeToken string, req domain.PasswordChange) (*domain.User, error) {
	claims, err := s.tokenSvc.Validate(changeToken, domain.PurposeChangePassword)
	if err != nil {
		return nil, err
	}
	if req.OldPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return nil, domain.NewValidationError("", "All password fields are required")
	}
	if err := checkNewPassword(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, req.OldPassword) {
		return nil, domain.ErrOldPasswordIncorrect
	}
	if req.NewPassword == req.OldPassword {
		return nil, domain.ErrPasswordReused
	}

	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}
	s.audit(ctx, domain.NewAuditEvent(domain.PasswordChangedEvent, user.ID).WithEmail(user.Email))
	return user, nil
}

// RequestPasswordResetOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestPasswordResetOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.NewValidationError("email", "Email is required")
	}
	user, err := s.findAdmin(ctx, email)
	if err != nil {
		return err
	}
	return s.issue(ctx, user, domain.OTPPurposeResetPassword)
}

// VerifyPasswordResetOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domain.NewValidationError("email", "Email is required")
	}
	user, err := s.verify(ctx, email, code, domain.OTPPurposeResetPassword)
	if err != nil {
		return "", err
	}
	token, err := s.tokenSvc.GenerateScopedToken(user, domain.PurposeResetPassword)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return token, nil
}

// ResetPassword implements domain.AuthService. The old password is not required.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, resetToken string, req domain.PasswordChange) (*domain.User, error) {
	claims, err := s.tokenSvc.Validate(resetToken, domain.PurposeResetPassword)
	if err != nil {
		return nil, err
	}
	if req.NewPassword == "" || req.ConfirmPassword == "" {
		return nil, domain.NewValidationError("", "New password and confirmation are required")
	}
	if err := checkNewPassword(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if s.passwordSvc.Verify(user.PasswordHash, req.NewPassword) {
		return nil, domain.ErrPasswordReused
	}

	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}
	s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, user.ID).WithEmail(user.Email))
	return user, nil
}

func checkNewPassword(req domain.PasswordChange) error {
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(req.NewPassword) < MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}

func (s *AuthServiceImpl) setPassword(ctx context.Context, user *domain.User, password string) error {
	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ListUsers implements domain.AuthService
func (s *AuthServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
