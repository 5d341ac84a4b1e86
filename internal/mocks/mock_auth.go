package mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MockPasswordService implements domain.PasswordService. The default hash is
// the password with a "hashed_" prefix.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService with readable tokens of the
// form "<purpose>:<user id>:<email>"
type MockTokenService struct {
	GenerateScopedTokenFunc func(user *domain.User, purpose domain.TokenPurpose) (string, error)
	ValidateFunc            func(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	return m.GenerateScopedToken(user, domain.PurposeAccess)
}

func (m *MockTokenService) GenerateScopedToken(user *domain.User, purpose domain.TokenPurpose) (string, error) {
	if m.GenerateScopedTokenFunc != nil {
		return m.GenerateScopedTokenFunc(user, purpose)
	}
	return fmt.Sprintf("%s:%d:%s", purpose, user.ID, user.Email), nil
}

// Validate parses tokens produced by GenerateScopedToken
func (m *MockTokenService) Validate(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token, purpose)
	}
	if token == "" {
		return nil, domain.ErrTokenMissing
	}
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 {
		return nil, domain.ErrTokenMalformed
	}
	var id uint
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	if domain.TokenPurpose(parts[0]) != purpose {
		return nil, domain.ErrTokenPurpose
	}
	return &domain.TokenClaims{UserID: id, Email: parts[2], Role: domain.RoleAdmin, Purpose: purpose}, nil
}

// MockOTPService implements domain.OTPService
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) error
	VerifyFunc func(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.User, error)
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, purpose)
	}
	return nil
}

func (m *MockOTPService) Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code, purpose)
	}
	return nil, domain.ErrOTPNotFound
}

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RequestLoginOTPFunc          func(ctx context.Context, email string) error
	VerifyLoginOTPFunc           func(ctx context.Context, email, code string) (string, error)
	LoginFunc                    func(ctx context.Context, sessionToken, email, password string) (*domain.AuthResult, error)
	RequestPasswordChangeOTPFunc func(ctx context.Context, accessToken, email string) (*domain.OTPSession, error)
	ResendPasswordChangeOTPFunc  func(ctx context.Context, otpSessionToken, email string) (string, error)
	VerifyPasswordChangeOTPFunc  func(ctx context.Context, otpSessionToken, code string) (string, error)
	ChangePasswordFunc           func(ctx context.Context, changeToken string, req domain.PasswordChange) (*domain.User, error)
	RequestPasswordResetOTPFunc  func(ctx context.Context, email string) error
	VerifyPasswordResetOTPFunc   func(ctx context.Context, email, code string) (string, error)
	ResetPasswordFunc            func(ctx context.Context, resetToken string, req domain.PasswordChange) (*domain.User, error)
	GetProfileFunc               func(ctx context.Context, userID uint) (*domain.User, error)
	ListUsersFunc                func(ctx context.Context) ([]*domain.User, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RequestLoginOTP(ctx context.Context, email string) error {
	if m.RequestLoginOTPFunc != nil {
		return m.RequestLoginOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) VerifyLoginOTP(ctx context.Context, email, code string) (string, error) {
	if m.VerifyLoginOTPFunc != nil {
		return m.VerifyLoginOTPFunc(ctx, email, code)
	}
	return "session-token", nil
}

func (m *MockAuthService) Login(ctx context.Context, sessionToken, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, sessionToken, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RequestPasswordChangeOTP(ctx context.Context, accessToken, email string) (*domain.OTPSession, error) {
	if m.RequestPasswordChangeOTPFunc != nil {
		return m.RequestPasswordChangeOTPFunc(ctx, accessToken, email)
	}
	return &domain.OTPSession{Token: "otp-session-token", Email: email}, nil
}

func (m *MockAuthService) ResendPasswordChangeOTP(ctx context.Context, otpSessionToken, email string) (string, error) {
	if m.ResendPasswordChangeOTPFunc != nil {
		return m.ResendPasswordChangeOTPFunc(ctx, otpSessionToken, email)
	}
	return "otp-session-token", nil
}

func (m *MockAuthService) VerifyPasswordChangeOTP(ctx context.Context, otpSessionToken, code string) (string, error) {
	if m.VerifyPasswordChangeOTPFunc != nil {
		return m.VerifyPasswordChangeOTPFunc(ctx, otpSessionToken, code)
	}
	return "change-password-token", nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, changeToken string, req domain.PasswordChange) (*domain.User, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, changeToken, req)
	}
	return &domain.User{}, nil
}

func (m *MockAuthService) RequestPasswordResetOTP(ctx context.Context, email string) error {
	if m.RequestPasswordResetOTPFunc != nil {
		return m.RequestPasswordResetOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error) {
	if m.VerifyPasswordResetOTPFunc != nil {
		return m.VerifyPasswordResetOTPFunc(ctx, email, code)
	}
	return "reset-password-token", nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, resetToken string, req domain.PasswordChange) (*domain.User, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, resetToken, req)
	}
	return &domain.User{}, nil
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []*domain.User{}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService = (*MockPasswordService)(nil)
	_ domain.TokenService    = (*MockTokenService)(nil)
	_ domain.OTPService      = (*MockOTPService)(nil)
	_ domain.AuthService     = (*MockAuthService)(nil)
)
