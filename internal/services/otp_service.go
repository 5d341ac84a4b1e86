package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// OTPServiceImpl implements domain.OTPService with codes stored on the user record
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	userRepo        domain.UserRepository
	config          OTPConfig
	now             func() time.Time
	generate        func() (string, error)
}

type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
}

// DefaultOTPConfig is a 10 minute code allowing three wrong guesses
var DefaultOTPConfig = OTPConfig{TTL: 10 * time.Minute, MaxAttempts: 3}

// NewOTPService creates a new OTP service
func NewOTPService(notificationSvc domain.NotificationService, userRepo domain.UserRepository, config OTPConfig) *OTPServiceImpl {
	if config.TTL <= 0 {
		config.TTL = DefaultOTPConfig.TTL
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultOTPConfig.MaxAttempts
	}
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		config:          config,
		now:             time.Now,
		generate:        generateSecureCode,
	}
}

// Issue implements domain.OTPService. The code is persisted before it is sent
// and stays stored when delivery fails.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) error {
	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.userRepo.SetOTP(ctx, user.ID, code, purpose, s.now().Add(s.config.TTL)); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.notificationSvc.SendOTP(ctx, user.Email, code, purpose); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// Verify implements domain.OTPService
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.HasPendingOTP(purpose) {
		return nil, domain.ErrOTPNotFound
	}

	if s.now().After(*user.OTPExpiresAt) {
		if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to clear expired OTP: %w", err)
		}
		return nil, domain.ErrOTPExpired
	}

	if user.OTPAttempts >= s.config.MaxAttempts {
		if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to clear exhausted OTP: %w", err)
		}
		return nil, domain.ErrOTPMaxAttempts
	}

	if code != user.OTPCode {
		attempts, err := s.userRepo.IncrementOTPAttempts(ctx, user.ID, user.OTPCode)
		if err != nil {
			return nil, fmt.Errorf("failed to record OTP attempt: %w", err)
		}
		left := s.config.MaxAttempts - attempts
		if left < 0 {
			left = 0
		}
		return nil, &domain.InvalidOTPError{AttemptsLeft: left}
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear OTP: %w", err)
	}
	user.OTPCode = ""
	user.OTPPurpose = ""
	user.OTPExpiresAt = nil
	user.OTPAttempts = 0
	return user, nil
}

// generateSecureCode returns a six digit code uniform over [100000, 999999]
func generateSecureCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

var _ domain.OTPService = (*OTPServiceImpl)(nil)
