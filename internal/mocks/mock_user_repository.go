package mocks

import (
	"context"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc               func(ctx context.Context, user *domain.User) error
	FindByEmailFunc          func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc             func(ctx context.Context, id uint) (*domain.User, error)
	ListFunc                 func(ctx context.Context) ([]*domain.User, error)
	UpdatePasswordFunc       func(ctx context.Context, userID uint, passwordHash string) error
	SetOTPFunc               func(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose, expiresAt time.Time) error
	ClearOTPFunc             func(ctx context.Context, userID uint) error
	IncrementOTPAttemptsFunc func(ctx context.Context, userID uint, code string) (int, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

// FindByEmail defaults to not found
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// FindByID defaults to not found
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) SetOTP(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose, expiresAt time.Time) error {
	if m.SetOTPFunc != nil {
		return m.SetOTPFunc(ctx, userID, code, purpose, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) ClearOTP(ctx context.Context, userID uint) error {
	if m.ClearOTPFunc != nil {
		return m.ClearOTPFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) IncrementOTPAttempts(ctx context.Context, userID uint, code string) (int, error) {
	if m.IncrementOTPAttemptsFunc != nil {
		return m.IncrementOTPAttemptsFunc(ctx, userID, code)
	}
	return 1, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
