package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/repositories"
	"github.com/manishadtanii/varalobackendv.0/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createOTPServiceForTest wires the OTP service to a real user store and a
// recording notifier
func createOTPServiceForTest(t *testing.T) (*OTPServiceImpl, *repositories.UserRepositoryImpl, *mocks.MockNotificationService) {
	t.Helper()

	userRepo := repositories.NewUserRepository(setupTestDB(t))
	notifier := mocks.NewMockNotificationService()
	return NewOTPService(notifier, userRepo, DefaultOTPConfig), userRepo, notifier
}

func TestOTPServiceImpl_IssueThenVerify(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, notifier := createOTPServiceForTest(t)
	user := createAdminUser(t, userRepo, "admin@example.com")

	require.NoError(t, svc.Issue(ctx, user, domain.OTPPurposeLogin))
	require.Len(t, notifier.Sent, 1)
	assert.Equal(t, "admin@example.com", notifier.Sent[0].To)
	assert.Equal(t, domain.OTPPurposeLogin, notifier.Sent[0].Purpose)

	verified, err := svc.Verify(ctx, "Admin@Example.com", notifier.LastCode(), domain.OTPPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	stored, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.OTPCode)
	assert.Nil(t, stored.OTPExpiresAt)

	_, err = svc.Verify(ctx, "admin@example.com", notifier.LastCode(), domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound, "a code verifies only once")
}

func TestOTPServiceImpl_AttemptsRunOut(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, notifier := createOTPServiceForTest(t)
	user := createAdminUser(t, userRepo, "admin@example.com")

	require.NoError(t, svc.Issue(ctx, user, domain.OTPPurposeLogin))
	code := notifier.LastCode()
	wrong := "000000"

	for _, expectedLeft := range []int{2, 1, 0} {
		_, err := svc.Verify(ctx, user.Email, wrong, domain.OTPPurposeLogin)
		var invalid *domain.InvalidOTPError
		require.True(t, errors.As(err, &invalid), "expected InvalidOTPError, got %v", err)
		assert.Equal(t, expectedLeft, invalid.AttemptsLeft)
		assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	}

	_, err := svc.Verify(ctx, user.Email, code, domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrOTPMaxAttempts, "the correct code is refused once attempts are spent")

	_, err = svc.Verify(ctx, user.Email, code, domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound, "the exhausted code stays cleared")
}

func TestOTPServiceImpl_ReissueResetsAttempts(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, notifier := createOTPServiceForTest(t)
	user := createAdminUser(t, userRepo, "admin@example.com")

	require.NoError(t, svc.Issue(ctx, user, domain.OTPPurposeLogin))
	_, err := svc.Verify(ctx, user.Email, "000000", domain.OTPPurposeLogin)
	require.Error(t, err)

	require.NoError(t, svc.Issue(ctx, user, domain.OTPPurposeLogin))
	_, err = svc.Verify(ctx, user.Email, "000000", domain.OTPPurposeLogin)
	var invalid *domain.InvalidOTPError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.AttemptsLeft)

	_, err = svc.Verify(ctx, user.Email, notifier.LastCode(), domain.OTPPurposeLogin)
	assert.NoError(t, err)
}

func TestOTPServiceImpl_Expiry(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, notifier := createOTPServiceForTest(t)
	user := createAdminUser(t, userRepo, "admin@example.com")

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	require.NoError(t, svc.Issue(ctx, user, domain.OTPPurposeLogin))

	svc.now = func() time.Time { return issuedAt.Add(11 * time.Minute) }
	_, err := svc.Verify(ctx, user.Email, notifier.LastCode(), domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrOTPExpired)

	_, err = svc.Verify(ctx, user.Email, notifier.LastCode(), domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound, "an expired code is cleared")
}

func TestOTPServiceImpl_Verify_Failures(t *testing.T) {
	tests := []struct {
		name          string
		issuePurpose  domain.OTPPurpose
		email         string
		verifyPurpose domain.OTPPurpose
		expectedError error
	}{
		{
			name:          "unknown user",
			email:         "nobody@example.com",
			verifyPurpose: domain.OTPPurposeLogin,
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:          "no pending code",
			email:         "admin@example.com",
			verifyPurpose: domain.OTPPurposeLogin,
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name:          "code issued for another flow",
			issuePurpose:  domain.OTPPurposeChangePassword,
			email:         "admin@example.com",
			verifyPurpose: domain.OTPPurposeLogin,
			expectedError: domain.ErrOTPNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, userRepo, notifier := createOTPServiceForTest(t)
			user := createAdminUser(t, userRepo, "admin@example.com")
			if tt.issuePurpose != "" {
				require.NoError(t, svc.Issue(ctx, user, tt.issuePurpose))
			}

			_, err := svc.Verify(ctx, tt.email, notifier.LastCode(), tt.verifyPurpose)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestOTPServiceImpl_Issue_DeliveryFailureKeepsCode(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, notifier := createOTPServiceForTest(t)
	user := createAdminUser(t, userRepo, "admin@example.com")
	notifier.SendOTPFunc = func(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
		return fmt.Errorf("%w: smtp down", domain.ErrNotification)
	}

	err := svc.Issue(ctx, user, domain.OTPPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrNotification)

	stored, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasPendingOTP(domain.OTPPurposeLogin))
	assert.Equal(t, notifier.LastCode(), stored.OTPCode)
}

func TestOTPServiceImpl_Issue_StoreFailureSendsNothing(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.SetOTPFunc = func(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose, expiresAt time.Time) error {
		return errors.New("database is locked")
	}
	notifier := mocks.NewMockNotificationService()
	svc := NewOTPService(notifier, userRepo, OTPConfig{})

	err := svc.Issue(context.Background(), &domain.User{ID: 1, Email: "a@b.co"}, domain.OTPPurposeLogin)
	assert.Error(t, err)
	assert.Empty(t, notifier.Sent)
}

func TestGenerateSecureCode(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := generateSecureCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
