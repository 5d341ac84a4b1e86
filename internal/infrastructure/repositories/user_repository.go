package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `gorm:"column:password;not null"`
	Role         string     `gorm:"index;size:32;not null"`
	Verified     bool       `gorm:"index"`
	OTPCode      string     `gorm:"column:otp_code;size:6"`
	OTPPurpose   string     `gorm:"column:otp_purpose;size:32"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	OTPAttempts  int        `gorm:"column:otp_attempts;not null"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// NormalizeEmail is the canonical stored form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	user.Email = NormalizeEmail(user.Email)

	var count int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return domain.ErrUserAlreadyExists
	}

	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*domain.User, error) {
	var rows []DBUser
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, r.dbToDomain(&rows[i]))
	}
	return users, nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetOTP stores a fresh code and resets the attempt counter in one statement
func (r *UserRepositoryImpl) SetOTP(ctx context.Context, userID uint, code string, purpose domain.OTPPurpose, expiresAt time.Time) error {
	return r.updateOTP(ctx, userID, map[string]interface{}{
		"otp_code":       code,
		"otp_purpose":    string(purpose),
		"otp_expires_at": expiresAt,
		"otp_attempts":   0,
	})
}

// ClearOTP removes every OTP field in one statement
func (r *UserRepositoryImpl) ClearOTP(ctx context.Context, userID uint) error {
	return r.updateOTP(ctx, userID, map[string]interface{}{
		"otp_code":       "",
		"otp_purpose":    "",
		"otp_expires_at": nil,
		"otp_attempts":   0,
	})
}

// IncrementOTPAttempts bumps the counter only while code is still the stored
// code, and returns the new count.
func (r *UserRepositoryImpl) IncrementOTPAttempts(ctx context.Context, userID uint, code string) (int, error) {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND otp_code = ?", userID, code).
		UpdateColumn("otp_attempts", gorm.Expr("otp_attempts + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrOTPNotFound
	}

	var dbUser DBUser
	if err := r.db.WithContext(ctx).Select("otp_attempts").Where("id = ?", userID).First(&dbUser).Error; err != nil {
		return 0, fmt.Errorf("failed to read otp attempts: %w", err)
	}
	return dbUser.OTPAttempts, nil
}

func (r *UserRepositoryImpl) updateOTP(ctx context.Context, userID uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Verified:     user.Verified,
		OTPCode:      user.OTPCode,
		OTPPurpose:   string(user.OTPPurpose),
		OTPExpiresAt: user.OTPExpiresAt,
		OTPAttempts:  user.OTPAttempts,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		Role:         dbUser.Role,
		Verified:     dbUser.Verified,
		OTPCode:      dbUser.OTPCode,
		OTPPurpose:   domain.OTPPurpose(dbUser.OTPPurpose),
		OTPExpiresAt: dbUser.OTPExpiresAt,
		OTPAttempts:  dbUser.OTPAttempts,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

var _ domain.UserRepository = (*UserRepositoryImpl)(nil)
