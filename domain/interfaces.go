package domain

import (
	"context"
	"time"
)

// UserRepository defines administrator account storage. OTP fields are only
// ever written through SetOTP/ClearOTP/IncrementOTPAttempts so they stay consistent.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	SetOTP(ctx context.Context, userID uint, code string, purpose OTPPurpose, expiresAt time.Time) error
	ClearOTP(ctx context.Context, userID uint) error
	IncrementOTPAttempts(ctx context.Context, userID uint, code string) (int, error)
}

// PageRepository defines page storage
type PageRepository interface {
	Create(ctx context.Context, page *Page) error
	FindBySlug(ctx context.Context, slug string) (*Page, error)
	FindChild(ctx context.Context, parentSlug, slug string) (*Page, error)
	ListActive(ctx context.Context, navbarOnly bool) ([]*Page, error)
	UpdateSettings(ctx context.Context, slug string, settings PageSettings) (*Page, error)
}

// SectionRepository defines section storage
type SectionRepository interface {
	Create(ctx context.Context, section *Section) error
	Find(ctx context.Context, pageSlug, sectionKey string) (*Section, error)
	ListByPage(ctx context.Context, pageSlug string) ([]*Section, error)
	UpdateContent(ctx context.Context, sectionID uint, content Document) error
}

// ContactRepository defines contact submission storage
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uint) (*Contact, error)
	List(ctx context.Context, offset, limit int) ([]*Contact, int64, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uint) error
}

// PageCache caches assembled page views
type PageCache interface {
	Get(ctx context.Context, key string) (*PageView, bool)
	Set(ctx context.Context, key string, view *PageView) error
	Invalidate(ctx context.Context, pageSlug string) error
}

// OTPService issues and checks one-time passcodes stored on user records
type OTPService interface {
	Issue(ctx context.Context, user *User, purpose OTPPurpose) error
	Verify(ctx context.Context, email, code string, purpose OTPPurpose) (*User, error)
}

// AuthService defines the admin authentication flows
type AuthService interface {
	RequestLoginOTP(ctx context.Context, email string) error
	VerifyLoginOTP(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, sessionToken, email, password string) (*AuthResult, error)

	RequestPasswordChangeOTP(ctx context.Context, accessToken, email string) (*OTPSession, error)
	ResendPasswordChangeOTP(ctx context.Context, otpSessionToken, email string) (string, error)
	VerifyPasswordChangeOTP(ctx context.Context, otpSessionToken, code string) (string, error)
	ChangePassword(ctx context.Context, changeToken string, req PasswordChange) (*User, error)

	RequestPasswordResetOTP(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken string, req PasswordChange) (*User, error)

	GetProfile(ctx context.Context, userID uint) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and validates purpose-scoped signed tokens
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateScopedToken(user *User, purpose TokenPurpose) (string, error)
	Validate(token string, purpose TokenPurpose) (*TokenClaims, error)
}

// NotificationService delivers passcodes to an email address
type NotificationService interface {
	SendOTP(ctx context.Context, to, code string, purpose OTPPurpose) error
}

// MediaService stores binary payloads with an external media host
type MediaService interface {
	Upload(ctx context.Context, file *UploadFile, folder, publicID string) (*ImageRef, error)
	Delete(ctx context.Context, publicID string) error
	PublicIDFromURL(url string) string
}

// PageService defines page read and settings operations
type PageService interface {
	ListPages(ctx context.Context, navbarOnly bool) ([]*Page, error)
	GetPage(ctx context.Context, slug string) (*PageView, error)
	GetServicePage(ctx context.Context, slug string) (*PageView, error)
	UpdateSettings(ctx context.Context, slug string, settings PageSettings) (*Page, error)
}

// SectionService applies partial content updates to sections
type SectionService interface {
	UpdateSection(ctx context.Context, update SectionUpdate) (*Section, error)
}

// ContactService defines contact intake and admin operations
type ContactService interface {
	Submit(ctx context.Context, input ContactInput) (*Contact, error)
	List(ctx context.Context, page, limit int) (*ContactList, error)
	Get(ctx context.Context, id uint) (*Contact, error)
	Update(ctx context.Context, id uint, update ContactUpdate) (*Contact, error)
	Delete(ctx context.Context, id uint) error
}

// UploadService defines direct media operations
type UploadService interface {
	UploadImage(ctx context.Context, file *UploadFile, pageSlug, sectionKey, folder string) (*ImageRef, error)
	UploadImages(ctx context.Context, files []*UploadFile, pageSlug, sectionKey string) ([]*FileRef, error)
	Delete(ctx context.Context, publicID string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents validated token claims
type TokenClaims struct {
	UserID    uint         `json:"user_id"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Purpose   TokenPurpose `json:"purpose"`
	IssuedAt  int64        `json:"iat"`
	ExpiresAt int64        `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
