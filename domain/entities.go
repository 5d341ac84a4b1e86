package domain

import (
	"io"
	"time"
)

// Administrator roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// OTPPurpose scopes a stored passcode to the flow that issued it
type OTPPurpose string

const (
	OTPPurposeLogin          OTPPurpose = "login"
	OTPPurposeChangePassword OTPPurpose = "change-password"
	OTPPurposeResetPassword  OTPPurpose = "reset-password"
)

// TokenPurpose is the purpose claim carried by every signed token
type TokenPurpose string

const (
	PurposeAccess            TokenPurpose = "access"
	PurposeLoginSession      TokenPurpose = "password-input"
	PurposeChangePasswordOTP TokenPurpose = "change-password-otp"
	PurposeChangePassword    TokenPurpose = "change-password"
	PurposeResetPassword     TokenPurpose = "reset-password"
)

// User represents an administrator account
type User struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Verified     bool       `json:"verified"`
	OTPCode      string     `json:"-"`
	OTPPurpose   OTPPurpose `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	OTPAttempts  int        `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user holds an administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// HasPendingOTP reports whether a code issued for purpose is stored on the user
func (u *User) HasPendingOTP(purpose OTPPurpose) bool {
	return u.OTPCode != "" && u.OTPExpiresAt != nil && u.OTPPurpose == purpose
}

// AuthResult represents a completed admin login
type AuthResult struct {
	User        *User
	AccessToken string
}

// OTPSession is a password change passcode in flight: the scoped token that
// authorises the next step and the address the code went to
type OTPSession struct {
	Token string
	Email string
}

// PasswordChange carries the fields of a password change or reset form
type PasswordChange struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// SEO holds page metadata for search engines
type SEO struct {
	MetaTitle       string   `json:"metaTitle" yaml:"metaTitle"`
	MetaDescription string   `json:"metaDescription" yaml:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords" yaml:"metaKeywords"`
}

// Page is one site route
type Page struct {
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Route        string    `json:"route"`
	ParentSlug   string    `json:"parentSlug,omitempty"`
	ShowInNavbar bool      `json:"showInNavbar"`
	Order        int       `json:"order"`
	SEO          SEO       `json:"seo"`
	IsActive     bool      `json:"isActive"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PageSettings is a partial update of a page's visibility and ordering
type PageSettings struct {
	ShowInNavbar *bool `json:"showInNavbar"`
	Order        *int  `json:"order"`
	IsActive     *bool `json:"isActive"`
	IsPublished  *bool `json:"isPublished"`
}

// Empty reports whether no setting is present
func (s PageSettings) Empty() bool {
	return s.ShowInNavbar == nil && s.Order == nil && s.IsActive == nil && s.IsPublished == nil
}

// Section is the editable content unit, identified by (PageSlug, SectionKey)
type Section struct {
	ID         uint      `json:"id"`
	PageSlug   string    `json:"pageSlug"`
	SectionKey string    `json:"sectionKey"`
	Order      int       `json:"order"`
	IsActive   bool      `json:"isActive"`
	Content    Document  `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PageView is a page together with its ordered sections
type PageView struct {
	*Page
	Sections []*Section `json:"sections"`
}

// ServicesParentSlug is the parent of every service child page
const ServicesParentSlug = "services"

// ServicePageKey is the cache key of a child page under the services parent
func ServicePageKey(slug string) string {
	return ServicesParentSlug + ":" + slug
}

// SectionUpdate is a partial content update, optionally carrying an image
type SectionUpdate struct {
	PageSlug       string
	SectionKey     string
	Content        Document
	ImageFieldPath string
	Image          *UploadFile
}

// ImageRef is the stored shape of an uploaded image
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// FileRef is an uploaded attachment on a contact submission
type FileRef struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	OriginalName string `json:"originalName"`
}

// UploadFile is a binary payload handed to the media host
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ContactStatus is the admin workflow state of a contact submission
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusPending ContactStatus = "pending"
	ContactStatusClosed  ContactStatus = "closed"
)

// Valid reports whether s is a known status
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusPending, ContactStatusClosed:
		return true
	}
	return false
}

// Contact is one contact-form submission
type Contact struct {
	ID                uint          `json:"id"`
	FirstName         string        `json:"First_Name"`
	AttorneyName      string        `json:"Attorney_Name"`
	ContactNumber     string        `json:"Contact_Number"`
	ContactName       string        `json:"Contact_Name"`
	ContactEmail      string        `json:"Contact_Email"`
	PreferredDate     string        `json:"Preferred_Date"`
	PreferredTime     string        `json:"Preferred_Time"`
	State             string        `json:"State"`
	City              string        `json:"City"`
	Witnesses         string        `json:"Witnesses"`
	EstimatedDuration string        `json:"estimated_duration"`
	ServicesNeeded    []string      `json:"Services_Needed"`
	Notes             string        `json:"notes"`
	File              *FileRef      `json:"file,omitempty"`
	Status            ContactStatus `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// ContactInput is a raw contact-form submission before normalisation.
// ServicesNeeded may be a []string, []any or a string in any accepted encoding.
type ContactInput struct {
	FirstName         string
	AttorneyName      string
	ContactNumber     string
	ContactName       string
	ContactEmail      string
	PreferredDate     string
	PreferredTime     string
	State             string
	City              string
	Witnesses         string
	EstimatedDuration string
	ServicesNeeded    any
	Notes             string
	File              *UploadFile
}

// ContactUpdate is an admin partial update of a contact
type ContactUpdate struct {
	FirstName         *string        `json:"First_Name"`
	AttorneyName      *string        `json:"Attorney_Name"`
	ContactNumber     *string        `json:"Contact_Number"`
	ContactName       *string        `json:"Contact_Name"`
	ContactEmail      *string        `json:"Contact_Email"`
	PreferredDate     *string        `json:"Preferred_Date"`
	PreferredTime     *string        `json:"Preferred_Time"`
	State             *string        `json:"State"`
	City              *string        `json:"City"`
	Witnesses         *string        `json:"Witnesses"`
	EstimatedDuration *string        `json:"estimated_duration"`
	ServicesNeeded    any            `json:"Services_Needed"`
	Notes             *string        `json:"notes"`
	Status            *ContactStatus `json:"status"`
}

// ContactList is one page of contacts, newest first
type ContactList struct {
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
	Contacts []*Contact `json:"contacts"`
}
