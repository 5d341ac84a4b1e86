package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/middleware"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// OTPEmailCookie remembers which address a passcode was sent to so resends
// need no body
const OTPEmailCookie = "otpEmail"

// otpCookieMaxAge matches the passcode lifetime
const otpCookieMaxAge = 10 * 60

// AuthHandlers handles the admin authentication flows
type AuthHandlers struct {
	authSvc      domain.AuthService
	secureCookie bool
}

// NewAuthHandlers creates new auth handlers. secureCookie marks the OTP
// cookie Secure and should be set in production.
func NewAuthHandlers(authSvc domain.AuthService, secureCookie bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		secureCookie: secureCookie,
	}
}

// EmailRequest carries an email address
type EmailRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRequest carries the password change and reset forms
type PasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r PasswordRequest) change() domain.PasswordChange {
	return domain.PasswordChange{
		OldPassword:     r.OldPassword,
		NewPassword:     r.NewPassword,
		ConfirmPassword: r.ConfirmPassword,
	}
}

func (h *AuthHandlers) setOTPCookie(c *gin.Context, email string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(OTPEmailCookie, email, otpCookieMaxAge, "/", "", h.secureCookie, true)
}

// otpEmail reads the address set by a previous OTP request
func otpEmail(c *gin.Context) (string, error) {
	email, err := c.Cookie(OTPEmailCookie)
	if err != nil || email == "" {
		return "", domain.ErrOTPEmailMissing
	}
	return email, nil
}

// RequestOTP sends a login passcode to an administrator
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req EmailRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authSvc.RequestLoginOTP(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, req.Email)
	response.OK(c, "OTP sent to your email", gin.H{"email": req.Email})
}

// ResendOTP re-issues the login passcode to the address in the OTP cookie
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	email, err := otpEmail(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authSvc.RequestLoginOTP(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, email)
	response.OK(c, "OTP resent to your email", nil)
}

// VerifyOTP exchanges a login passcode for a session token
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sessionToken, err := h.authSvc.VerifyLoginOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "OTP verified. Enter your password.", gin.H{"sessionToken": sessionToken})
}

// Login checks the password under a bearer session token
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.authSvc.Login(c.Request.Context(), middleware.BearerToken(c), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful", gin.H{
		"token": result.AccessToken,
		"user":  userSummary(result.User),
	})
}

func userSummary(u *domain.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	}
}

// Me returns the authenticated administrator
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domain.ErrUnauthorized)
		return
	}
	response.OK(c, "User fetched", gin.H{"data": user})
}

// RequestPasswordChangeOTP starts a password change for the bearer of an
// access token
func (h *AuthHandlers) RequestPasswordChangeOTP(c *gin.Context) {
	var req EmailRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.authSvc.RequestPasswordChangeOTP(c.Request.Context(), middleware.BearerToken(c), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, session.Email)
	response.OK(c, "OTP sent to your email for password change", gin.H{"otpSessionToken": session.Token})
}

// ResendPasswordChangeOTP re-issues the password change passcode
func (h *AuthHandlers) ResendPasswordChangeOTP(c *gin.Context) {
	email, err := otpEmail(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	otpSessionToken, err := h.authSvc.ResendPasswordChangeOTP(c.Request.Context(), middleware.BearerToken(c), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, email)
	response.OK(c, "OTP resent to your email", gin.H{"otpSessionToken": otpSessionToken})
}

// VerifyPasswordChangeOTP exchanges the passcode for a change-password token
func (h *AuthHandlers) VerifyPasswordChangeOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	changeToken, err := h.authSvc.VerifyPasswordChangeOTP(c.Request.Context(), middleware.BearerToken(c), req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "OTP verified. Proceed to change password.", gin.H{"changePasswordToken": changeToken})
}

// ChangePassword sets a new password under a change-password token
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.authSvc.ChangePassword(c.Request.Context(), middleware.BearerToken(c), req.change())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password changed successfully", gin.H{"user": userSummary(user)})
}

// ForgotPasswordRequestOTP sends a reset passcode
func (h *AuthHandlers) ForgotPasswordRequestOTP(c *gin.Context) {
	var req EmailRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authSvc.RequestPasswordResetOTP(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, req.Email)
	response.OK(c, "OTP sent to your email for password reset", nil)
}

// ForgotPasswordResendOTP re-issues the reset passcode to the cookie address
func (h *AuthHandlers) ForgotPasswordResendOTP(c *gin.Context) {
	email, err := otpEmail(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authSvc.RequestPasswordResetOTP(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	h.setOTPCookie(c, email)
	response.OK(c, "OTP resent to your email", nil)
}

// ForgotPasswordVerifyOTP exchanges the reset passcode for a reset token
func (h *AuthHandlers) ForgotPasswordVerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	resetToken, err := h.authSvc.VerifyPasswordResetOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "OTP verified. Proceed to reset password.", gin.H{"resetPasswordToken": resetToken})
}

// ForgotPasswordReset sets a new password under a reset token
func (h *AuthHandlers) ForgotPasswordReset(c *gin.Context) {
	var req PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if _, err := h.authSvc.ResetPassword(c.Request.Context(), middleware.BearerToken(c), req.change()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password reset successfully", nil)
}
