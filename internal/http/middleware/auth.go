package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
	"github.com/manishadtanii/varalobackendv.0/internal/logging"
)

// Context keys set by RequireAdmin
const (
	ContextUser     = "user"
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// AuthMW authenticates access tokens against the stored user
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or has another scheme
func BearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAdmin accepts only access tokens of verified administrators. The
// user is reloaded on every request so role changes apply immediately.
func (mw *AuthMW) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := mw.tokenSvc.Validate(BearerToken(c), domain.PurposeAccess)
		if err != nil {
			response.Error(c, err)
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !user.IsAdmin() {
			response.Error(c, domain.ErrNotAdmin)
			return
		}
		if !user.Verified {
			response.Error(c, domain.ErrUserNotVerified)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Request = c.Request.WithContext(logging.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAdmin
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
