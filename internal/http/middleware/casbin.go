package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// CasbinMW authorizes the authenticated role against the stored policies
type CasbinMW struct {
	policySvc domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService) *CasbinMW {
	return &CasbinMW{policySvc: policySvc}
}

// Enforce must run after RequireAdmin. The request path is matched, not the
// route pattern, so policies can target concrete slugs.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			response.Error(c, domain.ErrUnauthorized)
			return
		}

		allowed, err := mw.policySvc.CheckPermission(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !allowed {
			response.Error(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}
