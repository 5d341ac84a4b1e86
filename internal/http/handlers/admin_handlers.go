package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/http/response"
)

// AdminHandlers serves account listing and policy management
type AdminHandlers struct {
	authSvc   domain.AuthService
	policySvc domain.PolicyService
}

func NewAdminHandlers(authSvc domain.AuthService, policySvc domain.PolicyService) *AdminHandlers {
	return &AdminHandlers{authSvc: authSvc, policySvc: policySvc}
}

// PolicyRequest is one (role, path pattern, method regex) rule
type PolicyRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (h *AdminHandlers) ListUsers(c *gin.Context) {
	users, err := h.authSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users fetched", gin.H{"data": users})
}

func (h *AdminHandlers) ListPolicies(c *gin.Context) {
	response.OK(c, "Policies fetched", gin.H{"data": h.policySvc.GetPolicies()})
}

func (h *AdminHandlers) AddPolicy(c *gin.Context) {
	var req PolicyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Policy added", gin.H{"data": req})
}

func (h *AdminHandlers) RemovePolicy(c *gin.Context) {
	var req PolicyRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Policy removed", nil)
}
