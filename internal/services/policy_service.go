package services

import (
	"fmt"
	"strings"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// PolicyServiceImpl implements domain.PolicyService on a Casbin enforcer.
// Rules are (role, path pattern, method regex) triples.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service. *casbin.Enforcer satisfies
// domain.CasbinEnforcer.
func NewPolicyService(enforcer domain.CasbinEnforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{enforcer: enforcer}
}

func validateRule(role, resource, action string) error {
	switch {
	case strings.TrimSpace(role) == "":
		return domain.NewValidationError("role", "role is required")
	case !strings.HasPrefix(resource, "/"):
		return domain.NewValidationError("resource", "resource must be a path starting with /")
	case strings.TrimSpace(action) == "":
		return domain.NewValidationError("action", "action is required")
	}
	return nil
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if err := validateRule(role, resource, action); err != nil {
		return err
	}
	added, err := p.enforcer.AddPolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	if !added {
		return domain.ErrPolicyExists
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if err := validateRule(role, resource, action); err != nil {
		return err
	}
	removed, err := p.enforcer.RemovePolicy(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	if !removed {
		return domain.ErrPolicyNotFound
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return [][]string{}
	}
	return policies
}

var _ domain.PolicyService = (*PolicyServiceImpl)(nil)
