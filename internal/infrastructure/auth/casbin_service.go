package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// rbacModel matches the role (with inheritance) against a keyMatch path
// pattern and a method regex.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies grant admins the content routes and super-admins the
// account and policy routes.
var DefaultPolicies = [][]string{
	{"admin", "/api/pages/*", "^(GET|PATCH)$"},
	{"admin", "/api/contacts*", "^(GET|PATCH|DELETE)$"},
	{"admin", "/api/upload*", "^(POST|DELETE)$"},
	{"super-admin", "/api/admin/*", "^(GET|POST|DELETE)$"},
}

// DefaultRoleInheritance makes super-admin inherit every admin permission
var DefaultRoleInheritance = [][]string{
	{"super-admin", "admin"},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer over the gorm adapter and loads stored policies
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policy: %w", err)
	}
	return &CasbinService{E: e}, nil
}

// SeedDefaults installs the default policies when none are stored yet and
// reports whether it did.
func (s *CasbinService) SeedDefaults() (bool, error) {
	policies, err := s.E.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(policies) > 0 {
		return false, nil
	}

	for _, p := range DefaultPolicies {
		if _, err := s.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return false, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	for _, g := range DefaultRoleInheritance {
		if _, err := s.E.AddGroupingPolicy(g[0], g[1]); err != nil {
			return false, fmt.Errorf("failed to add role inheritance %v: %w", g, err)
		}
	}
	return true, nil
}
