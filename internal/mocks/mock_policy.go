package mocks

import "github.com/manishadtanii/varalobackendv.0/domain"

// MockCasbinEnforcer implements domain.CasbinEnforcer over an in-memory
// policy list with exact-match enforcement
type MockCasbinEnforcer struct {
	EnforceFunc    func(rvals ...interface{}) (bool, error)
	SavePolicyFunc func() error

	policies [][]string
	Saves    int
}

func NewMockCasbinEnforcer(policies ...[]string) *MockCasbinEnforcer {
	return &MockCasbinEnforcer{policies: policies}
}

func toStrings(params []interface{}) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		s, _ := p.(string)
		out = append(out, s)
	}
	return out
}

func equalPolicy(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *MockCasbinEnforcer) indexOf(rule []string) int {
	for i, p := range m.policies {
		if equalPolicy(p, rule) {
			return i
		}
	}
	return -1
}

// AddPolicy reports false when the rule already exists
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	rule := toStrings(params)
	if m.indexOf(rule) >= 0 {
		return false, nil
	}
	m.policies = append(m.policies, rule)
	return true, nil
}

// RemovePolicy reports false when the rule does not exist
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	i := m.indexOf(toStrings(params))
	if i < 0 {
		return false, nil
	}
	m.policies = append(m.policies[:i], m.policies[i+1:]...)
	return true, nil
}

func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	return m.indexOf(toStrings(rvals)) >= 0, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	out := make([][]string, len(m.policies))
	for i, p := range m.policies {
		out[i] = append([]string(nil), p...)
	}
	return out, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	m.Saves++
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(role, resource, action string) error
	RemovePolicyFunc    func(role, resource, action string) error
	CheckPermissionFunc func(role, resource, action string) (bool, error)
	GetPoliciesFunc     func() [][]string
}

func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

// CheckPermission defaults to allow
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	return true, nil
}

func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{}
}

// Compile-time interface compliance verification
var (
	_ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)
	_ domain.PolicyService  = (*MockPolicyService)(nil)
)
