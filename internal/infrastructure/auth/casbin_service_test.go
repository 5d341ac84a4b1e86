package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCasbin(t *testing.T) *CasbinService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	svc, err := NewCasbinService(db)
	require.NoError(t, err)
	return svc
}

func TestCasbinService_SeedDefaults(t *testing.T) {
	svc := setupCasbin(t)

	seeded, err := svc.SeedDefaults()
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedDefaults()
	require.NoError(t, err)
	assert.False(t, seeded, "second seed must be a no-op")
}

func TestCasbinService_DefaultPolicies(t *testing.T) {
	svc := setupCasbin(t)
	_, err := svc.SeedDefaults()
	require.NoError(t, err)

	tests := []struct {
		role    string
		path    string
		method  string
		allowed bool
	}{
		{"admin", "/api/pages/sections/home/hero", "PATCH", true},
		{"admin", "/api/pages/home", "PATCH", true},
		{"admin", "/api/pages/home", "DELETE", false},
		{"admin", "/api/contacts", "GET", true},
		{"admin", "/api/contacts/12", "DELETE", true},
		{"admin", "/api/upload/multiple", "POST", true},
		{"admin", "/api/admin/users", "GET", false},
		{"super-admin", "/api/admin/users", "GET", true},
		{"super-admin", "/api/pages/sections/home/hero", "PATCH", true},
		{"super-admin", "/api/contacts/3", "PATCH", true},
		{"editor", "/api/contacts", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			ok, err := svc.E.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, ok)
		})
	}
}
