package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/manishadtanii/varalobackendv.0/internal/infrastructure/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB opens a migrated in-memory database on a single connection
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBPage{},
		&repositories.DBSection{},
		&repositories.DBContact{},
	))
	return db
}

// createAdminUser stores a verified admin whose password is "secret123" under
// the mock password service's hashing
func createAdminUser(t *testing.T, repo domain.UserRepository, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        email,
		PasswordHash: "hashed_secret123",
		Role:         domain.RoleAdmin,
		Verified:     true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func imageUpload(name string) *domain.UploadFile {
	return &domain.UploadFile{
		Filename:    name,
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("\x89PNG"),
	}
}
