// Package testutil provides shared helpers for package tests: an in-memory
// database wired into the global handle plus seed helpers.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext behind every seeded user's hash.
const TestPassword = "password123"

// SetupTestDB points the global db.DB at a fresh in-memory SQLite database
// and migrates the schema. The pool is limited to one connection: extra
// connections would each see their own empty :memory: database, and the
// single writer makes concurrent-toggle tests deterministic.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(&models.User{}, &models.Feature{}, &models.Vote{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return gdb
}

// CreateTestUser seeds a user whose password is TestPassword.
func CreateTestUser(t *testing.T, username, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestFeature seeds a feature with an explicit creation time so
// ordering tests can control ties.
func CreateTestFeature(t *testing.T, ownerID uint, title string, createdAt time.Time) models.Feature {
	t.Helper()

	feature := models.Feature{
		Title:       title,
		Description: "test feature: " + title,
		UserID:      ownerID,
		Status:      models.StatusOpen,
	}
	feature.CreatedAt = createdAt

	if err := db.DB.Create(&feature).Error; err != nil {
		t.Fatalf("Failed to create test feature: %v", err)
	}

	return feature
}
