// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"diplomakids/internal/models/db_models"
)

// NewTestDB opens an isolated in-memory SQLite database with the full schema.
// A single connection keeps concurrent callers serialized on the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(db_models.All()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func SeedFamily(t *testing.T, db *gorm.DB, email string) *db_models.Family {
	t.Helper()
	f := &db_models.Family{Email: email, FamilyName: "Family " + email, PasswordHash: "x"}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed family: %v", err)
	}
	return f
}

func SeedChild(t *testing.T, db *gorm.DB, familyID uuid.UUID, firstName string) *db_models.Child {
	t.Helper()
	c := &db_models.Child{FamilyID: familyID, FirstName: firstName, SavingsGoal: db_models.DefaultSavingsGoal}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed child: %v", err)
	}
	return c
}
