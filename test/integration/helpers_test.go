package integration

import (
	"os"
	"testing"

	"blog-publishing-be/internal/model"
	"blog-publishing-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// openDB connects to the database named by DB_CONNECTION_STRING and migrates
// it, or skips the test when none is configured.
func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}
