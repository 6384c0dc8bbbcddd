package main

import (
	"log"
	"os"

	"blog-publishing-be/internal/model"
	"blog-publishing-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = database.DriverPostgres
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{Driver: driver, DSN: dsn})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Starting GORM migration (%s)...", driver)

	// 3. Pre-Migration: Extensions (postgres only)
	if driver == database.DriverPostgres {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: listing index
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_posts_status_published_at ON posts (status, published_at DESC);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed via GORM.")
}
