package main

import (
	"context"
	_ "embed"
	"log"
	"os"

	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/model"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/database"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed posts.yaml
var fixtures []byte

func main() {
	// Load Environment Variables
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

	db, err := database.NewGormDB(database.GormConfig{Driver: driver, DSN: dsn})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	var set SeedSet
	if err := yaml.Unmarshal(fixtures, &set); err != nil {
		log.Fatalf("Error: Failed to parse fixtures: %v", err)
	}

	log.Println("Seeding Authors...")
	authorIds := SeedAuthors(context.Background(), db, set.Authors)

	log.Println("Seeding Posts...")
	sysLogger := logger.NewNopLogger()
	appMetrics := metrics.New()
	postService := service.NewPostService(
		unitofwork.NewRepositoryFactory(db),
		service.NewRenderService(memory.NewRenderCache(0), appMetrics, sysLogger),
		nil,
		nil,
		appMetrics,
		sysLogger,
	)
	SeedPosts(context.Background(), db, postService, authorIds, set.Posts)

	log.Println("Seeding completed!")
}
