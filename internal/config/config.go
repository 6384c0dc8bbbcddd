package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Messaging MessagingConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string
	BodyLimit          int // bytes
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type CacheConfig struct {
	Driver   string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

type MessagingConfig struct {
	RenderTopic string
	NatsURL     string // empty disables domain events
}

type TelemetryConfig struct {
	OtelEnabled bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate reports settings the server cannot safely start without
func (c *Config) Validate() error {
	if c.App.JwtSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.json"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			BodyLimit:          getEnvAsInt("BODY_LIMIT_BYTES", 4*1024*1024),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Cache: CacheConfig{
			Driver:   getEnv("CACHE_DRIVER", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      time.Duration(getEnvAsInt("RENDER_CACHE_TTL_SECONDS", 3600)) * time.Second,
		},
		Messaging: MessagingConfig{
			RenderTopic: getEnv("RENDER_POST_TOPIC_NAME", "RENDER_POST_CONTENT"),
			NatsURL:     getEnv("NATS_URL", ""),
		},
		Telemetry: TelemetryConfig{
			OtelEnabled: getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "blog-publishing-be"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
