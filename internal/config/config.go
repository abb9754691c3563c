package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven configuration for the application
type Config struct {
	// API holds client-side backend settings
	API APIConfig

	// DevServer holds settings for the local development stub backend
	DevServer DevServerConfig

	// Cache holds offline cache settings
	Cache CacheConfig

	// Logging holds logging-related settings
	Logging LoggingConfig
}

// APIConfig holds client-side backend settings
type APIConfig struct {
	// BaseURL overrides the backend from jobdeck.json when set
	BaseURL string
	// AdminLandingURL overrides the admin landing view location when set
	AdminLandingURL string
}

// DevServerConfig holds development stub server settings
type DevServerConfig struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	SeedFile    string
}

// CacheConfig holds offline cache settings
type CacheConfig struct {
	Path string // empty means the default under ~/.local/share/jobdeck
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return &Config{
		API: APIConfig{
			BaseURL:         os.Getenv("JOBDECK_API_URL"),
			AdminLandingURL: os.Getenv("JOBDECK_ADMIN_URL"),
		},
		DevServer: DevServerConfig{
			Addr:        envOr("JOBDECK_DEVSERVER_ADDR", ":8080"),
			DatabaseURL: envOr("JOBDECK_DEVSERVER_DB", "jobdeck-dev.sqlite"),
			JWTSecret:   envOr("JOBDECK_DEVSERVER_SECRET", "jobdeck-dev-secret"),
			SeedFile:    os.Getenv("JOBDECK_DEVSERVER_SEED"),
		},
		Cache: CacheConfig{
			Path: os.Getenv("JOBDECK_CACHE_PATH"),
		},
		Logging: LoggingConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "console"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
