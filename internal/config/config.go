package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store drivers.
const (
	StoreSQLite    = "sqlite"
	StorePostgres  = "postgres"
	StorePostgREST = "postgrest"
)

type Config struct {
	Port string

	// Auth
	AdminAPIKey string

	// Record defaults
	SiteName string

	// Persistence
	StoreDriver string
	DatabaseURL string

	// Hosted table (StorePostgREST)
	PostgRESTURL    string
	PostgRESTAPIKey string
	PostgRESTTable  string

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		SiteName: envOr("SITE_NAME", "Limitless Cruises"),

		StoreDriver: envOr("STORE_DRIVER", StoreSQLite),
		DatabaseURL: envOr("DATABASE_URL", "file:portguide.db?cache=shared"),

		PostgRESTURL:    os.Getenv("POSTGREST_URL"),
		PostgRESTAPIKey: os.Getenv("POSTGREST_API_KEY"),
		PostgRESTTable:  envOr("POSTGREST_TABLE", "ports"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 1048576), // 1MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1048576
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required")
	}
	return c.ValidateStore()
}

// ValidateStore checks only the persistence settings.
func (c Config) ValidateStore() error {
	switch c.StoreDriver {
	case StoreSQLite, StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", c.StoreDriver)
		}
	case StorePostgREST:
		if c.PostgRESTURL == "" {
			return fmt.Errorf("POSTGREST_URL is required for STORE_DRIVER=%s", c.StoreDriver)
		}
		if c.PostgRESTAPIKey == "" {
			return fmt.Errorf("POSTGREST_API_KEY is required for STORE_DRIVER=%s", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %q", c.StoreDriver)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
