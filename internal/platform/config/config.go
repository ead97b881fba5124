package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers supported by the ledger.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	StorageDriver   string
	MigrationsPath  string
	RunMigrations   bool
	LockTimeout     time.Duration
	LogLevel        string
	ShutdownTimeout time.Duration

	CORSAllowedOrigins []string
	RateLimit          string

	AuthEnabled bool
	JWTSecret   string
	JWTIssuer   string // optional; when set, tokens must carry this iss claim
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		RateLimit:      v.GetString("RATE_LIMIT"),
		AuthEnabled:    v.GetBool("AUTH_ENABLED"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is not persisted across restarts.")
	default:
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}

	cfg.LockTimeout = parseDuration(v.GetString("LOCK_TIMEOUT"), "LOCK_TIMEOUT", 5*time.Second)
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), "SHUTDOWN_TIMEOUT", 10*time.Second)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		log.Println("Warning: AUTH_ENABLED is set but JWT_SECRET is empty. Every request will be rejected.")
	}

	return cfg, nil
}

func parseDuration(raw, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
