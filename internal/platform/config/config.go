package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const (
	defaultSessionSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultSessionExpiry = 24 * time.Hour
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	StorageBackend   string
	DatabaseURL      string
	SQLitePath       string
	TransactionsFile string

	SessionSecret         string
	SessionExpiryDuration time.Duration
	SessionCookieName     string
	SessionIssuer         string
	RedisURL              string

	LoginRateLimit     string
	CORSAllowedOrigins []string
}

// AccountsEnabled reports whether the configured backend keeps user accounts.
func (c *Config) AccountsEnabled() bool {
	return c.StorageBackend != BackendFile
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_BACKEND", BackendSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "finance_tracker.db")
	v.SetDefault("TRANSACTIONS_FILE", "transactions.json")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_EXPIRY_DURATION", defaultSessionExpiry.String())
	v.SetDefault("SESSION_COOKIE_NAME", "pft_session")
	v.SetDefault("SESSION_ISSUER", "personal-finance-tracker")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		StorageBackend:    strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		SQLitePath:        v.GetString("SQLITE_PATH"),
		TransactionsFile:  v.GetString("TRANSACTIONS_FILE"),
		SessionSecret:     v.GetString("SESSION_SECRET"),
		SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),
		SessionIssuer:     v.GetString("SESSION_ISSUER"),
		RedisURL:          v.GetString("REDIS_URL"),
		LoginRateLimit:    v.GetString("LOGIN_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageBackend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_BACKEND is %q", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (want %s, %s or %s)", cfg.StorageBackend, BackendFile, BackendSQLite, BackendPostgres)
	}

	if cfg.SessionSecret == "" || cfg.SessionSecret == defaultSessionSecret {
		cfg.SessionSecret = defaultSessionSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: SESSION_SECRET environment variable not set. Using default insecure key.")
	}

	expiryStr := v.GetString("SESSION_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil || expiry <= 0 {
		expiry = defaultSessionExpiry
		log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", expiryStr, expiry.String())
	}
	cfg.SessionExpiryDuration = expiry

	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "pft_session"
		log.Printf("Warning: SESSION_COOKIE_NAME not set. Defaulting to %s.\n", cfg.SessionCookieName)
	}

	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = "5-M"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
