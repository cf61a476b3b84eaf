package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSessionSecret = "your-secret-key-change-in-production"

// Store drivers
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Session SessionConfig
	Seed    SeedConfig
	I18n    I18nConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	Store       string // postgres | memory
	Migrate     bool   // run goose migrations on startup
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	Prefix   string
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
	// Failed login throttling
	MaxFailedLogins int
	LockoutWindow   time.Duration
}

// SeedUser is an account created on startup when missing.
type SeedUser struct {
	Username  string
	Password  string
	Authority string
}

type SeedConfig struct {
	Users []SeedUser
}

type I18nConfig struct {
	DefaultLanguage string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	seedDefault := ""
	if env == "development" {
		seedDefault = "user:pass:ROLE_USER,admin:admin:ROLE_ADMIN"
	}
	seedUsers, err := ParseSeedUsers(getEnv("SEED_USERS", seedDefault))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Manage"),
			Environment: env,
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Store:       getEnv("APP_STORE", StorePostgres),
			Migrate:     getEnvBool("DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "bookmanage"),
		},
		Session: SessionConfig{
			Secret:          getEnv("SESSION_SECRET", defaultSessionSecret),
			TTL:             getEnvDuration("SESSION_TTL", 30*time.Minute),
			CookieName:      getEnv("SESSION_COOKIE", "BOOKSESSION"),
			CookieSecure:    getEnvBool("SESSION_COOKIE_SECURE", env == "production"),
			MaxFailedLogins: getEnvInt("LOGIN_MAX_FAILURES", 5),
			LockoutWindow:   getEnvDuration("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
		},
		Seed: SeedConfig{Users: seedUsers},
		I18n: I18nConfig{
			DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.App.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("APP_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.App.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	// Production environment phải có session secret
	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if c.App.Store == StoreMemory {
			return fmt.Errorf("APP_STORE=memory is not allowed in production")
		}
	}

	return nil
}

// ParseSeedUsers parses "name:password:AUTHORITY" entries separated by commas.
func ParseSeedUsers(raw string) ([]SeedUser, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var users []SeedUser
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid SEED_USERS entry %q: want user:password:AUTHORITY", entry)
		}
		users = append(users, SeedUser{Username: parts[0], Password: parts[1], Authority: parts[2]})
	}
	return users, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
