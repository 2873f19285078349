package config

import (
	"os"
	"strconv"
)

const (
	defaultMaxEvents  = 4096
	adminEventsFactor = 8
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Persistence (empty disables the composition store)
	DatabaseURL string

	// Observability
	SentryDSN string
	AWSRegion string // CloudWatch region, production only

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Validate HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Limits
	MaxEvents int // upper bound on events a single request may generate
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		AuthMode:    getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:   getEnv("JWT_SECRET", ""),
		MaxEvents:   getEnvInt("MAX_EVENTS", defaultMaxEvents),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if bearer tokens are validated locally
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

// PersistenceEnabled reports whether a database is configured
func (c *Config) PersistenceEnabled() bool {
	return c.DatabaseURL != ""
}

// EventLimit returns the event cap for a role. Admins get a larger budget.
func (c *Config) EventLimit(role string) int {
	if role == "admin" {
		return c.MaxEvents * adminEventsFactor
	}
	return c.MaxEvents
}
