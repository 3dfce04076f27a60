package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Budget evaluation
	BudgetAlertThreshold decimal.Decimal
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
	}

	threshold, err := parseThreshold(getEnv("BUDGET_ALERT_THRESHOLD", ""))
	if err != nil {
		return nil, err
	}
	cfg.BudgetAlertThreshold = threshold

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseThreshold(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.NewFromInt(domain.DefaultAlertThreshold), nil
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("BUDGET_ALERT_THRESHOLD must be a decimal number: %w", err)
	}
	if threshold.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("BUDGET_ALERT_THRESHOLD must be positive")
	}
	return threshold, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
