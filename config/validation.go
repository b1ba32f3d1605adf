package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that every required value is present and sane.
// Secrets are required outside development so a misconfigured deployment
// fails at startup instead of at the first request.
func ValidateConfig(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", cfg.ServerPort)
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required in production")
		}
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.AIAPIKey == "" {
			return fmt.Errorf("AI_API_KEY is required in production")
		}
	}

	if cfg.JWTSecret == "" {
		// Development fallback; never acceptable in production (checked above).
		cfg.JWTSecret = "dev-only-secret"
	}

	if cfg.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}

	return nil
}
