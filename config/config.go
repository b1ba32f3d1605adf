package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// AI provider configuration (OpenAI-compatible chat completions)
	AIAPIKey      string
	AIAPIURL      string
	AIModel       string
	AIVisionModel string
	AITimeout     time.Duration
}

// LoadConfig creates a new Config instance from environment variables,
// loading a .env file first when one is present. Secrets may alternatively
// be supplied as *_FILE paths (Docker secrets).
func LoadConfig() (*Config, error) {
	// Missing .env is fine: production supplies real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "mealsnap"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: getSecret("JWT_SECRET"),

		AIAPIKey:      getSecret("AI_API_KEY"),
		AIAPIURL:      getEnv("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIModel:       getEnv("AI_MODEL", "gpt-4o-mini"),
		AIVisionModel: getEnv("AI_VISION_MODEL", "gpt-4o"),
		AITimeout:     getEnvDuration("AI_TIMEOUT", 60*time.Second),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or the fallback.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads KEY directly, or the file named by KEY_FILE.
func getSecret(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
