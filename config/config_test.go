package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	clearEnv := func() {
		for _, key := range []string{
			"SERVER_PORT", "DB_HOST", "DB_PASSWORD", "DB_PASSWORD_FILE",
			"JWT_SECRET", "AI_API_KEY", "AI_API_URL", "AI_TIMEOUT", "ENV",
		} {
			os.Unsetenv(key)
		}
	}

	t.Run("applies defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.AIAPIURL)
		assert.Equal(t, 60*time.Second, cfg.AITimeout)
		// development fallback secret
		assert.NotEmpty(t, cfg.JWTSecret)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SERVER_PORT", "9000")
		os.Setenv("AI_TIMEOUT", "15s")
		defer clearEnv()

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.ServerPort)
		assert.Equal(t, 15*time.Second, cfg.AITimeout)
	})

	t.Run("secret file fallback", func(t *testing.T) {
		clearEnv()
		f, err := os.CreateTemp(t.TempDir(), "jwt-secret")
		require.NoError(t, err)
		_, err = f.WriteString("file-secret\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		os.Setenv("JWT_SECRET_FILE", f.Name())
		defer os.Unsetenv("JWT_SECRET_FILE")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "file-secret", cfg.JWTSecret)
	})

	t.Run("rejects non-numeric port", func(t *testing.T) {
		clearEnv()
		os.Setenv("SERVER_PORT", "not-a-port")
		defer clearEnv()

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENV", "production")
		defer clearEnv()

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required in production")
	})
}
