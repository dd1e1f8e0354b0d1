package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, "https://diplomakids.com", cfg.AppBaseURL)
	assert.Equal(t, "@every 2s", cfg.OutboxSchedule)
	assert.Equal(t, 5, cfg.OutboxMaxAttempts)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example;https://b.example")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.OutboxMaxAttempts)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := Config{TokenTTL: time.Hour, OutboxMaxAttempts: 1, OutboxBatchSize: 1}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "x"
	assert.NoError(t, cfg.Validate())
}
