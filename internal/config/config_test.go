package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "lifehub", cfg.MongoDB)
	assert.Equal(t, 900000*time.Millisecond, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.False(t, cfg.RateLimitDisabled)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_DISABLED", "true")
	t.Setenv("TOKEN_TTL_HOURS", "2")

	cfg := Load()

	require.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.True(t, cfg.RateLimitDisabled)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg := Load()

	assert.Equal(t, 100, cfg.RateLimitMax)
}
