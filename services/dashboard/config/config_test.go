package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // keep a developer .env out of the test
	for _, key := range []string{"DATABASE_URL", "PORT", "DASHBOARD_PORT", "LOGO_PATH", "DASHBOARD_PASSWORD", "REQUEST_TIMEOUT", "SESSION_TTL", "LOG_LEVEL", "LOG_FORMAT", "COOKIE_SECURE"} {
		t.Setenv(key, "")
	}
	t.Setenv("FONT_PATH", "CJ_Light.ttf")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shrimp.db", cfg.DatabaseURL)
	assert.Equal(t, 8501, cfg.Port)
	assert.Equal(t, ":8501", cfg.ListenAddr())
	assert.Equal(t, "1234!", cfg.Password)
	assert.Equal(t, "cj.jpg", cfg.LogoPath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/shrimp")
	t.Setenv("PORT", "9000")
	t.Setenv("FONT_PATH", "")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/shrimp", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Empty(t, cfg.FontPath)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("PORT", "zero")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("DASHBOARD_PORT", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SESSION_TTL", "-1h")
	_, err = Load()
	assert.Error(t, err)
}
