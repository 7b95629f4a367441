package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REVIEWAPI_PRIMARY.ENV", "local")
	t.Setenv("REVIEWAPI_DATABASE.HOST", "localhost")
	t.Setenv("REVIEWAPI_DATABASE.USER", "reviews")
	t.Setenv("REVIEWAPI_DATABASE.PASSWORD", "secret")
	t.Setenv("REVIEWAPI_DATABASE.NAME", "reviews")
}

func TestLoadConfig(t *testing.T) {
	t.Run("AppliesDefaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Primary.Env)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.False(t, cfg.RateLimit.Enabled)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, "review-api", cfg.Observability.ServiceName)
		assert.Equal(t, "local", cfg.Observability.Environment)
	})

	t.Run("OverridesFromEnv", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REVIEWAPI_SERVER.PORT", "9090")
		t.Setenv("REVIEWAPI_SERVER.CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("REVIEWAPI_RATE_LIMIT.ENABLED", "true")
		t.Setenv("REVIEWAPI_RATE_LIMIT.WINDOW", "30s")
		t.Setenv("REVIEWAPI_OBSERVABILITY.LOGGING.LEVEL", "debug")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
		assert.Equal(t, "json", cfg.Observability.Logging.Format)
	})

	t.Run("MissingDatabaseHost", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REVIEWAPI_DATABASE.HOST", "")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REVIEWAPI_OBSERVABILITY.LOGGING.LEVEL", "loud")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level")
	})
}

func TestObservabilityConfig(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))

	cfg.Environment = "production"
	cfg.Logging.Level = ""
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.True(t, cfg.IsProduction())
}
