package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"CATALOG_PRIMARY.ENV":                 "local",
		"CATALOG_SERVER.PORT":                 "8080",
		"CATALOG_SERVER.READ_TIMEOUT":         "30",
		"CATALOG_SERVER.WRITE_TIMEOUT":        "30",
		"CATALOG_SERVER.IDLE_TIMEOUT":         "60",
		"CATALOG_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"CATALOG_DATABASE.HOST":               "localhost",
		"CATALOG_DATABASE.PORT":               "5432",
		"CATALOG_DATABASE.USER":               "catalog",
		"CATALOG_DATABASE.PASSWORD":           "secret",
		"CATALOG_DATABASE.NAME":               "catalog",
		"CATALOG_DATABASE.SSL_MODE":           "disable",
		"CATALOG_DATABASE.MAX_OPEN_CONNS":     "25",
		"CATALOG_DATABASE.MAX_IDLE_CONNS":     "5",
		"CATALOG_DATABASE.CONN_MAX_LIFETIME":  "300",
		"CATALOG_DATABASE.CONN_MAX_IDLE_TIME": "60",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)

	require.NotNil(t, cfg.Jobs)
	assert.False(t, cfg.JobsEnabled())
	assert.Equal(t, 10, cfg.Jobs.Concurrency)
}

func TestLoadConfigPartialObservabilityKeepsDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("CATALOG_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfigJobsNeedRedis(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_JOBS.ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.JobsEnabled())

	t.Setenv("CATALOG_REDIS.ADDRESS", "localhost:6379")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.JobsEnabled())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfigRejectsInvalidNotifyEmail(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_INTEGRATION.NOTIFY_EMAIL", "not-an-email")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestObservabilityHasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("database"))
	assert.False(t, cfg.HasCheck("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("database"))
}
