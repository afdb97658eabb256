package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "dataset/recipes.csv", cfg.DatasetPath)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadConfigInvalidTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "whenever")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:     "8080",
			DatasetPath:    "dataset/recipes.csv",
			SessionBackend: SessionBackendMemory,
			SessionTTL:     time.Hour,
		}
	}

	assert.NoError(t, ValidateConfig(valid()))

	cfg := valid()
	cfg.ServerPort = "not-a-port"
	assert.Error(t, ValidateConfig(cfg))

	cfg = valid()
	cfg.DatasetPath = ""
	assert.Error(t, ValidateConfig(cfg))

	cfg = valid()
	cfg.SessionBackend = "etcd"
	assert.Error(t, ValidateConfig(cfg))

	cfg = valid()
	cfg.SessionBackend = SessionBackendRedis
	cfg.RedisHost = ""
	assert.Error(t, ValidateConfig(cfg))

	cfg = valid()
	cfg.SessionTTL = 0
	assert.Error(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
}
