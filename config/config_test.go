package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_USER", "platefull")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "platefull")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigRejectsBadRedisDB(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "recipes",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db port=5433 user=app password=pw dbname=recipes sslmode=require",
		cfg.DatabaseDSN())
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg := &Config{
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "recipes",
		JWTSecret:  "secret",
		DBSSLMode:  "disable",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_SSL_MODE")
	assert.Contains(t, err.Error(), "REDIS_URL")

	cfg.DBSSLMode = "require"
	cfg.RedisURL = "redis://redis:6379"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())
}
