package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "threadly", cfg.Database.Database)

	assert.Equal(t, "localhost:6379", cfg.Redis.Address)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenExpiry)
	assert.Equal(t, "threadly", cfg.Auth.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("THREADLY_JWT_SECRET", "env-secret")
	t.Setenv("THREADLY_DB_PASSWORD", "env-db-password")
	t.Setenv("THREADLY_REDIS_PASSWORD", "env-redis-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-db-password", cfg.Database.Password)
	assert.Equal(t, "env-redis-password", cfg.Redis.Password)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "threadly",
		Password: "secret",
		Database: "threadly",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=threadly password=secret dbname=threadly sslmode=require",
		cfg.DSN(),
	)
}
