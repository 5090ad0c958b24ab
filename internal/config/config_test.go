package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "dev-secret-key", cfg.Auth.JWTSecret)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{
		"ENV":               "production",
		"HTTP_PORT":         "9090",
		"DB_DSN":            "postgres://u:p@db:5432/dealer",
		"DB_MAX_OPEN_CONNS": "20",
		"CACHE_DRIVER":      "redis",
		"CACHE_TTL":         "1m",
		"REDIS_ADDR":        "cache:6379",
		"AUTH_JWT_SECRET":   "s3cret",
		"AUTH_USERS":        "ana:$2a$10$abc,luis:$2a$10$def",
	}})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "postgres://u:p@db:5432/dealer", cfg.DB.GetDSN())
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"ana:$2a$10$abc", "luis:$2a$10$def"}, cfg.Auth.Users)
}

func TestParseRequiresSecretOutsideDevelopment(t *testing.T) {
	_, err := Parse(env.Options{Environment: map[string]string{"ENV": "production"}})
	require.Error(t, err)
}

func TestGetDSNFromParts(t *testing.T) {
	cfg := DBConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", cfg.GetDSN())
}

func TestApplyDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEALER_TEST_A=from-file\nDEALER_TEST_B=\"quoted value\"\n"), 0o600))

	t.Setenv("DEALER_TEST_A", "from-env")
	t.Setenv("DEALER_TEST_B", "")
	require.NoError(t, os.Unsetenv("DEALER_TEST_B"))

	loaded, skipped, err := applyDotEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "from-env", os.Getenv("DEALER_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("DEALER_TEST_B"))
}
