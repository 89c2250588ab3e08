// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "GRPC_ADDR", "HTTP_ADDR", "STORAGE_BACKEND",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "REDIS_USERNAME", "REDIS_PASSWORD", "REDIS_DB",
		"CACHE_TTL", "JWT_SECRET", "JWT_TTL", "TIMEZONE", "SEED_RIDER", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.SeedRider)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "Africa/Nairobi", cfg.Location().String())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "riders")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SEED_RIDER", "true")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.SeedRider)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=riders sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown env", env: map[string]string{"APP_ENV": "qa"}},
		{name: "Missing secret in production", env: map[string]string{"APP_ENV": "production"}},
		{name: "Unknown backend", env: map[string]string{"STORAGE_BACKEND": "mongo"}},
		{name: "Unknown driver", env: map[string]string{"STORAGE_BACKEND": "postgres", "DB_DRIVER": "mysql"}},
		{name: "Bad redis db", env: map[string]string{"REDIS_DB": "zero"}},
		{name: "Bad cache ttl", env: map[string]string{"CACHE_TTL": "soon"}},
		{name: "Negative jwt ttl", env: map[string]string{"JWT_TTL": "-1h"}},
		{name: "Bad seed flag", env: map[string]string{"SEED_RIDER": "maybe"}},
		{name: "Unknown timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for %v", tt.env)
			}
		})
	}
}

func writeDotEnv(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	chdir(t, dir)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("HTTP_ADDR")
	t.Setenv("GRPC_ADDR", ":6000")
	writeDotEnv(t, "HTTP_ADDR=:9090\nGRPC_ADDR=:7000\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, ":6000", cfg.GRPCAddr, "the environment wins over .env")
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	_, err := Load()
	assert.NoError(t, err)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	clearEnv(t)
	writeDotEnv(t, "BAD-KEY=1\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestLoad_UnreadableDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err, "a .env that exists but cannot be read is reported")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
