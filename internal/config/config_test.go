package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"APP_ADDR", "DB_DSN", "TOKEN_TTL", "DB_TIMEOUT", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "MAX_BODY_BYTES", "CORS_ALLOWED_ORIGINS", "AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, defaultDSN, cfg.DSN)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DB_TIMEOUT", "750ms")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("AUTO_MIGRATE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 750*time.Millisecond, cfg.DBTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.AutoMigrate)
}

func TestFromEnv_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("RATE_LIMIT_BURST", "-1")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "TOKEN_TTL")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nLOG_LEVEL=debug\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	t.Chdir(tmp)
	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/x", RedactDSN("postgres://u:p@db:5432/x"))
	assert.Equal(t, "host=db user=u", RedactDSN("host=db user=u"))
	assert.Equal(t, "postgres://db/x", RedactDSN("postgres://db/x"))
}
