package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "usuarios", cfg.DB.Name)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, "usuarios-api", cfg.Logger.ServiceName)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/usuarios")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "postgres://u:p@db:5432/usuarios", cfg.DB.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ProductionLoggerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestLoadConfig_ProductionFromAppEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("APP_ENV=production\n"), 0o600))
	t.Setenv("APP_ENV", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestLoadConfig_AppEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("DB_NAME=from_file\nLOG_LEVEL=warn\n"), 0o600))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.DB.Name)
	assert.Equal(t, "error", cfg.Logger.Level, "environment wins over app.env")
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVICE_VERSION=9.9.9\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SERVICE_VERSION") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9.9.9", cfg.Logger.ServiceVersion)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App: AppConfig{Port: "5000", ShutdownTimeoutSeconds: 10},
			DB:  DatabaseConfig{Driver: DriverPostgres, MaxOpenConns: 10, MaxIdleConns: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.App.Port = "" }, "PORT"},
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, "not supported"},
		{"sqlite without url", func(c *Config) { c.DB.Driver = DriverSQLite }, "DATABASE_URL"},
		{"no pool", func(c *Config) { c.DB.MaxOpenConns = 0 }, "pool sizes"},
		{"rate limit without redis", func(c *Config) {
			c.RateLimit = RateLimitConfig{Enabled: true, RequestsPerSecond: 1, BurstCapacity: 1}
		}, "REDIS_ENABLED"},
		{"zero burst", func(c *Config) {
			c.Redis.Enabled = true
			c.RateLimit = RateLimitConfig{Enabled: true, RequestsPerSecond: 1}
		}, "burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable", c.DSN())
}
