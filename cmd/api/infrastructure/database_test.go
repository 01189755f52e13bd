package infrastructure

import (
	"context"
	"path/filepath"
	"testing"

	"usuarios-api/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.URL = filepath.Join(t.TempDir(), "usuarios.db")
	cfg.DB.MaxOpenConns = 1
	cfg.DB.MaxIdleConns = 1
	cfg.DB.ConnMaxLifetime = 60
	cfg.DB.ConnMaxIdleTime = 60
	cfg.Logger.Level = "info"
	cfg.Logger.SlowQuerySeconds = 1
	return cfg
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := NewDatabase(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	assert.True(t, db.Migrator().HasTable("usuarios"))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.Driver = "mysql"

	_, err := NewDatabase(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := &config.Config{}

		rdb, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Nil(t, rdb)
	})

	t.Run("enabled", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{}
		cfg.Redis.Enabled = true
		cfg.Redis.Host = mr.Host()
		cfg.Redis.Port = mr.Port()
		cfg.Redis.PoolSize = 2

		rdb, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, rdb)
		assert.NoError(t, rdb.Close())
	})
}
