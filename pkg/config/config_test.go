package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "bikefactory", cfg.App.Name)
	assert.Equal(t, SnapshotBackendFile, cfg.Snapshot.Backend)
	assert.Equal(t, "bikefactory.json", cfg.Snapshot.Path)
	assert.Equal(t, 3, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 10, cfg.Session.BcryptCost)
	assert.Equal(t, devSessionSecret, cfg.Session.Secret)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("SNAPSHOT_BACKEND", "SQLite")
	v.Set("SNAPSHOT_PATH", "/tmp/f.db")
	v.Set("INVENTORY_LOW_STOCK_THRESHOLD", "5")
	v.Set("SESSION_SECRET", "s")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, SnapshotBackendSQLite, cfg.Snapshot.Backend)
	assert.Equal(t, "/tmp/f.db", cfg.Snapshot.Path)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "s", cfg.Session.Secret)
}

func TestFromViper_BackendDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("SNAPSHOT_BACKEND", "postgres")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "prod-secret")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 4, cfg.Session.BcryptCost)
}

func TestFromViper_ProduccionExigeSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)
}
