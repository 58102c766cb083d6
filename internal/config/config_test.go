package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	cfg := fromViper()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Engine.SeedDemoData)
	assert.Equal(t, 4, cfg.Engine.ForecastWorker)
	assert.Equal(t, 256, cfg.Engine.SensorBuffer)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 300, cfg.Cache.ForecastTTLSeconds)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "wms-ledger", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	setDefaults()
	t.Setenv("ENGINE_FORECAST_WORKERS", "9")
	t.Setenv("CACHE_ENABLED", "true")
	viper.AutomaticEnv()

	cfg := fromViper()

	assert.Equal(t, 9, cfg.Engine.ForecastWorker)
	assert.True(t, cfg.Cache.Enabled)
}

func TestArchiveConfig_ConnectionStrings(t *testing.T) {
	a := ArchiveConfig{Host: "db", Port: "5432", User: "wms", Password: "pw", DBName: "ledger", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=wms password=pw dbname=ledger sslmode=disable", a.DSN())
	assert.Equal(t, "postgres://wms:pw@db:5432/ledger?sslmode=disable", a.URL())
}
