package engine

import (
	"context"
	"testing"

	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_InMemoryBackends(t *testing.T) {
	cfg := &config.Config{Engine: config.EngineConfig{SeedDemoData: true, PriceSeed: 7, MinOrderQty: 10}}

	eng, cleanup, err := FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Len(t, eng.ListProducts(context.Background()), 6)
	assert.Len(t, eng.ListSuppliers(context.Background()), 3)

	_, err = eng.ExportLedger(context.Background())
	assert.Error(t, err)
}

func TestFromConfig_UnreachableCacheFails(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: true, RedisURL: "redis://127.0.0.1:1/0"}}

	_, cleanup, err := FromConfig(context.Background(), cfg)
	require.Error(t, err)
	assert.NotPanics(t, cleanup)
}
