package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	forecastKeyPrefix     = "wms:forecast"
	forecastScanBatchSize = 100
)

// ForecastKey identifies a forecast computed against one ledger state on one day. A new
// movement changes LedgerLength, so stale entries are never read back. Product ids are
// case-sensitive, as in the catalog.
type ForecastKey struct {
	ProductID    string
	LedgerLength int
	OnHand       int
	Day          time.Time
}

func (k ForecastKey) String() string {
	return fmt.Sprintf("%s:%s:%d:%d:%s", forecastKeyPrefix,
		strings.TrimSpace(k.ProductID), k.LedgerLength, k.OnHand, k.Day.UTC().Format("20060102"))
}

type ForecastCache interface {
	Get(ctx context.Context, key ForecastKey) (domain.InventoryForecast, bool, error)
	Set(ctx context.Context, key ForecastKey, fc domain.InventoryForecast) error
	// InvalidateAll drops every cached forecast, for changes the key does not capture.
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

// NewForecastCache connects to redis when caching is enabled and otherwise returns a cache
// that never hits.
func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, key ForecastKey) (domain.InventoryForecast, bool, error) {
	payload, err := c.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.InventoryForecast{}, false, nil
	}
	if err != nil {
		return domain.InventoryForecast{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var fc domain.InventoryForecast
	if err := json.Unmarshal(payload, &fc); err != nil {
		return domain.InventoryForecast{}, false, fmt.Errorf("decode forecast cache: %w", err)
	}
	return fc, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, key ForecastKey, fc domain.InventoryForecast) error {
	payload, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}
	if err := c.client.Set(ctx, key.String(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	removed, err := unlinkByPrefix(ctx, c.client, forecastKeyPrefix+":", forecastScanBatchSize)
	if err != nil {
		return err
	}
	log.Debug().Int("keys", removed).Msg("cache: forecasts invalidated")
	return nil
}

func (c *redisForecastCache) Close() error {
	return c.client.Close()
}

func (n *noopForecastCache) Get(ctx context.Context, key ForecastKey) (domain.InventoryForecast, bool, error) {
	return domain.InventoryForecast{}, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, key ForecastKey, fc domain.InventoryForecast) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopForecastCache) Close() error { return nil }

// MemoryForecastCache keeps forecasts in process. Used by tests and by the CLI.
type MemoryForecastCache struct {
	mu      sync.Mutex
	entries map[string]domain.InventoryForecast
	hits    int
	flushes int
}

func NewMemoryForecastCache() *MemoryForecastCache {
	return &MemoryForecastCache{entries: make(map[string]domain.InventoryForecast)}
}

func (m *MemoryForecastCache) Get(_ context.Context, key ForecastKey) (domain.InventoryForecast, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fc, ok := m.entries[key.String()]
	if ok {
		m.hits++
	}
	return fc, ok, nil
}

func (m *MemoryForecastCache) Set(_ context.Context, key ForecastKey, fc domain.InventoryForecast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key.String()] = fc
	return nil
}

func (m *MemoryForecastCache) InvalidateAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]domain.InventoryForecast)
	m.flushes++
	return nil
}

func (m *MemoryForecastCache) Close() error { return nil }

// Len reports how many forecasts are cached.
func (m *MemoryForecastCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Flushes counts InvalidateAll calls.
func (m *MemoryForecastCache) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Hits reports how many lookups were served from the cache.
func (m *MemoryForecastCache) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}
