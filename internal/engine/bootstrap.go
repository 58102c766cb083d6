package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/andresuchdata/wms-engine/internal/cache"
	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/andresuchdata/wms-engine/internal/repository/postgres"
	"github.com/andresuchdata/wms-engine/internal/storage"
	"github.com/rs/zerolog/log"
)

// FromConfig builds an engine with the backends the configuration enables. The returned
// cleanup closes whatever was opened.
func FromConfig(ctx context.Context, cfg *config.Config) (*Engine, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	seed := cfg.Engine.PriceSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := Options{
		PriceSource:      rand.NewSource(seed),
		ForecastWorkers:  cfg.Engine.ForecastWorker,
		MinOrderQty:      cfg.Engine.MinOrderQty,
		SensorBufferSize: cfg.Engine.SensorBuffer,
	}

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		return nil, cleanup, fmt.Errorf("forecast cache: %w", err)
	}
	opts.ForecastCache = forecastCache
	closers = append(closers, func() {
		if err := forecastCache.Close(); err != nil {
			log.Warn().Err(err).Msg("engine: closing forecast cache")
		}
	})

	if cfg.Archive.Enabled {
		db, err := postgres.NewDB(cfg.Archive)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("engine: closing archive database")
			}
		})
		archive := postgres.NewLedgerRepository(db)
		if err := archive.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("archive schema: %w", err)
		}
		opts.Archive = archive
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(ctx, storage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("object storage: %w", err)
		}
		opts.Exporter = storage.NewLedgerExporter(client, cfg.Storage.Prefix)
	}

	eng := New(opts)
	if cfg.Engine.SeedDemoData {
		if err := eng.Seed(ctx); err != nil {
			cleanup()
			return nil, func() {}, err
		}
	}

	log.Info().
		Bool("cache", cfg.Cache.Enabled).
		Bool("archive", cfg.Archive.Enabled).
		Bool("storage", cfg.Storage.Enabled).
		Bool("seeded", cfg.Engine.SeedDemoData).
		Msg("engine: ready")

	return eng, cleanup, nil
}
