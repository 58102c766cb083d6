// Package engine owns every warehouse collection and exposes the operations that the HTTP
// API and the CLI call.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/andresuchdata/wms-engine/internal/cache"
	"github.com/andresuchdata/wms-engine/internal/catalog"
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/forecast"
	"github.com/andresuchdata/wms-engine/internal/repository"
	"github.com/andresuchdata/wms-engine/internal/sourcing"
	"github.com/andresuchdata/wms-engine/internal/storage"
	"github.com/andresuchdata/wms-engine/internal/topology"
	"github.com/andresuchdata/wms-engine/pkg/validator"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName             = "wms-engine/engine"
	defaultForecastWorkers = 4
)

// Options wires the engine's collaborators. Zero values select in-memory or no-op
// implementations.
type Options struct {
	Now              func() time.Time
	NewID            func() string
	PriceSource      rand.Source
	ForecastCache    cache.ForecastCache
	Archive          repository.LedgerRepository
	Exporter         *storage.LedgerExporter
	TracerProvider   trace.TracerProvider
	ForecastWorkers  int
	MinOrderQty      int
	SensorBufferSize int
	Boxes            []sourcing.Box
}

// Engine is constructed once and shared by pointer. Catalog data lives in concurrent maps;
// topology state sits behind the store's single lock.
type Engine struct {
	catalog     *catalog.Catalog
	store       *topology.Store
	suppliers   *sourcing.Directory
	replenisher *forecast.Calculator
	boxes       []sourcing.Box

	cache    cache.ForecastCache
	archive  repository.LedgerRepository
	exporter *storage.LedgerExporter
	tracer   trace.Tracer

	now             func() time.Time
	forecastWorkers int
}

func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.PriceSource == nil {
		opts.PriceSource = rand.NewSource(time.Now().UnixNano())
	}
	if opts.ForecastCache == nil {
		opts.ForecastCache = cache.NewNoopForecastCache()
	}
	if opts.Archive == nil {
		opts.Archive = repository.NewNoopLedgerRepository()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if opts.ForecastWorkers <= 0 {
		opts.ForecastWorkers = defaultForecastWorkers
	}
	if len(opts.Boxes) == 0 {
		opts.Boxes = sourcing.StandardBoxes
	}

	storeOpts := []topology.Option{
		topology.WithClock(opts.Now),
		topology.WithIDGenerator(opts.NewID),
	}
	if opts.SensorBufferSize > 0 {
		storeOpts = append(storeOpts, topology.WithSensorBufferSize(opts.SensorBufferSize))
	}

	return &Engine{
		catalog:         catalog.New(catalog.NewPricer(opts.PriceSource), opts.Now),
		store:           topology.NewStore(storeOpts...),
		suppliers:       sourcing.NewDirectory(),
		replenisher:     forecast.NewCalculator(opts.MinOrderQty),
		boxes:           opts.Boxes,
		cache:           opts.ForecastCache,
		archive:         opts.Archive,
		exporter:        opts.Exporter,
		tracer:          opts.TracerProvider.Tracer(tracerName),
		now:             opts.Now,
		forecastWorkers: opts.ForecastWorkers,
	}
}

// Store exposes the topology for seeding and inspection.
func (e *Engine) Store() *topology.Store {
	return e.store
}

func (e *Engine) Suppliers() *sourcing.Directory {
	return e.suppliers
}

func (e *Engine) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "engine."+name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%s: %w", validator.Summary(errs), domain.ErrValidation)
	}
	return nil
}

func (e *Engine) requireProduct(id string) (domain.Product, error) {
	p, ok := e.catalog.Get(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
