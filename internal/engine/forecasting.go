package engine

import (
	"context"
	"errors"

	"github.com/andresuchdata/wms-engine/internal/cache"
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/forecast"
	"github.com/andresuchdata/wms-engine/internal/topology"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

func onHand(items []domain.InventoryItem, productID string) int {
	total := 0
	for _, it := range items {
		if it.ProductID == productID {
			total += it.Quantity
		}
	}
	return total
}

func (e *Engine) averageLeadTime() float64 {
	if avg, ok := e.suppliers.AverageLeadTime(); ok {
		return avg
	}
	return 0
}

// ForecastInventory projects the product's stock for the next six weeks.
func (e *Engine) ForecastInventory(ctx context.Context, productID string) (fc domain.InventoryForecast, err error) {
	ctx, span := e.start(ctx, "forecast_inventory", attribute.String("product.id", productID))
	defer func() { finish(span, err) }()

	if _, err = e.requireProduct(productID); err != nil {
		return domain.InventoryForecast{}, err
	}
	fc = e.forecastFromSnapshot(ctx, e.store.Snapshot(), productID)
	span.SetAttributes(attribute.Bool("forecast.stock_out_risk", fc.StockOutRisk), attribute.Bool("forecast.overstock_risk", fc.OverstockRisk))
	return fc, nil
}

func (e *Engine) forecastFromSnapshot(ctx context.Context, snap topology.Snapshot, productID string) domain.InventoryForecast {
	now := e.now()
	key := cache.ForecastKey{
		ProductID:    productID,
		LedgerLength: len(snap.Ledger),
		OnHand:       onHand(snap.Items, productID),
		Day:          now,
	}

	if fc, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return fc
	} else if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("engine: forecast cache get failed")
	}

	fc := forecast.Inventory(forecast.Input{
		ProductID:       productID,
		OnHand:          key.OnHand,
		Ledger:          snap.Ledger,
		AvgLeadTimeDays: e.averageLeadTime(),
		Now:             now,
	})

	if err := e.cache.Set(ctx, key, fc); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("engine: forecast cache set failed")
	}
	return fc
}

// ForecastAll forecasts every catalog product against one snapshot, with a bounded number
// of workers. Results follow catalog order.
func (e *Engine) ForecastAll(ctx context.Context) (out []domain.InventoryForecast, err error) {
	ctx, span := e.start(ctx, "forecast_all")
	defer func() { finish(span, err) }()

	products := e.catalog.List()
	snap := e.store.Snapshot()
	out = make([]domain.InventoryForecast, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.forecastWorkers)
	for i, p := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.forecastFromSnapshot(gctx, snap, p.ID)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("forecast.products", len(products)))
	return out, nil
}

// RecommendReplenishment decides whether and how much to reorder, and from whom.
func (e *Engine) RecommendReplenishment(ctx context.Context, productID string) (rec domain.ReplenishmentRecommendation, err error) {
	_, span := e.start(ctx, "recommend_replenishment", attribute.String("product.id", productID))
	defer func() { finish(span, err) }()

	product, err := e.requireProduct(productID)
	if err != nil {
		return domain.ReplenishmentRecommendation{}, err
	}

	snap := e.store.Snapshot()
	demand := forecast.AnalyzeDemand(productID, snap.Ledger, e.now())
	rec = e.replenisher.Calculate(forecast.Position{
		ProductID:        productID,
		Segment:          product.DemandSegment,
		OnHand:           onHand(snap.Items, productID),
		DailyConsumption: demand.DailyConsumption,
		LeadTimeDays:     e.averageLeadTime(),
		UnitCost:         product.CostPrice,
	})

	if rec.ShouldReorder {
		best, supErr := e.suppliers.Recommend(domain.SupplierRecommendationRequest{ProductID: productID, Quantity: rec.OrderQuantity})
		switch {
		case supErr == nil:
			rec.RecommendedSupplier = best.Recommended.SupplierID
		case !errors.Is(supErr, domain.ErrNotFound):
			return domain.ReplenishmentRecommendation{}, supErr
		}
	}
	span.SetAttributes(attribute.Bool("replenishment.reorder", rec.ShouldReorder), attribute.Int("replenishment.quantity", rec.OrderQuantity))
	return rec, nil
}
