package engine

import (
	"context"
	"fmt"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/sourcing"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
)

func (e *Engine) ListSuppliers(ctx context.Context) []domain.SupplierProfile {
	return e.suppliers.List()
}

// AddSupplier registers or replaces a supplier. The average lead time feeds every forecast,
// so cached forecasts are dropped.
func (e *Engine) AddSupplier(ctx context.Context, profile domain.SupplierProfile) (saved domain.SupplierProfile, err error) {
	ctx, span := e.start(ctx, "add_supplier", attribute.String("supplier.id", profile.ID))
	defer func() { finish(span, err) }()

	if err = e.suppliers.Add(profile); err != nil {
		return domain.SupplierProfile{}, err
	}
	saved, _ = e.suppliers.Get(profile.ID)

	if cacheErr := e.cache.InvalidateAll(ctx); cacheErr != nil {
		span.AddEvent("forecast cache invalidation failed")
		log.Warn().Err(cacheErr).Str("supplier_id", saved.ID).Msg("engine: forecast cache invalidation failed")
	}
	log.Info().Str("supplier_id", saved.ID).Int("lead_time_days", saved.LeadTimeDays).Msg("engine: supplier saved")
	return saved, nil
}

// RecommendSupplier ranks suppliers by weighted score.
func (e *Engine) RecommendSupplier(ctx context.Context, req domain.SupplierRecommendationRequest) (rec domain.SupplierRecommendation, err error) {
	_, span := e.start(ctx, "recommend_supplier", attribute.String("product.id", req.ProductID))
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.SupplierRecommendation{}, err
	}
	return e.suppliers.Recommend(req)
}

// ReconcileAccounting runs the 3-way match. The supplier tolerance applies when the
// purchase order reference names a known supplier.
func (e *Engine) ReconcileAccounting(ctx context.Context, req domain.ReconciliationRequest) (res domain.ReconciliationResult, err error) {
	_, span := e.start(ctx, "reconcile_accounting", attribute.String("po.id", req.PurchaseOrderID))
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.ReconciliationResult{}, err
	}

	var supplier *domain.SupplierProfile
	if p, ok := e.suppliers.MatchPurchaseOrder(req.PurchaseOrderID); ok {
		supplier = &p
		span.SetAttributes(attribute.String("supplier.id", p.ID))
	}

	res, err = sourcing.Reconcile(req, supplier)
	if err != nil {
		return domain.ReconciliationResult{}, err
	}

	span.SetAttributes(attribute.Bool("po.auto_approved", res.AutoApproved))
	if !res.AutoApproved {
		log.Info().
			Str("po_id", req.PurchaseOrderID).
			Float64("deviation", res.Deviation).
			Float64("price_mismatch", res.PriceMismatch).
			Msg("engine: invoice flagged for manual review")
	}
	return res, nil
}

// RecommendPackaging sizes boxes for the aggregate volume and weight of the lines.
func (e *Engine) RecommendPackaging(ctx context.Context, req domain.PackagingRequest) (rec domain.PackagingRecommendation, err error) {
	_, span := e.start(ctx, "recommend_packaging", attribute.Int("packaging.lines", len(req.Items)))
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.PackagingRecommendation{}, err
	}

	volume, weight := 0.0, 0.0
	for _, line := range req.Items {
		p, lookupErr := e.requireProduct(line.ProductID)
		if lookupErr != nil {
			return domain.PackagingRecommendation{}, fmt.Errorf("packaging line: %w", lookupErr)
		}
		volume += p.VolumeCubicM * float64(line.Quantity)
		weight += p.WeightKg * float64(line.Quantity)
	}

	rec, err = sourcing.RecommendBoxes(e.boxes, volume, weight)
	if err != nil {
		return domain.PackagingRecommendation{}, err
	}
	span.SetAttributes(attribute.String("packaging.box", rec.Recommended.BoxID), attribute.Int("packaging.count", rec.Recommended.BoxCount))
	return rec, nil
}
