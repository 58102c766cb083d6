package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/routing"
	"github.com/andresuchdata/wms-engine/internal/slotting"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
	"go.opentelemetry.io/otel/attribute"
)

// EstimateTravelTime runs A* from the dock origin to the location over the current grid.
func (e *Engine) EstimateTravelTime(ctx context.Context, locationID string) (est domain.TravelEstimate, err error) {
	_, span := e.start(ctx, "estimate_travel_time", attribute.String("location.id", locationID))
	defer func() { finish(span, err) }()

	locations := e.store.ListLocations()
	var target *domain.Location
	for i := range locations {
		if locations[i].ID == locationID {
			target = &locations[i]
			break
		}
	}
	if target == nil {
		return domain.TravelEstimate{}, fmt.Errorf("location %s: %w", locationID, domain.ErrNotFound)
	}

	grid := routing.BuildGrid(locations)
	meters := routing.TravelDistance(grid, *target)
	return domain.TravelEstimate{
		LocationID: locationID,
		Meters:     mathutil.Round1(meters),
		Seconds:    mathutil.Round1(meters / routing.WalkingSpeed),
	}, nil
}

// RecommendSlot scores every eligible location for put-away.
func (e *Engine) RecommendSlot(ctx context.Context, req domain.SlotRequest) (rec domain.SlotRecommendation, err error) {
	_, span := e.start(ctx, "recommend_slot", attribute.String("product.id", req.ProductID))
	defer func() { finish(span, err) }()

	req.ZonePreference = strings.ToUpper(strings.TrimSpace(req.ZonePreference))
	if err = validate(req); err != nil {
		return domain.SlotRecommendation{}, err
	}

	rec, err = slotting.Recommend(e.store.ListLocations(), req)
	if err != nil {
		return domain.SlotRecommendation{}, err
	}
	span.SetAttributes(attribute.String("slot.location", rec.LocationID), attribute.Float64("slot.confidence", rec.Confidence))
	return rec, nil
}

// PlanPickRoute allocates the lines against a consistent snapshot of stock and sequences
// the stops. Stock is not reserved.
func (e *Engine) PlanPickRoute(ctx context.Context, req domain.PickRouteRequest) (route domain.PickRoute, err error) {
	_, span := e.start(ctx, "plan_pick_route", attribute.Int("pick.lines", len(req.Items)))
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.PickRoute{}, err
	}

	snap := e.store.Snapshot()
	route, err = routing.PlanPickRoute(snap.LocationByID(), snap.Items, req.Items)
	if err != nil {
		return domain.PickRoute{}, err
	}
	span.SetAttributes(
		attribute.Int("pick.stops", len(route.Waypoints)),
		attribute.Float64("pick.distance", route.TotalDistance),
	)
	return route, nil
}
