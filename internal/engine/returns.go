package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/rs/zerolog/log"
)

// RegisterReturn opens a return case for a known product.
func (e *Engine) RegisterReturn(ctx context.Context, req domain.ReturnRequest) (domain.ReturnCase, error) {
	if err := validate(req); err != nil {
		return domain.ReturnCase{}, err
	}
	if _, err := e.requireProduct(req.ProductID); err != nil {
		return domain.ReturnCase{}, err
	}

	rc := e.store.RegisterReturn(req.ProductID, strings.TrimSpace(req.Reason))
	log.Info().Str("return_id", rc.ID).Str("product_id", rc.ProductID).Msg("engine: return registered")
	return rc, nil
}

func (e *Engine) ListReturns(ctx context.Context) []domain.ReturnCase {
	return e.store.ListReturns()
}

// UpdateReturnStatus advances a return case.
func (e *Engine) UpdateReturnStatus(ctx context.Context, id string, req domain.ReturnStatusRequest) (domain.ReturnCase, error) {
	if err := validate(req); err != nil {
		return domain.ReturnCase{}, err
	}
	next, ok := domain.ParseReturnStatus(req.Status)
	if !ok {
		return domain.ReturnCase{}, fmt.Errorf("unknown return status %q: %w", req.Status, domain.ErrValidation)
	}
	return e.store.UpdateReturnStatus(id, next)
}

// RecordSensorReading buffers a telemetry reading for a location.
func (e *Engine) RecordSensorReading(ctx context.Context, locationID string, req domain.SensorReadingRequest) (domain.SensorReading, error) {
	if err := validate(req); err != nil {
		return domain.SensorReading{}, err
	}
	return e.store.RecordSensorReading(domain.SensorReading{
		LocationID: locationID,
		Kind:       strings.ToLower(strings.TrimSpace(req.Kind)),
		Value:      req.Value,
		Unit:       req.Unit,
	})
}

func (e *Engine) GetSensorReadings(ctx context.Context, locationID string) ([]domain.SensorReading, error) {
	return e.store.SensorReadings(locationID)
}
