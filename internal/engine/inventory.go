package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/forecast"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
)

func (e *Engine) ListProducts(ctx context.Context) []domain.Product {
	return e.catalog.List()
}

func (e *Engine) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return e.requireProduct(id)
}

// UpsertProduct creates or replaces a product. The demand segment comes from the product's
// pick velocity in the current ledger.
func (e *Engine) UpsertProduct(ctx context.Context, req domain.UpsertProductRequest) (p domain.Product, err error) {
	_, span := e.start(ctx, "upsert_product", attribute.String("product.id", req.ID))
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.Product{}, err
	}

	velocity := 0.0
	if id := strings.TrimSpace(req.ID); id != "" {
		holding := len(e.store.ItemsForProduct(id))
		velocity = forecast.PickVelocity(id, e.store.Ledger(), holding, e.now())
	}
	p = e.catalog.Upsert(req, velocity)
	span.SetAttributes(attribute.String("product.category", p.Category), attribute.String("product.segment", p.DemandSegment))
	return p, nil
}

func (e *Engine) ListLocations(ctx context.Context) []domain.Location {
	return e.store.ListLocations()
}

func (e *Engine) ListInventory(ctx context.Context) []domain.InventoryItem {
	return e.store.ListInventory()
}

// RecordMovement transfers stock and appends a ledger entry, then mirrors the entry to the
// archive. Archive failures are logged; the in-memory ledger stays authoritative.
func (e *Engine) RecordMovement(ctx context.Context, req domain.MovementRequest) (entry domain.MovementLogEntry, err error) {
	ctx, span := e.start(ctx, "record_movement",
		attribute.String("product.id", req.ProductID),
		attribute.String("movement.from", req.FromLocationID),
		attribute.String("movement.to", req.ToLocationID),
		attribute.Int("movement.quantity", req.Quantity),
	)
	defer func() { finish(span, err) }()

	if err = validate(req); err != nil {
		return domain.MovementLogEntry{}, err
	}
	if _, err = e.requireProduct(req.ProductID); err != nil {
		return domain.MovementLogEntry{}, err
	}

	entry, err = e.store.RecordMovement(req)
	if err != nil {
		log.Debug().Err(err).Str("product_id", req.ProductID).Msg("engine: movement rejected")
		return domain.MovementLogEntry{}, err
	}

	if archiveErr := e.archive.AppendMovements(ctx, []domain.MovementLogEntry{entry}); archiveErr != nil {
		span.AddEvent("archive failed")
		log.Warn().Err(archiveErr).Str("movement_id", entry.ID).Msg("engine: archive movement failed")
	}

	log.Info().
		Str("movement_id", entry.ID).
		Str("product_id", entry.ProductID).
		Str("from", entry.FromLocationID).
		Str("to", entry.ToLocationID).
		Int("quantity", entry.Quantity).
		Msg("engine: movement recorded")
	return entry, nil
}

func (e *Engine) ListMovements(ctx context.Context) []domain.MovementLogEntry {
	return e.store.Ledger()
}

// VerifyLedger re-hashes every entry.
func (e *Engine) VerifyLedger(ctx context.Context) domain.LedgerVerification {
	_, span := e.start(ctx, "verify_ledger")
	defer span.End()

	result := e.store.VerifyLedger()
	span.SetAttributes(attribute.Int("ledger.entries", result.TotalEntries), attribute.Int("ledger.tampered", len(result.TamperedIDs)))
	if len(result.TamperedIDs) > 0 {
		log.Warn().Strs("tampered_ids", result.TamperedIDs).Msg("engine: ledger verification failed")
	}
	return result
}

// ExportLedger uploads a JSON-lines snapshot of the ledger to object storage.
func (e *Engine) ExportLedger(ctx context.Context) (export domain.LedgerExport, err error) {
	ctx, span := e.start(ctx, "export_ledger")
	defer func() { finish(span, err) }()

	if e.exporter == nil {
		return domain.LedgerExport{}, fmt.Errorf("object storage: %w", domain.ErrUnavailable)
	}

	entries := e.store.Ledger()
	at := e.now().UTC()
	key, err := e.exporter.Export(ctx, entries, at)
	if err != nil {
		return domain.LedgerExport{}, fmt.Errorf("export ledger: %w", err)
	}

	log.Info().Str("key", key).Int("entries", len(entries)).Msg("engine: ledger exported")
	return domain.LedgerExport{Key: key, Entries: len(entries), ExportedAt: at}, nil
}
