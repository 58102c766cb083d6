package topology

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/rs/zerolog/log"
)

// RecordMovement applies a stock transfer and appends one ledger entry. Every check runs
// before any mutation, so a failed movement leaves the store untouched. The caller is
// responsible for checking that the product exists.
func (s *Store) RecordMovement(req domain.MovementRequest) (domain.MovementLogEntry, error) {
	from := strings.TrimSpace(req.FromLocationID)
	to := strings.TrimSpace(req.ToLocationID)
	qty := req.Quantity

	if qty <= 0 {
		return domain.MovementLogEntry{}, fmt.Errorf("quantity must be positive, got %d: %w", qty, domain.ErrValidation)
	}
	if req.ProductID == "" {
		return domain.MovementLogEntry{}, fmt.Errorf("product id is required: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		src    *domain.InventoryItem
		srcLoc *domain.Location
		dstLoc *domain.Location
	)

	if from != "" {
		src = s.items[itemKey{req.ProductID, from}]
		if src == nil {
			return domain.MovementLogEntry{}, fmt.Errorf("no stock of %s at %s: %w", req.ProductID, from, domain.ErrInsufficientStock)
		}
		srcLoc = s.locations[from]
		if srcLoc == nil || src.Quantity < 0 {
			return domain.MovementLogEntry{}, fmt.Errorf("stock record %s@%s: %w", req.ProductID, from, domain.ErrInconsistentState)
		}
		if src.Quantity < qty {
			return domain.MovementLogEntry{}, fmt.Errorf("%s at %s has %d, need %d: %w", req.ProductID, from, src.Quantity, qty, domain.ErrInsufficientStock)
		}
	}

	if to != "" {
		dstLoc = s.locations[to]
		if dstLoc == nil {
			return domain.MovementLogEntry{}, fmt.Errorf("destination location %s: %w", to, domain.ErrNotFound)
		}
		occupied := dstLoc.Occupied
		if to == from {
			occupied -= min(qty, occupied)
		}
		if occupied+qty > dstLoc.Capacity {
			return domain.MovementLogEntry{}, fmt.Errorf("location %s holds %d/%d, cannot take %d: %w", to, occupied, dstLoc.Capacity, qty, domain.ErrCapacityExceeded)
		}
	}

	// microsecond precision survives a round trip through the postgres archive
	now := s.now().UTC().Truncate(time.Microsecond)

	if src != nil {
		src.Quantity -= qty
		src.LastMovement = now
		if src.Quantity == 0 {
			delete(s.items, itemKey{req.ProductID, from})
		}
		srcLoc.Occupied -= min(qty, srcLoc.Occupied)
	}

	if dstLoc != nil {
		key := itemKey{req.ProductID, to}
		if dst, ok := s.items[key]; ok {
			dst.Quantity += qty
			dst.LastMovement = now
		} else {
			s.items[key] = &domain.InventoryItem{
				ProductID:    req.ProductID,
				LocationID:   to,
				Quantity:     qty,
				Status:       domain.InventoryStatusAvailable,
				LastMovement: now,
			}
		}
		dstLoc.Occupied += qty
	}

	entry := domain.MovementLogEntry{
		ID:             s.newID(),
		ProductID:      req.ProductID,
		FromLocationID: from,
		ToLocationID:   to,
		Quantity:       qty,
		Timestamp:      now,
	}
	entry.Hash = entry.ComputeHash()
	s.ledger = append(s.ledger, entry)

	log.Debug().
		Str("movement_id", entry.ID).
		Str("product_id", entry.ProductID).
		Str("from", from).
		Str("to", to).
		Int("quantity", qty).
		Msg("topology: movement recorded")

	return entry, nil
}

// VerifyLedger re-hashes every ledger entry.
func (s *Store) VerifyLedger() domain.LedgerVerification {
	return domain.VerifyEntries(s.Ledger())
}
