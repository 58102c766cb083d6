package topology

import (
	"fmt"
	"sort"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

// RegisterReturn opens a return case in RECEIVED status.
func (s *Store) RegisterReturn(productID, reason string) domain.ReturnCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	rc := &domain.ReturnCase{
		ID:        s.newID(),
		ProductID: productID,
		Reason:    reason,
		Status:    domain.ReturnReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.returns[rc.ID] = rc
	return *rc
}

// ListReturns returns all cases, oldest first.
func (s *Store) ListReturns() []domain.ReturnCase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ReturnCase, 0, len(s.returns))
	for _, rc := range s.returns {
		out = append(out, *rc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) UpdateReturnStatus(id string, next domain.ReturnStatus) (domain.ReturnCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rc, ok := s.returns[id]
	if !ok {
		return domain.ReturnCase{}, fmt.Errorf("return %s: %w", id, domain.ErrNotFound)
	}
	if !rc.Status.CanTransition(next) {
		return domain.ReturnCase{}, fmt.Errorf("return %s %s -> %s: %w", id, rc.Status, next, domain.ErrInvalidTransition)
	}
	rc.Status = next
	rc.UpdatedAt = s.now().UTC()
	return *rc, nil
}
