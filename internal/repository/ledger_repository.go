// internal/repository/ledger_repository.go
package repository

import (
	"context"
	"sync"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

// LedgerRepository mirrors appended movement entries to durable storage. The in-memory
// ledger stays authoritative.
type LedgerRepository interface {
	EnsureSchema(ctx context.Context) error
	AppendMovements(ctx context.Context, entries []domain.MovementLogEntry) error
	ListMovements(ctx context.Context, limit int) ([]domain.MovementLogEntry, error)
}

type noopLedgerRepository struct{}

func NewNoopLedgerRepository() LedgerRepository {
	return noopLedgerRepository{}
}

func (noopLedgerRepository) EnsureSchema(context.Context) error { return nil }

func (noopLedgerRepository) AppendMovements(context.Context, []domain.MovementLogEntry) error {
	return nil
}

func (noopLedgerRepository) ListMovements(context.Context, int) ([]domain.MovementLogEntry, error) {
	return []domain.MovementLogEntry{}, nil
}

// MemoryLedgerRepository keeps archived entries in process.
type MemoryLedgerRepository struct {
	mu      sync.Mutex
	entries []domain.MovementLogEntry
	err     error
}

func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{}
}

// FailWith makes subsequent appends return err.
func (m *MemoryLedgerRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryLedgerRepository) EnsureSchema(context.Context) error { return nil }

func (m *MemoryLedgerRepository) AppendMovements(_ context.Context, entries []domain.MovementLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MemoryLedgerRepository) ListMovements(_ context.Context, limit int) ([]domain.MovementLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.MovementLogEntry, n)
	copy(out, m.entries[:n])
	return out, nil
}
