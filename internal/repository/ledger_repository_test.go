package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLedgerRepository()

	require.NoError(t, repo.AppendMovements(ctx, []domain.MovementLogEntry{{ID: "1"}, {ID: "2"}, {ID: "3"}}))

	all, err := repo.ListMovements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	firstTwo, err := repo.ListMovements(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "2", firstTwo[1].ID)

	boom := errors.New("down")
	repo.FailWith(boom)
	assert.ErrorIs(t, repo.AppendMovements(ctx, []domain.MovementLogEntry{{ID: "4"}}), boom)
}

func TestNoopLedgerRepository(t *testing.T) {
	repo := NewNoopLedgerRepository()
	require.NoError(t, repo.AppendMovements(context.Background(), []domain.MovementLogEntry{{ID: "1"}}))

	entries, err := repo.ListMovements(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
