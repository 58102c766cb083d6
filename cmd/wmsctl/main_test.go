package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/repository"
	"github.com/andresuchdata/wms-engine/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems(t *testing.T) {
	lines, err := parseItems([]string{"SKU-AR-01:3", " SKU-TS-06 : 2 ,SKU-DR-05:1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.PickLine{
		{ProductID: "SKU-AR-01", Quantity: 3},
		{ProductID: "SKU-TS-06", Quantity: 2},
		{ProductID: "SKU-DR-05", Quantity: 1},
	}, lines)

	_, err = parseItems([]string{"SKU-AR-01"})
	assert.Error(t, err)
	_, err = parseItems([]string{"SKU-AR-01:x"})
	assert.Error(t, err)
	_, err = parseItems(nil)
	assert.Error(t, err)
}

func writeLedger(t *testing.T, entries []domain.MovementLogEntry) string {
	t.Helper()
	data, err := storage.EncodeLedger(entries)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "movements.jsonl")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestVerifyCommand(t *testing.T) {
	entry := domain.MovementLogEntry{
		ID:           "m-1",
		ProductID:    "SKU-AR-01",
		ToLocationID: "A-01-01",
		Quantity:     4,
		Timestamp:    time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC),
	}
	entry.Hash = entry.ComputeHash()

	var out bytes.Buffer
	app := newApp(&out)
	require.NoError(t, app.Run([]string{"wmsctl", "verify", "--file", writeLedger(t, []domain.MovementLogEntry{entry})}))

	var result domain.LedgerVerification
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 1, result.TotalEntries)
	assert.Equal(t, 1, result.ValidEntries)

	tampered := entry
	tampered.Quantity = 40
	out.Reset()
	err := app.Run([]string{"wmsctl", "verify", "--file", writeLedger(t, []domain.MovementLogEntry{tampered})})
	require.Error(t, err)
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, []string{"m-1"}, result.TamperedIDs)
}

func TestAuditArchive(t *testing.T) {
	ctx := context.Background()
	archive := repository.NewMemoryLedgerRepository()

	good := domain.MovementLogEntry{ID: "m-1", ProductID: "SKU-AR-01", ToLocationID: "A-01-01", Quantity: 4, Timestamp: time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)}
	good.Hash = good.ComputeHash()
	edited := domain.MovementLogEntry{ID: "m-2", ProductID: "SKU-AR-01", FromLocationID: "A-01-01", Quantity: 2, Timestamp: good.Timestamp.Add(time.Minute)}
	edited.Hash = edited.ComputeHash()
	edited.Quantity = 1
	require.NoError(t, archive.AppendMovements(ctx, []domain.MovementLogEntry{good, edited}))

	result, err := auditArchive(ctx, archive, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalEntries)
	assert.Equal(t, 1, result.ValidEntries)
	assert.Equal(t, []string{"m-2"}, result.TamperedIDs)

	result, err = auditArchive(ctx, archive, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalEntries)
	assert.Empty(t, result.TamperedIDs)
}
