package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []domain.MovementLogEntry {
	ts := time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC)
	a := domain.MovementLogEntry{ID: "m-1", ProductID: "SKU-AR-01", FromLocationID: "A-01-01", ToLocationID: "A-02-03", Quantity: 5, Timestamp: ts}
	a.Hash = a.ComputeHash()
	b := domain.MovementLogEntry{ID: "m-2", ProductID: "SKU-AR-01", ToLocationID: "A-01-01", Quantity: 9, Timestamp: ts.Add(time.Minute)}
	b.Hash = b.ComputeHash()
	return []domain.MovementLogEntry{a, b}
}

func TestLedgerExporter_ExportsVerifiableJSONLines(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	exporter := NewLedgerExporter(store, "ledger")
	at := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

	key, err := exporter.Export(ctx, sampleEntries(), at)
	require.NoError(t, err)
	assert.Equal(t, "ledger/2026/05/20/movements-20260520T100000.000000000Z.jsonl", key)

	objects, err := store.ListObjects(ctx, "ledger/")
	require.NoError(t, err)
	require.Len(t, objects, 1)

	dest := filepath.Join(t.TempDir(), "out", "export.jsonl")
	require.NoError(t, store.DownloadObject(ctx, key, dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	decoded, err := DecodeLedger(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	verification := domain.VerifyEntries(decoded)
	assert.Equal(t, 2, verification.ValidEntries)
	assert.Empty(t, verification.TamperedIDs)
}

func TestDecodeLedger_RejectsGarbage(t *testing.T) {
	_, err := DecodeLedger([]byte("{\"id\":\"m-1\"}\nnot json\n"))
	assert.Error(t, err)

	entries, err := DecodeLedger(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
