package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

// LedgerExporter writes ledger snapshots as JSON lines, one entry per line.
type LedgerExporter struct {
	store  ObjectStorage
	prefix string
}

func NewLedgerExporter(store ObjectStorage, prefix string) *LedgerExporter {
	return &LedgerExporter{store: store, prefix: prefix}
}

// ExportKey names a snapshot taken at the given time.
func (e *LedgerExporter) ExportKey(at time.Time) string {
	return path.Join(e.prefix, at.UTC().Format("2006/01/02"), "movements-"+at.UTC().Format("20060102T150405.000000000Z")+".jsonl")
}

// Export uploads the entries and returns the object key.
func (e *LedgerExporter) Export(ctx context.Context, entries []domain.MovementLogEntry, at time.Time) (string, error) {
	payload, err := EncodeLedger(entries)
	if err != nil {
		return "", err
	}
	key := e.ExportKey(at)
	if err := e.store.UploadObject(ctx, key, payload); err != nil {
		return "", err
	}
	return key, nil
}

func EncodeLedger(entries []domain.MovementLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, fmt.Errorf("encode movement %s: %w", entry.ID, err)
		}
	}
	return buf.Bytes(), nil
}

func DecodeLedger(data []byte) ([]domain.MovementLogEntry, error) {
	entries := []domain.MovementLogEntry{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry domain.MovementLogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode movement line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger export: %w", err)
	}
	return entries, nil
}
