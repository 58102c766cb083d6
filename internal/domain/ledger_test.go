package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMovementLogEntry_ComputeHash(t *testing.T) {
	ts := time.Date(2026, 3, 4, 10, 30, 0, 123, time.UTC)
	entry := MovementLogEntry{
		ID:             "m-1",
		ProductID:      "SKU-AR-01",
		FromLocationID: "A-01-01",
		ToLocationID:   "A-02-03",
		Quantity:       5,
		Timestamp:      ts,
	}

	sum := sha256.Sum256([]byte("SKU-AR-01A-01-01A-02-035" + ts.Format(time.RFC3339Nano)))
	assert.Equal(t, hex.EncodeToString(sum[:]), entry.ComputeHash())

	entry.Hash = entry.ComputeHash()
	assert.True(t, entry.Verify())

	entry.Quantity = 6
	assert.False(t, entry.Verify())
}

func TestVerifyEntries(t *testing.T) {
	ok := MovementLogEntry{ID: "ok", ProductID: "p", ToLocationID: "l", Quantity: 1, Timestamp: time.Now()}
	ok.Hash = ok.ComputeHash()
	bad := ok
	bad.ID = "bad"
	bad.Quantity = 2

	result := VerifyEntries([]MovementLogEntry{ok, bad})
	assert.Equal(t, 2, result.TotalEntries)
	assert.Equal(t, 1, result.ValidEntries)
	assert.Equal(t, []string{"bad"}, result.TamperedIDs)
}

func TestReturnStatusTransitions(t *testing.T) {
	status, ok := ParseReturnStatus(" Inspected ")
	assert.True(t, ok)
	assert.Equal(t, ReturnInspected, status)

	assert.True(t, ReturnReceived.CanTransition(ReturnInspected))
	assert.False(t, ReturnReceived.CanTransition(ReturnRestocked))
	assert.True(t, ReturnInspected.CanTransition(ReturnScrapped))
	assert.False(t, ReturnScrapped.CanTransition(ReturnReceived))

	_, ok = ParseReturnStatus("lost")
	assert.False(t, ok)
}
