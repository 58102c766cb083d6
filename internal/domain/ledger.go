package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// ComputeHash returns the SHA-256 hex digest of the entry payload:
// product + from + to + quantity + timestamp (RFC3339Nano, UTC).
// The digest covers the entry alone, it does not chain to the previous entry.
func (e MovementLogEntry) ComputeHash() string {
	payload := e.ProductID +
		e.FromLocationID +
		e.ToLocationID +
		strconv.Itoa(e.Quantity) +
		e.Timestamp.UTC().Format(time.RFC3339Nano)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the stored hash matches the payload.
func (e MovementLogEntry) Verify() bool {
	return e.Hash != "" && e.Hash == e.ComputeHash()
}

// LedgerVerification is the result of re-hashing the movement ledger.
type LedgerVerification struct {
	TotalEntries int      `json:"total_entries"`
	ValidEntries int      `json:"valid_entries"`
	TamperedIDs  []string `json:"tampered_ids"`
}

// VerifyEntries re-hashes every entry.
func VerifyEntries(entries []MovementLogEntry) LedgerVerification {
	result := LedgerVerification{
		TotalEntries: len(entries),
		TamperedIDs:  []string{},
	}
	for _, e := range entries {
		if e.Verify() {
			result.ValidEntries++
			continue
		}
		result.TamperedIDs = append(result.TamperedIDs, e.ID)
	}
	return result
}
