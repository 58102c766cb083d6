package postgres

import (
	"context"
	"fmt"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	createMovementTableSQL = `
        CREATE TABLE IF NOT EXISTS movement_ledger (
            id               TEXT PRIMARY KEY,
            product_id       TEXT        NOT NULL,
            from_location_id TEXT        NOT NULL DEFAULT '',
            to_location_id   TEXT        NOT NULL DEFAULT '',
            quantity         INTEGER     NOT NULL CHECK (quantity > 0),
            recorded_at      TIMESTAMPTZ NOT NULL,
            hash             CHAR(64)    NOT NULL,
            archived_at      TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `

	insertMovementSQL = `
        INSERT INTO movement_ledger (id, product_id, from_location_id, to_location_id, quantity, recorded_at, hash)
        VALUES (:id, :product_id, :from_location_id, :to_location_id, :quantity, :recorded_at, :hash)
        ON CONFLICT (id) DO NOTHING
    `

	// SelectMovementsSQL is shared with the pgx audit command.
	SelectMovementsSQL = `
        SELECT id, product_id, from_location_id, to_location_id, quantity, recorded_at, hash
        FROM movement_ledger
        ORDER BY recorded_at ASC, id ASC
    `
)

type ledgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMovementTableSQL); err != nil {
		return fmt.Errorf("create movement_ledger table: %w", err)
	}
	return nil
}

func (r *ledgerRepository) AppendMovements(ctx context.Context, entries []domain.MovementLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, e := range entries {
			e.Timestamp = e.Timestamp.UTC()
			if _, err := tx.NamedExecContext(ctx, insertMovementSQL, e); err != nil {
				return fmt.Errorf("archive movement %s: %w", e.ID, err)
			}
		}
		log.Debug().Int("count", len(entries)).Msg("archive: movements written")
		return nil
	})
}

func (r *ledgerRepository) ListMovements(ctx context.Context, limit int) ([]domain.MovementLogEntry, error) {
	query := SelectMovementsSQL
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	entries := []domain.MovementLogEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("error listing archived movements: %w", err)
	}
	return entries, nil
}
