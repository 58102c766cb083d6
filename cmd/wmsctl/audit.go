package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/repository"
	"github.com/andresuchdata/wms-engine/internal/repository/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// auditCommand re-verifies the archived ledger straight from postgres.
func auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Verify the hashes of the archived movement ledger",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db-url",
				Usage:    "Database connection string",
				Required: true,
				EnvVars:  []string{"DATABASE_URL"},
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Only verify the oldest N entries (0 = all)",
			},
		},
		Action: runAudit,
	}
}

func runAudit(c *cli.Context) error {
	conn, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(c.Context); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	archive := postgres.NewLedgerRepository(postgres.Wrap(sqlx.NewDb(conn, "pgx"), 1))
	result, err := auditArchive(c.Context, archive, c.Int("limit"))
	if err != nil {
		return err
	}

	if err := printJSON(c, result); err != nil {
		return err
	}
	if len(result.TamperedIDs) > 0 {
		return fmt.Errorf("ledger verification failed: %d tampered entries", len(result.TamperedIDs))
	}
	return nil
}

func auditArchive(ctx context.Context, archive repository.LedgerRepository, limit int) (domain.LedgerVerification, error) {
	entries, err := archive.ListMovements(ctx, limit)
	if err != nil {
		return domain.LedgerVerification{}, err
	}

	result := domain.VerifyEntries(entries)
	log.Info().
		Int("total", result.TotalEntries).
		Int("valid", result.ValidEntries).
		Msg("audit: archived ledger verified")
	return result, nil
}
