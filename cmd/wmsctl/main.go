package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/andresuchdata/wms-engine/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const (
	engineKey  ctxKey = "engine"
	cleanupKey ctxKey = "cleanup"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("wmsctl failed")
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "wmsctl",
		Usage:     "Run warehouse engine operations from the command line",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"WMSCTL_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit JSON logs on stderr",
			},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(os.Stderr, c.Bool("log-json"))
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			slotCommand(),
			routeCommand(),
			forecastCommand(),
			replenishCommand(),
			reconcileCommand(),
			packCommand(),
			suppliersCommand(),
			verifyCommand(),
			exportCommand(),
			auditCommand(),
		},
	}
}

// openEngine builds the engine from the environment configuration for commands that
// need one.
func openEngine(c *cli.Context) error {
	eng, cleanup, err := engine.FromConfig(c.Context, config.Load())
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	c.Context = context.WithValue(c.Context, engineKey, eng)
	c.Context = context.WithValue(c.Context, cleanupKey, cleanup)
	return nil
}

func closeEngine(c *cli.Context) error {
	if cleanup, ok := c.Context.Value(cleanupKey).(func()); ok && cleanup != nil {
		cleanup()
	}
	return nil
}

func engineFrom(c *cli.Context) (*engine.Engine, error) {
	eng, ok := c.Context.Value(engineKey).(*engine.Engine)
	if !ok || eng == nil {
		return nil, fmt.Errorf("engine not initialised")
	}
	return eng, nil
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseItems reads PRODUCT:QTY pairs.
func parseItems(raw []string) ([]domain.PickLine, error) {
	lines := make([]domain.PickLine, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			productID, qty, ok := strings.Cut(part, ":")
			if !ok {
				return nil, fmt.Errorf("item %q: expected PRODUCT:QTY", part)
			}
			n, err := strconv.Atoi(strings.TrimSpace(qty))
			if err != nil {
				return nil, fmt.Errorf("item %q: invalid quantity: %w", part, err)
			}
			lines = append(lines, domain.PickLine{ProductID: strings.TrimSpace(productID), Quantity: n})
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}
	return lines, nil
}
