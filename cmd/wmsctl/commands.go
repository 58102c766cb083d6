package main

import (
	"fmt"
	"os"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/storage"
	"github.com/urfave/cli/v2"
)

func engineCommand(cmd *cli.Command) *cli.Command {
	cmd.Before = openEngine
	cmd.After = closeEngine
	return cmd
}

func productFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "product",
		Aliases:  []string{"p"},
		Usage:    "Product id",
		Required: required,
	}
}

func itemsFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:     "item",
		Usage:    "PRODUCT:QTY, repeatable",
		Required: true,
	}
}

func slotCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "slot",
		Usage: "Recommend a put-away location",
		Flags: []cli.Flag{
			productFlag(true),
			&cli.Float64Flag{Name: "weight", Usage: "Unit weight in kg"},
			&cli.Float64Flag{Name: "volume", Usage: "Unit volume in cubic metres"},
			&cli.StringFlag{Name: "zone", Usage: "Preferred zone tag (A, C, COLD...)"},
			&cli.IntFlag{Name: "turnover", Usage: "Expected turnover in days"},
		},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			rec, err := eng.RecommendSlot(c.Context, domain.SlotRequest{
				ProductID:            c.String("product"),
				WeightKg:             c.Float64("weight"),
				VolumeCubicM:         c.Float64("volume"),
				ZonePreference:       c.String("zone"),
				ExpectedTurnoverDays: c.Int("turnover"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, rec)
		},
	})
}

func routeCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "route",
		Usage: "Plan a pick route",
		Flags: []cli.Flag{itemsFlag()},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			lines, err := parseItems(c.StringSlice("item"))
			if err != nil {
				return err
			}
			route, err := eng.PlanPickRoute(c.Context, domain.PickRouteRequest{Items: lines})
			if err != nil {
				return err
			}
			return printJSON(c, route)
		},
	})
}

func forecastCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "forecast",
		Usage: "Project stock levels for one product or the whole catalog",
		Flags: []cli.Flag{productFlag(false)},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			if id := c.String("product"); id != "" {
				fc, err := eng.ForecastInventory(c.Context, id)
				if err != nil {
					return err
				}
				return printJSON(c, fc)
			}
			all, err := eng.ForecastAll(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c, all)
		},
	})
}

func replenishCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "replenish",
		Usage: "Recommend a replenishment order",
		Flags: []cli.Flag{productFlag(true)},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			rec, err := eng.RecommendReplenishment(c.Context, c.String("product"))
			if err != nil {
				return err
			}
			return printJSON(c, rec)
		},
	})
}

func reconcileCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "reconcile",
		Usage: "Three-way match a purchase order against receipt and invoice",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "po", Usage: "Purchase order id", Required: true},
			&cli.Float64Flag{Name: "ordered", Required: true},
			&cli.Float64Flag{Name: "received"},
			&cli.Float64Flag{Name: "invoiced"},
		},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			res, err := eng.ReconcileAccounting(c.Context, domain.ReconciliationRequest{
				PurchaseOrderID: c.String("po"),
				OrderedAmount:   c.Float64("ordered"),
				ReceivedAmount:  c.Float64("received"),
				InvoicedAmount:  c.Float64("invoiced"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, res)
		},
	})
}

func packCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "pack",
		Usage: "Recommend shipping boxes for an order",
		Flags: []cli.Flag{itemsFlag()},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			lines, err := parseItems(c.StringSlice("item"))
			if err != nil {
				return err
			}
			rec, err := eng.RecommendPackaging(c.Context, domain.PackagingRequest{Items: lines})
			if err != nil {
				return err
			}
			return printJSON(c, rec)
		},
	})
}

func suppliersCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "suppliers",
		Usage: "Rank suppliers with the default weights",
		Flags: []cli.Flag{
			productFlag(false),
			&cli.IntFlag{Name: "quantity"},
		},
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			rec, err := eng.RecommendSupplier(c.Context, domain.SupplierRecommendationRequest{
				ProductID: c.String("product"),
				Quantity:  c.Int("quantity"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, rec)
		},
	})
}

// verifyCommand re-checks the hashes of an exported JSON-lines ledger file.
func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify the hashes of an exported ledger file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to a .jsonl export", Required: true},
		},
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.String("file"))
			if err != nil {
				return fmt.Errorf("failed to read ledger file: %w", err)
			}
			entries, err := storage.DecodeLedger(data)
			if err != nil {
				return err
			}
			result := domain.VerifyEntries(entries)
			if err := printJSON(c, result); err != nil {
				return err
			}
			if len(result.TamperedIDs) > 0 {
				return fmt.Errorf("ledger verification failed: %d tampered entries", len(result.TamperedIDs))
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return engineCommand(&cli.Command{
		Name:  "export",
		Usage: "Upload the ledger to object storage (requires STORAGE_ENABLED)",
		Action: func(c *cli.Context) error {
			eng, err := engineFrom(c)
			if err != nil {
				return err
			}
			export, err := eng.ExportLedger(c.Context)
			if err != nil {
				return err
			}
			return printJSON(c, export)
		},
	})
}
