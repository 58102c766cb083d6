package engine

import (
	"context"
	"fmt"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/rs/zerolog/log"
)

func f(v float64) *float64 { return &v }

var demoProducts = []domain.UpsertProductRequest{
	{ID: "SKU-AR-01", Name: "Aurora Wireless Headphones", WeightKg: f(0.4), VolumeCubicM: f(0.004), CostPrice: f(38), Attributes: []string{"fragile"}},
	{ID: "SKU-BX-02", Name: "Oak Storage Shelf", WeightKg: f(14), VolumeCubicM: f(0.09), CostPrice: f(62)},
	{ID: "SKU-CH-03", Name: "Ergonomic Office Chair", WeightKg: f(16), VolumeCubicM: f(0.22), CostPrice: f(95)},
	{ID: "SKU-RC-04", Name: "Basmati Rice 5kg", WeightKg: f(5), VolumeCubicM: f(0.008), CostPrice: f(7.5), Attributes: []string{"perishable"}},
	{ID: "SKU-DR-05", Name: "Cordless Drill Kit", WeightKg: f(2.3), VolumeCubicM: f(0.012), CostPrice: f(54)},
	{ID: "SKU-TS-06", Name: "Cotton Crew T-Shirt", WeightKg: f(0.2), VolumeCubicM: f(0.002), CostPrice: f(4.2)},
}

var demoLocations = []domain.Location{
	{ID: "A-01-01", Zone: "A", X: 2, Y: 1, Z: 0, Capacity: 80},
	{ID: "A-01-02", Zone: "A", X: 2, Y: 2, Z: 1, Capacity: 60},
	{ID: "A-02-03", Zone: "A", X: 4, Y: 3, Z: 0, Capacity: 50},
	{ID: "B-01-01", Zone: "B", X: 6, Y: 2, Z: 0, Capacity: 100},
	{ID: "B-02-02", Zone: "B", X: 7, Y: 5, Z: 1, Capacity: 100},
	{ID: "B-03-01", Zone: "B", X: 8, Y: 1, Z: 0, Capacity: 100, Blocked: true},
	{ID: "C-01-01", Zone: "C", X: 10, Y: 8, Z: 0, Capacity: 200},
	{ID: "C-02-01", Zone: "C", X: 12, Y: 9, Z: 0, Capacity: 200},
}

var demoStock = []domain.InventoryItem{
	{ProductID: "SKU-AR-01", LocationID: "A-01-01", Quantity: 24, BatchNumber: "B-2026-04"},
	{ProductID: "SKU-AR-01", LocationID: "B-01-01", Quantity: 12, BatchNumber: "B-2026-03"},
	{ProductID: "SKU-BX-02", LocationID: "C-01-01", Quantity: 40},
	{ProductID: "SKU-CH-03", LocationID: "C-02-01", Quantity: 15},
	{ProductID: "SKU-RC-04", LocationID: "B-02-02", Quantity: 60, BatchNumber: "RC-0526"},
	{ProductID: "SKU-DR-05", LocationID: "A-01-02", Quantity: 18, SerialNumber: "DR5-000118"},
}

var demoSuppliers = []domain.SupplierProfile{
	{ID: "SUP-ACME", Name: "Acme Wholesale", PriceScore: 0.7, ReliabilityScore: 0.9, SustainabilityScore: 0.5, LeadTimeDays: 5},
	{ID: "SUP-BUDGET", Name: "Budget Imports", PriceScore: 0.95, ReliabilityScore: 0.55, SustainabilityScore: 0.3, LeadTimeDays: 12},
	{ID: "SUP-GREEN", Name: "Green Logistics", PriceScore: 0.6, ReliabilityScore: 0.8, SustainabilityScore: 0.95, LeadTimeDays: 7},
}

// Seed loads the demo catalog, layout, stock and suppliers so the engine is usable
// standalone. Stock is placed directly and writes no ledger entries.
func (e *Engine) Seed(ctx context.Context) error {
	for _, req := range demoProducts {
		e.catalog.Upsert(req, 0)
	}
	for _, loc := range demoLocations {
		if err := e.store.AddLocation(loc); err != nil {
			return fmt.Errorf("seed location %s: %w", loc.ID, err)
		}
	}
	for _, item := range demoStock {
		if err := e.store.PlaceStock(item); err != nil {
			return fmt.Errorf("seed stock %s@%s: %w", item.ProductID, item.LocationID, err)
		}
	}
	for _, s := range demoSuppliers {
		if err := e.suppliers.Add(s); err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.ID, err)
		}
	}

	log.Info().
		Int("products", len(demoProducts)).
		Int("locations", len(demoLocations)).
		Int("suppliers", len(demoSuppliers)).
		Msg("engine: demo data seeded")
	return nil
}
