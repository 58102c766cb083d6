// Package forecast derives demand, weekly stock projections and replenishment quantities
// from the movement ledger.
package forecast

import (
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

const (
	trailingDays            = 30
	recentWeight            = 0.7
	seasonalWeight          = 0.3
	defaultDailyConsumption = 5.0
	velocityWindowDays      = 7
)

// Demand summarises a product's ledger history as of a point in time.
type Demand struct {
	RecentAverage    float64 `json:"recent_average"`
	SeasonalAverage  float64 `json:"seasonal_average"`
	ExpectedChange   float64 `json:"expected_change"`
	DailyConsumption float64 `json:"daily_consumption"`
	HasOutbound      bool    `json:"has_outbound"`
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailyNetChange nets the product's movements per UTC calendar day: a source counts as
// outflow, a destination as inflow, so internal transfers net to zero.
func DailyNetChange(productID string, ledger []domain.MovementLogEntry) map[time.Time]int {
	history := make(map[time.Time]int)
	for _, e := range ledger {
		if e.ProductID != productID {
			continue
		}
		d := day(e.Timestamp)
		if e.FromLocationID != "" {
			history[d] -= e.Quantity
		}
		if e.ToLocationID != "" {
			history[d] += e.Quantity
		}
	}
	return history
}

// AnalyzeDemand computes the recent, seasonal and expected daily change plus the average
// daily consumption (external issues over the trailing window, 5/day without any).
func AnalyzeDemand(productID string, ledger []domain.MovementLogEntry, now time.Time) Demand {
	today := day(now)
	windowStart := today.AddDate(0, 0, -(trailingDays - 1))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	recentNet, seasonalNet := 0, 0
	for d, net := range DailyNetChange(productID, ledger) {
		if !d.Before(windowStart) && !d.After(today) {
			recentNet += net
		}
		if !d.Before(monthStart) && !d.After(today) {
			seasonalNet += net
		}
	}

	outbound := 0
	for _, e := range ledger {
		if e.ProductID != productID || e.FromLocationID == "" || e.ToLocationID != "" {
			continue
		}
		d := day(e.Timestamp)
		if !d.Before(windowStart) && !d.After(today) {
			outbound += e.Quantity
		}
	}

	dm := Demand{
		RecentAverage:   float64(recentNet) / trailingDays,
		SeasonalAverage: float64(seasonalNet) / float64(today.Day()),
		HasOutbound:     outbound > 0,
	}
	dm.ExpectedChange = recentWeight*dm.RecentAverage + seasonalWeight*dm.SeasonalAverage
	dm.DailyConsumption = defaultDailyConsumption
	if dm.HasOutbound {
		dm.DailyConsumption = float64(outbound) / trailingDays
	}
	return dm
}

// PickVelocity is the units moved out of stock for the product over the last week,
// averaged over the number of locations currently holding it.
func PickVelocity(productID string, ledger []domain.MovementLogEntry, holdingLocations int, now time.Time) float64 {
	since := now.UTC().AddDate(0, 0, -velocityWindowDays)
	moved := 0
	for _, e := range ledger {
		if e.ProductID == productID && e.FromLocationID != "" && e.Timestamp.After(since) {
			moved += e.Quantity
		}
	}
	return float64(moved) / float64(max(1, holdingLocations))
}
