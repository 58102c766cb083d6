package forecast

import (
	"testing"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

func entry(daysAgo int, from, to string, qty int) domain.MovementLogEntry {
	return domain.MovementLogEntry{
		ProductID:      "SKU-AR-01",
		FromLocationID: from,
		ToLocationID:   to,
		Quantity:       qty,
		Timestamp:      now.AddDate(0, 0, -daysAgo),
	}
}

func TestInventory_FlatWithoutHistory(t *testing.T) {
	fc := Inventory(Input{ProductID: "SKU-AR-01", OnHand: 24, AvgLeadTimeDays: 6, Now: now})

	require.Len(t, fc.Weeks, 6)
	require.Len(t, fc.ForecastByWeek, 6)
	for _, w := range fc.Weeks {
		assert.Equal(t, 24, w.Quantity)
	}
	assert.Equal(t, 24, fc.ForecastByWeek["2026-05-27"])
	assert.Equal(t, 24, fc.ForecastByWeek["2026-07-01"])

	// default consumption 5/day × 6 days × 0.5
	assert.Equal(t, 15.0, fc.SafetyStock)
	assert.Equal(t, 45.0, fc.ReorderPoint)
	assert.False(t, fc.StockOutRisk)
	assert.False(t, fc.OverstockRisk)

	low := Inventory(Input{ProductID: "SKU-AR-01", OnHand: 10, AvgLeadTimeDays: 6, Now: now})
	assert.True(t, low.StockOutRisk)
}

func TestInventory_DecliningStockFlagsStockOut(t *testing.T) {
	ledger := []domain.MovementLogEntry{
		entry(2, "A-01-01", "", 60),
		entry(10, "A-01-01", "", 60),
		entry(40, "", "A-01-01", 500),
	}

	fc := Inventory(Input{ProductID: "SKU-AR-01", OnHand: 50, Ledger: ledger, AvgLeadTimeDays: 4, Now: now})

	// recent -120/30 = -4, seasonal -120/20 = -6 → -4.6/day → -32/week
	assert.InDelta(t, -4.6, fc.ExpectedDailyChange, 1e-9)
	assert.Equal(t, 18, fc.Weeks[0].Quantity)
	assert.Equal(t, 0, fc.Weeks[1].Quantity)
	assert.Equal(t, 0, fc.Weeks[5].Quantity)
	// consumption 120/30 = 4 × 4 × 0.5
	assert.Equal(t, 8.0, fc.SafetyStock)
	assert.True(t, fc.StockOutRisk)
	assert.False(t, fc.OverstockRisk)
}

func TestInventory_GrowingStockFlagsOverstock(t *testing.T) {
	ledger := []domain.MovementLogEntry{
		entry(1, "", "A-01-01", 150),
		entry(3, "", "A-01-01", 150),
		entry(5, "A-01-01", "A-02-03", 40),
	}

	fc := Inventory(Input{ProductID: "SKU-AR-01", OnHand: 100, Ledger: ledger, AvgLeadTimeDays: 7, Now: now})

	assert.True(t, fc.OverstockRisk)
	assert.False(t, fc.StockOutRisk)
	assert.Greater(t, fc.Weeks[5].Quantity, fc.Weeks[0].Quantity)
}

func TestDailyNetChange_InternalTransfersNetToZero(t *testing.T) {
	ledger := []domain.MovementLogEntry{
		entry(0, "A-01-01", "A-02-03", 5),
		entry(0, "", "A-01-01", 7),
		{ProductID: "OTHER", ToLocationID: "A-01-01", Quantity: 9, Timestamp: now},
	}

	history := DailyNetChange("SKU-AR-01", ledger)
	require.Len(t, history, 1)
	assert.Equal(t, 7, history[day(now)])
}

func TestAnalyzeDemand_IgnoresOldEntries(t *testing.T) {
	dm := AnalyzeDemand("SKU-AR-01", []domain.MovementLogEntry{entry(45, "A-01-01", "", 300)}, now)

	assert.Zero(t, dm.RecentAverage)
	assert.False(t, dm.HasOutbound)
	assert.Equal(t, 5.0, dm.DailyConsumption)
}

func TestPickVelocity(t *testing.T) {
	ledger := []domain.MovementLogEntry{
		entry(1, "A-01-01", "", 40),
		entry(2, "A-01-01", "A-02-03", 20),
		entry(9, "A-01-01", "", 100),
		entry(1, "", "A-01-01", 500),
	}

	assert.Equal(t, 30.0, PickVelocity("SKU-AR-01", ledger, 2, now))
	assert.Equal(t, 60.0, PickVelocity("SKU-AR-01", ledger, 0, now))
}

func TestCalculator_Reorders(t *testing.T) {
	calc := NewCalculator(10)

	rec := calc.Calculate(Position{
		ProductID:        "SKU-AR-01",
		Segment:          domain.SegmentB,
		OnHand:           20,
		DailyConsumption: 4,
		LeadTimeDays:     5,
		UnitCost:         12.5,
	})

	assert.Equal(t, 10, rec.SafetyStock)
	assert.Equal(t, 30, rec.ReorderPoint)
	assert.Equal(t, 30, rec.TargetDaysCover)
	assert.Equal(t, 5.0, rec.CurrentDaysCover)
	assert.True(t, rec.ShouldReorder)
	assert.Equal(t, 100, rec.OrderQuantity)
	assert.Equal(t, 1250.0, rec.EstimatedOrderCost)
}

func TestCalculator_SegmentAHoldsSixtyDays(t *testing.T) {
	rec := NewCalculator(0).Calculate(Position{Segment: domain.SegmentA, OnHand: 5, DailyConsumption: 1, LeadTimeDays: 10})

	assert.Equal(t, 60, rec.TargetDaysCover)
	assert.Equal(t, 55, rec.OrderQuantity)
}

func TestCalculator_MinimumOrder(t *testing.T) {
	rec := NewCalculator(10).Calculate(Position{OnHand: 27, DailyConsumption: 1, LeadTimeDays: 20})

	require.True(t, rec.ShouldReorder)
	assert.Equal(t, 10, rec.OrderQuantity)
}

func TestCalculator_NoReorderAboveReorderPoint(t *testing.T) {
	rec := NewCalculator(10).Calculate(Position{OnHand: 500, DailyConsumption: 2, LeadTimeDays: 7})

	assert.False(t, rec.ShouldReorder)
	assert.Zero(t, rec.OrderQuantity)
	assert.Zero(t, rec.EstimatedOrderCost)
}
