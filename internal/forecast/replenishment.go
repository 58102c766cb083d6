package forecast

import (
	"math"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	standardDaysCover = 30
	priorityDaysCover = 60
	defaultMinOrder   = 10
)

// Position is the stock situation of one product.
type Position struct {
	ProductID        string
	Segment          string
	OnHand           int
	DailyConsumption float64
	LeadTimeDays     float64
	UnitCost         float64
}

// Calculator turns a stock position into a replenishment recommendation.
type Calculator struct {
	minOrder int
}

func NewCalculator(minOrder int) *Calculator {
	if minOrder <= 0 {
		minOrder = defaultMinOrder
	}
	return &Calculator{minOrder: minOrder}
}

// Calculate computes safety stock, reorder point, days of cover and the order quantity.
func (c *Calculator) Calculate(p Position) domain.ReplenishmentRecommendation {
	lead := p.LeadTimeDays
	if lead <= 0 {
		lead = defaultLeadTimeDays
	}
	rec := domain.ReplenishmentRecommendation{
		ProductID:        p.ProductID,
		CurrentOnHand:    p.OnHand,
		DailyConsumption: p.DailyConsumption,
		LeadTimeDays:     lead,
	}

	// 1. Safety stock and reorder point
	rec.SafetyStock = int(math.Ceil(math.Max(0, SafetyStock(p.DailyConsumption, lead))))
	rec.ReorderPoint = int(math.Ceil(math.Max(0, p.DailyConsumption*lead+float64(rec.SafetyStock))))

	// 2. Target days cover, fast movers hold more
	rec.TargetDaysCover = standardDaysCover
	if p.Segment == domain.SegmentA {
		rec.TargetDaysCover = priorityDaysCover
	}
	qtyForTarget := int(math.Ceil(math.Max(0, p.DailyConsumption*float64(rec.TargetDaysCover))))

	// 3. Current days cover
	if p.DailyConsumption > 0 {
		rec.CurrentDaysCover = math.Round(float64(p.OnHand)/p.DailyConsumption*10) / 10
	}

	// 4. Reorder when below the reorder point and short of the target cover
	rec.ShouldReorder = rec.CurrentDaysCover < float64(rec.TargetDaysCover) && p.OnHand <= rec.ReorderPoint
	if !rec.ShouldReorder {
		return rec
	}

	// 5. Order quantity with minimum order
	rec.OrderQuantity = max(0, qtyForTarget-p.OnHand)
	if rec.OrderQuantity > 0 && rec.OrderQuantity < c.minOrder {
		rec.OrderQuantity = c.minOrder
	}

	// 6. Cost
	rec.EstimatedOrderCost = decimal.NewFromFloat(p.UnitCost).
		Mul(decimal.NewFromInt(int64(rec.OrderQuantity))).
		Round(2).
		InexactFloat64()
	return rec
}
