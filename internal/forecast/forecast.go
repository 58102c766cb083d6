package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

const (
	projectionWeeks     = 6
	safetyStockFactor   = 0.5
	overstockMultiplier = 1.6
	defaultLeadTimeDays = 7.0
	forecastDateLayout  = "2006-01-02"
)

// Input is everything a forecast needs. Ledger may hold other products' movements.
type Input struct {
	ProductID       string
	OnHand          int
	Ledger          []domain.MovementLogEntry
	AvgLeadTimeDays float64
	Now             time.Time
}

// SafetyStock is consumption × lead time × 0.5.
func SafetyStock(dailyConsumption, leadTimeDays float64) float64 {
	return dailyConsumption * leadTimeDays * safetyStockFactor
}

// ReorderPoint is consumption over the lead time plus safety stock.
func ReorderPoint(dailyConsumption, leadTimeDays float64) float64 {
	return dailyConsumption*leadTimeDays + SafetyStock(dailyConsumption, leadTimeDays)
}

// Inventory projects on-hand stock week by week and flags stock-out and overstock risk.
func Inventory(in Input) domain.InventoryForecast {
	lead := in.AvgLeadTimeDays
	if lead <= 0 {
		lead = defaultLeadTimeDays
	}
	dm := AnalyzeDemand(in.ProductID, in.Ledger, in.Now)
	safety := SafetyStock(dm.DailyConsumption, lead)
	weeklyChange := int(math.Round(dm.ExpectedChange * 7))

	fc := domain.InventoryForecast{
		ProductID:           in.ProductID,
		CurrentOnHand:       in.OnHand,
		ForecastByWeek:      make(map[string]int, projectionWeeks),
		Weeks:               make([]domain.WeekProjection, 0, projectionWeeks),
		ExpectedDailyChange: mathutil.Round(dm.ExpectedChange, 3),
		SafetyStock:         mathutil.Round(safety, 2),
		ReorderPoint:        mathutil.Round(ReorderPoint(dm.DailyConsumption, lead), 2),
	}

	projection := in.OnHand
	start := day(in.Now)
	overstockAt := overstockMultiplier * float64(in.OnHand)
	for week := 1; week <= projectionWeeks; week++ {
		projection = max(0, projection+weeklyChange)
		date := start.AddDate(0, 0, 7*week)

		fc.Weeks = append(fc.Weeks, domain.WeekProjection{Week: week, Date: date, Quantity: projection})
		fc.ForecastByWeek[date.Format(forecastDateLayout)] = projection

		if float64(projection) < safety {
			fc.StockOutRisk = true
		}
		if float64(projection) > overstockAt {
			fc.OverstockRisk = true
		}
	}
	return fc
}
