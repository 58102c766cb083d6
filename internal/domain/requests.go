package domain

import "time"

// UpsertProductRequest creates or updates a catalog product. Nil numeric fields are
// estimated by the catalog.
type UpsertProductRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required,max=200"`
	Category     string   `json:"category"`
	WeightKg     *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	VolumeCubicM *float64 `json:"volume_cubic_m" validate:"omitempty,gt=0"`
	CostPrice    *float64 `json:"cost_price" validate:"omitempty,gte=0"`
	Attributes   []string `json:"attributes"`
}

// MovementRequest transfers stock between locations.
type MovementRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int    `json:"quantity" validate:"gt=0"`
}

// SlotRequest asks where a product should be put away.
type SlotRequest struct {
	ProductID            string  `json:"product_id" validate:"required"`
	WeightKg             float64 `json:"weight_kg" validate:"gte=0"`
	VolumeCubicM         float64 `json:"volume_cubic_m" validate:"gte=0"`
	ZonePreference       string  `json:"zone_preference" validate:"zone"`
	ExpectedTurnoverDays int     `json:"expected_turnover_days" validate:"gte=0"`
}

type SlotRecommendation struct {
	LocationID        string  `json:"location_id"`
	Confidence        float64 `json:"confidence"`
	TravelTimeSeconds float64 `json:"travel_time_seconds"`
	Reason            string  `json:"reason"`
}

// TravelEstimate is the walking time from the dock origin to a location.
type TravelEstimate struct {
	LocationID string  `json:"location_id"`
	Meters     float64 `json:"meters"`
	Seconds    float64 `json:"seconds"`
}

// PickLine is one (product, quantity) requirement of a pick.
type PickLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type PickRouteRequest struct {
	Items []PickLine `json:"items" validate:"required,min=1,dive"`
}

type Waypoint struct {
	LocationID string  `json:"location_id"`
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	ETASeconds float64 `json:"eta_seconds"`
}

type PickRoute struct {
	Waypoints            []Waypoint `json:"waypoints"`
	TotalDistance        float64    `json:"total_distance"`
	TotalDurationSeconds float64    `json:"total_duration_seconds"`
}

// WeekProjection is one step of a weekly stock projection.
type WeekProjection struct {
	Week     int       `json:"week"`
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

type InventoryForecast struct {
	ProductID           string           `json:"product_id"`
	CurrentOnHand       int              `json:"current_on_hand"`
	ForecastByWeek      map[string]int   `json:"forecast_by_week"`
	Weeks               []WeekProjection `json:"weeks"`
	ExpectedDailyChange float64          `json:"expected_daily_change"`
	SafetyStock         float64          `json:"safety_stock"`
	ReorderPoint        float64          `json:"reorder_point"`
	StockOutRisk        bool             `json:"stock_out_risk"`
	OverstockRisk       bool             `json:"overstock_risk"`
}

type ReplenishmentRecommendation struct {
	ProductID           string  `json:"product_id"`
	CurrentOnHand       int     `json:"current_on_hand"`
	DailyConsumption    float64 `json:"daily_consumption"`
	LeadTimeDays        float64 `json:"lead_time_days"`
	SafetyStock         int     `json:"safety_stock"`
	ReorderPoint        int     `json:"reorder_point"`
	TargetDaysCover     int     `json:"target_days_cover"`
	CurrentDaysCover    float64 `json:"current_days_cover"`
	ShouldReorder       bool    `json:"should_reorder"`
	OrderQuantity       int     `json:"order_quantity"`
	EstimatedOrderCost  float64 `json:"estimated_order_cost"`
	RecommendedSupplier string  `json:"recommended_supplier,omitempty"`
}

// SupplierWeights overrides the default scoring weights for one supplier.
type SupplierWeights struct {
	Price          float64 `json:"price" validate:"gte=0"`
	Reliability    float64 `json:"reliability" validate:"gte=0"`
	Sustainability float64 `json:"sustainability" validate:"gte=0"`
}

type SupplierRecommendationRequest struct {
	ProductID string                     `json:"product_id"`
	Quantity  int                        `json:"quantity" validate:"gte=0"`
	Weights   map[string]SupplierWeights `json:"weights" validate:"omitempty,dive"`
}

type SupplierScore struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	Score        float64 `json:"score"`
	LeadTimeDays int     `json:"lead_time_days"`
}

type SupplierRecommendation struct {
	Recommended SupplierScore   `json:"recommended"`
	Ranking     []SupplierScore `json:"ranking"`
}

type ReconciliationRequest struct {
	PurchaseOrderID string  `json:"purchase_order_id" validate:"required"`
	OrderedAmount   float64 `json:"ordered_amount" validate:"gt=0"`
	ReceivedAmount  float64 `json:"received_amount" validate:"gte=0"`
	InvoicedAmount  float64 `json:"invoiced_amount" validate:"gte=0"`
}

type ReconciliationResult struct {
	PurchaseOrderID   string  `json:"purchase_order_id"`
	AutoApproved      bool    `json:"auto_approved"`
	Deviation         float64 `json:"deviation"`
	Tolerance         float64 `json:"tolerance"`
	PriceMismatch     float64 `json:"price_mismatch"`
	FreightAdjustment bool    `json:"freight_adjustment"`
	Message           string  `json:"message"`
}

type PackagingRequest struct {
	Items []PickLine `json:"items" validate:"required,min=1,dive"`
}

type BoxOption struct {
	BoxID       string  `json:"box_id"`
	BoxCount    int     `json:"box_count"`
	Utilisation float64 `json:"utilisation"`
	TotalVolume float64 `json:"total_volume"`
	TotalWeight float64 `json:"total_weight"`
}

type PackagingRecommendation struct {
	Recommended  BoxOption   `json:"recommended"`
	Alternatives []BoxOption `json:"alternatives"`
}

// LedgerExport describes an uploaded ledger snapshot.
type LedgerExport struct {
	Key        string    `json:"key"`
	Entries    int       `json:"entries"`
	ExportedAt time.Time `json:"exported_at"`
}

type SensorReadingRequest struct {
	Kind  string  `json:"kind" validate:"required"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type ReturnRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type ReturnStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
