// internal/domain/models.go
package domain

import "time"

// Demand segments, A = fastest moving.
const (
	SegmentA = "A"
	SegmentB = "B"
	SegmentC = "C"
)

// Product is a catalog entry. Category, SalesPrice and DemandSegment are derived by the
// catalog on every upsert.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	WeightKg      float64   `json:"weight_kg"`
	VolumeCubicM  float64   `json:"volume_cubic_m"`
	CostPrice     float64   `json:"cost_price"`
	SalesPrice    float64   `json:"sales_price"`
	DemandSegment string    `json:"demand_segment"`
	Attributes    []string  `json:"attributes"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Location is a storage slot in the warehouse grid.
type Location struct {
	ID       string  `json:"id"`
	Zone     string  `json:"zone"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Capacity int     `json:"capacity"`
	Occupied int     `json:"occupied"`
	Blocked  bool    `json:"blocked"`
}

// FreeCapacity returns the number of units that still fit.
func (l Location) FreeCapacity() int {
	return l.Capacity - l.Occupied
}

// OccupancyRate is occupied / capacity, 1 for zero-capacity slots.
func (l Location) OccupancyRate() float64 {
	if l.Capacity <= 0 {
		return 1
	}
	return float64(l.Occupied) / float64(l.Capacity)
}

// InventoryItem is the stock of one product at one location.
type InventoryItem struct {
	ProductID    string    `json:"product_id"`
	LocationID   string    `json:"location_id"`
	Quantity     int       `json:"quantity"`
	BatchNumber  string    `json:"batch_number,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Status       string    `json:"status"`
	LastMovement time.Time `json:"last_movement"`
}

const InventoryStatusAvailable = "AVAILABLE"

// MovementLogEntry is an immutable ledger record. An empty FromLocationID is an external
// receipt, an empty ToLocationID an external issue.
type MovementLogEntry struct {
	ID             string    `json:"id" db:"id"`
	ProductID      string    `json:"product_id" db:"product_id"`
	FromLocationID string    `json:"from_location_id" db:"from_location_id"`
	ToLocationID   string    `json:"to_location_id" db:"to_location_id"`
	Quantity       int       `json:"quantity" db:"quantity"`
	Timestamp      time.Time `json:"timestamp" db:"recorded_at"`
	Hash           string    `json:"hash" db:"hash"`
}

// SupplierProfile is static sourcing reference data. Scores are in [0,1].
type SupplierProfile struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	PriceScore          float64 `json:"price_score"`
	ReliabilityScore    float64 `json:"reliability_score"`
	SustainabilityScore float64 `json:"sustainability_score"`
	LeadTimeDays        int     `json:"lead_time_days"`
}

// ReturnCase tracks a customer return.
type ReturnCase struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Reason    string       `json:"reason"`
	Status    ReturnStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SensorReading is pass-through telemetry attached to a location.
type SensorReading struct {
	LocationID string    `json:"location_id"`
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
