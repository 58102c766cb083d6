// Package topology owns locations, stock quantities, occupancy and the movement ledger.
package topology

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/google/uuid"
)

type itemKey struct {
	productID  string
	locationID string
}

// Store holds the mutable warehouse state. One RWMutex guards locations, inventory, ledger
// and returns so that a movement is atomic across source, destination and ledger append.
type Store struct {
	mu        sync.RWMutex
	locations map[string]*domain.Location
	items     map[itemKey]*domain.InventoryItem
	ledger    []domain.MovementLogEntry
	returns   map[string]*domain.ReturnCase

	sensors *SensorBuffers
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how ledger and return ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithSensorBufferSize(n int) Option {
	return func(s *Store) { s.sensors = NewSensorBuffers(n) }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		locations: make(map[string]*domain.Location),
		items:     make(map[itemKey]*domain.InventoryItem),
		returns:   make(map[string]*domain.ReturnCase),
		sensors:   NewSensorBuffers(defaultSensorBufferSize),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddLocation registers a location. Occupancy must already satisfy 0 ≤ occupied ≤ capacity.
func (s *Store) AddLocation(loc domain.Location) error {
	if loc.ID == "" {
		return fmt.Errorf("location id is required: %w", domain.ErrValidation)
	}
	if loc.Capacity < 0 || loc.Occupied < 0 || loc.Occupied > loc.Capacity {
		return fmt.Errorf("location %s occupancy %d/%d out of range: %w", loc.ID, loc.Occupied, loc.Capacity, domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.locations[loc.ID]; exists {
		return fmt.Errorf("location %s already exists: %w", loc.ID, domain.ErrValidation)
	}
	l := loc
	s.locations[loc.ID] = &l
	return nil
}

// PlaceStock seeds stock at a location without writing a ledger entry. Occupancy grows by
// the placed quantity.
func (s *Store) PlaceStock(item domain.InventoryItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[item.LocationID]
	if !ok {
		return fmt.Errorf("location %s: %w", item.LocationID, domain.ErrNotFound)
	}
	if loc.Occupied+item.Quantity > loc.Capacity {
		return fmt.Errorf("location %s cannot take %d units: %w", loc.ID, item.Quantity, domain.ErrCapacityExceeded)
	}

	key := itemKey{item.ProductID, item.LocationID}
	if existing, ok := s.items[key]; ok {
		existing.Quantity += item.Quantity
		existing.LastMovement = s.now().UTC()
	} else {
		it := item
		if it.Status == "" {
			it.Status = domain.InventoryStatusAvailable
		}
		if it.LastMovement.IsZero() {
			it.LastMovement = s.now().UTC()
		}
		s.items[key] = &it
	}
	loc.Occupied += item.Quantity
	return nil
}

func (s *Store) GetLocation(id string) (domain.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[id]
	if !ok {
		return domain.Location{}, false
	}
	return *loc, true
}

// SetBlocked marks a location as impassable and ineligible for put-away.
func (s *Store) SetBlocked(id string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[id]
	if !ok {
		return fmt.Errorf("location %s: %w", id, domain.ErrNotFound)
	}
	loc.Blocked = blocked
	return nil
}

// ListLocations returns copies ordered by id.
func (s *Store) ListLocations() []domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locationsLocked()
}

func (s *Store) locationsLocked() []domain.Location {
	out := make([]domain.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		out = append(out, *loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListInventory returns copies ordered by product then location.
func (s *Store) ListInventory() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked("")
}

// ItemsForProduct returns the product's stock records ordered by location.
func (s *Store) ItemsForProduct(productID string) []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked(productID)
}

func (s *Store) itemsLocked(productID string) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(s.items))
	for key, it := range s.items {
		if productID != "" && key.productID != productID {
			continue
		}
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}

// Snapshot is a consistent read-only copy of the topology.
type Snapshot struct {
	Locations []domain.Location
	Items     []domain.InventoryItem
	Ledger    []domain.MovementLogEntry
}

// LocationByID indexes the snapshot locations.
func (snap Snapshot) LocationByID() map[string]domain.Location {
	idx := make(map[string]domain.Location, len(snap.Locations))
	for _, loc := range snap.Locations {
		idx[loc.ID] = loc
	}
	return idx
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Locations: s.locationsLocked(),
		Items:     s.itemsLocked(""),
		Ledger:    append([]domain.MovementLogEntry(nil), s.ledger...),
	}
}

// Ledger returns a copy of the movement log in append order.
func (s *Store) Ledger() []domain.MovementLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MovementLogEntry, len(s.ledger))
	copy(out, s.ledger)
	return out
}

func (s *Store) LedgerLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ledger)
}

// TotalOccupied sums occupancy across all locations.
func (s *Store) TotalOccupied() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, loc := range s.locations {
		total += loc.Occupied
	}
	return total
}

func (s *Store) Sensors() *SensorBuffers {
	return s.sensors
}

// RecordSensorReading buffers a reading for a known location.
func (s *Store) RecordSensorReading(r domain.SensorReading) (domain.SensorReading, error) {
	if _, ok := s.GetLocation(r.LocationID); !ok {
		return domain.SensorReading{}, fmt.Errorf("location %s: %w", r.LocationID, domain.ErrNotFound)
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = s.now().UTC()
	}
	s.sensors.Record(r)
	return r, nil
}

func (s *Store) SensorReadings(locationID string) ([]domain.SensorReading, error) {
	if _, ok := s.GetLocation(locationID); !ok {
		return nil, fmt.Errorf("location %s: %w", locationID, domain.ErrNotFound)
	}
	return s.sensors.Readings(locationID), nil
}
