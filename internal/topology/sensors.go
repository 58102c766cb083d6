package topology

import (
	"sync"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

const defaultSensorBufferSize = 256

// SensorBuffers keeps the most recent readings per location in bounded rings.
// Safe for concurrent use without the topology lock.
type SensorBuffers struct {
	size    int
	buffers sync.Map // location id -> *sensorRing
}

type sensorRing struct {
	mu       sync.Mutex
	readings []domain.SensorReading
	next     int
	full     bool
}

func NewSensorBuffers(size int) *SensorBuffers {
	if size <= 0 {
		size = defaultSensorBufferSize
	}
	return &SensorBuffers{size: size}
}

func (s *SensorBuffers) Record(r domain.SensorReading) {
	v, _ := s.buffers.LoadOrStore(r.LocationID, &sensorRing{readings: make([]domain.SensorReading, s.size)})
	ring := v.(*sensorRing)

	ring.mu.Lock()
	defer ring.mu.Unlock()
	ring.readings[ring.next] = r
	ring.next = (ring.next + 1) % len(ring.readings)
	if ring.next == 0 {
		ring.full = true
	}
}

// Readings returns the buffered readings for a location, oldest first.
func (s *SensorBuffers) Readings(locationID string) []domain.SensorReading {
	v, ok := s.buffers.Load(locationID)
	if !ok {
		return []domain.SensorReading{}
	}
	ring := v.(*sensorRing)

	ring.mu.Lock()
	defer ring.mu.Unlock()
	if !ring.full {
		out := make([]domain.SensorReading, 0, ring.next)
		return append(out, ring.readings[:ring.next]...)
	}
	out := make([]domain.SensorReading, 0, len(ring.readings))
	out = append(out, ring.readings[ring.next:]...)
	out = append(out, ring.readings[:ring.next]...)
	return out
}
