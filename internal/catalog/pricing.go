package catalog

import (
	"math/rand"
	"sync"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
	"github.com/shopspring/decimal"
)

const (
	velocityA = 30.0
	velocityB = 10.0

	minVolatility    = 0.98
	volatilitySpread = 0.05
)

// Pricer computes market-responsive sales prices. The jitter source is injectable so
// tests can seed it.
type Pricer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewPricer(src rand.Source) *Pricer {
	return &Pricer{rng: rand.New(src)}
}

// DemandFactor is the fixed margin multiplier per demand segment.
func DemandFactor(segment string) float64 {
	switch segment {
	case domain.SegmentA:
		return 1.35
	case domain.SegmentC:
		return 1.12
	default:
		return 1.22
	}
}

// ClassifySegment maps weekly pick velocity to an ABC segment.
func ClassifySegment(unitsPerWeek float64) string {
	switch {
	case unitsPerWeek > velocityA:
		return domain.SegmentA
	case unitsPerWeek > velocityB:
		return domain.SegmentB
	default:
		return domain.SegmentC
	}
}

func (p *Pricer) volatility() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return minVolatility + p.rng.Float64()*volatilitySpread
}

// SalesPrice = cost × demandFactor × clamp(weight/10, 0.9, 1.1) × volatility, in cents.
func (p *Pricer) SalesPrice(cost, weight float64, segment string) float64 {
	weightFactor := mathutil.Clamp(weight/10, 0.9, 1.1)
	price := cost * DemandFactor(segment) * weightFactor * p.volatility()
	return decimal.NewFromFloat(price).Round(2).InexactFloat64()
}
