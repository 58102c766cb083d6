package catalog

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func newTestCatalog() *Catalog {
	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	return New(NewPricer(rand.NewSource(7)), func() time.Time { return fixed })
}

func TestUpsert_InfersCategoryFromKeywords(t *testing.T) {
	c := newTestCatalog()

	p := c.Upsert(domain.UpsertProductRequest{Name: "Ergonomic Office Chair"}, 0)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, CategoryFurniture, p.Category)
	assert.Equal(t, defaultCategoryWeights[CategoryFurniture], p.WeightKg)
	assert.InDelta(t, 18*0.02, p.VolumeCubicM, 1e-9)
	assert.InDelta(t, 180.0, p.CostPrice, 1e-9)
	assert.Equal(t, domain.SegmentC, p.DemandSegment)
}

func TestUpsert_WeightedKeywordsPickHighestScore(t *testing.T) {
	c := newTestCatalog()

	// "cable" is a weak electronics hit, "desk" + "shelf" are strong furniture hits
	p := c.Upsert(domain.UpsertProductRequest{Name: "desk shelf with cable tray"}, 0)
	assert.Equal(t, CategoryFurniture, p.Category)
}

func TestUpsert_FallsBackToSimilarProduct(t *testing.T) {
	c := newTestCatalog()
	c.Upsert(domain.UpsertProductRequest{ID: "SKU-1", Name: "aurora widget blue", Category: "Gadgets"}, 0)

	similar := c.Upsert(domain.UpsertProductRequest{Name: "aurora widget red blue"}, 0)
	assert.Equal(t, "Gadgets", similar.Category)

	unrelated := c.Upsert(domain.UpsertProductRequest{Name: "zephyr gizmo"}, 0)
	assert.Equal(t, CategoryGeneral, unrelated.Category)
}

func TestUpsert_UpdateKeepsCategoryAndUsesRunningMean(t *testing.T) {
	c := newTestCatalog()
	c.Upsert(domain.UpsertProductRequest{ID: "T-1", Name: "Cordless Drill", WeightKg: ptr(4)}, 0)
	c.Upsert(domain.UpsertProductRequest{ID: "T-2", Name: "Claw Hammer", WeightKg: ptr(2)}, 0)

	estimated := c.Upsert(domain.UpsertProductRequest{ID: "T-3", Name: "Pipe Wrench"}, 0)
	assert.Equal(t, CategoryTools, estimated.Category)
	assert.InDelta(t, 3.0, estimated.WeightKg, 1e-9)

	renamed := c.Upsert(domain.UpsertProductRequest{ID: "T-1", Name: "Thing", WeightKg: ptr(4)}, 0)
	assert.Equal(t, CategoryTools, renamed.Category)
}

func TestUpsert_SalesPriceFormula(t *testing.T) {
	c := newTestCatalog()

	p := c.Upsert(domain.UpsertProductRequest{
		Name:      "Laptop Pro",
		WeightKg:  ptr(2),
		CostPrice: ptr(1000),
	}, 45)

	require.Equal(t, domain.SegmentA, p.DemandSegment)
	// weight factor clamps 0.2 up to 0.9; volatility in [0.98, 1.03]
	low := 1000 * 1.35 * 0.9 * 0.98
	high := 1000 * 1.35 * 0.9 * 1.03
	assert.GreaterOrEqual(t, p.SalesPrice, low-0.01)
	assert.LessOrEqual(t, p.SalesPrice, high+0.01)
}

func TestPricer_SeededIsReproducible(t *testing.T) {
	a := NewPricer(rand.NewSource(42))
	b := NewPricer(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.SalesPrice(100, 12, domain.SegmentB), b.SalesPrice(100, 12, domain.SegmentB))
	}
}

func TestClassifySegment(t *testing.T) {
	assert.Equal(t, domain.SegmentA, ClassifySegment(30.5))
	assert.Equal(t, domain.SegmentB, ClassifySegment(30))
	assert.Equal(t, domain.SegmentB, ClassifySegment(10.1))
	assert.Equal(t, domain.SegmentC, ClassifySegment(10))
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0, Jaccard([]string{"a", "b"}, []string{"b", "a"}), 1e-9)
	assert.InDelta(t, 1.0/3.0, Jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 0.0, Jaccard(nil, nil))
}

func TestCatalog_ConcurrentUpserts(t *testing.T) {
	c := newTestCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Upsert(domain.UpsertProductRequest{Name: "Rice Bag", WeightKg: ptr(5)}, 0)
		}()
	}
	wg.Wait()

	assert.Len(t, c.List(), 50)
	snap, ok := c.Stats().Get(CategoryFood)
	require.True(t, ok)
	assert.Equal(t, 50, snap.Count)
	assert.InDelta(t, 5.0, snap.MeanWeight, 1e-9)
}
