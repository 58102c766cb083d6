// Package catalog owns product identity, category inference and dynamic pricing.
package catalog

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Catalog is a concurrent product store. It needs no external locking.
type Catalog struct {
	products sync.Map // id -> domain.Product
	stats    *CategoryStats
	pricer   *Pricer
	now      func() time.Time
}

func New(pricer *Pricer, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{
		stats:  NewCategoryStats(),
		pricer: pricer,
		now:    now,
	}
}

func (c *Catalog) Stats() *CategoryStats {
	return c.stats
}

// Get returns a copy of the product.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	v, ok := c.products.Load(id)
	if !ok {
		return domain.Product{}, false
	}
	return v.(domain.Product), true
}

func (c *Catalog) Exists(id string) bool {
	_, ok := c.products.Load(id)
	return ok
}

// List returns all products ordered by id.
func (c *Catalog) List() []domain.Product {
	products := make([]domain.Product, 0)
	c.products.Range(func(_, v any) bool {
		products = append(products, v.(domain.Product))
		return true
	})
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// Upsert creates or replaces a product. velocity is the product's observed pick velocity
// in units per week and drives the demand segment.
func (c *Catalog) Upsert(req domain.UpsertProductRequest, velocity float64) domain.Product {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	existing, isUpdate := c.Get(id)

	category := strings.TrimSpace(req.Category)
	if category == "" && isUpdate {
		category = existing.Category
	}
	if category == "" {
		category = c.InferCategory(id, req.Name)
	}

	weight := 0.0
	if req.WeightKg != nil {
		weight = *req.WeightKg
	} else {
		weight = c.EstimateWeight(category)
	}

	volume := 0.0
	if req.VolumeCubicM != nil {
		volume = *req.VolumeCubicM
	} else {
		volume = math.Max(0.01, weight*0.02)
	}

	cost := 0.0
	if req.CostPrice != nil {
		cost = *req.CostPrice
	} else {
		cost = weight * 10
	}

	segment := ClassifySegment(velocity)
	attributes := append([]string(nil), req.Attributes...)
	if attributes == nil {
		attributes = []string{}
	}

	product := domain.Product{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Category:      category,
		WeightKg:      weight,
		VolumeCubicM:  volume,
		CostPrice:     cost,
		SalesPrice:    c.pricer.SalesPrice(cost, weight, segment),
		DemandSegment: segment,
		Attributes:    attributes,
		LastUpdated:   c.now().UTC(),
	}

	c.products.Store(id, product)
	c.stats.Observe(category, weight, volume)

	log.Debug().
		Str("product_id", id).
		Str("category", category).
		Str("segment", segment).
		Float64("sales_price", product.SalesPrice).
		Bool("update", isUpdate).
		Msg("catalog: product upserted")

	return product
}

// InferCategory scores keyword hits in the name; without a hit it borrows the category of
// the most similar existing product name (Jaccard ≥ 0.6), else General.
func (c *Catalog) InferCategory(selfID, name string) string {
	tokens := Tokenize(name)
	if category, ok := categoryByKeywords(tokens); ok {
		return category
	}

	bestScore := 0.0
	bestID := ""
	bestCategory := ""
	c.products.Range(func(_, v any) bool {
		p := v.(domain.Product)
		if p.ID == selfID {
			return true
		}
		score := Jaccard(tokens, Tokenize(p.Name))
		if score > bestScore || (score == bestScore && score > 0 && p.ID < bestID) {
			bestScore, bestID, bestCategory = score, p.ID, p.Category
		}
		return true
	})
	if bestScore >= similarityThreshold && bestCategory != "" {
		return bestCategory
	}
	return CategoryGeneral
}

// EstimateWeight uses the observed category mean, falling back to the fixed default.
func (c *Catalog) EstimateWeight(category string) float64 {
	if mean, ok := c.stats.MeanWeight(category); ok && mean > 0 {
		return mean
	}
	return defaultWeight(category)
}
