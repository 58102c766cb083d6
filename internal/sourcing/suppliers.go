// Package sourcing scores suppliers, reconciles purchase orders against receipts and
// invoices, and recommends shipping boxes.
package sourcing

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

// DefaultWeights applies when the caller supplies none for a supplier.
var DefaultWeights = domain.SupplierWeights{Price: 0.4, Reliability: 0.4, Sustainability: 0.2}

// Directory holds supplier reference data.
type Directory struct {
	mu        sync.RWMutex
	suppliers map[string]domain.SupplierProfile
}

func NewDirectory() *Directory {
	return &Directory{suppliers: make(map[string]domain.SupplierProfile)}
}

// Add registers or replaces a supplier. Ids are stored upper-cased.
func (d *Directory) Add(p domain.SupplierProfile) error {
	p.ID = strings.ToUpper(strings.TrimSpace(p.ID))
	if p.ID == "" {
		return fmt.Errorf("supplier id is required: %w", domain.ErrValidation)
	}
	for _, score := range []float64{p.PriceScore, p.ReliabilityScore, p.SustainabilityScore} {
		if score < 0 || score > 1 {
			return fmt.Errorf("supplier %s score %v outside [0,1]: %w", p.ID, score, domain.ErrValidation)
		}
	}
	if p.LeadTimeDays < 0 {
		return fmt.Errorf("supplier %s lead time must not be negative: %w", p.ID, domain.ErrValidation)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.suppliers[p.ID] = p
	return nil
}

func (d *Directory) Get(id string) (domain.SupplierProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.suppliers[strings.ToUpper(id)]
	return p, ok
}

// List returns suppliers ordered by id.
func (d *Directory) List() []domain.SupplierProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.SupplierProfile, 0, len(d.suppliers))
	for _, p := range d.suppliers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AverageLeadTime is the mean lead time in days, false when there are no suppliers.
func (d *Directory) AverageLeadTime() (float64, bool) {
	suppliers := d.List()
	if len(suppliers) == 0 {
		return 0, false
	}
	total := 0
	for _, p := range suppliers {
		total += p.LeadTimeDays
	}
	return float64(total) / float64(len(suppliers)), true
}

// ScoreSupplier is the weighted sum of the supplier's three scores.
func ScoreSupplier(p domain.SupplierProfile, w domain.SupplierWeights) float64 {
	return w.Price*p.PriceScore + w.Reliability*p.ReliabilityScore + w.Sustainability*p.SustainabilityScore
}

// Rank scores every supplier, best first, ties by id. weights is keyed by supplier id.
func Rank(suppliers []domain.SupplierProfile, weights map[string]domain.SupplierWeights) []domain.SupplierScore {
	overrides := make(map[string]domain.SupplierWeights, len(weights))
	for id, w := range weights {
		overrides[strings.ToUpper(id)] = w
	}

	ranked := make([]domain.SupplierScore, 0, len(suppliers))
	for _, p := range suppliers {
		w, ok := overrides[p.ID]
		if !ok {
			w = DefaultWeights
		}
		ranked = append(ranked, domain.SupplierScore{
			SupplierID:   p.ID,
			SupplierName: p.Name,
			Score:        mathutil.Round(ScoreSupplier(p, w), 4),
			LeadTimeDays: p.LeadTimeDays,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].SupplierID < ranked[j].SupplierID
	})
	return ranked
}

// Recommend ranks the directory's suppliers and returns the best one.
func (d *Directory) Recommend(req domain.SupplierRecommendationRequest) (domain.SupplierRecommendation, error) {
	ranked := Rank(d.List(), req.Weights)
	if len(ranked) == 0 {
		return domain.SupplierRecommendation{}, fmt.Errorf("no suppliers registered: %w", domain.ErrNotFound)
	}
	return domain.SupplierRecommendation{Recommended: ranked[0], Ranking: ranked}, nil
}

// MatchPurchaseOrder finds the supplier whose id appears in the purchase order reference.
// The longest matching id wins.
func (d *Directory) MatchPurchaseOrder(purchaseOrderID string) (domain.SupplierProfile, bool) {
	ref := strings.ToUpper(purchaseOrderID)
	var best domain.SupplierProfile
	found := false
	for _, p := range d.List() {
		if !strings.Contains(ref, p.ID) {
			continue
		}
		if !found || len(p.ID) > len(best.ID) {
			best, found = p, true
		}
	}
	return best, found
}
