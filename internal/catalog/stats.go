package catalog

import "sync"

// CategoryStats keeps running mean weight and volume per category. Safe for concurrent use.
type CategoryStats struct {
	entries sync.Map // category -> *categoryStat
}

type categoryStat struct {
	mu         sync.Mutex
	count      int
	meanWeight float64
	meanVolume float64
}

// StatSnapshot is a point-in-time copy of one category's statistics.
type StatSnapshot struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	MeanWeight float64 `json:"mean_weight"`
	MeanVolume float64 `json:"mean_volume"`
}

func NewCategoryStats() *CategoryStats {
	return &CategoryStats{}
}

// Observe folds one product's dimensions into the running means.
func (s *CategoryStats) Observe(category string, weight, volume float64) {
	v, _ := s.entries.LoadOrStore(category, &categoryStat{})
	st := v.(*categoryStat)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.count++
	n := float64(st.count)
	st.meanWeight += (weight - st.meanWeight) / n
	st.meanVolume += (volume - st.meanVolume) / n
}

// MeanWeight returns the observed mean weight, false when nothing was observed yet.
func (s *CategoryStats) MeanWeight(category string) (float64, bool) {
	snap, ok := s.Get(category)
	if !ok || snap.Count == 0 {
		return 0, false
	}
	return snap.MeanWeight, true
}

func (s *CategoryStats) Get(category string) (StatSnapshot, bool) {
	v, ok := s.entries.Load(category)
	if !ok {
		return StatSnapshot{}, false
	}
	st := v.(*categoryStat)

	st.mu.Lock()
	defer st.mu.Unlock()
	return StatSnapshot{
		Category:   category,
		Count:      st.count,
		MeanWeight: st.meanWeight,
		MeanVolume: st.meanVolume,
	}, true
}
