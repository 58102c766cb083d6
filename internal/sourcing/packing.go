package sourcing

import (
	"fmt"
	"math"
	"sort"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

// TargetUtilisation is the share of a box's volume that may be filled.
const TargetUtilisation = 0.85

// Box is a shipping carton.
type Box struct {
	ID           string
	VolumeCubicM float64
	MaxWeightKg  float64
}

// StandardBoxes is the default carton catalog, smallest first.
var StandardBoxes = []Box{
	{ID: "S", VolumeCubicM: 0.02, MaxWeightKg: 5},
	{ID: "M", VolumeCubicM: 0.06, MaxWeightKg: 15},
	{ID: "L", VolumeCubicM: 0.12, MaxWeightKg: 25},
	{ID: "XL", VolumeCubicM: 0.25, MaxWeightKg: 40},
}

// BoxesNeeded is the number of boxes of one size that hold the volume at the target
// utilisation and stay within the weight limit.
func BoxesNeeded(box Box, volume, weight float64) int {
	byVolume := int(math.Ceil(volume / (box.VolumeCubicM * TargetUtilisation)))
	byWeight := int(math.Ceil(weight / box.MaxWeightKg))
	return max(1, byVolume, byWeight)
}

// RecommendBoxes ranks every box by the number needed, then by box size.
func RecommendBoxes(boxes []Box, volume, weight float64) (domain.PackagingRecommendation, error) {
	if len(boxes) == 0 {
		return domain.PackagingRecommendation{}, fmt.Errorf("no boxes configured: %w", domain.ErrNotFound)
	}
	if volume < 0 || weight < 0 {
		return domain.PackagingRecommendation{}, fmt.Errorf("volume and weight must not be negative: %w", domain.ErrValidation)
	}

	type option struct {
		domain.BoxOption
		boxVolume float64
	}
	options := make([]option, 0, len(boxes))
	for _, b := range boxes {
		count := BoxesNeeded(b, volume, weight)
		options = append(options, option{
			BoxOption: domain.BoxOption{
				BoxID:       b.ID,
				BoxCount:    count,
				Utilisation: mathutil.Round(volume/(float64(count)*b.VolumeCubicM), 3),
				TotalVolume: mathutil.Round(volume, 4),
				TotalWeight: mathutil.Round(weight, 2),
			},
			boxVolume: b.VolumeCubicM,
		})
	}
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].BoxCount != options[j].BoxCount {
			return options[i].BoxCount < options[j].BoxCount
		}
		return options[i].boxVolume < options[j].boxVolume
	})

	rec := domain.PackagingRecommendation{
		Recommended:  options[0].BoxOption,
		Alternatives: make([]domain.BoxOption, 0, len(options)-1),
	}
	for _, o := range options[1:] {
		rec.Alternatives = append(rec.Alternatives, o.BoxOption)
	}
	return rec, nil
}
