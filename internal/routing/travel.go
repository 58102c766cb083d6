package routing

import (
	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

// TravelDistance is the A* path length from the origin to the location, falling back to
// the straight-line distance when the search cannot reach it.
func TravelDistance(grid Grid, loc domain.Location) float64 {
	if meters, ok := ShortestPath(grid, Origin, RoundPoint(loc)); ok {
		return meters
	}
	return mathutil.Distance3D(0, 0, 0, loc.X, loc.Y, loc.Z)
}

// EstimateTravelTime converts the travel distance to seconds at walking speed, rounded to
// one decimal.
func EstimateTravelTime(grid Grid, loc domain.Location) float64 {
	return mathutil.Round1(TravelDistance(grid, loc) / WalkingSpeed)
}
