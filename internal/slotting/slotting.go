// Package slotting recommends put-away locations.
package slotting

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/internal/routing"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

const (
	freeWeight     = 0.45
	zoneWeight     = 0.15
	heavyWeight    = 0.10
	turnoverWeight = 0.10
	travelWeight   = 0.20

	preferredZoneBonus = 1.2
	heavyInZoneCBonus  = 1.1
	fastInZoneABonus   = 1.3

	heavyItemKg      = 10.0
	fastTurnoverDays = 7
	maxConfidence    = 0.99
	minTravelSeconds = 1.0
)

// Candidate is one scored location.
type Candidate struct {
	Location      domain.Location
	Score         float64
	TravelSeconds float64
	ZoneAffinity  float64
	WeightFit     float64
	TurnoverFit   float64
}

// Eligible reports whether stock can be put away at the location.
func Eligible(loc domain.Location) bool {
	return !loc.Blocked && loc.Occupied < loc.Capacity
}

// Score computes the weighted put-away score of a location for the request.
func Score(loc domain.Location, travelSeconds float64, req domain.SlotRequest) Candidate {
	c := Candidate{
		Location:      loc,
		TravelSeconds: travelSeconds,
		ZoneAffinity:  1.0,
		WeightFit:     1.0,
		TurnoverFit:   1.0,
	}
	zone := strings.ToUpper(loc.Zone)
	if req.ZonePreference != "" && strings.EqualFold(req.ZonePreference, zone) {
		c.ZoneAffinity = preferredZoneBonus
	}
	if req.WeightKg > heavyItemKg && zone == "C" {
		c.WeightFit = heavyInZoneCBonus
	}
	if req.ExpectedTurnoverDays <= fastTurnoverDays && zone == "A" {
		c.TurnoverFit = fastInZoneABonus
	}

	freeRatio := 1 - loc.OccupancyRate()
	c.Score = freeWeight*freeRatio +
		zoneWeight*c.ZoneAffinity +
		heavyWeight*c.WeightFit +
		turnoverWeight*c.TurnoverFit +
		travelWeight*(1/max(travelSeconds, minTravelSeconds))
	return c
}

// Rank scores every eligible location, best first. Locations are expected in id order so
// that ties keep the lower id first.
func Rank(locations []domain.Location, req domain.SlotRequest) []Candidate {
	grid := routing.BuildGrid(locations)
	out := make([]Candidate, 0, len(locations))
	for _, loc := range locations {
		if !Eligible(loc) {
			continue
		}
		out = append(out, Score(loc, routing.EstimateTravelTime(grid, loc), req))
	}
	// insertion sort keeps equal scores in input order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Recommend returns the best location for the request.
func Recommend(locations []domain.Location, req domain.SlotRequest) (domain.SlotRecommendation, error) {
	ranked := Rank(locations, req)
	if len(ranked) == 0 {
		return domain.SlotRecommendation{}, fmt.Errorf("no eligible location for product %s: %w", req.ProductID, domain.ErrNoEligibleLocation)
	}
	best := ranked[0]
	return domain.SlotRecommendation{
		LocationID:        best.Location.ID,
		Confidence:        mathutil.Round(min(best.Score, maxConfidence), 3),
		TravelTimeSeconds: best.TravelSeconds,
		Reason:            reason(best),
	}, nil
}

func reason(c Candidate) string {
	parts := []string{
		fmt.Sprintf("%.0f%% free", (1-c.Location.OccupancyRate())*100),
		fmt.Sprintf("%.1fs from dock", c.TravelSeconds),
	}
	if c.ZoneAffinity > 1 {
		parts = append(parts, "preferred zone "+c.Location.Zone)
	}
	if c.WeightFit > 1 {
		parts = append(parts, "heavy item in zone C")
	}
	if c.TurnoverFit > 1 {
		parts = append(parts, "fast mover in zone A")
	}
	return strings.Join(parts, ", ")
}
