package routing

import (
	"math"
	"testing"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestShortestPath_OpenGridMatchesManhattan(t *testing.T) {
	g := DefaultGrid()

	meters, ok := ShortestPath(g, Origin, Point{X: 3, Y: 4, Z: 1})
	require.True(t, ok)
	assert.Equal(t, 8.0, meters)

	meters, ok = ShortestPath(g, Origin, Origin)
	require.True(t, ok)
	assert.Zero(t, meters)
}

func TestShortestPath_DetoursAroundBlockedCells(t *testing.T) {
	g := Grid{
		Min:     Point{X: -2, Y: -2, Z: 0},
		Max:     Point{X: 6, Y: 6, Z: 0},
		Blocked: map[Point]struct{}{},
	}
	// wall at x=2 except y=4
	for y := -2; y <= 6; y++ {
		if y != 4 {
			g.Blocked[Point{X: 2, Y: y}] = struct{}{}
		}
	}

	meters, ok := ShortestPath(g, Origin, Point{X: 4})
	require.True(t, ok)
	assert.Equal(t, 12.0, meters)
}

func TestShortestPath_UnreachableGoal(t *testing.T) {
	g := Grid{Min: Point{}, Max: Point{X: 4, Y: 4}, Blocked: map[Point]struct{}{
		{X: 1}: {}, {Y: 1}: {},
	}}

	_, ok := ShortestPath(g, Origin, Point{X: 3, Y: 3})
	assert.False(t, ok)

	_, ok = ShortestPath(g, Origin, Point{X: 9})
	assert.False(t, ok, "goal outside bounds")
}

func TestShortestPath_NeverShorterThanStraightLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := Grid{Min: Point{X: -3, Y: -3, Z: -1}, Max: Point{X: 8, Y: 8, Z: 2}, Blocked: map[Point]struct{}{}}
		n := rapid.IntRange(0, 20).Draw(t, "blocked")
		for i := 0; i < n; i++ {
			p := Point{
				X: rapid.IntRange(-3, 8).Draw(t, "bx"),
				Y: rapid.IntRange(-3, 8).Draw(t, "by"),
				Z: rapid.IntRange(-1, 2).Draw(t, "bz"),
			}
			if p != Origin {
				g.Blocked[p] = struct{}{}
			}
		}
		goal := Point{
			X: rapid.IntRange(-3, 8).Draw(t, "gx"),
			Y: rapid.IntRange(-3, 8).Draw(t, "gy"),
			Z: rapid.IntRange(-1, 2).Draw(t, "gz"),
		}

		meters, ok := ShortestPath(g, Origin, goal)
		if !ok {
			return
		}
		manhattan := math.Abs(float64(goal.X)) + math.Abs(float64(goal.Y)) + math.Abs(float64(goal.Z))
		if meters < manhattan {
			t.Fatalf("path %v shorter than manhattan %v", meters, manhattan)
		}
		if meters < euclidean(Origin, goal) {
			t.Fatalf("path %v shorter than straight line", meters)
		}
	})
}

func TestBuildGrid_BoundsAndBlocked(t *testing.T) {
	g := BuildGrid([]domain.Location{
		{ID: "A", X: 2.4, Y: 1, Z: 0},
		{ID: "B", X: -3, Y: 7.6, Z: 1, Blocked: true},
	})

	assert.Equal(t, Point{X: -5, Y: -2, Z: -2}, g.Min)
	assert.Equal(t, Point{X: 4, Y: 10, Z: 3}, g.Max)
	assert.Contains(t, g.Blocked, Point{X: -3, Y: 8, Z: 1})
	assert.Len(t, g.Blocked, 1)

	assert.Equal(t, DefaultGrid().Max, BuildGrid(nil).Max)
}

func TestEstimateTravelTime(t *testing.T) {
	locs := []domain.Location{{ID: "A-01-01", X: 2, Y: 1}, {ID: "A-02-03", X: 4, Y: 3}}
	g := BuildGrid(locs)

	assert.Equal(t, 2.0, EstimateTravelTime(g, locs[0]))
	assert.Equal(t, 4.7, EstimateTravelTime(g, locs[1]))
}

func TestEstimateTravelTime_FallsBackToStraightLine(t *testing.T) {
	target := domain.Location{ID: "X", X: 3, Y: 4}
	g := Grid{Min: Point{}, Max: Point{X: 5, Y: 5}, Blocked: map[Point]struct{}{
		{X: 1}: {}, {Y: 1}: {}, {Z: 1}: {},
	}}

	assert.Equal(t, 5.0, TravelDistance(g, target))
	assert.Equal(t, 3.3, EstimateTravelTime(g, target))
}

func pickFixture() (map[string]domain.Location, []domain.InventoryItem) {
	locations := map[string]domain.Location{
		"A-01-01": {ID: "A-01-01", X: 2, Y: 1},
		"A-02-03": {ID: "A-02-03", X: 4, Y: 3},
		"B-01-02": {ID: "B-01-02", X: 1, Y: 6},
		"C-01-01": {ID: "C-01-01", X: 10, Y: 8},
	}
	items := []domain.InventoryItem{
		{ProductID: "SKU-AR-01", LocationID: "A-01-01", Quantity: 24},
		{ProductID: "SKU-AR-01", LocationID: "C-01-01", Quantity: 30},
		{ProductID: "SKU-BX-02", LocationID: "A-02-03", Quantity: 6},
		{ProductID: "SKU-BX-02", LocationID: "B-01-02", Quantity: 6},
		{ProductID: "SKU-LOW", LocationID: "B-01-02", Quantity: 2},
	}
	return locations, items
}

func TestPlanPickRoute_AllocatesLargestFirstAndSequencesNearest(t *testing.T) {
	locations, items := pickFixture()

	route, err := PlanPickRoute(locations, items, []domain.PickLine{
		{ProductID: "SKU-AR-01", Quantity: 35},
		{ProductID: "SKU-BX-02", Quantity: 4},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(route.Waypoints))
	for _, wp := range route.Waypoints {
		ids = append(ids, wp.LocationID)
	}
	// SKU-AR-01 takes 30 from C-01-01 then 5 from A-01-01; SKU-BX-02 ties on 6 so A-02-03
	assert.Equal(t, []string{"A-01-01", "A-02-03", "C-01-01"}, ids)
	assert.Equal(t, 5, route.Waypoints[0].Quantity)
	assert.Equal(t, 4, route.Waypoints[1].Quantity)
	assert.Equal(t, 30, route.Waypoints[2].Quantity)

	legs := math.Sqrt(5) + math.Sqrt(8) + math.Sqrt(61)
	assert.InDelta(t, legs, route.TotalDistance, 0.05)
	assert.InDelta(t, legs/WalkingSpeed+4*39, route.TotalDurationSeconds, 0.05)
	assert.Equal(t, route.TotalDurationSeconds, route.Waypoints[2].ETASeconds)
	assert.Less(t, route.Waypoints[0].ETASeconds, route.Waypoints[1].ETASeconds)
}

func TestPlanPickRoute_IsIdempotent(t *testing.T) {
	locations, items := pickFixture()
	lines := []domain.PickLine{{ProductID: "SKU-BX-02", Quantity: 9}, {ProductID: "SKU-AR-01", Quantity: 10}}

	first, err := PlanPickRoute(locations, items, lines)
	require.NoError(t, err)
	second, err := PlanPickRoute(locations, items, lines)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanPickRoute_InsufficientStockLeavesInputUntouched(t *testing.T) {
	locations, items := pickFixture()
	before := append([]domain.InventoryItem(nil), items...)

	_, err := PlanPickRoute(locations, items, []domain.PickLine{{ProductID: "SKU-LOW", Quantity: 3}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "insufficient stock for product SKU-LOW")
	assert.Equal(t, before, items)

	_, err = PlanPickRoute(locations, items, []domain.PickLine{{ProductID: "UNKNOWN", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlanPickRoute_RepeatedLinesShareStock(t *testing.T) {
	locations, items := pickFixture()

	_, err := PlanPickRoute(locations, items, []domain.PickLine{
		{ProductID: "SKU-LOW", Quantity: 2},
		{ProductID: "SKU-LOW", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	route, err := PlanPickRoute(locations, items, []domain.PickLine{
		{ProductID: "SKU-LOW", Quantity: 1},
		{ProductID: "SKU-LOW", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, route.Waypoints, 1)
	assert.Equal(t, 2, route.Waypoints[0].Quantity)
}
