package routing

import (
	"fmt"
	"math"
	"sort"

	"github.com/andresuchdata/wms-engine/internal/domain"
	"github.com/andresuchdata/wms-engine/pkg/mathutil"
)

type pickNode struct {
	productID  string
	locationID string
	quantity   int
	loc        domain.Location
}

// PlanPickRoute allocates every line across the stock records that hold the product and
// sequences the resulting stops by nearest neighbour from the origin. Inputs are not
// modified; a short line fails the whole plan.
func PlanPickRoute(locations map[string]domain.Location, items []domain.InventoryItem, lines []domain.PickLine) (domain.PickRoute, error) {
	nodes, err := allocate(locations, items, lines)
	if err != nil {
		return domain.PickRoute{}, err
	}
	return sequence(nodes), nil
}

func allocate(locations map[string]domain.Location, items []domain.InventoryItem, lines []domain.PickLine) ([]pickNode, error) {
	remaining := make(map[string]int, len(items))
	byProduct := make(map[string][]domain.InventoryItem)
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		remaining[it.ProductID+"\x00"+it.LocationID] = it.Quantity
		byProduct[it.ProductID] = append(byProduct[it.ProductID], it)
	}
	for _, candidates := range byProduct {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Quantity != candidates[j].Quantity {
				return candidates[i].Quantity > candidates[j].Quantity
			}
			return candidates[i].LocationID < candidates[j].LocationID
		})
	}

	var nodes []pickNode
	index := make(map[string]int)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive: %w", line.ProductID, domain.ErrValidation)
		}

		available := 0
		for _, it := range byProduct[line.ProductID] {
			available += remaining[it.ProductID+"\x00"+it.LocationID]
		}
		if available < line.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s: %d requested, %d available: %w",
				line.ProductID, line.Quantity, available, domain.ErrInsufficientStock)
		}

		need := line.Quantity
		for _, it := range byProduct[line.ProductID] {
			if need == 0 {
				break
			}
			key := it.ProductID + "\x00" + it.LocationID
			take := min(need, remaining[key])
			if take == 0 {
				continue
			}
			loc, ok := locations[it.LocationID]
			if !ok {
				return nil, fmt.Errorf("stock of %s references unknown location %s: %w", it.ProductID, it.LocationID, domain.ErrInconsistentState)
			}
			remaining[key] -= take
			need -= take

			if i, seen := index[key]; seen {
				nodes[i].quantity += take
				continue
			}
			index[key] = len(nodes)
			nodes = append(nodes, pickNode{productID: it.ProductID, locationID: it.LocationID, quantity: take, loc: loc})
		}
	}
	return nodes, nil
}

func sequence(nodes []pickNode) domain.PickRoute {
	route := domain.PickRoute{Waypoints: make([]domain.Waypoint, 0, len(nodes))}
	visited := make([]bool, len(nodes))
	cx, cy, cz := 0.0, 0.0, 0.0
	distance, duration := 0.0, 0.0

	for range nodes {
		next := -1
		best := math.Inf(1)
		for i, n := range nodes {
			if visited[i] {
				continue
			}
			d := mathutil.Distance3D(cx, cy, cz, n.loc.X, n.loc.Y, n.loc.Z)
			if d < best {
				best, next = d, i
			}
		}
		visited[next] = true
		n := nodes[next]

		distance += best
		duration += best/WalkingSpeed + HandlingSecondsPerUnit*float64(n.quantity)
		cx, cy, cz = n.loc.X, n.loc.Y, n.loc.Z

		route.Waypoints = append(route.Waypoints, domain.Waypoint{
			LocationID: n.locationID,
			ProductID:  n.productID,
			Quantity:   n.quantity,
			X:          n.loc.X,
			Y:          n.loc.Y,
			Z:          n.loc.Z,
			ETASeconds: mathutil.Round1(duration),
		})
	}

	route.TotalDistance = mathutil.Round1(distance)
	route.TotalDurationSeconds = mathutil.Round1(duration)
	return route
}
