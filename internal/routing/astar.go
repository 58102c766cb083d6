package routing

import "container/heap"

var neighbourSteps = [6]Point{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

type searchNode struct {
	p     Point
	g     float64
	f     float64
	index int
}

type openSet []*searchNode

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].g > o[j].g
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*o = old[:len(old)-1]
	return n
}

// ShortestPath runs A* from start to goal over 6-connected unit-cost cells with a
// Euclidean heuristic. It returns the path length in meters and false when the goal is
// unreachable within the grid.
func ShortestPath(grid Grid, start, goal Point) (float64, bool) {
	if start == goal {
		return 0, true
	}
	if !grid.Contains(start) || !grid.Passable(goal) {
		return 0, false
	}

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &searchNode{p: start, g: 0, f: euclidean(start, goal)})

	best := map[Point]float64{start: 0}
	closed := make(map[Point]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		if current.p == goal {
			return current.g, true
		}
		if _, done := closed[current.p]; done {
			continue
		}
		closed[current.p] = struct{}{}

		for _, step := range neighbourSteps {
			next := Point{X: current.p.X + step.X, Y: current.p.Y + step.Y, Z: current.p.Z + step.Z}
			if !grid.Passable(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			g := current.g + 1
			if prev, seen := best[next]; seen && g >= prev {
				continue
			}
			best[next] = g
			heap.Push(open, &searchNode{p: next, g: g, f: g + euclidean(next, goal)})
		}
	}
	return 0, false
}
