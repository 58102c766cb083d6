// Package routing estimates travel times with A* over the warehouse grid and sequences
// multi-stop pick routes.
package routing

import (
	"math"

	"github.com/andresuchdata/wms-engine/internal/domain"
)

const (
	// WalkingSpeed is the picker speed in meters per second.
	WalkingSpeed = 1.5
	// HandlingSecondsPerUnit is added for every unit picked.
	HandlingSecondsPerUnit = 4.0

	gridMargin = 2
)

// Point is an integer grid cell.
type Point struct {
	X, Y, Z int
}

// Origin is where every route and travel estimate starts.
var Origin = Point{}

// Grid bounds are inclusive.
type Grid struct {
	Min     Point
	Max     Point
	Blocked map[Point]struct{}
}

// DefaultGrid is used when there are no locations to derive bounds from.
func DefaultGrid() Grid {
	return Grid{
		Min:     Point{},
		Max:     Point{X: 50, Y: 50, Z: 10},
		Blocked: map[Point]struct{}{},
	}
}

// RoundPoint snaps location coordinates to the nearest grid cell.
func RoundPoint(loc domain.Location) Point {
	return Point{
		X: int(math.Round(loc.X)),
		Y: int(math.Round(loc.Y)),
		Z: int(math.Round(loc.Z)),
	}
}

// BuildGrid derives bounds from the observed coordinates plus a margin, always keeping the
// origin inside, and marks blocked locations impassable.
func BuildGrid(locations []domain.Location) Grid {
	if len(locations) == 0 {
		return DefaultGrid()
	}

	g := Grid{Blocked: make(map[Point]struct{})}
	for _, loc := range locations {
		p := RoundPoint(loc)
		g.Min = Point{X: min(g.Min.X, p.X), Y: min(g.Min.Y, p.Y), Z: min(g.Min.Z, p.Z)}
		g.Max = Point{X: max(g.Max.X, p.X), Y: max(g.Max.Y, p.Y), Z: max(g.Max.Z, p.Z)}
		if loc.Blocked {
			g.Blocked[p] = struct{}{}
		}
	}
	g.Min = Point{X: g.Min.X - gridMargin, Y: g.Min.Y - gridMargin, Z: g.Min.Z - gridMargin}
	g.Max = Point{X: g.Max.X + gridMargin, Y: g.Max.Y + gridMargin, Z: g.Max.Z + gridMargin}
	return g
}

func (g Grid) Contains(p Point) bool {
	return p.X >= g.Min.X && p.X <= g.Max.X &&
		p.Y >= g.Min.Y && p.Y <= g.Max.Y &&
		p.Z >= g.Min.Z && p.Z <= g.Max.Z
}

func (g Grid) Passable(p Point) bool {
	if !g.Contains(p) {
		return false
	}
	_, blocked := g.Blocked[p]
	return !blocked
}

func euclidean(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
