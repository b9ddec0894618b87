// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// CellState is the terrain of a single grid cell.
type CellState uint8

// Cell states
const (
	Wall CellState = iota
	Floor
)

// String returns the string representation of a cell state
func (s CellState) String() string {
	switch s {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	default:
		return "Unknown"
	}
}

// Point is a grid coordinate. X is the column, Y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// CellSet is a set of grid coordinates.
type CellSet = mapset.Set[Point]

// NewCellSet creates a set holding the given points.
func NewCellSet(points ...Point) CellSet {
	s := mapset.New[Point]()
	for _, p := range points {
		s.Put(p)
	}
	return s
}

// SortedPoints returns the members of s ordered by row, then column.
func SortedPoints(s CellSet) []Point {
	points := make([]Point, 0, s.Size())
	s.Each(func(p Point) {
		points = append(points, p)
	})
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
