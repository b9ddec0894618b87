package world

import "fmt"

// Grid is a rectangular wall/floor map with flat cell storage.
// Out-of-bounds reads report Wall.
type Grid struct {
	width  int
	height int
	cells  []CellState
}

// NewGrid creates a new grid of the given size with every cell set to Wall
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build (re)initialises the grid to width x height walls.
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	g.width = width
	g.height = height
	g.cells = make([]CellState, width*height)
	for i := range g.cells {
		g.cells[i] = Wall
	}
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition checks if a point is within grid bounds
func (g *Grid) IsValidPosition(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsPlayablePosition checks if a point is within the playable area (not on the perimeter)
func (g *Grid) IsPlayablePosition(p Point) bool {
	return p.X >= 1 && p.X < g.width-1 && p.Y >= 1 && p.Y < g.height-1
}

// IsOnPerimeter checks if a point is on the edge of the grid
func (g *Grid) IsOnPerimeter(p Point) bool {
	return g.IsValidPosition(p) && !g.IsPlayablePosition(p)
}

// At returns the state of the cell at p, or Wall if p is out of bounds
func (g *Grid) At(p Point) CellState {
	if !g.IsValidPosition(p) {
		return Wall
	}
	return g.cells[p.Y*g.width+p.X]
}

// IsFloor reports whether p is an in-bounds Floor cell.
func (g *Grid) IsFloor(p Point) bool {
	return g.At(p) == Floor
}

// Set writes the state of the cell at p. Returns false if out of bounds.
func (g *Grid) Set(p Point, s CellState) bool {
	if !g.IsValidPosition(p) {
		return false
	}
	g.cells[p.Y*g.width+p.X] = s
	return true
}

// Center returns the point at the grid center
func (g *Grid) Center() Point {
	return Point{X: g.width / 2, Y: g.height / 2}
}

// ClampPlayable clamps p into [1, width-2] x [1, height-2].
// On grids too small to have a playable area the result is clamped to the grid instead.
func (g *Grid) ClampPlayable(p Point) Point {
	return Point{
		X: clamp(p.X, 1, g.width-2, g.width-1),
		Y: clamp(p.Y, 1, g.height-2, g.height-1),
	}
}

func clamp(v, lo, hi, limit int) int {
	if hi < lo {
		lo, hi = 0, limit
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MakeFloor sets p to Floor unless p lies on the perimeter or outside the grid.
func (g *Grid) MakeFloor(p Point) {
	if !g.IsPlayablePosition(p) {
		return
	}
	g.cells[p.Y*g.width+p.X] = Floor
}

// ForceFloorAround clamps center into the playable area and makes it and its
// four orthogonal neighbours Floor. Returns the clamped center.
func (g *Grid) ForceFloorAround(center Point) Point {
	c := g.ClampPlayable(center)
	g.MakeFloor(c)
	for _, n := range Neighbours(c) {
		g.MakeFloor(n)
	}
	return c
}

// WallNeighbours counts walls in the 8-cell Moore neighbourhood of p.
// Out-of-bounds neighbours count as walls.
func (g *Grid) WallNeighbours(p Point) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.At(Point{X: p.X + dx, Y: p.Y + dy}) == Wall {
				count++
			}
		}
	}
	return count
}

// CountFloor returns the number of Floor cells.
func (g *Grid) CountFloor() int {
	n := 0
	for _, c := range g.cells {
		if c == Floor {
			n++
		}
	}
	return n
}

// ForEachCell iterates over all cells row by row
func (g *Grid) ForEachCell(fn func(p Point, s CellState)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Point{X: x, Y: y}, g.cells[y*g.width+x])
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]CellState, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Validate checks the grid for common issues
// Returns an empty string if valid, or an error message if not
func (g *Grid) Validate() string {
	for x := 0; x < g.width; x++ {
		if g.At(Point{X: x, Y: 0}) != Wall || g.At(Point{X: x, Y: g.height - 1}) != Wall {
			return fmt.Sprintf("perimeter cell in column %d is not a wall", x)
		}
	}
	for y := 0; y < g.height; y++ {
		if g.At(Point{X: 0, Y: y}) != Wall || g.At(Point{X: g.width - 1, Y: y}) != Wall {
			return fmt.Sprintf("perimeter cell in row %d is not a wall", y)
		}
	}
	return ""
}
