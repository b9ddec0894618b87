package generator

import (
	"math/rand"

	"cavedelve/pkg/engine/world"
)

// SmoothingPasses is the number of cellular-automaton passes applied by default.
const SmoothingPasses = 5

// wallThreshold: a cell with more wall neighbours than this becomes a wall.
const wallThreshold = 4

// CaveGenerator fills the interior with random walls and then smooths it with
// a Moore-neighbourhood cellular automaton. Regions are not guaranteed to connect.
type CaveGenerator struct {
	Passes int
}

// Name returns the generator name
func (c *CaveGenerator) Name() string {
	return "Cave"
}

// Generate builds a new grid. The outer ring is always Wall.
func (c *CaveGenerator) Generate(p Params) *world.Grid {
	width, height := p.Width, p.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	rng := p.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	grid := world.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pt := world.Pt(x, y)
			if grid.IsOnPerimeter(pt) {
				continue
			}
			if rng.Intn(100) >= p.FillPercent {
				grid.Set(pt, world.Floor)
			}
		}
	}

	for i := 0; i < c.Passes; i++ {
		grid = smooth(grid)
	}

	if err := grid.Validate(); err != "" {
		panic("Generated invalid grid: " + err)
	}
	return grid
}

// smooth applies one automaton pass into a fresh buffer.
// Perimeter cells always have at least five wall neighbours, so they stay walls.
func smooth(src *world.Grid) *world.Grid {
	dst := world.NewGrid(src.Width(), src.Height())
	src.ForEachCell(func(p world.Point, _ world.CellState) {
		if src.WallNeighbours(p) <= wallThreshold {
			dst.Set(p, world.Floor)
		}
	})
	return dst
}
