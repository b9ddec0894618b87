// Package levelgen provides level generation utilities for placing entities.
package levelgen

import (
	"log"
	"math/rand"

	"cavedelve/pkg/engine/world"
)

// MaxPickAttempts bounds the rejection sampler for a single placement.
const MaxPickAttempts = 5000

// InnerMargin keeps sampled cells this many cells away from the map edge.
const InnerMargin = 2

// PickInnerFloorCell samples x in [2, width-3] and y in [2, height-3] until it finds a
// Floor cell not in avoid. Returns false once MaxPickAttempts draws are spent,
// or when the grid has no inner area. avoid may be nil.
func PickInnerFloorCell(grid *world.Grid, rng *rand.Rand, avoid *world.CellSet) (world.Point, bool) {
	minX, maxX := InnerMargin, grid.Width()-InnerMargin-1
	minY, maxY := InnerMargin, grid.Height()-InnerMargin-1
	if maxX <= minX || maxY <= minY {
		return world.Point{}, false
	}
	for i := 0; i < MaxPickAttempts; i++ {
		p := world.Pt(minX+rng.Intn(maxX-minX+1), minY+rng.Intn(maxY-minY+1))
		if !grid.IsFloor(p) {
			continue
		}
		if avoid != nil && avoid.Has(p) {
			continue
		}
		return p, true
	}
	return world.Point{}, false
}

// PlaceEnemies picks up to count enemy spawn points. Each chosen cell is added to avoid
// so later placements and other enemies never share it.
func PlaceEnemies(grid *world.Grid, count int, rng *rand.Rand, avoid *world.CellSet) []world.Point {
	if avoid == nil {
		s := world.NewCellSet()
		avoid = &s
	}
	var out []world.Point
	for i := 0; i < count; i++ {
		p, ok := PickInnerFloorCell(grid, rng, avoid)
		if !ok {
			log.Printf("levelgen: placed %d of %d enemies, no free floor left", len(out), count)
			break
		}
		avoid.Put(p)
		out = append(out, p)
	}
	return out
}

// PlaceTreasure picks a cell for the treasure and clears the floor around it.
func PlaceTreasure(grid *world.Grid, rng *rand.Rand, avoid *world.CellSet) (world.Point, bool) {
	if avoid == nil {
		s := world.NewCellSet()
		avoid = &s
	}
	p, ok := PickInnerFloorCell(grid, rng, avoid)
	if !ok {
		log.Printf("levelgen: no floor cell for treasure")
		return world.Point{}, false
	}
	p = grid.ForceFloorAround(p)
	avoid.Put(p)
	return p, true
}

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(a, b world.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// ReachableFloor returns all Floor cells reachable from start via N/E/S/W steps.
// Caves are not guaranteed to be connected, so this can be a small region.
func ReachableFloor(grid *world.Grid, start world.Point) world.CellSet {
	reachable := world.NewCellSet()
	if !grid.IsFloor(start) {
		return reachable
	}
	queue := []world.Point{start}
	reachable.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range world.Neighbours(current) {
			if grid.IsFloor(n) && !reachable.Has(n) {
				reachable.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return reachable
}
