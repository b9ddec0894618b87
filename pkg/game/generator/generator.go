// Package generator builds the wall/floor grid of a dungeon floor.
package generator

import (
	"math/rand"

	"cavedelve/pkg/engine/world"
)

// Params describes one generation request. Rand drives every random decision,
// so equal seeds give equal grids.
type Params struct {
	Width       int
	Height      int
	FillPercent int
	Rand        *rand.Rand
}

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(p Params) *world.Grid
	Name() string
}

// Available generators
var (
	Cave = &CaveGenerator{Passes: SmoothingPasses}
)

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = Cave
