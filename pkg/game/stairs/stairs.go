// Package stairs samples the run's stair cells, stamps them onto floors per the
// floor role table, resolves where the player appears, and times stair holds.
package stairs

import (
	"log"
	"math/rand"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/levelgen"
)

// Count limits for each stair kind.
const (
	MinCount = 1
	MaxCount = 5
)

// Counts is how many cells to sample per kind.
type Counts struct {
	Entrance int
	Mid      int
	Escape   int
}

// DefaultCounts is the stair layout used when none is configured.
var DefaultCounts = Counts{Entrance: 2, Mid: 2, Escape: 1}

// Clamped returns c with every count limited to [MinCount, MaxCount].
func (c Counts) Clamped() Counts {
	return Counts{
		Entrance: clampCount(c.Entrance),
		Mid:      clampCount(c.Mid),
		Escape:   clampCount(c.Escape),
	}
}

func clampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Cells holds the run's stair coordinates, shared by every floor.
type Cells struct {
	Entrance []world.Point
	Mid      []world.Point
	Escape   []world.Point
}

// Empty reports whether no stair cell has been generated yet.
func (c Cells) Empty() bool {
	return len(c.Entrance) == 0 && len(c.Mid) == 0 && len(c.Escape) == 0
}

// Of returns the cells of one kind.
func (c Cells) Of(kind floors.StairKind) []world.Point {
	switch kind {
	case floors.Entrance:
		return c.Entrance
	case floors.Mid:
		return c.Mid
	case floors.Escape:
		return c.Escape
	default:
		return nil
	}
}

// Clone returns a deep copy.
func (c Cells) Clone() Cells {
	return Cells{
		Entrance: append([]world.Point(nil), c.Entrance...),
		Mid:      append([]world.Point(nil), c.Mid...),
		Escape:   append([]world.Point(nil), c.Escape...),
	}
}

// Generate samples the stair cells for a new run. Cells are distinct across all
// kinds and never taken from blocked (chests, treasure). A kind ends up short
// when the sampler runs out of free floor.
func Generate(grid *world.Grid, counts Counts, blocked world.CellSet, rng *rand.Rand) Cells {
	counts = counts.Clamped()
	used := world.NewCellSet()
	blocked.Each(func(p world.Point) {
		used.Put(p)
	})

	pick := func(kind floors.StairKind, n int) []world.Point {
		var out []world.Point
		for len(out) < n {
			p, ok := levelgen.PickInnerFloorCell(grid, rng, &used)
			if !ok {
				log.Printf("stairs: generated %d of %d %s stairs", len(out), n, kind)
				break
			}
			used.Put(p)
			out = append(out, p)
		}
		return out
	}

	return Cells{
		Entrance: pick(floors.Entrance, counts.Entrance),
		Mid:      pick(floors.Mid, counts.Mid),
		Escape:   pick(floors.Escape, counts.Escape),
	}
}

// Tile is a stamped stair.
type Tile struct {
	Kind floors.StairKind
	Up   bool
}

// Layer maps stamped cells to their tiles.
type Layer map[world.Point]Tile

// Place stamps the floor's Down and Up roles onto grid, force-flooring each stair
// cell and its orthogonal neighbours before stamping.
func Place(floor int, grid *world.Grid, cells Cells) Layer {
	layer := make(Layer)
	roles := floors.Roles(floor)
	stamp := func(kind floors.StairKind, up bool) {
		if kind == floors.None {
			return
		}
		for _, p := range cells.Of(kind) {
			c := grid.ForceFloorAround(p)
			layer[c] = Tile{Kind: kind, Up: up}
		}
	}
	stamp(roles.Down, false)
	stamp(roles.Up, true)
	return layer
}
