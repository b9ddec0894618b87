package stairs

import (
	"math/rand"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
)

// DefaultSpawnOffset places the player one cell east of the spawn stair.
var DefaultSpawnOffset = world.Point{X: 1, Y: 0}

// Last is the most recently used stair. A None kind means nothing is recorded.
type Last struct {
	Cell world.Point
	Kind floors.StairKind
}

// Valid reports whether a stair has been recorded.
func (l Last) Valid() bool {
	return l.Kind != floors.None
}

// Spawn is where the player appears on a freshly loaded floor.
type Spawn struct {
	Stair    world.Point // stair cell the spawn is anchored to
	Position world.Point // player placement
}

// ResolveSpawn picks the spawn stair: the last used stair when recorded, otherwise a
// per-floor fallback (floor 1: a random escape stair, then the first entrance; floor 2:
// the first entrance; floor 3: the first mid stair; the grid center when a list is empty).
// The stair cell is force-floored with its neighbours; the offset placement alone
// is made floor.
func ResolveSpawn(floor int, grid *world.Grid, cells Cells, last Last, offset world.Point, rng *rand.Rand) Spawn {
	stair := fallbackStair(floor, grid, cells, last, rng)
	stair = grid.ForceFloorAround(stair)
	pos := grid.ClampPlayable(stair.Add(offset))
	grid.MakeFloor(pos)
	return Spawn{Stair: stair, Position: pos}
}

func fallbackStair(floor int, grid *world.Grid, cells Cells, last Last, rng *rand.Rand) world.Point {
	if last.Valid() {
		return last.Cell
	}
	switch floor {
	case 1:
		if len(cells.Escape) > 0 {
			return cells.Escape[rng.Intn(len(cells.Escape))]
		}
		if len(cells.Entrance) > 0 {
			return cells.Entrance[0]
		}
	case 2:
		if len(cells.Entrance) > 0 {
			return cells.Entrance[0]
		}
	default:
		if len(cells.Mid) > 0 {
			return cells.Mid[0]
		}
	}
	return grid.Center()
}
