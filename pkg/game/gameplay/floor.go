package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/generator"
	"cavedelve/pkg/game/levelgen"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/stairs"
	"cavedelve/pkg/game/state"
)

// Floor is one generated floor, rebuilt from its seed on every load.
type Floor struct {
	Number int
	Seed   int64
	Grid   *world.Grid

	Chests  []loot.Chest
	Stairs  stairs.Layer
	Enemies []world.Point

	// Treasure is only meaningful when HasTreasure is set.
	Treasure    world.Point
	HasTreasure bool

	Spawn stairs.Spawn

	// HealOnEnter is set on the first load after a loadout is confirmed.
	HealOnEnter bool
}

// ChestAt returns the chest on cell p, opened or not.
func (f *Floor) ChestAt(p world.Point) (loot.Chest, bool) {
	for _, c := range f.Chests {
		if c.Cell == p {
			return c, true
		}
	}
	return loot.Chest{}, false
}

// LoadFloor generates the current floor from its seed: grid, chests, enemy spawn
// points, the treasure on the final floor, stairs, and the spawn point. The result
// replaces the loaded floor only once complete. Reloading a floor within a run
// reproduces the same layout.
func (s *Session) LoadFloor() (*Floor, error) {
	if s.phase != state.Active {
		return nil, ErrNoRun
	}
	run := s.run
	if run.Seed == 0 {
		run.SeedFloors(s.newBaseSeed())
	}

	num := run.CurrentFloor
	seed := run.FloorSeed(num)
	rng := rand.New(rand.NewSource(seed))

	grid := generator.DefaultGenerator.Generate(generator.Params{
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		FillPercent: s.cfg.FillPercent,
		Rand:        rng,
	})
	f := &Floor{Number: num, Seed: seed, Grid: grid}

	f.Chests = loot.PlaceChests(grid, s.cfg.ChestCount, s.cfg.Weights(), rng)
	blocked := loot.ChestCells(f.Chests)

	enemyAvoid := loot.ChestCells(f.Chests)
	f.Enemies = levelgen.PlaceEnemies(grid, s.cfg.EnemyCount, rng, &enemyAvoid)

	if floors.IsFinalFloor(num, run.MaxFloor) && !run.HasTreasure {
		treasureAvoid := loot.ChestCells(f.Chests)
		for _, kind := range []floors.StairKind{floors.Entrance, floors.Mid, floors.Escape} {
			for _, p := range run.Stairs.Of(kind) {
				treasureAvoid.Put(p)
			}
		}
		if p, ok := levelgen.PlaceTreasure(grid, rng, &treasureAvoid); ok {
			f.Treasure = p
			f.HasTreasure = true
			blocked.Put(p)
		}
	}

	if num == floors.FirstFloor && run.Stairs.Empty() {
		run.Stairs = stairs.Generate(grid, s.cfg.StairCounts(), blocked, rng)
	}
	f.Stairs = stairs.Place(num, grid, run.Stairs)
	f.Spawn = stairs.ResolveSpawn(num, grid, run.Stairs, run.LastStair, s.cfg.SpawnOffset(), rng)

	if run.HealOnEnter {
		f.HealOnEnter = true
		run.HealOnEnter = false
	}

	s.floor = f
	s.resetHolds()
	s.logMessage(fmt.Sprintf(gotext.Get("MSG_ENTER_FLOOR"), floors.Name(num)))
	return f, s.saveRun()
}
