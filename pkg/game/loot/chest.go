package loot

import (
	"log"
	"math/rand"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/levelgen"
)

// Chest is a lootable container on a floor. Chests are regenerated with the
// floor and never persisted; only their opened state is.
type Chest struct {
	Cell   world.Point
	Rarity Rarity
}

// PlaceChests scatters up to count chests on inner floor cells and rolls each one's
// rarity. Two chests never share a cell. When the sampler gives up, fewer chests are placed.
func PlaceChests(grid *world.Grid, count int, weights []Weight, rng *rand.Rand) []Chest {
	taken := world.NewCellSet()
	var chests []Chest
	for i := 0; i < count; i++ {
		cell, ok := levelgen.PickInnerFloorCell(grid, rng, &taken)
		if !ok {
			log.Printf("loot: placed %d of %d chests, no free floor left", len(chests), count)
			break
		}
		taken.Put(cell)
		chests = append(chests, Chest{Cell: cell, Rarity: RollRarity(weights, rng)})
	}
	return chests
}

// ChestCells returns the cells occupied by chests.
func ChestCells(chests []Chest) world.CellSet {
	s := world.NewCellSet()
	for _, c := range chests {
		s.Put(c.Cell)
	}
	return s
}
