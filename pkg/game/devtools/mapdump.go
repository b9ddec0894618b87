// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/gameplay"
	"cavedelve/pkg/game/levelgen"
	"cavedelve/pkg/game/stairs"
)

const mapDumpFilename = "map.txt"

// cellSymbol returns the single-character symbol for a cell (no player overlay).
func cellSymbol(s *gameplay.Session, f *gameplay.Floor, p world.Point, enemies world.CellSet) rune {
	if f.HasTreasure && f.Treasure == p {
		return '$'
	}
	if tile, ok := f.Stairs[p]; ok {
		switch {
		case tile.Kind == floors.Escape:
			return 'X'
		case tile.Up:
			return '<'
		default:
			return '>'
		}
	}
	if _, ok := f.ChestAt(p); ok {
		if s.IsChestOpened(p) {
			return 'c'
		}
		return 'C'
	}
	if enemies.Has(p) {
		return 'e'
	}
	if f.Grid.IsFloor(p) {
		return '.'
	}
	return '#'
}

// writeMapGrid writes the grid with the player overlay. Cells outside reachable are
// shown as '~' when reachable is non-nil.
func writeMapGrid(w io.Writer, s *gameplay.Session, f *gameplay.Floor, player world.Point, reachable *world.CellSet) {
	enemies := world.NewCellSet(f.Enemies...)
	for y := 0; y < f.Grid.Height(); y++ {
		for x := 0; x < f.Grid.Width(); x++ {
			p := world.Pt(x, y)
			switch {
			case p == player:
				fmt.Fprint(w, "@")
			case reachable != nil && f.Grid.IsFloor(p) && !reachable.Has(p):
				fmt.Fprint(w, "~")
			default:
				fmt.Fprintf(w, "%c", cellSymbol(s, f, p, enemies))
			}
		}
		fmt.Fprintln(w)
	}
}

func stairKindName(t stairs.Tile) string {
	dir := "down"
	if t.Up {
		dir = "up"
	}
	return t.Kind.String() + "_" + dir
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ",")
}

// WriteFloorDump writes a full debug dump of the loaded floor: metadata, legend,
// the full map, the map with unreachable floor marked, and entity and pool lists.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func WriteFloorDump(w io.Writer, s *gameplay.Session, player world.Point) error {
	f := s.Floor()
	if f == nil {
		return gameplay.ErrNoFloor
	}
	run := s.Run()
	reachable := levelgen.ReachableFloor(f.Grid, f.Spawn.Position)

	bw := bufio.NewWriter(w)

	// --- Metadata ---
	fmt.Fprintln(bw, "=== MAP DUMP DEBUG (floor layout, stairs, chests, pools) ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "run_id: %s\n", run.ID)
	fmt.Fprintf(bw, "phase: %s\n", s.Phase())
	fmt.Fprintf(bw, "floor: %d\n", f.Number)
	fmt.Fprintf(bw, "floor_name: %s\n", floors.Name(f.Number))
	fmt.Fprintf(bw, "base_seed: %d\n", run.Seed)
	fmt.Fprintf(bw, "floor_seed: %d\n", f.Seed)
	fmt.Fprintf(bw, "grid_width: %d\n", f.Grid.Width())
	fmt.Fprintf(bw, "grid_height: %d\n", f.Grid.Height())
	fmt.Fprintf(bw, "coordinate_system: x,y (0-based, x=horizontal, y=vertical, north is y-1)\n")
	fmt.Fprintf(bw, "floor_cells: %d\n", f.Grid.CountFloor())
	fmt.Fprintf(bw, "reachable_from_spawn: %d\n", reachable.Size())
	fmt.Fprintf(bw, "player_cell: %s\n", player)
	fmt.Fprintf(bw, "spawn_stair: %s\n", f.Spawn.Stair)
	fmt.Fprintf(bw, "spawn_position: %s\n", f.Spawn.Position)
	fmt.Fprintf(bw, "last_stair: %s %s\n", run.LastStair.Kind, run.LastStair.Cell)
	fmt.Fprintf(bw, "timer_seconds: %.1f\n", run.Timer.Seconds())
	fmt.Fprintf(bw, "has_treasure: %v\n", run.HasTreasure)
	fmt.Fprintf(bw, "death_count: %d\n", s.Progress().DeathCount)
	fmt.Fprintln(bw, "")

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (cell symbols) ---")
	fmt.Fprintln(bw, ". = floor  # = wall  C = chest  c = opened chest  > = stair down  < = stair up  X = escape stair  $ = treasure  e = enemy spawn  @ = player  ~ = floor unreachable from spawn")
	fmt.Fprintln(bw, "")

	// --- Map: full ---
	fmt.Fprintln(bw, "--- Map (full layout) ---")
	writeMapGrid(bw, s, f, player, nil)
	fmt.Fprintln(bw, "")

	// --- Map: reachability ---
	fmt.Fprintln(bw, "--- Map (reachability from spawn) ---")
	writeMapGrid(bw, s, f, player, &reachable)
	fmt.Fprintln(bw, "")

	// --- Chests ---
	fmt.Fprintln(bw, "Chests:")
	for _, c := range f.Chests {
		fmt.Fprintf(bw, "  x: %d y: %d rarity: %s opened: %v reachable: %v\n", c.Cell.X, c.Cell.Y, c.Rarity, s.IsChestOpened(c.Cell), reachable.Has(c.Cell))
	}
	fmt.Fprintln(bw, "")

	// --- Stairs ---
	fmt.Fprintln(bw, "Stairs:")
	stairCells := world.NewCellSet()
	for p := range f.Stairs {
		stairCells.Put(p)
	}
	for _, p := range world.SortedPoints(stairCells) {
		fmt.Fprintf(bw, "  x: %d y: %d stair: %s reachable: %v spawn_distance: %d\n",
			p.X, p.Y, stairKindName(f.Stairs[p]), reachable.Has(p), levelgen.ManhattanDistance(f.Spawn.Position, p))
	}
	fmt.Fprintln(bw, "")

	// --- Enemies ---
	fmt.Fprintln(bw, "Enemy spawns:")
	for _, e := range f.Enemies {
		fmt.Fprintf(bw, "  x: %d y: %d\n", e.X, e.Y)
	}
	fmt.Fprintln(bw, "")

	// --- Treasure ---
	fmt.Fprintln(bw, "Treasure:")
	if f.HasTreasure {
		fmt.Fprintf(bw, "  x: %d y: %d reachable: %v\n", f.Treasure.X, f.Treasure.Y, reachable.Has(f.Treasure))
	} else {
		fmt.Fprintln(bw, "  (none)")
	}
	fmt.Fprintln(bw, "")

	// --- Pools ---
	discovered := make([]string, 0, run.DiscoveredIDs.Size())
	run.DiscoveredIDs.Each(func(id string) {
		discovered = append(discovered, id)
	})
	sort.Strings(discovered)

	fmt.Fprintln(bw, "Pools:")
	fmt.Fprintf(bw, "  candidates: %s\n", joinIDs(run.CandidateIDs))
	fmt.Fprintf(bw, "  remaining_drops: %s\n", joinIDs(run.RemainingDropIDs))
	fmt.Fprintf(bw, "  discovered: %s\n", joinIDs(discovered))
	fmt.Fprintf(bw, "  loadout: %s\n", joinIDs(run.Loadout))
	fmt.Fprintf(bw, "  pending_loot: %s\n", joinIDs(run.PendingLoot))
	fmt.Fprintf(bw, "  owned: %s\n", joinIDs(s.Progress().Owned()))

	return bw.Flush()
}

// DumpFloorToFile writes WriteFloorDump output to map.txt in dir and returns its path.
func DumpFloorToFile(s *gameplay.Session, player world.Point, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteFloorDump(f, s, player); err != nil {
		return "", fmt.Errorf("dump floor: %w", err)
	}
	return absPath, nil
}
