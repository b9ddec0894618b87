package levelgen

import (
	"math/rand"
	"testing"

	"cavedelve/pkg/engine/world"
)

// openGrid returns a grid whose playable area is all floor.
func openGrid(w, h int) *world.Grid {
	g := world.NewGrid(w, h)
	g.ForEachCell(func(p world.Point, _ world.CellState) {
		g.MakeFloor(p)
	})
	return g
}

func TestPickInnerFloorCell_StaysInside(t *testing.T) {
	g := openGrid(12, 9)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p, ok := PickInnerFloorCell(g, rng, nil)
		if !ok {
			t.Fatal("PickInnerFloorCell failed on an open grid")
		}
		if p.X < 2 || p.X > 9 || p.Y < 2 || p.Y > 6 {
			t.Fatalf("picked %v outside [2,9]x[2,6]", p)
		}
	}
}

func TestPickInnerFloorCell_AllWalls(t *testing.T) {
	g := world.NewGrid(10, 10)
	if _, ok := PickInnerFloorCell(g, rand.New(rand.NewSource(1)), nil); ok {
		t.Error("PickInnerFloorCell succeeded on a solid grid")
	}
}

func TestPickInnerFloorCell_TooSmall(t *testing.T) {
	g := openGrid(5, 5)
	if _, ok := PickInnerFloorCell(g, rand.New(rand.NewSource(1)), nil); ok {
		t.Error("PickInnerFloorCell succeeded on a grid without inner area")
	}
}

func TestPlaceEnemies_DistinctAndAvoiding(t *testing.T) {
	g := openGrid(8, 8)
	blocked := world.Pt(3, 3)
	avoid := world.NewCellSet(blocked)
	enemies := PlaceEnemies(g, 100, rand.New(rand.NewSource(7)), &avoid)
	// inner area is 4x4 = 16 cells, one blocked
	if len(enemies) != 15 {
		t.Errorf("placed %d enemies, want 15", len(enemies))
	}
	seen := world.NewCellSet()
	for _, e := range enemies {
		if e == blocked {
			t.Errorf("enemy placed on blocked cell %v", e)
		}
		if seen.Has(e) {
			t.Errorf("enemy placed twice on %v", e)
		}
		seen.Put(e)
	}
}

func TestPlaceTreasure_ClearsSurroundings(t *testing.T) {
	g := world.NewGrid(10, 10)
	g.Set(world.Pt(5, 5), world.Floor)
	avoid := world.NewCellSet()
	p, ok := PlaceTreasure(g, rand.New(rand.NewSource(3)), &avoid)
	if !ok {
		t.Fatal("PlaceTreasure failed")
	}
	if p != world.Pt(5, 5) {
		t.Fatalf("treasure at %v, want (5,5)", p)
	}
	for _, n := range world.Neighbours(p) {
		if !g.IsFloor(n) {
			t.Errorf("neighbour %v of treasure is not floor", n)
		}
	}
	if !avoid.Has(p) {
		t.Error("treasure cell not added to avoid set")
	}
}

func TestReachableFloor(t *testing.T) {
	g := world.NewGrid(7, 5)
	for _, p := range []world.Point{world.Pt(1, 1), world.Pt(2, 1), world.Pt(2, 2), world.Pt(5, 3)} {
		g.Set(p, world.Floor)
	}
	r := ReachableFloor(g, world.Pt(1, 1))
	if r.Size() != 3 {
		t.Errorf("ReachableFloor size = %d, want 3", r.Size())
	}
	if r.Has(world.Pt(5, 3)) {
		t.Error("disconnected cell reported reachable")
	}
	if ReachableFloor(g, world.Pt(0, 0)).Size() != 0 {
		t.Error("reachable set from a wall is not empty")
	}
}

func TestManhattanDistance(t *testing.T) {
	if got := ManhattanDistance(world.Pt(1, 5), world.Pt(4, 1)); got != 7 {
		t.Errorf("ManhattanDistance = %d, want 7", got)
	}
}
