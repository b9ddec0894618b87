package stairs

import (
	"math/rand"
	"testing"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
)

func TestResolveSpawn_LastStairWins(t *testing.T) {
	g := world.NewGrid(20, 20)
	cells := Cells{Entrance: []world.Point{world.Pt(5, 5)}, Mid: []world.Point{world.Pt(8, 8)}}
	last := Last{Cell: world.Pt(12, 7), Kind: floors.Mid}
	s := ResolveSpawn(3, g, cells, last, DefaultSpawnOffset, rand.New(rand.NewSource(1)))
	if s.Stair != world.Pt(12, 7) {
		t.Errorf("stair = %v, want (12,7)", s.Stair)
	}
	if s.Position != world.Pt(13, 7) {
		t.Errorf("position = %v, want (13,7)", s.Position)
	}
	if !g.IsFloor(s.Stair) || !g.IsFloor(s.Position) {
		t.Error("spawn cells not floored")
	}
}

func TestResolveSpawn_FloorsOnlyPlacementCell(t *testing.T) {
	g := world.NewGrid(20, 20)
	last := Last{Cell: world.Pt(5, 5), Kind: floors.Entrance}
	s := ResolveSpawn(2, g, Cells{}, last, world.Pt(2, 0), rand.New(rand.NewSource(1)))
	if s.Position != world.Pt(7, 5) || !g.IsFloor(s.Position) {
		t.Fatalf("position = %v floor=%v, want floored (7,5)", s.Position, g.IsFloor(s.Position))
	}
	for _, p := range []world.Point{world.Pt(8, 5), world.Pt(7, 4), world.Pt(7, 6)} {
		if g.IsFloor(p) {
			t.Errorf("%v next to the placement was floored", p)
		}
	}
}

func TestResolveSpawn_Fallbacks(t *testing.T) {
	full := Cells{
		Entrance: []world.Point{world.Pt(3, 3), world.Pt(4, 4)},
		Mid:      []world.Point{world.Pt(6, 6), world.Pt(7, 7)},
		Escape:   []world.Point{world.Pt(9, 9)},
	}
	noEscape := Cells{Entrance: full.Entrance, Mid: full.Mid}
	tests := []struct {
		name  string
		floor int
		cells Cells
		want  world.Point
	}{
		{"floor1 escape", 1, full, world.Pt(9, 9)},
		{"floor1 entrance", 1, noEscape, world.Pt(3, 3)},
		{"floor1 center", 1, Cells{}, world.Pt(10, 10)},
		{"floor2 entrance", 2, full, world.Pt(3, 3)},
		{"floor2 center", 2, Cells{Mid: full.Mid}, world.Pt(10, 10)},
		{"floor3 mid", 3, full, world.Pt(6, 6)},
		{"floor3 center", 3, Cells{Entrance: full.Entrance}, world.Pt(10, 10)},
	}
	for _, tt := range tests {
		g := world.NewGrid(20, 20)
		s := ResolveSpawn(tt.floor, g, tt.cells, Last{}, DefaultSpawnOffset, rand.New(rand.NewSource(1)))
		if s.Stair != tt.want {
			t.Errorf("%s: stair = %v, want %v", tt.name, s.Stair, tt.want)
		}
	}
}

func TestResolveSpawn_ClampsPlacement(t *testing.T) {
	g := world.NewGrid(10, 10)
	last := Last{Cell: world.Pt(8, 4), Kind: floors.Entrance}
	s := ResolveSpawn(2, g, Cells{}, last, world.Pt(5, 0), rand.New(rand.NewSource(1)))
	if s.Position != world.Pt(8, 4) {
		t.Errorf("position = %v, want clamped (8,4)", s.Position)
	}
	if msg := g.Validate(); msg != "" {
		t.Errorf("perimeter broken: %s", msg)
	}
}

func TestLast_Valid(t *testing.T) {
	if (Last{}).Valid() {
		t.Error("zero Last is valid")
	}
	if !(Last{Kind: floors.Escape}).Valid() {
		t.Error("escape Last is not valid")
	}
}
