package generator

import (
	"math/rand"
	"testing"

	"cavedelve/pkg/engine/world"
)

func generate(seed int64, w, h, fill int) *world.Grid {
	return DefaultGenerator.Generate(Params{
		Width:       w,
		Height:      h,
		FillPercent: fill,
		Rand:        rand.New(rand.NewSource(seed)),
	})
}

func TestCaveGenerate_Deterministic(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		a := generate(seed, 64, 64, 55)
		b := generate(seed, 64, 64, 55)
		if !a.Equal(b) {
			t.Errorf("seed %d: two generations differ", seed)
		}
	}
}

func TestCaveGenerate_DifferentSeedsDiffer(t *testing.T) {
	a := generate(1, 64, 64, 55)
	b := generate(1+10007, 64, 64, 55)
	if a.Equal(b) {
		t.Error("distinct seeds produced identical grids")
	}
}

func TestCaveGenerate_BorderAlwaysWall(t *testing.T) {
	for _, fill := range []int{0, 30, 55, 100} {
		for seed := int64(0); seed < 5; seed++ {
			g := generate(seed, 40, 25, fill)
			if msg := g.Validate(); msg != "" {
				t.Errorf("fill %d seed %d: %s", fill, seed, msg)
			}
		}
	}
}

func TestCaveGenerate_FillExtremes(t *testing.T) {
	full := generate(3, 30, 30, 100)
	if n := full.CountFloor(); n != 0 {
		t.Errorf("fill 100: CountFloor() = %d, want 0", n)
	}
	open := generate(3, 30, 30, 0)
	if !open.IsFloor(open.Center()) {
		t.Error("fill 0: center is not floor")
	}
}

func TestCaveGenerate_ProducesCaves(t *testing.T) {
	g := generate(42, 64, 64, 55)
	if g.Width() != 64 || g.Height() != 64 {
		t.Fatalf("size = %dx%d, want 64x64", g.Width(), g.Height())
	}
	floor := g.CountFloor()
	if floor == 0 || floor == 64*64 {
		t.Errorf("CountFloor() = %d, want a mix of walls and floor", floor)
	}
}

func TestCaveGenerate_TinyGrid(t *testing.T) {
	g := generate(1, 2, 2, 0)
	if g.CountFloor() != 0 {
		t.Errorf("2x2 grid has %d floor cells, want 0", g.CountFloor())
	}
}

func TestCaveGenerate_NilRand(t *testing.T) {
	a := Cave.Generate(Params{Width: 20, Height: 20, FillPercent: 45})
	b := Cave.Generate(Params{Width: 20, Height: 20, FillPercent: 45})
	if !a.Equal(b) {
		t.Error("nil Rand generations differ")
	}
}
