package gameplay

import (
	"testing"
	"time"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/state"
)

func TestOpenChest_OnlyOnce(t *testing.T) {
	store := &memStore{}
	s := startRun(t, testConfig(), store)
	f := s.Floor()
	if len(f.Chests) == 0 {
		t.Fatal("floor has no chests")
	}
	cell := f.Chests[0].Cell
	poolBefore := len(s.Run().RemainingDropIDs)

	res, err := s.OpenChest(cell)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Opened || res.Rarity != f.Chests[0].Rarity {
		t.Fatalf("first open = %+v", res)
	}
	if !s.IsChestOpened(cell) {
		t.Error("chest not marked opened")
	}
	if res.HasItem {
		if len(s.Run().PendingLoot) != 1 || s.Run().PendingLoot[0] != res.Item.ID {
			t.Errorf("PendingLoot = %v", s.Run().PendingLoot)
		}
		if !s.Encyclopedia().IsUnlocked(res.Item.ID) || !s.Run().DiscoveredIDs.Has(res.Item.ID) {
			t.Error("drawn item not revealed")
		}
		if len(s.Run().RemainingDropIDs) != poolBefore-1 {
			t.Errorf("pool shrank from %d to %d", poolBefore, len(s.Run().RemainingDropIDs))
		}
	}

	again, err := s.OpenChest(cell)
	if err != nil {
		t.Fatal(err)
	}
	if again.Opened {
		t.Error("chest opened twice")
	}
	if _, ok := s.ChestAt(cell); ok {
		t.Error("opened chest still interactable")
	}

	goToFloor(t, s, 2)
	goToFloor(t, s, 1)
	if _, ok := s.Floor().ChestAt(cell); !ok {
		t.Error("chest missing after regeneration")
	}
	if _, ok := s.ChestAt(cell); ok {
		t.Error("opened chest interactable after regeneration")
	}
}

func TestOpenChest_NoChest(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	res, err := s.OpenChest(world.Pt(0, 0))
	if err != nil || res.Opened {
		t.Errorf("OpenChest on a wall = %+v, %v", res, err)
	}
}

func TestOpenNearbyChest(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	cell := s.Floor().Chests[0].Cell
	from := cell.Add(world.Pt(-1, 0))
	res, err := s.OpenNearbyChest(from)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Opened {
		t.Fatalf("neighbouring chest not opened: %+v", res)
	}
	opened := 0
	for _, c := range append([]world.Point{from}, world.Neighbours(from)...) {
		if s.IsChestOpened(c) {
			opened++
		}
	}
	if opened != 1 {
		t.Errorf("%d chests opened around %v, want 1", opened, from)
	}

	far, err := s.OpenNearbyChest(world.Pt(0, 0))
	if err != nil || far.Opened {
		t.Errorf("OpenNearbyChest in a corner = %+v, %v", far, err)
	}
}

func TestMarkChestOpened_Idempotent(t *testing.T) {
	store := &memStore{}
	s := startRun(t, testConfig(), store)
	p := world.Pt(5, 5)
	if ok, _ := s.MarkChestOpened(p); !ok {
		t.Fatal("first mark returned false")
	}
	writes := store.runWrites
	if ok, _ := s.MarkChestOpened(p); ok {
		t.Error("second mark returned true")
	}
	if store.runWrites != writes {
		t.Error("repeated mark wrote the run")
	}
	if s.Run().OpenedChests[1].Size() != 1 {
		t.Error("opened set grew on repeat")
	}
}

func TestDrawFromChest_NoEligibleItems(t *testing.T) {
	cat := loot.NewCatalog([]loot.Item{{ID: "a", Rarity: loot.Common}, {ID: "b", Rarity: loot.Rare}})
	s := NewSession(testConfig(), cat, &memStore{})
	s.NewGame()
	before := len(s.Run().RemainingDropIDs)
	if _, ok, _ := s.DrawFromChest(loot.Legendary); ok {
		t.Error("legendary chest yielded an item")
	}
	if len(s.Run().RemainingDropIDs) != before {
		t.Error("pool changed without an eligible item")
	}
	it, ok, _ := s.DrawFromChest(loot.Uncommon)
	if !ok || it.ID != "b" {
		t.Errorf("uncommon chest drew %+v, %v; want b", it, ok)
	}
}

func TestDrawFromChest_HeldItemBurned(t *testing.T) {
	cfg := testConfig()
	cfg.StartingOwnedIDs = []string{"a"}
	cat := loot.NewCatalog([]loot.Item{{ID: "a", Rarity: loot.Epic}})
	s := NewSession(cfg, cat, &memStore{})
	s.NewGame()
	if _, ok, _ := s.DrawFromChest(loot.Common); ok {
		t.Error("drew an item the player owns")
	}
	if len(s.Run().RemainingDropIDs) != 0 {
		t.Error("owned item left in the pool")
	}
}

func TestAddPendingLoot_Unknown(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	if err := s.AddPendingLoot("ghost"); err == nil {
		t.Error("AddPendingLoot accepted an unknown id")
	}
}

func TestTriggerStair_DownAndBack(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	entrance := s.Run().Stairs.Entrance[0]

	out, err := s.TriggerStair(entrance)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != StairMoved || out.Kind != floors.Entrance || out.Floor.Number != 2 {
		t.Fatalf("down outcome = %+v", out)
	}
	if last := s.Run().LastStair; last.Cell != entrance || last.Kind != floors.Entrance {
		t.Errorf("LastStair = %+v", last)
	}
	if out.Floor.Spawn.Stair != entrance {
		t.Errorf("spawned at %v, want %v", out.Floor.Spawn.Stair, entrance)
	}
	tile, ok := s.StairAt(entrance)
	if !ok || !tile.Up {
		t.Fatalf("floor 2 tile at entrance = %+v, %v", tile, ok)
	}

	back, err := s.TriggerStair(entrance)
	if err != nil {
		t.Fatal(err)
	}
	if back.Action != StairMoved || back.Floor.Number != 1 {
		t.Errorf("up outcome = %+v", back)
	}
}

func TestTriggerStair_NotAStair(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	out, err := s.TriggerStair(world.Pt(0, 0))
	if err != nil || out.Action != StairNone {
		t.Errorf("TriggerStair on a wall = %+v, %v", out, err)
	}
}

func TestTriggerStair_EscapeLocked(t *testing.T) {
	store := &memStore{}
	s := startRun(t, testConfig(), store)
	exit := s.Run().Stairs.Escape[0]

	s.Tick(4 * time.Second)
	out, err := s.TriggerStair(exit)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != StairLocked || out.Remaining != time.Second {
		t.Errorf("outcome = %+v, want locked with 1s left", out)
	}
	if s.Phase() != state.Active || s.Run().LastStair.Valid() {
		t.Error("locked exit changed the run")
	}

	s.Tick(time.Second)
	out, err = s.TriggerStair(exit)
	if err != nil {
		t.Fatal(err)
	}
	if out.Action != StairEscaped || out.Escape.Cleared {
		t.Errorf("outcome = %+v, want an escape without treasure", out)
	}
	if store.HasRun() {
		t.Error("run survived the escape")
	}
}

func TestUpdateStairHold_LockedExitRearms(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	exit := s.Run().Stairs.Escape[0]
	const frame = 100 * time.Millisecond

	locked, escaped := 0, false
	for i := 1; i <= 100 && !escaped; i++ {
		s.Tick(frame)
		out, err := s.UpdateStairHold(exit, frame)
		if err != nil {
			t.Fatal(err)
		}
		switch out.Action {
		case StairLocked:
			locked++
		case StairEscaped:
			escaped = true
			if i != 61 {
				t.Errorf("escaped on frame %d, want 61", i)
			}
		}
	}
	if locked != 2 || !escaped {
		t.Errorf("locked %d times, escaped %v; want 2 and true", locked, escaped)
	}
}

func TestUpdateStairHold_SteppingOffResets(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	entrance := s.Run().Stairs.Entrance[0]
	const frame = 100 * time.Millisecond

	s.UpdateStairHold(entrance, frame)
	for i := 0; i < 15; i++ {
		s.UpdateStairHold(entrance, frame)
	}
	s.UpdateStairHold(entrance.Add(world.Pt(1, 0)), frame)
	for i := 0; i < 15; i++ {
		out, _ := s.UpdateStairHold(entrance, frame)
		if out.Action != StairNone {
			t.Fatal("stair fired without a full renewed hold")
		}
	}
	if s.Run().CurrentFloor != 1 {
		t.Error("floor changed")
	}
}

func TestUpdateTreasureHold(t *testing.T) {
	s := startRun(t, testConfig(), &memStore{})
	f := goToFloor(t, s, 3)
	if !f.HasTreasure {
		t.Fatal("no treasure")
	}
	const frame = 100 * time.Millisecond
	picked := false
	for i := 0; i < 11; i++ {
		ok, err := s.UpdateTreasureHold(f.Treasure, frame)
		if err != nil {
			t.Fatal(err)
		}
		picked = picked || ok
	}
	if !picked || !s.Run().HasTreasure || !s.Run().TreasurePicked || f.HasTreasure {
		t.Error("treasure not picked up after holding for a second")
	}
}
