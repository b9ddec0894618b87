package gameplay

import (
	"errors"
	"fmt"
	"time"

	"github.com/leonelquinteros/gotext"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/stairs"
	"cavedelve/pkg/game/state"
)

// ChestResult describes what opening a chest did.
type ChestResult struct {
	// Opened is false when there was no unopened chest at the cell.
	Opened bool
	Rarity loot.Rarity
	// Item is set when the chest yielded something; otherwise it was empty.
	Item    loot.Item
	HasItem bool
}

// StairAction is the effect of a stair trigger.
type StairAction int

const (
	StairNone StairAction = iota
	StairMoved
	StairEscaped
	StairLocked
)

// StairOutcome describes what a stair trigger did.
type StairOutcome struct {
	Action StairAction
	Kind   floors.StairKind
	// Floor is the newly loaded floor after StairMoved.
	Floor *Floor
	// Escape is filled after StairEscaped.
	Escape EscapeResult
	// Remaining is how long the exit stays locked after StairLocked.
	Remaining time.Duration
}

func (s *Session) activeFloor() (*Floor, error) {
	if s.phase != state.Active {
		return nil, ErrNoRun
	}
	if s.floor == nil {
		return nil, ErrNoFloor
	}
	return s.floor, nil
}

// ChestAt returns the rarity of the unopened chest at p on the loaded floor.
func (s *Session) ChestAt(p world.Point) (loot.Rarity, bool) {
	if s.floor == nil {
		return loot.Common, false
	}
	c, ok := s.floor.ChestAt(p)
	if !ok || s.IsChestOpened(p) {
		return loot.Common, false
	}
	return c.Rarity, true
}

// IsChestOpened reports whether the chest at p on the current floor was opened this run.
func (s *Session) IsChestOpened(p world.Point) bool {
	return s.run.IsChestOpened(s.run.CurrentFloor, p)
}

// MarkChestOpened records the chest at p on the current floor as opened.
// Returns false when it already was; nothing is written then.
func (s *Session) MarkChestOpened(p world.Point) (bool, error) {
	if s.phase != state.Active {
		return false, ErrNoRun
	}
	if !s.run.MarkChestOpened(s.run.CurrentFloor, p) {
		return false, nil
	}
	return true, s.saveRun()
}

// DrawFromChest draws an item for a chest of the given rarity from the run's drop pool.
// Items the player already owns or carries burn the draw.
func (s *Session) DrawFromChest(rarity loot.Rarity) (loot.Item, bool, error) {
	if s.phase != state.Active {
		return loot.Item{}, false, ErrNoRun
	}
	before := len(s.run.RemainingDropIDs)
	id, ok := s.run.RemainingDropIDs.Draw(s.catalog, rarity, s.holds, s.rng)

	var err error
	if len(s.run.RemainingDropIDs) != before {
		err = s.saveRun()
	}
	if !ok {
		return loot.Item{}, false, err
	}
	it, _ := s.catalog.Find(id)
	return it, true, err
}

// holds reports whether id is owned permanently or carried in this run.
func (s *Session) holds(id string) bool {
	return s.progress.Owns(id) || s.run.Carries(id)
}

// AddPendingLoot reveals id in the encyclopedia, marks it discovered, and adds it to
// the loot that becomes permanent on escape.
func (s *Session) AddPendingLoot(id string) error {
	if s.phase != state.Active {
		return ErrNoRun
	}
	if !s.catalog.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	s.run.DiscoveredIDs.Put(id)
	s.run.PendingLoot = append(s.run.PendingLoot, id)
	var errs []error
	if s.encyclopedia.Unlock(id) {
		errs = append(errs, s.saveEncyclopedia())
	}
	errs = append(errs, s.saveRun())
	return errors.Join(errs...)
}

// OpenChest opens the chest at p: marks it opened, draws an item, and adds the item
// to pending loot. A chest opens at most once per run.
func (s *Session) OpenChest(p world.Point) (ChestResult, error) {
	if _, err := s.activeFloor(); err != nil {
		return ChestResult{}, err
	}
	rarity, ok := s.ChestAt(p)
	if !ok {
		return ChestResult{}, nil
	}
	res := ChestResult{Opened: true, Rarity: rarity}

	var errs []error
	if _, err := s.MarkChestOpened(p); err != nil {
		errs = append(errs, err)
	}
	it, got, err := s.DrawFromChest(rarity)
	errs = append(errs, err)
	if !got {
		s.logMessage(fmt.Sprintf(gotext.Get("MSG_CHEST_EMPTY"), rarity.String()))
		return res, errors.Join(errs...)
	}
	res.Item = it
	res.HasItem = true
	errs = append(errs, s.AddPendingLoot(it.ID))
	s.logMessage(fmt.Sprintf(gotext.Get("MSG_CHEST_ITEM"), it.Name, rarity.String()))
	return res, errors.Join(errs...)
}

// OpenNearbyChest opens the first unopened chest on p or one of its orthogonal
// neighbours, checked in that order.
func (s *Session) OpenNearbyChest(p world.Point) (ChestResult, error) {
	for _, c := range append([]world.Point{p}, world.Neighbours(p)...) {
		if _, ok := s.ChestAt(c); ok {
			return s.OpenChest(c)
		}
	}
	return ChestResult{}, nil
}

// StairAt returns the stair tile at p on the loaded floor.
func (s *Session) StairAt(p world.Point) (stairs.Tile, bool) {
	if s.floor == nil {
		return stairs.Tile{}, false
	}
	t, ok := s.floor.Stairs[p]
	return t, ok
}

// TriggerStair applies the stair at p: records it as the last stair, then moves to
// the floor it leads to, or escapes the dungeon. The exit stays shut until the run
// timer reaches the escape lock.
func (s *Session) TriggerStair(p world.Point) (StairOutcome, error) {
	if _, err := s.activeFloor(); err != nil {
		return StairOutcome{}, err
	}
	tile, ok := s.StairAt(p)
	if !ok {
		return StairOutcome{}, nil
	}
	kind, target, escape := floors.Transition(s.run.CurrentFloor, tile.Up)
	if kind == floors.None {
		return StairOutcome{}, nil
	}

	if escape {
		if s.run.Timer < s.cfg.EscapeLock {
			remaining := s.cfg.EscapeLock - s.run.Timer
			s.logMessage(fmt.Sprintf(gotext.Get("MSG_ESCAPE_LOCKED"), remaining.Seconds()))
			return StairOutcome{Action: StairLocked, Kind: kind, Remaining: remaining}, nil
		}
		s.run.LastStair = stairs.Last{Cell: p, Kind: kind}
		err := s.saveRun()
		res, escErr := s.OnEscapeSuccess()
		return StairOutcome{Action: StairEscaped, Kind: kind, Escape: res}, errors.Join(err, escErr)
	}

	s.run.LastStair = stairs.Last{Cell: p, Kind: kind}
	err := s.saveRun()
	if _, _, cerr := s.ChangeFloor(target - s.run.CurrentFloor); cerr != nil {
		return StairOutcome{}, errors.Join(err, cerr)
	}
	f, lerr := s.LoadFloor()
	return StairOutcome{Action: StairMoved, Kind: kind, Floor: f}, errors.Join(err, lerr)
}

// UpdateStairHold reports the player's cell for one frame. Holding a stair for the
// configured time triggers it once; a locked exit restarts the hold.
func (s *Session) UpdateStairHold(p world.Point, dt time.Duration) (StairOutcome, error) {
	if _, err := s.activeFloor(); err != nil {
		return StairOutcome{}, err
	}
	_, onStair := s.StairAt(p)
	if !s.stairHold.Update(p, onStair, dt) {
		return StairOutcome{}, nil
	}
	out, err := s.TriggerStair(p)
	if out.Action == StairLocked {
		s.stairHold.Rearm()
	}
	return out, err
}

// UpdateTreasureHold reports the player's cell for one frame. Holding the treasure
// cell for the configured time picks it up. Returns true on pickup.
func (s *Session) UpdateTreasureHold(p world.Point, dt time.Duration) (bool, error) {
	f, err := s.activeFloor()
	if err != nil {
		return false, err
	}
	if !f.HasTreasure {
		return false, nil
	}
	if !s.treasureHold.Update(p, p == f.Treasure, dt) {
		return false, nil
	}
	return true, s.PickUpTreasure()
}

// PickUpTreasure takes the floor's treasure into the run.
func (s *Session) PickUpTreasure() error {
	f, err := s.activeFloor()
	if err != nil {
		return err
	}
	if !f.HasTreasure {
		return nil
	}
	f.HasTreasure = false
	s.run.HasTreasure = true
	s.run.TreasurePicked = true
	s.logMessage(gotext.Get("MSG_TREASURE"))
	return s.saveRun()
}
