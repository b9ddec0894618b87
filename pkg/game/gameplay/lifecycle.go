package gameplay

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/leonelquinteros/gotext"

	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/state"
)

// EscapeResult summarises a successful escape.
type EscapeResult struct {
	// Cleared is true when the treasure was carried out.
	Cleared   bool
	PlayTime  time.Duration
	Committed []string
}

// DeathOutcome summarises a death.
type DeathOutcome struct {
	Deaths int
	Limit  int
	// Reset is true when the death limit wiped progress.
	Reset bool
}

// LoadoutSlot is one candidate item offered before a dive.
type LoadoutSlot struct {
	Item     loot.Item
	Owned    bool
	Revealed bool
}

// CanContinue reports whether a saved run exists.
func (s *Session) CanContinue() bool {
	return s.store.HasRun()
}

// NewGame wipes progress and the saved run, keeps the encyclopedia, grants the
// starting bonus again, and starts a fresh run on floor 1.
func (s *Session) NewGame() error {
	err := s.fullReset()
	s.beginRun()
	s.phase = state.Active
	s.messages.ClearMessages()
	s.logMessage(gotext.Get("MSG_NEW_GAME"))
	return errors.Join(err, s.saveProgress(), s.saveRun())
}

// ContinueGame resumes the saved run with its timer running from the saved value.
// Saves written before candidate pools existed get a freshly drawn pool.
func (s *Session) ContinueGame() error {
	sr, ok := s.store.LoadRun()
	if !ok {
		return ErrNoRun
	}
	s.run = s.runFromSave(sr)
	s.progress = s.progressFromSave(s.store.LoadProgress())
	if s.run.ID == "" {
		s.run.ID = uuid.NewString()
	}
	if !s.run.HasPools() {
		log.Printf("gameplay: run %s has no candidate pool, drawing a new one", s.run.ID)
		s.run.ResetPools(s.catalog.BuildCandidates(s.cfg.PoolSize, s.rng))
	}
	s.run.TimerRunning = true
	s.floor = nil
	s.resetHolds()
	s.phase = state.Active
	s.logMessage(gotext.Get("MSG_CONTINUE"))
	return s.saveRun()
}

// LoadoutSlots lists the run's candidate items with ownership and encyclopedia state.
// After an escape this starts the next run.
func (s *Session) LoadoutSlots() ([]LoadoutSlot, error) {
	if err := s.ensureRun(); err != nil {
		return nil, err
	}
	slots := make([]LoadoutSlot, 0, len(s.run.CandidateIDs))
	for _, id := range s.run.CandidateIDs {
		it, ok := s.catalog.Find(id)
		if !ok {
			continue
		}
		slots = append(slots, LoadoutSlot{
			Item:     it,
			Owned:    s.progress.Owns(id),
			Revealed: s.encyclopedia.IsUnlocked(id),
		})
	}
	return slots, nil
}

// ConfirmLoadout moves the chosen owned items out of permanent ownership into the
// run loadout, starts the run timer, and arms heal-on-enter. Nothing changes if any
// id is rejected.
func (s *Session) ConfirmLoadout(ids []string) error {
	if err := s.ensureRun(); err != nil {
		return err
	}

	chosen := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		switch {
		case !s.catalog.Has(id):
			return fmt.Errorf("%w: %s", ErrUnknownItem, id)
		case !s.run.IsCandidate(id):
			return fmt.Errorf("%w: %s", ErrNotCandidate, id)
		case !s.progress.Owns(id):
			return fmt.Errorf("%w: %s", ErrNotOwned, id)
		}
		chosen = append(chosen, id)
	}
	if len(chosen)+len(s.run.Loadout) > s.cfg.MaxLoadout {
		return fmt.Errorf("%w: %d of %d", ErrLoadoutFull, len(chosen)+len(s.run.Loadout), s.cfg.MaxLoadout)
	}

	for _, id := range chosen {
		s.progress.Revoke(id)
		s.run.Loadout = append(s.run.Loadout, id)
	}
	s.run.StartTimer()
	s.run.HealOnEnter = true
	s.floor = nil
	s.resetHolds()
	return errors.Join(s.saveProgress(), s.saveRun())
}

// ChangeFloor moves delta floors, clamped to the run's floors. An unchanged floor
// is a no-op and writes nothing. Otherwise the new floor is persisted and returned;
// the caller loads it with LoadFloor.
func (s *Session) ChangeFloor(delta int) (int, bool, error) {
	if s.phase != state.Active {
		return 0, false, ErrNoRun
	}
	cur := s.run.CurrentFloor
	target := floors.Clamp(cur+delta, s.run.MaxFloor)
	if target == cur {
		return cur, false, nil
	}
	s.run.CurrentFloor = target
	s.floor = nil
	s.resetHolds()
	return target, true, s.saveRun()
}

// Tick advances the run timer.
func (s *Session) Tick(dt time.Duration) {
	if s.phase != state.Active {
		return
	}
	s.run.Tick(dt)
}

// OnEscapeSuccess commits pending loot and the loadout to permanent ownership,
// records a clear when the treasure came out, and deletes the run.
func (s *Session) OnEscapeSuccess() (EscapeResult, error) {
	if s.phase != state.Active {
		return EscapeResult{}, ErrNoRun
	}
	res := EscapeResult{Cleared: s.run.HasTreasure, PlayTime: s.run.Timer}

	for _, id := range s.run.PendingLoot {
		s.encyclopedia.Unlock(id)
		s.progress.Grant(id)
		res.Committed = append(res.Committed, id)
	}
	for _, id := range s.run.Loadout {
		s.progress.Grant(id)
		res.Committed = append(res.Committed, id)
	}
	s.run.ClearCarried()
	s.run.HasTreasure = false
	s.run.TimerRunning = false

	if res.Cleared {
		s.records.RecordClear(res.PlayTime.Seconds())
		s.logMessage(fmt.Sprintf(gotext.Get("MSG_CLEARED"), res.PlayTime.Seconds()))
	} else {
		s.records.LastPlayTime = res.PlayTime.Seconds()
		s.logMessage(gotext.Get("MSG_ESCAPED"))
	}

	err := errors.Join(s.saveEncyclopedia(), s.saveProgress(), s.saveRecords())

	s.run = state.NewRun(s.cfg.MaxFloor)
	s.floor = nil
	s.resetHolds()
	s.phase = state.Escaped
	return res, errors.Join(err, s.store.DeleteRun())
}

// OnPlayerDied counts the death, drops everything carried, and forgets the stairs
// and position. Below the death limit the pools, discovered items, seeds, and
// opened chests survive for the next dive; reaching it wipes progress and the run,
// keeping only the encyclopedia.
func (s *Session) OnPlayerDied() (DeathOutcome, error) {
	if s.phase != state.Active {
		return DeathOutcome{}, ErrNoRun
	}
	s.progress.DeathCount++
	out := DeathOutcome{Deaths: s.progress.DeathCount, Limit: s.cfg.DeathLimit}

	s.run.TimerRunning = false
	s.run.HealOnEnter = false
	s.run.ClearCarried()
	s.run.ClearPosition()
	s.floor = nil
	s.resetHolds()

	if out.Deaths >= out.Limit {
		out.Reset = true
		err := s.fullReset()
		s.phase = state.Reset
		s.logMessage(fmt.Sprintf(gotext.Get("MSG_DIED_RESET"), out.Deaths, out.Limit))
		return out, err
	}

	s.logMessage(fmt.Sprintf(gotext.Get("MSG_DIED"), out.Deaths, out.Limit))
	return out, errors.Join(s.saveProgress(), s.saveRun())
}

// AbandonRun discards the loadout, pending loot, and the saved run and returns to
// the title state.
func (s *Session) AbandonRun() error {
	s.run.ClearCarried()
	s.run = state.NewRun(s.cfg.MaxFloor)
	s.floor = nil
	s.resetHolds()
	s.phase = state.NoRun
	return s.store.DeleteRun()
}

// ensureRun starts the next run after an escape or a death reset.
func (s *Session) ensureRun() error {
	switch s.phase {
	case state.Active:
		return nil
	case state.Escaped, state.Reset:
		s.beginRun()
		s.phase = state.Active
		return s.saveRun()
	default:
		return ErrNoRun
	}
}

// beginRun replaces the run with a fresh one: new id, seeds, and pools.
func (s *Session) beginRun() {
	s.run = state.NewRun(s.cfg.MaxFloor)
	s.run.ID = uuid.NewString()
	s.run.SeedFloors(s.newBaseSeed())
	s.run.ResetPools(s.catalog.BuildCandidates(s.cfg.PoolSize, s.rng))
	s.floor = nil
	s.resetHolds()
}

// fullReset clears ownership, deaths, and the run, deleting their files. The
// encyclopedia and records survive; the starting bonus is granted again.
func (s *Session) fullReset() error {
	s.progress = state.NewProgress()
	s.run = state.NewRun(s.cfg.MaxFloor)
	s.floor = nil
	s.resetHolds()
	return errors.Join(
		s.store.DeleteProgress(),
		s.store.DeleteRun(),
		s.applyStartingBonus(true),
	)
}

// applyStartingBonus grants the configured starting items. Unless forced it runs
// once per install, tracked in the records store.
func (s *Session) applyStartingBonus(force bool) error {
	if !force && s.records.StartingBonusApplied {
		return nil
	}

	unlocked, granted := false, false
	for _, id := range s.cfg.StartingUnlockOnlyIDs {
		if !s.catalog.Has(id) {
			log.Printf("gameplay: unknown starting unlock %q", id)
			continue
		}
		if s.encyclopedia.Unlock(id) {
			unlocked = true
		}
	}
	for _, id := range s.cfg.StartingOwnedIDs {
		if !s.catalog.Has(id) {
			log.Printf("gameplay: unknown starting item %q", id)
			continue
		}
		if s.encyclopedia.Unlock(id) {
			unlocked = true
		}
		if s.progress.Grant(id) {
			granted = true
		}
	}

	var errs []error
	if unlocked {
		errs = append(errs, s.saveEncyclopedia())
	}
	if granted {
		errs = append(errs, s.saveProgress())
	}
	if !s.records.StartingBonusApplied {
		s.records.StartingBonusApplied = true
		errs = append(errs, s.saveRecords())
	}
	return errors.Join(errs...)
}
