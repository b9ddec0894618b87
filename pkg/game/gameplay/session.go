// Package gameplay provides the run session: floor loading, loot, stairs,
// and the persistence state machine driven by deaths and escapes.
package gameplay

import (
	"errors"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/config"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/save"
	"cavedelve/pkg/game/stairs"
	"cavedelve/pkg/game/state"
)

// Session errors
var (
	ErrNoRun        = errors.New("no active run")
	ErrNoFloor      = errors.New("no floor loaded")
	ErrNotOwned     = errors.New("item not owned")
	ErrNotCandidate = errors.New("item not in this run's pool")
	ErrLoadoutFull  = errors.New("loadout full")
	ErrUnknownItem  = errors.New("unknown item")
)

// Storage is the persistence the session writes through after every durable change.
type Storage interface {
	LoadEncyclopedia() save.Encyclopedia
	SaveEncyclopedia(save.Encyclopedia) error
	LoadProgress() save.Progress
	SaveProgress(save.Progress) error
	DeleteProgress() error
	HasRun() bool
	LoadRun() (save.Run, bool)
	SaveRun(save.Run) error
	DeleteRun() error
	LoadRecords() save.Records
	SaveRecords(save.Records) error
}

var _ Storage = (*save.Store)(nil)

// Session owns one player's run, progress, encyclopedia, and records.
// It is not safe for concurrent use.
type Session struct {
	cfg     config.Config
	catalog *loot.Catalog
	store   Storage
	rng     *rand.Rand

	phase        state.Phase
	run          *state.Run
	progress     *state.Progress
	encyclopedia *state.Encyclopedia
	records      save.Records

	floor        *Floor
	stairHold    *stairs.HoldTrigger
	treasureHold *stairs.HoldTrigger

	messages state.MessageLog
}

// NewSession loads the encyclopedia, progress, and records from store and applies
// the starting bonus if this install has never received it. No run is active
// until NewGame or ContinueGame.
func NewSession(cfg config.Config, catalog *loot.Catalog, store Storage) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:          cfg,
		catalog:      catalog,
		store:        store,
		rng:          rand.New(rand.NewSource(seed)),
		phase:        state.NoRun,
		run:          state.NewRun(cfg.MaxFloor),
		stairHold:    stairs.NewHoldTrigger(cfg.StairHold),
		treasureHold: stairs.NewHoldTrigger(cfg.TreasureHold),
	}

	s.encyclopedia = state.NewEncyclopedia(catalog.Known(store.LoadEncyclopedia().UnlockedIDs)...)
	s.progress = s.progressFromSave(store.LoadProgress())
	s.records = store.LoadRecords()

	if err := s.applyStartingBonus(false); err != nil {
		log.Printf("gameplay: starting bonus: %v", err)
	}
	return s
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() state.Phase {
	return s.phase
}

// Run returns the run aggregate. Callers must not mutate it.
func (s *Session) Run() *state.Run {
	return s.run
}

// Progress returns permanent ownership. Callers must not mutate it.
func (s *Session) Progress() *state.Progress {
	return s.progress
}

// Encyclopedia returns the revealed item ids. Callers must not mutate it.
func (s *Session) Encyclopedia() *state.Encyclopedia {
	return s.encyclopedia
}

// Records returns the install-wide statistics.
func (s *Session) Records() save.Records {
	return s.records
}

// Catalog returns the item catalog.
func (s *Session) Catalog() *loot.Catalog {
	return s.catalog
}

// Floor returns the loaded floor, or nil before LoadFloor.
func (s *Session) Floor() *Floor {
	return s.floor
}

// Messages returns the recent player-facing messages.
func (s *Session) Messages() []string {
	return s.messages.Messages
}

func (s *Session) logMessage(msg string) {
	s.messages.AddMessage(msg)
}

// newBaseSeed returns the configured seed, or a fresh non-zero one.
func (s *Session) newBaseSeed() int64 {
	if s.cfg.Seed != 0 {
		return s.cfg.Seed
	}
	for {
		if v := s.rng.Int63(); v != 0 {
			return v
		}
	}
}

func (s *Session) resetHolds() {
	s.stairHold.Reset()
	s.treasureHold.Reset()
}

func (s *Session) saveRun() error {
	return s.store.SaveRun(s.runToSave())
}

func (s *Session) saveProgress() error {
	return s.store.SaveProgress(save.Progress{
		OwnedIDs:   s.progress.Owned(),
		DeathCount: s.progress.DeathCount,
	})
}

func (s *Session) saveEncyclopedia() error {
	return s.store.SaveEncyclopedia(save.Encyclopedia{UnlockedIDs: s.encyclopedia.IDs()})
}

func (s *Session) saveRecords() error {
	return s.store.SaveRecords(s.records)
}

func (s *Session) progressFromSave(p save.Progress) *state.Progress {
	out := state.NewProgress()
	for _, id := range s.catalog.Known(p.OwnedIDs) {
		out.Grant(id)
	}
	out.DeathCount = p.DeathCount
	if out.DeathCount < 0 {
		out.DeathCount = 0
	}
	return out
}

func (s *Session) runToSave() save.Run {
	r := s.run
	sr := save.Run{
		RunID:                  r.ID,
		CurrentFloor:           r.CurrentFloor,
		Timer:                  r.Timer.Seconds(),
		DeathCount:             s.progress.DeathCount,
		RunHasTreasure:         r.HasTreasure,
		TreasurePicked:         r.TreasurePicked,
		HealOnNextDungeonEnter: r.HealOnEnter,
		HasLastStairCell:       r.LastStair.Valid(),
		LastStairCell:          r.LastStair.Cell,
		LastStairKind:          r.LastStair.Kind,
		RunLoadoutIDs:          append([]string(nil), r.Loadout...),
		RunPendingLootIDs:      append([]string(nil), r.PendingLoot...),
		RunCandidateIDs:        append([]string(nil), r.CandidateIDs...),
		RemainingChestDropIDs:  append([]string(nil), r.RemainingDropIDs...),
		Seed:                   r.Seed,
	}
	stairCells := r.Stairs.Clone()
	sr.EntranceStairCells = stairCells.Entrance
	sr.MidStairCells = stairCells.Mid
	sr.EscapeStairCells = stairCells.Escape

	r.DiscoveredIDs.Each(func(id string) {
		sr.RunDiscoveredIDs = append(sr.RunDiscoveredIDs, id)
	})
	sort.Strings(sr.RunDiscoveredIDs)

	for f, seed := range r.FloorSeeds {
		sr.FloorSeeds = append(sr.FloorSeeds, save.FloorSeed{Floor: f, Seed: seed})
	}
	sort.Slice(sr.FloorSeeds, func(i, j int) bool { return sr.FloorSeeds[i].Floor < sr.FloorSeeds[j].Floor })

	for f, set := range r.OpenedChests {
		if set.Size() == 0 {
			continue
		}
		sr.OpenedChestsByFloor = append(sr.OpenedChestsByFloor, save.FloorOpenedChests{
			Floor:        f,
			OpenedChests: world.SortedPoints(set),
		})
	}
	sort.Slice(sr.OpenedChestsByFloor, func(i, j int) bool {
		return sr.OpenedChestsByFloor[i].Floor < sr.OpenedChestsByFloor[j].Floor
	})
	return sr
}

func (s *Session) runFromSave(sr save.Run) *state.Run {
	r := state.NewRun(s.cfg.MaxFloor)
	r.ID = sr.RunID
	r.CurrentFloor = floors.Clamp(sr.CurrentFloor, r.MaxFloor)
	r.Seed = sr.Seed
	r.Timer = time.Duration(sr.Timer * float64(time.Second))
	r.HasTreasure = sr.RunHasTreasure
	r.TreasurePicked = sr.TreasurePicked
	r.HealOnEnter = sr.HealOnNextDungeonEnter
	if sr.HasLastStairCell && sr.LastStairKind != floors.None {
		r.LastStair = stairs.Last{Cell: sr.LastStairCell, Kind: sr.LastStairKind}
	}
	r.Stairs = stairs.Cells{
		Entrance: sr.EntranceStairCells,
		Mid:      sr.MidStairCells,
		Escape:   sr.EscapeStairCells,
	}.Clone()

	r.Loadout = s.catalog.Known(sr.RunLoadoutIDs)
	r.PendingLoot = s.catalog.Known(sr.RunPendingLootIDs)
	r.CandidateIDs = s.catalog.Known(sr.RunCandidateIDs)
	r.DiscoveredIDs = mapset.New[string]()
	for _, id := range s.catalog.Known(sr.RunDiscoveredIDs) {
		r.DiscoveredIDs.Put(id)
	}
	r.RemainingDropIDs = loot.DropPool(s.catalog.Known(sr.RemainingChestDropIDs))

	for _, fs := range sr.FloorSeeds {
		r.FloorSeeds[fs.Floor] = fs.Seed
	}
	for _, oc := range sr.OpenedChestsByFloor {
		for _, p := range oc.OpenedChests {
			r.MarkChestOpened(oc.Floor, p)
		}
	}
	return r
}
