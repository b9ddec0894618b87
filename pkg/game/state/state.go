// Package state holds the in-memory run, progress, and encyclopedia aggregates.
// Persistence lives in package save; orchestration in package gameplay.
package state

import (
	"time"

	"github.com/zyedidia/generic/mapset"

	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
	"cavedelve/pkg/game/loot"
	"cavedelve/pkg/game/stairs"
)

// Phase is the lifecycle phase of a session's run.
type Phase int

const (
	NoRun Phase = iota
	Active
	Escaped
	Reset
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Escaped:
		return "escaped"
	case Reset:
		return "reset"
	default:
		return "no run"
	}
}

// Run is everything scoped to a single attempt at the dungeon.
type Run struct {
	ID           string
	CurrentFloor int
	MaxFloor     int

	// Seed is the base seed; zero means not yet chosen.
	Seed       int64
	FloorSeeds map[int]int64

	Stairs       stairs.Cells
	LastStair    stairs.Last
	OpenedChests map[int]world.CellSet

	CandidateIDs     []string
	DiscoveredIDs    mapset.Set[string]
	RemainingDropIDs loot.DropPool

	Loadout     []string
	PendingLoot []string

	HasTreasure    bool
	TreasurePicked bool
	HealOnEnter    bool

	Timer        time.Duration
	TimerRunning bool
}

// NewRun creates an empty run on the first floor
func NewRun(maxFloor int) *Run {
	if maxFloor < floors.FirstFloor || maxFloor > floors.TotalFloors {
		maxFloor = floors.TotalFloors
	}
	return &Run{
		CurrentFloor:  floors.FirstFloor,
		MaxFloor:      maxFloor,
		FloorSeeds:    make(map[int]int64),
		OpenedChests:  make(map[int]world.CellSet),
		DiscoveredIDs: mapset.New[string](),
	}
}

// SeedFloors sets the base seed and fills the floor seed table from it.
func (r *Run) SeedFloors(base int64) {
	r.Seed = base
	r.FloorSeeds = make(map[int]int64, r.MaxFloor)
	for f := floors.FirstFloor; f <= r.MaxFloor; f++ {
		r.FloorSeeds[f] = floors.Seed(base, f)
	}
}

// FloorSeed returns the seed of floor, deriving and recording it when the table lacks it.
func (r *Run) FloorSeed(floor int) int64 {
	if s, ok := r.FloorSeeds[floor]; ok {
		return s
	}
	s := floors.Seed(r.Seed, floor)
	r.FloorSeeds[floor] = s
	return s
}

// IsChestOpened reports whether the chest at p on floor was opened this run.
func (r *Run) IsChestOpened(floor int, p world.Point) bool {
	set, ok := r.OpenedChests[floor]
	return ok && set.Has(p)
}

// MarkChestOpened records the chest at p on floor as opened.
// Returns false if it already was.
func (r *Run) MarkChestOpened(floor int, p world.Point) bool {
	set, ok := r.OpenedChests[floor]
	if !ok {
		set = world.NewCellSet()
		r.OpenedChests[floor] = set
	}
	if set.Has(p) {
		return false
	}
	set.Put(p)
	return true
}

// ResetPools installs a fresh candidate list and a matching drop pool.
func (r *Run) ResetPools(candidates []string) {
	r.CandidateIDs = candidates
	r.DiscoveredIDs = mapset.New[string]()
	r.RemainingDropIDs = loot.NewDropPool(candidates)
}

// HasPools reports whether a candidate pool has been drawn.
func (r *Run) HasPools() bool {
	return len(r.CandidateIDs) > 0
}

// IsCandidate reports whether id is in this run's candidate pool.
func (r *Run) IsCandidate(id string) bool {
	for _, c := range r.CandidateIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Carries reports whether id is in the loadout or pending loot.
func (r *Run) Carries(id string) bool {
	for _, x := range r.Loadout {
		if x == id {
			return true
		}
	}
	for _, x := range r.PendingLoot {
		if x == id {
			return true
		}
	}
	return false
}

// ClearCarried empties the loadout and pending loot.
func (r *Run) ClearCarried() {
	r.Loadout = nil
	r.PendingLoot = nil
}

// ClearPosition forgets where the player is: stairs, last stair, the carried
// treasure, and the current floor. Seeds and opened chests are kept, so floors
// regenerate with the same layout and looted chests stay empty.
func (r *Run) ClearPosition() {
	r.CurrentFloor = floors.FirstFloor
	r.Stairs = stairs.Cells{}
	r.LastStair = stairs.Last{}
	r.HasTreasure = false
	r.TreasurePicked = false
}

// StartTimer resets the run timer and starts it.
func (r *Run) StartTimer() {
	r.Timer = 0
	r.TimerRunning = true
}

// Tick advances the timer while it runs.
func (r *Run) Tick(dt time.Duration) {
	if r.TimerRunning && dt > 0 {
		r.Timer += dt
	}
}

// MessageLog keeps the most recent player-facing messages.
type MessageLog struct {
	Messages []string
}

// AddMessage adds a message to the log
func (l *MessageLog) AddMessage(msg string) {
	const maxMessages = 5
	l.Messages = append(l.Messages, msg)

	// Keep only the last maxMessages
	if len(l.Messages) > maxMessages {
		l.Messages = l.Messages[len(l.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (l *MessageLog) ClearMessages() {
	l.Messages = make([]string, 0)
}
