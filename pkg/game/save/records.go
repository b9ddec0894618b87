package save

import (
	"cavedelve/pkg/engine/world"
	"cavedelve/pkg/game/floors"
)

// Encyclopedia is the persisted form of every item ever revealed. Never reset.
type Encyclopedia struct {
	UnlockedIDs []string `json:"unlockedIds"`
}

// Progress is the persisted permanent ownership. Deleted by a full reset.
type Progress struct {
	OwnedIDs   []string `json:"ownedIds"`
	DeathCount int      `json:"deathCount"`
}

// FloorSeed is one entry of the run's floor seed table.
type FloorSeed struct {
	Floor int   `json:"floor"`
	Seed  int64 `json:"seed"`
}

// FloorOpenedChests lists the opened chest cells of one floor.
type FloorOpenedChests struct {
	Floor        int           `json:"floor"`
	OpenedChests []world.Point `json:"openedChests"`
}

// Run is the persisted in-progress run. Deleted on escape and on a full reset.
type Run struct {
	RunID        string  `json:"runId"`
	CurrentFloor int     `json:"currentFloor"`
	Timer        float64 `json:"timer"`
	DeathCount   int     `json:"deathCount"`

	RunHasTreasure         bool `json:"runHasTreasure"`
	TreasurePicked         bool `json:"treasurePicked"`
	HealOnNextDungeonEnter bool `json:"healOnNextDungeonEnter"`

	HasLastStairCell bool             `json:"hasLastStairCell"`
	LastStairCell    world.Point      `json:"lastStairCell"`
	LastStairKind    floors.StairKind `json:"lastStairKind"`

	EntranceStairCells []world.Point `json:"entranceStairCells"`
	MidStairCells      []world.Point `json:"midStairCells"`
	EscapeStairCells   []world.Point `json:"escapeStairCells"`

	RunLoadoutIDs     []string `json:"runLoadoutIds"`
	RunPendingLootIDs []string `json:"runPendingLootIds"`

	RunCandidateIDs       []string `json:"runCandidateIds"`
	RunDiscoveredIDs      []string `json:"runDiscoveredIds"`
	RemainingChestDropIDs []string `json:"remainingChestDropIds"`

	FloorSeeds          []FloorSeed         `json:"floorSeeds"`
	OpenedChestsByFloor []FloorOpenedChests `json:"openedChestsByFloor"`
	Seed                int64               `json:"seed"`
}

// Records are install-wide statistics that survive every reset.
type Records struct {
	ClearCount           int     `json:"clearCount"`
	TotalTreasure        int     `json:"totalTreasure"`
	BestTime             float64 `json:"bestTime"`
	HasClearedOnce       bool    `json:"hasClearedOnce"`
	LastPlayTime         float64 `json:"lastPlayTime"`
	StartingBonusApplied bool    `json:"startingBonusApplied"`
}

// RecordClear counts a clear that took seconds, keeping the fastest time.
func (r *Records) RecordClear(seconds float64) {
	r.ClearCount++
	r.TotalTreasure++
	r.HasClearedOnce = true
	r.LastPlayTime = seconds
	if r.BestTime <= 0 || seconds < r.BestTime {
		r.BestTime = seconds
	}
}
