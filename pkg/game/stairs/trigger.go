package stairs

import (
	"time"

	"cavedelve/pkg/engine/world"
)

// Hold thresholds used by the session.
const (
	DefaultStairHold    = 2 * time.Second
	DefaultTreasureHold = 1 * time.Second
)

// HoldState is the phase of a HoldTrigger.
type HoldState int

const (
	Idle HoldState = iota
	Holding
	Triggered
)

// String returns the string representation of a hold state
func (s HoldState) String() string {
	switch s {
	case Holding:
		return "holding"
	case Triggered:
		return "triggered"
	default:
		return "idle"
	}
}

// HoldTrigger fires once an actor has stood on the same target cell for Threshold.
// Leaving the target or moving to another cell resets it to Idle.
type HoldTrigger struct {
	Threshold time.Duration

	state   HoldState
	cell    world.Point
	elapsed time.Duration
}

// NewHoldTrigger creates an idle trigger.
func NewHoldTrigger(threshold time.Duration) *HoldTrigger {
	return &HoldTrigger{Threshold: threshold}
}

// State returns the current phase.
func (h *HoldTrigger) State() HoldState {
	return h.state
}

// Elapsed returns how long the actor has held the current cell.
func (h *HoldTrigger) Elapsed() time.Duration {
	return h.elapsed
}

// Update reports the actor's cell for this frame and whether it is a target.
// The frame that first lands on a target starts the hold without counting dt.
// Returns true on the single frame the hold completes.
func (h *HoldTrigger) Update(cell world.Point, onTarget bool, dt time.Duration) bool {
	if !onTarget {
		h.Reset()
		return false
	}
	if h.state == Idle || h.cell != cell {
		h.state = Holding
		h.cell = cell
		h.elapsed = 0
		return false
	}
	if h.state == Triggered {
		return false
	}

	h.elapsed += dt
	if h.elapsed >= h.Threshold {
		h.state = Triggered
		return true
	}
	return false
}

// Rearm restarts the hold on the current cell after a trigger that had no effect.
func (h *HoldTrigger) Rearm() {
	if h.state == Idle {
		return
	}
	h.state = Holding
	h.elapsed = 0
}

// Reset returns the trigger to Idle.
func (h *HoldTrigger) Reset() {
	h.state = Idle
	h.elapsed = 0
}
