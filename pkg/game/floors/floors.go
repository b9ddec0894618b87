// Package floors defines the fixed floor count, the per-floor stair roles, and
// floor seed derivation. Floor numbers are 1-based.
package floors

import (
	"fmt"

	"github.com/leonelquinteros/gotext"
)

// TotalFloors is the number of floors in a run.
const TotalFloors = 3

// FirstFloor is the floor a run starts on.
const FirstFloor = 1

// SeedStep separates the seeds of consecutive floors.
const SeedStep = 10007

// StairKind tags a stair cell set. Cells of one kind appear at the same
// coordinates on every floor that stamps that kind.
type StairKind int

const (
	None StairKind = iota
	Entrance
	Mid
	Escape
)

// String returns the string representation of a stair kind
func (k StairKind) String() string {
	switch k {
	case Entrance:
		return "entrance"
	case Mid:
		return "mid"
	case Escape:
		return "escape"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name.
func (k StairKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. An empty string decodes as None.
func (k *StairKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "entrance":
		*k = Entrance
	case "mid":
		*k = Mid
	case "escape":
		*k = Escape
	case "none", "":
		*k = None
	default:
		return fmt.Errorf("unknown stair kind %q", text)
	}
	return nil
}

// Descriptor describes the stair roles of one floor.
// A None role means the floor stamps no tile in that direction.
type Descriptor struct {
	Floor int
	Down  StairKind // leads to Floor+1
	Up    StairKind // leads to Floor-1, or out of the dungeon on the first floor
}

// Graph is the floor graph indexed by floor-1.
var Graph = []Descriptor{
	{Floor: 1, Down: Entrance, Up: Escape},
	{Floor: 2, Down: Mid, Up: Entrance},
	{Floor: 3, Down: None, Up: Mid},
}

// Roles returns the stair roles for the given floor. Out-of-range floors have none.
func Roles(floor int) Descriptor {
	if floor < FirstFloor || floor > len(Graph) {
		return Descriptor{Floor: floor}
	}
	return Graph[floor-1]
}

// Transition resolves stepping on an Up (up == true) or Down tile of floor.
// It returns the tile's kind, the floor it leads to, and whether it leaves the dungeon.
// Kind is None when the floor stamps no tile in that direction.
func Transition(floor int, up bool) (kind StairKind, target int, escape bool) {
	d := Roles(floor)
	if up {
		if d.Up == None {
			return None, floor, false
		}
		if d.Up == Escape {
			return Escape, floor, true
		}
		return d.Up, floor - 1, false
	}
	if d.Down == None {
		return None, floor, false
	}
	return d.Down, floor + 1, false
}

// Clamp restricts floor to [FirstFloor, maxFloor].
func Clamp(floor, maxFloor int) int {
	if maxFloor < FirstFloor {
		maxFloor = FirstFloor
	}
	if floor < FirstFloor {
		return FirstFloor
	}
	if floor > maxFloor {
		return maxFloor
	}
	return floor
}

// Seed derives the generation seed of a floor from the run's base seed.
func Seed(base int64, floor int) int64 {
	return base + int64(floor)*SeedStep
}

// IsFinalFloor returns true if floor is the deepest floor of a run that goes
// down to maxFloor.
func IsFinalFloor(floor, maxFloor int) bool {
	return floor >= Clamp(maxFloor, TotalFloors)
}

// Name returns the translated display name of a floor.
// Uses gotext.Get with constant keys to satisfy vet.
func Name(floor int) string {
	switch floor {
	case 1:
		return gotext.Get("FLOOR_NAME_1")
	case 2:
		return gotext.Get("FLOOR_NAME_2")
	case 3:
		return gotext.Get("FLOOR_NAME_3")
	default:
		return gotext.Get("FLOOR_NAME_UNKNOWN")
	}
}
