package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	// Stay on the current cell for one frame (holding a stair or the treasure)
	ActionWait

	// Meta / UI
	ActionInteract // Open a chest on or next to the player (E, Enter)
	ActionDump     // Write a debug dump of the floor (F9)
	ActionQuit
)

// Intent is the high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "k", "arrow_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// bindings maps raw codes to actions.
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, words, Vim)
	"arrow_up":    ActionMoveNorth,
	"north":       ActionMoveNorth,
	"k":           ActionMoveNorth,
	"arrow_down":  ActionMoveSouth,
	"south":       ActionMoveSouth,
	"j":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"west":        ActionMoveWest,
	"h":           ActionMoveWest,
	"arrow_right": ActionMoveEast,
	"east":        ActionMoveEast,
	"l":           ActionMoveEast,

	// Waiting
	".":    ActionWait,
	"wait": ActionWait,
	"":     ActionWait,

	// Interaction
	"e":     ActionInteract,
	"enter": ActionInteract,
	"open":  ActionInteract,

	// Debug dump
	"f9":   ActionDump,
	"dump": ActionDump,

	// Quit
	"quit": ActionQuit,
	"q":    ActionQuit,
}

// MapToIntent applies the current bindings to a raw input and returns a high‑level Intent.
func MapToIntent(ev RawInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveEast:
		return "Move East"
	case ActionWait:
		return "Wait"
	case ActionInteract:
		return "Interact"
	case ActionDump:
		return "Dump Floor"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
