package input

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/oops"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
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

	// Meta / UI
	ActionHint
	ActionQuit
	ActionPause
	ActionAction     // Generic "action/confirm" (e.g., Enter/A)
	ActionInteract   // Open chests (E, Enter, A button)
	ActionEquip      // Wear the next held item (single-equipped mode)
	ActionResetLevel // Reset current level (R, F5)
	ActionZoomIn     // Zoom in (increase font/tile size)
	ActionZoomOut    // Zoom out (decrease font/tile size)
	ActionDebugMapDump
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "KeyW", "arrow_up", "GamepadDPadUp").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Key repeat is handled by the underlying libraries (Ebiten just-pressed
// checks, terminal raw mode), so each RawInput is already debounced; the
// distinct type keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, NSEW, Vim)
	"arrow_up":    ActionMoveNorth,
	"north":       ActionMoveNorth,
	"n":           ActionMoveNorth,
	"k":           ActionMoveNorth,
	"arrow_down":  ActionMoveSouth,
	"south":       ActionMoveSouth,
	"s":           ActionMoveSouth,
	"j":           ActionMoveSouth,
	"arrow_left":  ActionMoveWest,
	"west":        ActionMoveWest,
	"w":           ActionMoveWest,
	"h":           ActionMoveWest,
	"arrow_right": ActionMoveEast,
	"east":        ActionMoveEast,
	"l":           ActionMoveEast,

	// Help / hint
	"?":    ActionHint,
	"hint": ActionHint,

	// Quit
	"quit":   ActionQuit,
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	// Pause / reset
	"p":     ActionPause,
	"space": ActionPause,
	"r":     ActionResetLevel,
	"f5":    ActionResetLevel,

	// Wardrobe
	"i":   ActionEquip,
	"tab": ActionEquip,

	// Controller/gamepad specific bindings
	"gamepad_dpad_up":    ActionMoveNorth,
	"gamepad_dpad_down":  ActionMoveSouth,
	"gamepad_dpad_left":  ActionMoveWest,
	"gamepad_dpad_right": ActionMoveEast,

	// Interaction (E, Enter, A button)
	"e":         ActionInteract,
	"enter":     ActionInteract,
	"gamepad_a": ActionInteract, // A button / Cross

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,

	// Debug
	"m":  ActionDebugMapDump,
	"f8": ActionDebugMapDump,

	// Generic action/confirm inputs (reserved, not unbindable)
	"action": ActionAction,

	"gamepad_b":     ActionQuit,  // B button / Circle
	"gamepad_x":     ActionEquip, // X button / Square
	"gamepad_start": ActionPause, // Start button
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
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
	case ActionHint:
		return "Hint"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionEquip:
		return "Equip"
	case ActionAction:
		return "Action"
	case ActionInteract:
		return "Interact"
	case ActionResetLevel:
		return "Reset Level"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionDebugMapDump:
		return "Dump Map"
	default:
		return "None"
	}
}

// Actions lists every bindable action in display order.
func Actions() []Action {
	out := make([]Action, 0, int(ActionDebugMapDump))
	for a := ActionMoveNorth; a <= ActionDebugMapDump; a++ {
		out = append(out, a)
	}
	return out
}

// ActionKey returns the config key for an action, e.g. "move_north".
func ActionKey(a Action) string {
	return strings.ReplaceAll(strings.ToLower(ActionName(a)), " ", "_")
}

// ParseAction maps a config key such as "reset_level" back onto its action.
func ParseAction(s string) (Action, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for _, a := range Actions() {
		if ActionKey(a) == key {
			return a, nil
		}
	}
	return ActionNone, oops.Code("UNKNOWN_ACTION").With("action", s).Errorf("unknown action %q", s)
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so UI doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	// Remove any existing code mapped to this action
	for c, a := range bindings {
		// Always keep the core arrow-key bindings so they can't be remapped away.
		if c == "arrow_up" || c == "arrow_down" || c == "arrow_left" || c == "arrow_right" {
			continue
		}
		// Keep reserved interaction bindings (E / Enter / gamepad A)
		if c == "e" || c == "enter" || c == "gamepad_a" {
			continue
		}
		// Don't allow reserved actions themselves to have their bindings cleared
		if a == ActionAction || a == ActionInteract {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	// Don't allow arrows or reserved interaction codes to be rebound through the menu – they are reserved.
	if code != "" &&
		code != "arrow_up" && code != "arrow_down" &&
		code != "arrow_left" && code != "arrow_right" &&
		code != "e" && code != "enter" && code != "gamepad_a" {
		bindings[code] = action
	}
}
