package gameplay

import (
	engineinput "ghostgame/pkg/engine/input"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/state"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionQuit:
		g.Quit = true
		logMessage(g, "GOODBYE")
		return

	case engineinput.ActionPause:
		TogglePause(g)
		return

	case engineinput.ActionResetLevel:
		if err := ResetLevel(g); err != nil {
			g.Logger.Error("level reset failed", "error", err)
		}
		return

	case engineinput.ActionZoomIn, engineinput.ActionZoomOut:
		// Renderers handle zoom themselves.
		return
	}

	// Everything below acts in the world, which stands still while paused.
	if g.Clock.Paused() {
		return
	}

	if dir, ok := moveDirections[intent.Action]; ok {
		move(g, dir)
		return
	}

	switch intent.Action {
	case engineinput.ActionInteract, engineinput.ActionAction:
		Interact(g)
	case engineinput.ActionEquip:
		EquipNext(g)
	case engineinput.ActionHint:
		NextHint(g)
	default:
		logMessage(g, "UNKNOWN_COMMAND")
	}
}

var moveDirections = map[engineinput.Action]world.Direction{
	engineinput.ActionMoveNorth: world.North,
	engineinput.ActionMoveEast:  world.East,
	engineinput.ActionMoveSouth: world.South,
	engineinput.ActionMoveWest:  world.West,
}

func move(g *state.Game, dir world.Direction) {
	g.NavStyle = state.NavStyleNSEW
	if g.CurrentCell == nil {
		return
	}
	MoveCell(g, g.CurrentCell.GetNeighbor(dir))
}
