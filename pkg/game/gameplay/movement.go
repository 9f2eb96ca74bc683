// Package gameplay provides core game logic for player movement and interactions.
package gameplay

import (
	"github.com/zyedidia/generic/mapset"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// ViewRadius is how far the ghost can see.
const ViewRadius = 4

// CanEnter checks if the player can step onto a cell. When the way is
// blocked by a gate, the abilities that would open it are returned.
func CanEnter(g *state.Game, r *world.Cell, logReason bool) (bool, mapset.Set[capability.Ability]) {
	missing := mapset.New[capability.Ability]()

	if r == nil || !r.Room {
		return false, missing
	}

	// Phantom wall with its collider on
	if gameworld.HasSolidWall(r) {
		wall := gameworld.Wall(r)
		if wall.RequiresAbility() {
			missing.Put(entities.GateTypes[entities.KindWall].Ability)
		}
		if logReason {
			logMessageOnce(g, entities.GateTypes[entities.KindWall].BlockedMessage)
		}
		return false, missing
	}

	// Chests and revealed hidden objects are solid
	if gameworld.BlocksMovement(r) {
		return false, missing
	}

	return true, missing
}

// MoveCell moves the player to a new cell. It returns false if the move was
// blocked.
func MoveCell(g *state.Game, requestedCell *world.Cell) bool {
	if g.CurrentCell == nil || !g.ControlsEnabled || g.Finished {
		return false
	}
	if ok, _ := CanEnter(g, requestedCell, true); !ok {
		return false
	}
	placePlayer(g, requestedCell, true)
	return true
}

// placePlayer puts the player on cell. The gate under the previous cell is
// told the overlap ended; with triggers set, whatever is on the new cell reacts.
func placePlayer(g *state.Game, cell *world.Cell, triggers bool) {
	from := g.CurrentCell
	if from == cell {
		return
	}
	if from != nil {
		if gate := gameworld.GetGameData(from).Gate; gate != nil {
			g.Board.OverlapExit(g.Player, gate.ID())
		}
	}

	g.PreviousCell = from
	g.CurrentCell = cell
	cell.Visited = true
	world.RevealFOV(g.Grid, cell, ViewRadius, gameworld.Opaque)

	if !triggers {
		return
	}

	data := gameworld.GetGameData(cell)
	if data.Gate != nil {
		g.Board.OverlapEnter(g.Player, data.Gate.ID())
		// A fall has taken over.
		if hole := gameworld.Hole(cell); hole != nil && hole.Processing() {
			return
		}
	}

	if data.Pickup != nil {
		pickUp(g, cell)
	}

	if data.Checkpoint != nil && data.Checkpoint.Activate() {
		g.Checkpoint = cell
		logMessage(g, "CHECKPOINT_REACHED")
	}

	if data.Teleporter != nil {
		teleport(g, data.Teleporter)
		return
	}

	if cell.ExitCell {
		reachGoal(g)
	}
}

// reachGoal stops the stopwatch and finishes the level.
func reachGoal(g *state.Game) {
	if g.Finished {
		return
	}
	g.Stopwatch.Stop()
	g.Finished = true
	final, _ := g.Stopwatch.Final()
	g.Logger.Info("level finished", "level", levelTitle(g), "time", final.String())
	logMessagef(g, "GOAL_REACHED", g.Stopwatch.String())
}

// logMessage adds a translated message to the game's message log
func logMessage(g *state.Game, key string) {
	g.AddMessage(locale.Get(key))
}

func logMessagef(g *state.Game, key string, a ...any) {
	g.AddMessage(locale.Getf(key, a...))
}

// logMessageOnce adds a message unless it is already the newest one
func logMessageOnce(g *state.Game, key string) {
	msg := locale.Get(key)
	if n := len(g.Messages); n > 0 && g.Messages[n-1] == msg {
		return
	}
	g.AddMessage(msg)
}
