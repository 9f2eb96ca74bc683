package gameplay

import (
	"time"

	"ghostgame/pkg/engine/task"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// Fall timings
const (
	FallDelay    = 300 * time.Millisecond
	FallCooldown = 500 * time.Millisecond
)

// fallHandler starts the fall sequence when a hole rejects the player.
type fallHandler struct {
	g *state.Game
}

func (h fallHandler) RejectCrossing(a entities.Actor, hole *entities.HazardGate) {
	startFall(h.g, hole)
}

// startFall fades the player out, moves them to safety and fades them back
// in. Moving off the hole clears its debounce; controls stay off until the
// cooldown ends, so the player cannot step back in mid-sequence.
func startFall(g *state.Game, hole *entities.HazardGate) {
	holeCell := g.CurrentCell
	g.ControlsEnabled = false
	logMessageOnce(g, entities.GateTypes[entities.KindHazard].BlockedMessage)
	g.Logger.Debug("player fell", "gate", string(hole.ID()))

	land := func() {
		if g.CurrentCell == holeCell {
			placePlayer(g, respawnCell(g, hole, holeCell), false)
		}
		g.PlayerAlpha = 1
		if holeCell != nil {
			gameworld.GetGameData(holeCell).SetColliderEnabled(true)
		}
	}

	seq := task.NewSequence("fall:"+string(hole.ID()),
		task.Tween(FallDelay, func(t float64) {
			g.PlayerAlpha = task.Lerp(1, 0, t)
		}),
		task.Do(land),
		task.Wait(FallCooldown),
	).OnDone(func() {
		g.ControlsEnabled = true
	}).OnCancel(func() {
		land()
		g.ControlsEnabled = true
	})
	g.Scheduler.Start(seq)
}

// respawnCell picks where a falling player lands: the hole's own respawn
// point, then the active checkpoint, then the cell they came from, then the
// level start.
func respawnCell(g *state.Game, hole *entities.HazardGate, holeCell *world.Cell) *world.Cell {
	if name := hole.Respawn(); name != "" {
		if c := g.Grid.GetCellByName(name); c != nil {
			return c
		}
		g.Logger.Warn("hole respawn point not on grid", "gate", string(hole.ID()), "cell", name)
	}
	if g.Checkpoint != nil {
		return g.Checkpoint
	}
	if g.PreviousCell != nil && g.PreviousCell != holeCell {
		return g.PreviousCell
	}
	return g.Grid.StartCell()
}

// teleport moves the player along a pad's link after a short delay. Both
// ends stay busy until the cooldown ends, so arriving does not bounce back.
func teleport(g *state.Game, pad *entities.Teleporter) {
	switch g.Teleports.Attempt(pad) {
	case entities.TeleportNone:
		return
	case entities.TeleportWrongSequence:
		logMessage(g, "TELEPORT_WRONG_SEQUENCE")
		return
	}

	dest := g.Grid.GetCellByName(pad.Destination)
	if dest == nil {
		g.Logger.Warn("teleporter destination not on grid", "pad", pad.ID, "cell", pad.Destination)
		return
	}
	other := g.Teleports.At(pad.Destination)

	setBusy := func(busy bool) {
		pad.Busy = busy
		if other != nil {
			other.Busy = busy
		}
	}
	setBusy(true)
	g.ControlsEnabled = false
	logMessage(g, "TELEPORT")

	seq := task.NewSequence("teleport:"+pad.ID,
		task.Wait(entities.TeleportDelay),
		task.Do(func() { placePlayer(g, dest, true) }),
		task.Wait(entities.TeleportSettle),
		task.Do(func() { g.ControlsEnabled = true }),
		task.Wait(entities.TeleportCooldown),
	).OnDone(func() { setBusy(false) }).OnCancel(func() {
		setBusy(false)
		g.ControlsEnabled = true
	})
	g.Scheduler.Start(seq)
}
