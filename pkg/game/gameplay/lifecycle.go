package gameplay

import (
	"time"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/event"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/state"
)

// Settle limits
const (
	settleStep     = 10 * time.Millisecond
	maxSettleTicks = 1000
)

// StartLevel builds def into g, binds its gates to the session registry and
// puts the player on the start cell.
func StartLevel(g *state.Game, def state.LevelDefinition) error {
	if def == nil {
		return oops.Code("NO_LEVEL").Errorf("no level to start")
	}
	g.ClearLevel()
	g.Definition = def
	if err := def.Build(g); err != nil {
		return oops.With("level", def.Title()).Wrap(err)
	}
	if g.Grid == nil || g.Grid.StartCell() == nil {
		return oops.Code("NO_START").With("level", def.Title()).Errorf("level has no start cell")
	}

	handler := fallHandler{g: g}
	for _, gate := range g.Board.Gates() {
		if hole, ok := gate.(*entities.HazardGate); ok {
			hole.SetCrossingHandler(handler)
		}
	}
	g.Board.Bind(g.Registry)
	g.Board.Subscribe(event.HandlerFunc[entities.GateChange](func(c entities.GateChange) {
		announceGateChange(g, c)
	}))

	placePlayer(g, g.Grid.StartCell(), false)
	g.Stopwatch.Start()

	g.ClearMessages()
	logMessagef(g, "WELCOME", def.Title())
	g.Logger.Info("level started", "level", def.Title(), "gates", g.Board.Len())
	return nil
}

// ResetLevel rebuilds the current level and drops everything the player has
// collected.
func ResetLevel(g *state.Game) error {
	g.Scheduler.CancelAll()
	g.Board.Close()
	g.Registry.Reset()
	if err := StartLevel(g, g.Definition); err != nil {
		return err
	}
	logMessage(g, "LEVEL_RESET")
	return nil
}

// Tick advances the game by one frame: clock first, then running sequences,
// then gate re-validation and easing, then the stopwatch.
func Tick(g *state.Game, frame time.Duration) {
	dt := g.Clock.Advance(frame)
	g.Scheduler.Tick(dt)
	g.Board.Tick(dt)
	g.Stopwatch.Tick(dt)
}

// Settle ticks until no sequence is running.
func Settle(g *state.Game) {
	for i := 0; i < maxSettleTicks && g.Scheduler.Busy(); i++ {
		Tick(g, settleStep)
	}
}

// TogglePause pauses or resumes game time.
func TogglePause(g *state.Game) {
	if g.Clock.Paused() {
		g.Clock.Resume()
		logMessage(g, "RESUMED")
		return
	}
	g.Clock.Pause()
	logMessage(g, "PAUSED")
}

// announceGateChange tells the player when gates open up.
func announceGateChange(g *state.Game, c entities.GateChange) {
	g.Logger.Debug("gate decision changed", "gate", string(c.GateID), "kind", c.Kind.String(), "decision", c.Decision.String())
	if c.Decision != entities.Open && c.Decision != entities.Revealed {
		return
	}
	logMessageOnce(g, entities.GateTypes[c.Kind].OpenMessage)
}

func levelTitle(g *state.Game) string {
	if g.Definition == nil {
		return ""
	}
	return g.Definition.Title()
}
