package gameplay

import (
	"math/rand/v2"
	"slices"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// NextHint tells the player what would get them past the nearest closed
// gate. With nothing nearby it falls back to one of the level's hints.
// Returns false if there was nothing to say.
func NextHint(g *state.Game) bool {
	if ability, ok := nearbyNeed(g); ok {
		logMessagef(g, "HINT_NEEDS", locale.Get(ability.LabelKey()))
		return true
	}
	if len(g.Hints) == 0 {
		logMessage(g, "NO_HINTS")
		return false
	}
	g.AddMessage(g.Hints[rand.IntN(len(g.Hints))])
	return true
}

// nearbyNeed returns the ability a closed gate on or next to the player
// needs, if the player does not already have it.
func nearbyNeed(g *state.Game) (capability.Ability, bool) {
	if g.CurrentCell == nil {
		return 0, false
	}
	cells := append([]*world.Cell{g.CurrentCell}, g.CurrentCell.GetNeighbors()...)
	held := g.Registry.ActiveAbilities()
	for _, cell := range cells {
		gate := gameworld.GetGameData(cell).Gate
		if gate == nil || !gate.RequiresAbility() {
			continue
		}
		if d := gate.Decision(); d == entities.Open || d == entities.Revealed {
			continue
		}
		ability := entities.GateTypes[gate.Kind()].Ability
		if !slices.Contains(held, ability) {
			return ability, true
		}
	}
	return 0, false
}
