package gameplay

import (
	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/logger"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// Interact opens the first adjacent chest in NSEW priority order.
// Returns true if an interaction occurred
func Interact(g *state.Game) bool {
	if g.CurrentCell == nil || !g.ControlsEnabled || g.Finished {
		return false
	}

	neighbors := []*world.Cell{
		g.CurrentCell.North,
		g.CurrentCell.South,
		g.CurrentCell.East,
		g.CurrentCell.West,
	}
	for _, cell := range neighbors {
		if cell == nil {
			continue
		}
		if gameworld.HasUnopenedChest(cell) {
			openChest(g, cell)
			return true
		}
	}

	logMessage(g, "NOTHING_TO_INTERACT")
	return false
}

// openChest opens the chest on cell and hands its item to the player.
func openChest(g *state.Game, cell *world.Cell) {
	chest := gameworld.GetGameData(cell).Chest
	item := chest.OpenChest()
	if item == nil {
		logMessagef(g, "CHEST_EMPTY", chest.Name)
		return
	}
	logMessagef(g, "CHEST_OPENED", chest.Name, item.Name)
	AcquireItem(g, item)
}

// pickUp takes the item lying on cell.
func pickUp(g *state.Game, cell *world.Cell) {
	data := gameworld.GetGameData(cell)
	item := data.Pickup
	data.Pickup = nil
	logMessagef(g, "ITEM_PICKED_UP", item.Name)
	AcquireItem(g, item)
}

// AcquireItem grants item to the player. Gates learn about it through the
// registry before this returns.
func AcquireItem(g *state.Game, item *capability.Item) bool {
	if err := g.Registry.Grant(item); err != nil {
		logger.LogError(g.Logger, "item pickup rejected", err)
		return false
	}
	g.Logger.Info("item acquired", "item_id", string(item.ID), "abilities", len(g.Registry.ActiveAbilities()))
	return true
}

// EquipNext wears the next held item. Only meaningful in single-equipped
// mode; in cumulative mode everything held is already worn.
func EquipNext(g *state.Game) bool {
	items := g.Registry.Items()
	if g.Registry.Mode() != capability.ModeSingleEquipped || len(items) < 2 {
		logMessage(g, "NOTHING_TO_EQUIP")
		return false
	}

	next := items[0]
	if cur := g.Registry.Equipped(); cur != nil {
		for i, it := range items {
			if it.ID == cur.ID {
				next = items[(i+1)%len(items)]
				break
			}
		}
	}
	if err := g.Registry.Equip(next); err != nil {
		logger.LogError(g.Logger, "equip failed", err)
		return false
	}
	logMessagef(g, "ITEM_EQUIPPED", next.Name)
	return true
}
