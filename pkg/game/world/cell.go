// Package world provides game-specific world extensions for the ghost game.
// It extends the generic engine/world primitives with gates, chests and pads.
package world

import (
	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
)

// GameCellData holds game-specific entity references for a cell.
// This is stored in the engine Cell's GameData field.
//
// It is also the host a gate drives: the gate switches the collider and
// sets the alpha, and movement and rendering read them back.
type GameCellData struct {
	Gate       entities.Gate        // Hole, phantom wall or hidden object on this cell (if any)
	Chest      *entities.Chest      // Chest in this cell (if any)
	Checkpoint *entities.Checkpoint // Checkpoint on this cell (if any)
	Teleporter *entities.Teleporter // Teleporter pad on this cell (if any)
	Pickup     *capability.Item     // Item lying on the floor (if any)

	Collider bool    // Whether the gate's collider is enabled
	Alpha    float64 // Render alpha written by the gate
}

var _ entities.Host = (*GameCellData)(nil)

// SetColliderEnabled implements entities.Host.
func (d *GameCellData) SetColliderEnabled(enabled bool) {
	d.Collider = enabled
}

// SetAlpha implements entities.Host.
func (d *GameCellData) SetAlpha(alpha float64) {
	d.Alpha = alpha
}

// InitGameData initializes game data for a cell if not already set
func InitGameData(cell *world.Cell) *GameCellData {
	if cell.GameData == nil {
		cell.GameData = &GameCellData{Alpha: 1}
	}
	return cell.GameData.(*GameCellData)
}

// GetGameData retrieves game data from a cell, initializing if needed
func GetGameData(cell *world.Cell) *GameCellData {
	return InitGameData(cell)
}

// Helper functions for checking entity presence on cells

// Hole returns the hole on this cell, or nil
func Hole(cell *world.Cell) *entities.HazardGate {
	h, _ := GetGameData(cell).Gate.(*entities.HazardGate)
	return h
}

// Wall returns the phantom wall on this cell, or nil
func Wall(cell *world.Cell) *entities.WallGate {
	w, _ := GetGameData(cell).Gate.(*entities.WallGate)
	return w
}

// Hidden returns the hidden object gate on this cell, or nil
func Hidden(cell *world.Cell) *entities.VisibilityGate {
	v, _ := GetGameData(cell).Gate.(*entities.VisibilityGate)
	return v
}

// HasHole returns true if this cell contains a hole
func HasHole(cell *world.Cell) bool {
	return Hole(cell) != nil
}

// HasClosedHole returns true if this cell has a hole the player would fall into
func HasClosedHole(cell *world.Cell) bool {
	h := Hole(cell)
	return h != nil && h.Decision() == entities.Closed
}

// HasPhantomWall returns true if this cell contains a phantom wall
func HasPhantomWall(cell *world.Cell) bool {
	return Wall(cell) != nil
}

// HasSolidWall returns true if this cell has a phantom wall with its collider on
func HasSolidWall(cell *world.Cell) bool {
	return HasPhantomWall(cell) && GetGameData(cell).Collider
}

// HasHiddenObject returns true if this cell has a hidden object not yet revealed
func HasHiddenObject(cell *world.Cell) bool {
	v := Hidden(cell)
	return v != nil && !v.Revealed()
}

// HasChest returns true if this cell contains a chest the player can see
func HasChest(cell *world.Cell) bool {
	data := GetGameData(cell)
	return data.Chest != nil && data.Chest.Visible()
}

// HasUnopenedChest returns true if this cell has a visible chest that still holds its item
func HasUnopenedChest(cell *world.Cell) bool {
	data := GetGameData(cell)
	return data.Chest != nil && data.Chest.Interactable()
}

// HasCheckpoint returns true if this cell contains a checkpoint
func HasCheckpoint(cell *world.Cell) bool {
	return GetGameData(cell).Checkpoint != nil
}

// HasTeleporter returns true if this cell contains a teleporter pad
func HasTeleporter(cell *world.Cell) bool {
	return GetGameData(cell).Teleporter != nil
}

// HasPickup returns true if an item lies on this cell
func HasPickup(cell *world.Cell) bool {
	return GetGameData(cell).Pickup != nil
}

// BlocksMovement returns true if something on this cell stops the player
// stepping onto it. Holes never block: they are triggers.
func BlocksMovement(cell *world.Cell) bool {
	data := GetGameData(cell)
	if HasSolidWall(cell) {
		return true
	}
	// Revealed hidden objects and chests are solid furniture.
	if data.Chest != nil && data.Chest.Visible() {
		return true
	}
	if v := Hidden(cell); v != nil && data.Chest == nil && data.Collider {
		return true
	}
	return false
}

// Opaque reports whether the cell blocks line of sight.
func Opaque(cell *world.Cell) bool {
	return !cell.Room || HasSolidWall(cell)
}
