package entities

import (
	"ghostgame/pkg/engine/capability"
)

// Chest holds a single item and opens once.
type Chest struct {
	Name string
	Item *capability.Item
	Open bool
	Icon string
	Gate *VisibilityGate // set when the chest starts hidden
}

// Chest icons
const (
	IconChestClosed = "▣"
	IconChestOpen   = "□"
)

// NewChest creates a closed chest containing item.
func NewChest(name string, item *capability.Item) *Chest {
	return &Chest{Name: name, Item: item, Icon: IconChestClosed}
}

// Interactable reports whether the player can open the chest now.
func (c *Chest) Interactable() bool {
	if c.Open || c.Item == nil {
		return false
	}
	return c.Gate == nil || c.Gate.Revealed()
}

// Visible reports whether the chest is drawn.
func (c *Chest) Visible() bool {
	return c.Gate == nil || c.Gate.Revealed()
}

// OpenChest opens the chest and returns its item. It returns nil if the
// chest was already open, is empty or is still hidden.
func (c *Chest) OpenChest() *capability.Item {
	if !c.Interactable() {
		return nil
	}
	c.Open = true
	c.Icon = IconChestOpen
	return c.Item
}
