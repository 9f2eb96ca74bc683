package capability

import (
	"github.com/samber/oops"
)

// ItemID identifies an item. Two items with the same ID are the same item.
type ItemID string

// Item is an authored, immutable descriptor for something the player can hold.
// Display fields are informational; only the granted abilities matter for gating.
type Item struct {
	ID          ItemID
	Name        string
	Description string
	Icon        string
	Overlay     string // shown on the player while the item is active

	grants []Ability
}

// NewItem creates an item granting the given abilities. Duplicate abilities
// are collapsed.
func NewItem(id ItemID, name string, grants ...Ability) *Item {
	item := &Item{ID: id, Name: name}
	for _, a := range grants {
		if !item.GrantsAbility(a) {
			item.grants = append(item.grants, a)
		}
	}
	return item
}

// WithDetails returns a copy of the item with display metadata filled in.
func (i *Item) WithDetails(description, icon, overlay string) *Item {
	cp := *i
	cp.Description = description
	cp.Icon = icon
	cp.Overlay = overlay
	cp.grants = append([]Ability(nil), i.grants...)
	return &cp
}

// Grants returns a copy of the abilities this item grants.
func (i *Item) Grants() []Ability {
	if i == nil {
		return nil
	}
	return append([]Ability(nil), i.grants...)
}

// GrantsAbility returns true if holding the item grants a.
func (i *Item) GrantsAbility(a Ability) bool {
	if i == nil {
		return false
	}
	for _, g := range i.grants {
		if g == a {
			return true
		}
	}
	return false
}

// Validate reports why an item cannot be held, wrapping ErrInvalidItem.
func (i *Item) Validate() error {
	if i == nil {
		return oops.Code("INVALID_ITEM").Wrapf(ErrInvalidItem, "nil item")
	}
	if i.ID == "" {
		return oops.Code("INVALID_ITEM").With("name", i.Name).Wrapf(ErrInvalidItem, "item has no id")
	}
	for _, a := range i.grants {
		if !a.IsValid() {
			return oops.Code("INVALID_ITEM").
				With("item_id", i.ID).
				With("ability", int(a)).
				Wrapf(ErrInvalidItem, "item grants unknown ability")
		}
	}
	return nil
}

// String returns the item's display name, falling back to its ID.
func (i *Item) String() string {
	if i == nil {
		return "<nil>"
	}
	if i.Name != "" {
		return i.Name
	}
	return string(i.ID)
}
