package entities

import (
	"strings"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/capability"
)

// ItemType identifies one of the authored wearable items.
type ItemType int

const (
	ItemHulaLei   ItemType = iota // walk over holes
	ItemSunShades                 // see hidden things
	ItemPartyHat                  // pass through phantom walls
)

// ItemInfo contains the authored data for an item type
type ItemInfo struct {
	Key         string
	Name        string
	Description string
	Icon        string
	Overlay     string // drawn over the player while worn
	Grants      []capability.Ability
}

// ItemTypes maps item types to their authored data
var ItemTypes = map[ItemType]ItemInfo{
	ItemHulaLei: {
		Key:         "hula_lei",
		Name:        "Hula Lei",
		Description: "A garland of paper flowers. Ghosts wearing it float over holes.",
		Icon:        "❀",
		Overlay:     "~",
		Grants:      []capability.Ability{capability.WalkOverHazards},
	},
	ItemSunShades: {
		Key:         "sun_shades",
		Name:        "Sun Shades",
		Description: "Tinted just right to show what others cannot see.",
		Icon:        "⌐",
		Overlay:     "-",
		Grants:      []capability.Ability{capability.SeeHidden},
	},
	ItemPartyHat: {
		Key:         "party_hat",
		Name:        "Party Hat",
		Description: "Nobody stops a ghost in a party hat. Not even walls.",
		Icon:        "▲",
		Overlay:     "^",
		Grants:      []capability.Ability{capability.PassThroughWalls},
	},
}

// itemOrder lists item types in catalogue order.
var itemOrder = []ItemType{ItemHulaLei, ItemSunShades, ItemPartyHat}

// AllItemTypes returns every item type in catalogue order.
func AllItemTypes() []ItemType {
	return append([]ItemType(nil), itemOrder...)
}

// NewItem builds the capability item for t.
func NewItem(t ItemType) *capability.Item {
	info := ItemTypes[t]
	return capability.NewItem(capability.ItemID(info.Key), info.Name, info.Grants...).
		WithDetails(info.Description, info.Icon, info.Overlay)
}

// LookupItemType finds an item type by its key, e.g. "hula_lei".
func LookupItemType(key string) (ItemType, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, t := range itemOrder {
		if ItemTypes[t].Key == k {
			return t, nil
		}
	}
	return 0, oops.Code("UNKNOWN_ITEM").With("item", key).Wrap(capability.ErrInvalidItem)
}
