package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
)

func TestItemCatalogue(t *testing.T) {
	for _, typ := range AllItemTypes() {
		item := NewItem(typ)
		require.NoError(t, item.Validate())
		assert.Len(t, item.Grants(), 1, item.Name)
	}
	assert.True(t, NewItem(ItemHulaLei).GrantsAbility(capability.WalkOverHazards))
	assert.True(t, NewItem(ItemSunShades).GrantsAbility(capability.SeeHidden))
	assert.True(t, NewItem(ItemPartyHat).GrantsAbility(capability.PassThroughWalls))
}

func TestLookupItemType(t *testing.T) {
	typ, err := LookupItemType(" Sun_Shades ")
	require.NoError(t, err)
	assert.Equal(t, ItemSunShades, typ)

	_, err = LookupItemType("hover_boots")
	assert.ErrorIs(t, err, capability.ErrInvalidItem)
}

func TestChest_OpensOnce(t *testing.T) {
	chest := NewChest("Old Chest", NewItem(ItemHulaLei))
	require.True(t, chest.Interactable())

	item := chest.OpenChest()
	require.NotNil(t, item)
	assert.Equal(t, "Hula Lei", item.Name)
	assert.Equal(t, IconChestOpen, chest.Icon)

	assert.Nil(t, chest.OpenChest())
	assert.False(t, chest.Interactable())
}

func TestChest_HiddenUntilRevealed(t *testing.T) {
	reg := capability.NewRegistry()
	chest := NewChest("Secret Chest", NewItem(ItemPartyHat))
	chest.Gate = NewVisibilityGate("secret", true, nil, nil)
	chest.Gate.Bind(reg)

	assert.False(t, chest.Visible())
	assert.Nil(t, chest.OpenChest())

	require.NoError(t, reg.Grant(NewItem(ItemSunShades)))
	assert.True(t, chest.Visible())
	assert.NotNil(t, chest.OpenChest())
}

func TestCheckpoint_ActivatesOnce(t *testing.T) {
	cp := NewCheckpoint("Camp", "3:4")
	assert.True(t, cp.Activate())
	assert.False(t, cp.Activate())
	assert.True(t, cp.Activated)
}

func TestTeleportNetwork_Sequence(t *testing.T) {
	n := NewTeleportNetwork()
	a, b, c := NewTeleporter("a", "1:1"), NewTeleporter("b", "1:5"), NewTeleporter("c", "5:5")
	Link(a, b)
	c.Destination = "1:1"
	a.Sequence, c.Sequence = 0, 1
	for _, p := range []*Teleporter{a, b, c} {
		n.Add(p)
	}

	assert.Equal(t, TeleportWrongSequence, n.Attempt(c))
	assert.Equal(t, 0, n.Current())
	assert.Equal(t, TeleportGo, n.Attempt(a))
	assert.Equal(t, TeleportGo, n.Attempt(b), "unsequenced pad always works")
	assert.Equal(t, TeleportGo, n.Attempt(c))
	assert.Equal(t, 2, n.Current())

	a.Busy = true
	assert.Equal(t, TeleportNone, n.Attempt(a))
	assert.Same(t, b, n.At("1:5"))

	n.Reset()
	assert.False(t, a.Busy)
	assert.Equal(t, 0, n.Current())
}
