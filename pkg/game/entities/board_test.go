package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/event"
)

func newTestBoard(t *testing.T) (*Board, *HazardGate, *WallGate, *VisibilityGate) {
	t.Helper()
	b := NewBoard(nil)
	hole := NewHazardGate("hole", true, &recordingHost{}, nil)
	wall := NewWallGate("wall", true, &recordingHost{}, nil)
	hidden := NewVisibilityGate("hidden", true, &recordingHost{}, nil)
	require.NoError(t, b.Add(hole))
	require.NoError(t, b.Add(wall))
	require.NoError(t, b.Add(hidden))
	return b, hole, wall, hidden
}

func TestBoard_PublishesDecisionChanges(t *testing.T) {
	reg := capability.NewRegistry()
	b, _, _, _ := newTestBoard(t)
	var got []GateChange
	b.Subscribe(event.HandlerFunc[GateChange](func(c GateChange) { got = append(got, c) }))
	b.Bind(reg)

	require.NoError(t, reg.Grant(NewItem(ItemHulaLei)))
	require.NoError(t, reg.Grant(NewItem(ItemSunShades)))
	require.NoError(t, reg.Grant(NewItem(ItemPartyHat)))

	assert.Equal(t, []GateChange{
		{GateID: "hole", Kind: KindHazard, Decision: Open},
		{GateID: "hidden", Kind: KindVisibility, Decision: Revealed},
		{GateID: "wall", Kind: KindWall, Decision: Open},
	}, got)
}

func TestBoard_RejectsDuplicateIDs(t *testing.T) {
	b, _, _, _ := newTestBoard(t)
	err := b.Add(NewWallGate("wall", true, nil, nil))
	assert.ErrorIs(t, err, ErrDuplicateGate)
	assert.Equal(t, 3, b.Len())
}

func TestBoard_AddAfterBindBindsGate(t *testing.T) {
	reg := capability.NewRegistry()
	require.NoError(t, reg.Grant(NewItem(ItemPartyHat)))
	b := NewBoard(nil)
	b.Bind(reg)

	late := NewWallGate("late", true, nil, nil)
	require.NoError(t, b.Add(late))
	assert.Equal(t, Open, late.Decision())
}

func TestBoard_RoutesOverlaps(t *testing.T) {
	reg := capability.NewRegistry()
	b, hole, _, _ := newTestBoard(t)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	b.Bind(reg)

	b.OverlapEnter(player, "hole")
	b.OverlapEnter(player, "missing")
	b.OverlapExit(player, "hole")
	b.OverlapEnter(player, "hole")

	assert.Equal(t, []string{"ghost@hole", "ghost@hole"}, rejects.calls)
}

func TestBoard_TickRevalidatesLateRegistry(t *testing.T) {
	b, hole, wall, hidden := newTestBoard(t)
	b.Tick(time.Millisecond) // unbound: conservative
	assert.Equal(t, Closed, hole.Decision())

	q := &staticQuery{abilities: map[capability.Ability]bool{
		capability.WalkOverHazards:  true,
		capability.PassThroughWalls: true,
		capability.SeeHidden:        true,
	}}
	b.Bind(q)
	b.Tick(time.Millisecond)

	assert.Equal(t, Open, hole.Decision())
	assert.Equal(t, Open, wall.Decision())
	assert.Equal(t, Revealed, hidden.Decision())
}

func TestBoard_CloseReleasesRegistry(t *testing.T) {
	reg := capability.NewRegistry()
	b, _, _, _ := newTestBoard(t)
	var got int
	b.Subscribe(event.HandlerFunc[GateChange](func(GateChange) { got++ }))
	b.Bind(reg)
	require.Equal(t, 3, reg.Subscribers())

	b.Close()
	require.NoError(t, reg.Grant(NewItem(ItemHulaLei)))

	assert.Equal(t, 0, reg.Subscribers())
	assert.Equal(t, 0, b.Len())
	assert.Zero(t, got)
}
