package entities

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/event"
)

type recordingHost struct {
	collider bool
	alpha    float64
	writes   int
}

func (h *recordingHost) SetColliderEnabled(enabled bool) {
	h.collider = enabled
	h.writes++
}

func (h *recordingHost) SetAlpha(alpha float64) {
	h.alpha = alpha
	h.writes++
}

type testActor struct {
	id   string
	role Role
}

func (a testActor) ActorID() string { return a.id }
func (a testActor) Role() Role      { return a.role }

var (
	player = testActor{id: "ghost", role: RolePlayer}
	bat    = testActor{id: "bat", role: RoleCreature}

	lei    = NewItem(ItemHulaLei)
	shades = NewItem(ItemSunShades)
	hat    = NewItem(ItemPartyHat)
)

type rejectLog struct {
	calls []string
}

func (r *rejectLog) RejectCrossing(a Actor, g *HazardGate) {
	r.calls = append(r.calls, a.ActorID()+"@"+string(g.ID()))
}

// staticQuery answers from a fixed set and counts calls.
type staticQuery struct {
	abilities map[capability.Ability]bool
	calls     int
}

func (q *staticQuery) Has(a capability.Ability) bool {
	q.calls++
	return q.abilities[a]
}
func (q *staticQuery) CanWalkOverHazards() bool { return q.Has(capability.WalkOverHazards) }
func (q *staticQuery) CanSeeHidden() bool       { return q.Has(capability.SeeHidden) }
func (q *staticQuery) CanPassWalls() bool       { return q.Has(capability.PassThroughWalls) }
func (q *staticQuery) Subscribe(capability.Observer) *event.Subscription {
	return &event.Subscription{}
}

func TestHazardGate_RejectsOncePerOverlap(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	hole := NewHazardGate("hole-1", true, host, nil)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	hole.Bind(reg)

	hole.OverlapEnter(player)
	hole.OverlapEnter(player)
	assert.Equal(t, []string{"ghost@hole-1"}, rejects.calls, "re-entering without exit must not re-trigger")

	hole.OverlapExit(player)
	hole.OverlapEnter(player)
	assert.Len(t, rejects.calls, 2, "a new overlap rejects again")
	assert.Equal(t, Closed, hole.Decision())
	assert.Equal(t, HoleAlphaClosed, host.alpha)
	assert.True(t, host.collider, "hole trigger stays enabled")
}

func TestHazardGate_OpenAfterGrantNeverRejects(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	hole := NewHazardGate("hole-1", true, host, nil)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	hole.Bind(reg)

	require.NoError(t, reg.Grant(lei))
	assert.Equal(t, Open, hole.Decision())
	assert.Equal(t, HoleAlphaOpen, host.alpha)

	hole.OverlapEnter(player)
	hole.OverlapExit(player)
	assert.Empty(t, rejects.calls)
	assert.False(t, hole.Processing())
}

func TestHazardGate_RecomputesBeforeOverlap(t *testing.T) {
	// The ability appears without a notification (e.g. a registry swapped in
	// this tick); the overlap must still see it.
	q := &staticQuery{abilities: map[capability.Ability]bool{}}
	hole := NewHazardGate("hole-1", true, nil, nil)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	hole.Bind(q)
	require.Equal(t, Closed, hole.Decision())

	q.abilities[capability.WalkOverHazards] = true
	hole.OverlapEnter(player)

	assert.Empty(t, rejects.calls)
	assert.Equal(t, Open, hole.Decision())
}

func TestHazardGate_IgnoresNonPlayers(t *testing.T) {
	hole := NewHazardGate("hole-1", true, nil, nil)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	hole.Bind(capability.NewRegistry())

	hole.OverlapEnter(bat)
	assert.Empty(t, rejects.calls)
}

func TestHazardGate_ExitClearsDebounceForNextEntry(t *testing.T) {
	hole := NewHazardGate("hole-1", true, nil, nil)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)
	hole.Bind(capability.NewRegistry())

	hole.OverlapEnter(player)
	assert.True(t, hole.Processing())
	hole.OverlapExit(player) // respawn moved the player away
	assert.False(t, hole.Processing())

	hole.OverlapEnter(player)
	assert.Len(t, rejects.calls, 2, "every discrete entry onto a closed hole is rejected")
}

func TestHazardGate_RevertsWhenAbilityLost(t *testing.T) {
	reg := capability.NewRegistry()
	hole := NewHazardGate("hole-1", true, nil, nil)
	var changes []GateChange
	hole.OnChange(func(c GateChange) { changes = append(changes, c) })
	hole.Bind(reg)

	require.NoError(t, reg.Grant(lei))
	require.NoError(t, reg.Revoke(lei))

	assert.Equal(t, Closed, hole.Decision())
	assert.Equal(t, []GateChange{
		{GateID: "hole-1", Kind: KindHazard, Decision: Open},
		{GateID: "hole-1", Kind: KindHazard, Decision: Closed},
	}, changes)
}

func TestGate_NotRequiringAbilityNeverSubscribes(t *testing.T) {
	reg := capability.NewRegistry()
	q := &staticQuery{}

	hole := NewHazardGate("h", false, nil, nil)
	wall := NewWallGate("w", false, &recordingHost{}, nil)
	hidden := NewVisibilityGate("v", false, &recordingHost{}, nil)

	for _, g := range []Gate{hole, wall, hidden} {
		g.Bind(reg)
		g.Tick(time.Second)
		g.Bind(q)
		g.Tick(time.Second)
	}

	assert.Equal(t, 0, reg.Subscribers())
	assert.Zero(t, q.calls)
	assert.Equal(t, Open, hole.Decision())
	assert.Equal(t, Open, wall.Decision())
	assert.Equal(t, Revealed, hidden.Decision())
}

func TestGate_UnboundLogsOnceAndStaysConservative(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	hole := NewHazardGate("h", true, nil, logger)
	wall := NewWallGate("w", true, &recordingHost{}, logger)
	hidden := NewVisibilityGate("v", true, &recordingHost{}, logger)
	rejects := &rejectLog{}
	hole.SetCrossingHandler(rejects)

	for range 5 {
		hole.Tick(16 * time.Millisecond)
		wall.Tick(16 * time.Millisecond)
		hidden.Tick(16 * time.Millisecond)
	}
	hole.OverlapEnter(player)

	assert.Equal(t, Closed, hole.Decision())
	assert.Equal(t, Closed, wall.Decision())
	assert.Equal(t, Hidden, hidden.Decision())
	assert.Len(t, rejects.calls, 1, "a degraded hole still rejects")
	assert.Equal(t, 3, strings.Count(buf.String(), "gate stays in conservative state"))
}

func TestGate_CloseUnsubscribes(t *testing.T) {
	reg := capability.NewRegistry()
	hole := NewHazardGate("h", true, nil, nil)
	hole.Bind(reg)
	require.Equal(t, 1, reg.Subscribers())

	hole.Close()
	assert.Equal(t, 0, reg.Subscribers())

	require.NoError(t, reg.Grant(lei))
	hole.Tick(time.Second)
	assert.Equal(t, Closed, hole.Decision(), "closed gate ignores the registry")
}

func TestGate_RebindMovesSubscription(t *testing.T) {
	first := capability.NewRegistry()
	second := capability.NewRegistry()
	wall := NewWallGate("w", true, nil, nil)

	wall.Bind(first)
	wall.Bind(second)

	assert.Equal(t, 0, first.Subscribers())
	assert.Equal(t, 1, second.Subscribers())
}

func TestRecompute_IsPure(t *testing.T) {
	q := &staticQuery{abilities: map[capability.Ability]bool{
		capability.WalkOverHazards:  true,
		capability.PassThroughWalls: true,
		capability.SeeHidden:        true,
	}}
	hostH, hostW, hostV := &recordingHost{}, &recordingHost{}, &recordingHost{}
	hole := NewHazardGate("h", true, hostH, nil)
	wall := NewWallGate("w", true, hostW, nil)
	hidden := NewVisibilityGate("v", true, hostV, nil)
	before := []int{hostH.writes, hostW.writes, hostV.writes}

	assert.Equal(t, Open, hole.Recompute(q))
	assert.Equal(t, Open, wall.Recompute(q))
	assert.Equal(t, Revealed, hidden.Recompute(q))
	assert.Equal(t, Closed, hole.Recompute(nil))

	assert.Equal(t, Closed, hole.Decision())
	assert.Equal(t, Closed, wall.Decision())
	assert.Equal(t, Hidden, hidden.Decision())
	assert.Equal(t, before, []int{hostH.writes, hostW.writes, hostV.writes})
}
