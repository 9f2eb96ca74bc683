package entities

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
)

func TestWallGate_ColliderFollowsDecisionImmediately(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	wall := NewWallGate("w", true, host, nil)
	wall.Bind(reg)
	require.True(t, host.collider)

	require.NoError(t, reg.Grant(hat))

	assert.Equal(t, Open, wall.Decision())
	assert.False(t, host.collider, "collider drops before any fade has happened")
	assert.Zero(t, wall.Transition())
}

func TestWallGate_FadesTowardPassable(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	wall := NewWallGate("w", true, host, nil)
	wall.Bind(reg)
	require.NoError(t, reg.Grant(hat))

	wall.Tick(100 * time.Millisecond)
	assert.InDelta(t, 0.3, wall.Transition(), 1e-9)
	assert.InDelta(t, 0.85, host.alpha, 1e-9)

	for range 100 {
		wall.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, 1.0, wall.Transition())
	assert.Equal(t, WallAlphaPassable, host.alpha)
}

func TestWallGate_TransitionNeverAffectsDecision(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	reg := capability.NewRegistry()
	host := &recordingHost{}
	wall := NewWallGate("w", true, host, nil)
	wall.Bind(reg)

	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0:
			require.NoError(t, reg.Grant(hat))
		case 1:
			require.NoError(t, reg.Revoke(hat))
		default:
			wall.Tick(time.Duration(rng.Intn(50)) * time.Millisecond)
		}

		want := Closed
		if reg.CanPassWalls() {
			want = Open
		}
		assert.Equal(t, want, wall.Decision(), "step %d", i)
		assert.Equal(t, want, wall.Recompute(reg), "step %d", i)
		assert.Equal(t, want == Closed, host.collider, "step %d", i)
	}
}

func TestVisibilityGate_RevealIsSticky(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	hidden := NewVisibilityGate("v", true, host, nil)
	hidden.Bind(reg)
	assert.Equal(t, Hidden, hidden.Decision())
	assert.False(t, host.collider)
	assert.Zero(t, host.alpha)

	require.NoError(t, reg.Grant(shades))
	assert.Equal(t, Revealed, hidden.Decision())
	assert.True(t, host.collider)

	require.NoError(t, reg.Revoke(shades))
	for range 10 {
		hidden.Tick(100 * time.Millisecond)
	}

	assert.Equal(t, Revealed, hidden.Decision())
	assert.True(t, hidden.Revealed())
	assert.Equal(t, Hidden, hidden.Recompute(reg), "recompute itself reflects the registry")
	assert.Greater(t, hidden.Alpha(), 0.5)
}

func TestVisibilityGate_FadesIn(t *testing.T) {
	reg := capability.NewRegistry()
	host := &recordingHost{}
	hidden := NewVisibilityGate("v", true, host, nil)
	hidden.Bind(reg)
	require.NoError(t, reg.Grant(shades))

	hidden.Tick(250 * time.Millisecond)
	assert.InDelta(t, 0.5, hidden.Alpha(), 1e-9)
	assert.InDelta(t, 0.5, host.alpha, 1e-9)

	hidden.Tick(time.Second)
	assert.Equal(t, VisibleAlpha, hidden.Alpha())
}

func TestScenario_GrantGrantRevokeGates(t *testing.T) {
	reg := capability.NewRegistry()
	hole := NewHazardGate("h", true, nil, nil)
	hidden := NewVisibilityGate("v", true, nil, nil)
	hole.Bind(reg)
	hidden.Bind(reg)

	a := capability.NewItem("a", "A", capability.WalkOverHazards)
	b := capability.NewItem("b", "B", capability.SeeHidden)
	require.NoError(t, reg.Grant(a))
	require.NoError(t, reg.Grant(b))
	require.NoError(t, reg.Revoke(a))

	assert.Equal(t, []capability.Ability{capability.SeeHidden}, reg.ActiveAbilities())
	assert.Equal(t, Closed, hole.Decision())
	assert.Equal(t, Revealed, hidden.Decision())
}
