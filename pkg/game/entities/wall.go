package entities

import (
	"log/slog"
	"time"

	"ghostgame/pkg/engine/capability"
)

// Phantom wall presentation.
const (
	WallAlphaSolid      = 1.0
	WallAlphaPassable   = 0.5
	WallTransitionSpeed = 3.0 // per second
)

// WallGate is a phantom wall. With PassThroughWalls its collider turns off.
//
// The transition value only drives the fade; the collider always follows
// the decision directly.
type WallGate struct {
	gateState

	transition float64 // 0 = solid, 1 = passable
}

var _ Gate = (*WallGate)(nil)

// NewWallGate creates a phantom wall attached to host.
func NewWallGate(id GateID, requiresAbility bool, host Host, logger *slog.Logger) *WallGate {
	g := &WallGate{gateState: newGateState(id, KindWall, requiresAbility, Closed, host, logger)}
	if !requiresAbility {
		g.decision = Open
		g.transition = 1
	}
	g.apply()
	if host != nil {
		host.SetAlpha(g.Alpha())
	}
	return g
}

// Recompute returns Open when no ability is needed or q holds PassThroughWalls.
func (g *WallGate) Recompute(q capability.Query) Decision {
	if !g.requires {
		return Open
	}
	if q != nil && q.Has(capability.PassThroughWalls) {
		return Open
	}
	return Closed
}

// Bind attaches the gate to a registry and evaluates it immediately.
func (g *WallGate) Bind(src Source) {
	g.bind(src, g)
	g.refresh()
}

// Handle re-evaluates the gate on a registry change.
func (g *WallGate) Handle(capability.Event) {
	g.refresh()
}

// Tick re-validates the decision and eases the fade toward it.
func (g *WallGate) Tick(dt time.Duration) {
	if g.closed {
		return
	}
	g.refresh()
	target := 0.0
	if g.decision == Open {
		target = 1
	}
	g.transition = ease(g.transition, target, WallTransitionSpeed, dt)
	if g.host != nil {
		g.host.SetAlpha(g.Alpha())
	}
}

// Transition returns the cosmetic fade progress in [0,1].
func (g *WallGate) Transition() float64 {
	return g.transition
}

// Alpha returns the render alpha for the current transition.
func (g *WallGate) Alpha() float64 {
	return WallAlphaSolid + (WallAlphaPassable-WallAlphaSolid)*g.transition
}

// OverlapEnter only logs; an open wall has no collider to stop anyone.
func (g *WallGate) OverlapEnter(a Actor) {
	if g.closed || a == nil || a.Role() != RolePlayer {
		return
	}
	if g.decision == Open {
		g.logger.Debug("passing through phantom wall", "actor", a.ActorID())
	}
}

// OverlapExit does nothing for walls.
func (g *WallGate) OverlapExit(Actor) {}

// Close unsubscribes the gate.
func (g *WallGate) Close() {
	g.close()
}

func (g *WallGate) refresh() {
	if g.closed || !g.requires {
		return
	}
	d := Closed
	if q, ok := g.query(); ok {
		d = g.Recompute(q)
	}
	g.set(d, g.apply)
}

func (g *WallGate) apply() {
	if g.host == nil {
		return
	}
	g.host.SetColliderEnabled(g.decision != Open)
}
