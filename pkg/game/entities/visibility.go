package entities

import (
	"log/slog"
	"time"

	"ghostgame/pkg/engine/capability"
)

// Hidden object presentation.
const (
	HiddenAlpha    = 0.0
	VisibleAlpha   = 1.0
	RevealFadeRate = 2.0 // per second
)

// VisibilityGate is a hidden object revealed by SeeHidden.
//
// The reveal latches: losing SeeHidden later never hides the object again.
type VisibilityGate struct {
	gateState

	alpha float64
}

var _ Gate = (*VisibilityGate)(nil)

// NewVisibilityGate creates a hidden object attached to host. With
// requiresAbility false the object is visible from the start.
func NewVisibilityGate(id GateID, requiresAbility bool, host Host, logger *slog.Logger) *VisibilityGate {
	g := &VisibilityGate{
		gateState: newGateState(id, KindVisibility, requiresAbility, Hidden, host, logger),
		alpha:     HiddenAlpha,
	}
	if !requiresAbility {
		g.decision = Revealed
		g.alpha = VisibleAlpha
	}
	g.apply()
	if host != nil {
		host.SetAlpha(g.alpha)
	}
	return g
}

// Recompute returns Revealed when no ability is needed or q holds SeeHidden.
// It ignores the latch, which lives in the gate's state.
func (g *VisibilityGate) Recompute(q capability.Query) Decision {
	if !g.requires {
		return Revealed
	}
	if q != nil && q.Has(capability.SeeHidden) {
		return Revealed
	}
	return Hidden
}

// Bind attaches the gate to a registry and evaluates it immediately.
func (g *VisibilityGate) Bind(src Source) {
	g.bind(src, g)
	g.refresh()
}

// Handle re-evaluates the gate on a registry change.
func (g *VisibilityGate) Handle(capability.Event) {
	g.refresh()
}

// Tick re-validates the decision and fades the object in once revealed.
func (g *VisibilityGate) Tick(dt time.Duration) {
	if g.closed {
		return
	}
	g.refresh()
	target := HiddenAlpha
	if g.decision == Revealed {
		target = VisibleAlpha
	}
	g.alpha = ease(g.alpha, target, RevealFadeRate, dt)
	if g.host != nil {
		g.host.SetAlpha(g.alpha)
	}
}

// Revealed reports whether the object has been seen.
func (g *VisibilityGate) Revealed() bool {
	return g.decision == Revealed
}

// Alpha returns the current render alpha.
func (g *VisibilityGate) Alpha() float64 {
	return g.alpha
}

// OverlapEnter does nothing for hidden objects.
func (g *VisibilityGate) OverlapEnter(Actor) {}

// OverlapExit does nothing for hidden objects.
func (g *VisibilityGate) OverlapExit(Actor) {}

// Close unsubscribes the gate.
func (g *VisibilityGate) Close() {
	g.close()
}

func (g *VisibilityGate) refresh() {
	if g.closed || !g.requires || g.decision == Revealed {
		return
	}
	d := Hidden
	if q, ok := g.query(); ok {
		d = g.Recompute(q)
	}
	g.set(d, g.apply)
}

func (g *VisibilityGate) apply() {
	if g.host == nil {
		return
	}
	g.host.SetColliderEnabled(g.decision == Revealed)
}
