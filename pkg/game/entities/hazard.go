package entities

import (
	"log/slog"
	"time"

	"ghostgame/pkg/engine/capability"
)

// GateInfo contains display information for each gate kind
type GateInfo struct {
	Name           string
	BlockedMessage string // locale key shown when the gate stops the player
	OpenMessage    string // locale key shown when the gate opens
	Icon           string
	IconOpen       string
	Ability        capability.Ability
}

// GateTypes maps gate kinds to their display information
var GateTypes = map[GateKind]GateInfo{
	KindHazard: {
		Name:           "Hole",
		BlockedMessage: "HOLE_BLOCKED",
		OpenMessage:    "HOLE_OPEN",
		Icon:           "◘",
		IconOpen:       "◌",
		Ability:        capability.WalkOverHazards,
	},
	KindWall: {
		Name:           "Phantom Wall",
		BlockedMessage: "WALL_BLOCKED",
		OpenMessage:    "WALL_OPEN",
		Icon:           "▓",
		IconOpen:       "░",
		Ability:        capability.PassThroughWalls,
	},
	KindVisibility: {
		Name:           "Hidden Object",
		BlockedMessage: "HIDDEN_BLOCKED",
		OpenMessage:    "HIDDEN_REVEALED",
		Icon:           " ",
		IconOpen:       "✧",
		Ability:        capability.SeeHidden,
	},
}

// Hole render alphas.
const (
	HoleAlphaClosed = 1.0
	HoleAlphaOpen   = 0.5
)

// CrossingHandler reacts when a closed hazard gate rejects an actor.
type CrossingHandler interface {
	RejectCrossing(a Actor, gate *HazardGate)
}

// CrossingHandlerFunc adapts a function to a CrossingHandler.
type CrossingHandlerFunc func(a Actor, gate *HazardGate)

// RejectCrossing calls f(a, gate).
func (f CrossingHandlerFunc) RejectCrossing(a Actor, gate *HazardGate) {
	f(a, gate)
}

// HazardGate is a hole. Without WalkOverHazards the player falls in.
//
// A rejection fires at most once per overlap: the gate stays in processing
// until the actor leaves.
type HazardGate struct {
	gateState

	handler     CrossingHandler
	processing  bool
	overlapping bool
	respawn     string // cell name the player returns to after falling, optional
}

var _ Gate = (*HazardGate)(nil)

// NewHazardGate creates a hole attached to host.
func NewHazardGate(id GateID, requiresAbility bool, host Host, logger *slog.Logger) *HazardGate {
	initial := Closed
	if !requiresAbility {
		initial = Open
	}
	g := &HazardGate{gateState: newGateState(id, KindHazard, requiresAbility, initial, host, logger)}
	g.apply()
	return g
}

// SetCrossingHandler sets who is told when the hole rejects an actor.
func (g *HazardGate) SetCrossingHandler(h CrossingHandler) {
	g.handler = h
}

// SetRespawn sets the cell name a falling player is returned to.
func (g *HazardGate) SetRespawn(cell string) {
	g.respawn = cell
}

// Respawn returns the respawn cell name, or "" if the hole has none.
func (g *HazardGate) Respawn() string {
	return g.respawn
}

// Recompute returns Open when no ability is needed or q holds WalkOverHazards.
func (g *HazardGate) Recompute(q capability.Query) Decision {
	if !g.requires {
		return Open
	}
	if q != nil && q.Has(capability.WalkOverHazards) {
		return Open
	}
	return Closed
}

// Bind attaches the gate to a registry and evaluates it immediately.
func (g *HazardGate) Bind(src Source) {
	g.bind(src, g)
	g.refresh()
}

// Handle re-evaluates the gate on a registry change.
func (g *HazardGate) Handle(capability.Event) {
	g.refresh()
}

// Tick re-validates the decision.
func (g *HazardGate) Tick(time.Duration) {
	g.refresh()
}

// OverlapEnter decides before reacting, so an ability granted this tick is honoured.
func (g *HazardGate) OverlapEnter(a Actor) {
	if g.closed || a == nil || a.Role() != RolePlayer {
		return
	}
	g.overlapping = true
	g.refresh()
	if g.decision == Open || g.processing {
		return
	}
	g.processing = true
	g.logger.Debug("crossing rejected", "actor", a.ActorID())
	if g.handler != nil {
		g.handler.RejectCrossing(a, g)
	}
}

// OverlapExit ends the overlap and clears the debounce.
func (g *HazardGate) OverlapExit(a Actor) {
	if a == nil || a.Role() != RolePlayer {
		return
	}
	g.overlapping = false
	g.processing = false
}

// Processing reports whether a rejection is in progress.
func (g *HazardGate) Processing() bool {
	return g.processing
}

// Close unsubscribes the gate. A closed gate ignores all further input.
func (g *HazardGate) Close() {
	g.close()
}

func (g *HazardGate) refresh() {
	if g.closed || !g.requires {
		return
	}
	d := Closed
	if q, ok := g.query(); ok {
		d = g.Recompute(q)
	}
	g.set(d, g.apply)
}

func (g *HazardGate) apply() {
	if g.host == nil {
		return
	}
	// The hole is a trigger; its collider stays on so overlaps keep arriving.
	g.host.SetColliderEnabled(true)
	if g.decision == Open {
		g.host.SetAlpha(HoleAlphaOpen)
	} else {
		g.host.SetAlpha(HoleAlphaClosed)
	}
}
