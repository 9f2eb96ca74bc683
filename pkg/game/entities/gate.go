// Package entities holds the world objects of the ghost game: the
// ability-gated holes, phantom walls and hidden objects, plus chests,
// checkpoints and teleporter pads.
package entities

import (
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/event"
)

// ErrUnboundGate is logged when a gate that depends on abilities has no registry.
var ErrUnboundGate = errors.New("gate has no capability registry")

// ErrDuplicateGate is returned when two gates share an ID on one board.
var ErrDuplicateGate = errors.New("duplicate gate id")

// GateID names a gate within a level.
type GateID string

// GateKind identifies the gate variant.
type GateKind int

const (
	KindHazard GateKind = iota
	KindWall
	KindVisibility
)

// String returns the kind name.
func (k GateKind) String() string {
	switch k {
	case KindHazard:
		return "hazard"
	case KindWall:
		return "wall"
	case KindVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a gate recompute. Hazard and wall gates use
// Closed/Open; visibility gates use Hidden/Revealed.
type Decision int

const (
	Closed Decision = iota
	Open
	Hidden
	Revealed
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case Hidden:
		return "Hidden"
	case Revealed:
		return "Revealed"
	default:
		return "Unknown"
	}
}

// Host is the world object a gate drives. The gate owns the collider flag
// and render alpha of its host.
type Host interface {
	SetColliderEnabled(enabled bool)
	SetAlpha(alpha float64)
}

// Source is what a gate binds to: a capability query that can notify on change.
type Source interface {
	capability.Query
	Subscribe(o capability.Observer) *event.Subscription
}

// Role marks what kind of actor overlaps a gate.
type Role int

const (
	RoleNone Role = iota
	RolePlayer
	RoleCreature
)

// Actor is anything that can overlap a gate.
type Actor interface {
	ActorID() string
	Role() Role
}

// GateChange is published when a gate's decision changes.
type GateChange struct {
	GateID   GateID
	Kind     GateKind
	Decision Decision
}

// Gate is a world object whose passability or visibility follows the held abilities.
type Gate interface {
	capability.Observer

	ID() GateID
	Kind() GateKind
	RequiresAbility() bool

	// Recompute derives the decision from q without touching any state.
	Recompute(q capability.Query) Decision
	// Decision returns the current decision.
	Decision() Decision

	Bind(src Source)
	Tick(dt time.Duration)
	OverlapEnter(a Actor)
	OverlapExit(a Actor)
	Close()

	// OnChange registers the function called after every decision change.
	OnChange(fn func(GateChange))
}

// gateState is the bookkeeping shared by every gate variant.
type gateState struct {
	id       GateID
	kind     GateKind
	requires bool
	decision Decision
	host     Host
	source   Source
	sub      *event.Subscription
	closed   bool
	warned   bool
	onChange func(GateChange)
	logger   *slog.Logger
}

func newGateState(id GateID, kind GateKind, requires bool, initial Decision, host Host, logger *slog.Logger) gateState {
	if logger == nil {
		logger = slog.Default()
	}
	return gateState{
		id:       id,
		kind:     kind,
		requires: requires,
		decision: initial,
		host:     host,
		logger:   logger.With("gate", string(id), "kind", kind.String()),
	}
}

func (s *gateState) ID() GateID                   { return s.id }
func (s *gateState) Kind() GateKind               { return s.kind }
func (s *gateState) RequiresAbility() bool        { return s.requires }
func (s *gateState) Decision() Decision           { return s.decision }
func (s *gateState) OnChange(fn func(GateChange)) { s.onChange = fn }

// bind subscribes obs to src. Gates that need no ability never subscribe.
func (s *gateState) bind(src Source, obs capability.Observer) {
	if s.closed {
		return
	}
	s.unbind()
	if !s.requires {
		return
	}
	s.source = src
	s.warned = false
	if src == nil {
		return
	}
	s.sub = src.Subscribe(obs)
}

func (s *gateState) unbind() {
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	s.source = nil
}

// query returns the bound source, logging once if there is none.
func (s *gateState) query() (capability.Query, bool) {
	if s.source != nil {
		return s.source, true
	}
	if !s.warned {
		s.warned = true
		err := oops.Code("UNBOUND_GATE").With("gate", string(s.id)).Wrap(ErrUnboundGate)
		s.logger.Warn("gate stays in conservative state", "error", err)
	}
	return nil, false
}

// set stores d, lets apply update the host, then notifies the board.
func (s *gateState) set(d Decision, apply func()) bool {
	if s.decision == d {
		return false
	}
	s.decision = d
	s.logger.Debug("gate decision changed", "decision", d.String())
	apply()
	if s.onChange != nil {
		s.onChange(GateChange{GateID: s.id, Kind: s.kind, Decision: d})
	}
	return true
}

func (s *gateState) close() {
	if s.closed {
		return
	}
	s.unbind()
	s.closed = true
	s.onChange = nil
}

// ease moves v toward target at speed per second, snapping when close.
func ease(v, target, speed float64, dt time.Duration) float64 {
	if dt <= 0 {
		return v
	}
	step := speed * dt.Seconds()
	if step > 1 {
		step = 1
	}
	v += (target - v) * step
	if d := target - v; d < 0.001 && d > -0.001 {
		return target
	}
	return v
}
