package entities

import (
	"log/slog"
	"time"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/event"
)

// Board owns the gates of one level. It routes overlap and tick events to
// them and republishes their decision changes.
type Board struct {
	gates   map[GateID]Gate
	order   []GateID
	changes *event.Bus[GateChange]
	source  Source
	logger  *slog.Logger
}

// NewBoard creates an empty board.
func NewBoard(logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		gates:   make(map[GateID]Gate),
		changes: event.NewBus[GateChange](),
		logger:  logger,
	}
}

// Add registers g. If the board is already bound, g is bound too.
func (b *Board) Add(g Gate) error {
	if g == nil {
		return oops.Code("INVALID_GATE").Errorf("nil gate")
	}
	if _, ok := b.gates[g.ID()]; ok {
		return oops.Code("DUPLICATE_GATE").With("gate", string(g.ID())).Wrap(ErrDuplicateGate)
	}
	b.gates[g.ID()] = g
	b.order = append(b.order, g.ID())
	g.OnChange(b.changes.Publish)
	if b.source != nil {
		g.Bind(b.source)
	}
	return nil
}

// Get returns the gate with the given ID.
func (b *Board) Get(id GateID) (Gate, bool) {
	g, ok := b.gates[id]
	return g, ok
}

// Gates returns all gates in the order they were added.
func (b *Board) Gates() []Gate {
	out := make([]Gate, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.gates[id])
	}
	return out
}

// Len returns the number of gates.
func (b *Board) Len() int {
	return len(b.order)
}

// Bind attaches every gate to src.
func (b *Board) Bind(src Source) {
	b.source = src
	for _, id := range b.order {
		b.gates[id].Bind(src)
	}
}

// Tick advances every gate.
func (b *Board) Tick(dt time.Duration) {
	for _, id := range b.order {
		b.gates[id].Tick(dt)
	}
}

// OverlapEnter tells gate id that a has started overlapping it.
func (b *Board) OverlapEnter(a Actor, id GateID) {
	g, ok := b.gates[id]
	if !ok {
		b.logger.Debug("overlap on unknown gate", "gate", string(id))
		return
	}
	g.OverlapEnter(a)
}

// OverlapExit tells gate id that a has stopped overlapping it.
func (b *Board) OverlapExit(a Actor, id GateID) {
	if g, ok := b.gates[id]; ok {
		g.OverlapExit(a)
	}
}

// Subscribe registers h for gate decision changes.
func (b *Board) Subscribe(h event.Handler[GateChange]) *event.Subscription {
	sub, _ := b.changes.Subscribe(h)
	return sub
}

// Close closes every gate and drops all subscribers.
func (b *Board) Close() {
	for _, id := range b.order {
		b.gates[id].Close()
	}
	b.gates = make(map[GateID]Gate)
	b.order = nil
	b.source = nil
	b.changes.Clear()
}
