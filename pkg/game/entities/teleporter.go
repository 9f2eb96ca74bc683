package entities

import "time"

// Teleporter timings
const (
	TeleportDelay    = 200 * time.Millisecond
	TeleportSettle   = 100 * time.Millisecond
	TeleportCooldown = 500 * time.Millisecond
)

// IconTeleporter marks a teleporter pad on the map
const IconTeleporter = "⊙"

// Teleporter is a pad that moves the player to its destination cell.
type Teleporter struct {
	ID          string
	Cell        string
	Destination string
	Sequence    int  // -1 when the pad is not part of a sequence puzzle
	Busy        bool // set while teleporting and during the cooldown
}

// NewTeleporter creates a pad on cell with no destination.
func NewTeleporter(id, cell string) *Teleporter {
	return &Teleporter{ID: id, Cell: cell, Sequence: -1}
}

// Link makes a and b lead to each other.
func Link(a, b *Teleporter) {
	a.Destination = b.Cell
	b.Destination = a.Cell
}

// TeleportOutcome is the result of stepping onto a pad.
type TeleportOutcome int

const (
	TeleportNone TeleportOutcome = iota
	TeleportGo
	TeleportWrongSequence
)

// TeleportNetwork tracks the pads of a level and the sequence puzzle position.
type TeleportNetwork struct {
	pads    []*Teleporter
	byCell  map[string]*Teleporter
	current int
}

// NewTeleportNetwork creates an empty network.
func NewTeleportNetwork() *TeleportNetwork {
	return &TeleportNetwork{byCell: make(map[string]*Teleporter)}
}

// Add registers a pad.
func (n *TeleportNetwork) Add(t *Teleporter) {
	n.pads = append(n.pads, t)
	n.byCell[t.Cell] = t
}

// At returns the pad on cell, if any.
func (n *TeleportNetwork) At(cell string) *Teleporter {
	return n.byCell[cell]
}

// Pads returns every pad.
func (n *TeleportNetwork) Pads() []*Teleporter {
	return n.pads
}

// Current returns the next expected sequence number.
func (n *TeleportNetwork) Current() int {
	return n.current
}

// Attempt decides what happens when the player steps on t. Stepping on a
// sequenced pad out of turn resets the puzzle.
func (n *TeleportNetwork) Attempt(t *Teleporter) TeleportOutcome {
	if t == nil || t.Busy || t.Destination == "" {
		return TeleportNone
	}
	if t.Sequence < 0 {
		return TeleportGo
	}
	if t.Sequence != n.current {
		n.current = 0
		return TeleportWrongSequence
	}
	n.current++
	return TeleportGo
}

// Reset clears the sequence puzzle and every cooldown.
func (n *TeleportNetwork) Reset() {
	n.current = 0
	for _, t := range n.pads {
		t.Busy = false
	}
}
