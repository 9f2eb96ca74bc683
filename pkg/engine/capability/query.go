package capability

// Query is the read-only view of held abilities that world objects depend on.
type Query interface {
	Has(a Ability) bool
	CanWalkOverHazards() bool
	CanSeeHidden() bool
	CanPassWalls() bool
}

// Observer receives registry change events.
type Observer interface {
	Handle(Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(Event)

// Handle calls f(e).
func (f ObserverFunc) Handle(e Event) {
	f(e)
}

// EventKind distinguishes registry change events.
type EventKind int

const (
	ItemAcquired EventKind = iota
	ItemRemoved
	ItemEquipped // single-equipped mode only: a held item became the active one
)

// String returns a readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case ItemAcquired:
		return "ItemAcquired"
	case ItemRemoved:
		return "ItemRemoved"
	case ItemEquipped:
		return "ItemEquipped"
	default:
		return "Unknown"
	}
}

// Event describes one change to the registry.
type Event struct {
	Kind   EventKind
	Item   *Item
	Gained []Ability // abilities that became active, in declaration order
	Lost   []Ability // abilities that stopped being active, in declaration order
}
