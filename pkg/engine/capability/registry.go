package capability

import (
	"log/slog"
	"strings"

	"github.com/samber/oops"
	"github.com/zyedidia/generic/mapset"

	"ghostgame/pkg/engine/event"
)

// Mode selects how held items combine into active abilities.
type Mode int

const (
	// ModeCumulative keeps every acquired item's abilities active at once.
	ModeCumulative Mode = iota
	// ModeSingleEquipped activates only the equipped item (the most recently
	// acquired one unless Equip picked another).
	ModeSingleEquipped
)

// String returns the config key for the mode.
func (m Mode) String() string {
	switch m {
	case ModeCumulative:
		return "cumulative"
	case ModeSingleEquipped:
		return "single"
	default:
		return "unknown"
	}
}

// ParseMode parses a config value ("cumulative" or "single").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cumulative":
		return ModeCumulative, nil
	case "single", "single_equipped", "single-equipped":
		return ModeSingleEquipped, nil
	default:
		return 0, oops.Code("UNKNOWN_MODE").With("mode", s).Wrap(ErrUnknownMode)
	}
}

// Registry is the authoritative store of held items and the abilities they grant.
//
// The registry is not safe for concurrent use: it belongs to the single game
// loop. Observers are notified synchronously, in subscription order, after the
// registry state has been updated, so they may query it from their callback.
type Registry struct {
	mode     Mode
	held     mapset.Set[Ability]
	items    []*Item
	equipped *Item
	bus      event.Bus[Event]
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithMode sets the inventory mode.
func WithMode(m Mode) Option {
	return func(r *Registry) {
		r.mode = m
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		held:   mapset.New[Ability](),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the inventory mode.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Grant adds item to the held items. Granting an item that is already held is
// a no-op. Observers receive ItemAcquired only if the active abilities changed.
func (r *Registry) Grant(item *Item) error {
	if err := item.Validate(); err != nil {
		return oops.With("operation", "grant").Wrap(err)
	}
	if r.indexOf(item.ID) >= 0 {
		r.logger.Debug("item already held", "item_id", item.ID)
		return nil
	}

	r.items = append(r.items, item)
	if r.mode == ModeSingleEquipped {
		r.equipped = item
	}
	r.apply(ItemAcquired, item)
	return nil
}

// Revoke removes item from the held items and recomputes the active
// abilities. Observers receive ItemRemoved only if an ability was lost.
// Revoking an item that is not held is a no-op.
func (r *Registry) Revoke(item *Item) error {
	if err := item.Validate(); err != nil {
		return oops.With("operation", "revoke").Wrap(err)
	}
	idx := r.indexOf(item.ID)
	if idx < 0 {
		return nil
	}

	removed := r.items[idx]
	r.items = append(r.items[:idx:idx], r.items[idx+1:]...)
	if r.equipped != nil && r.equipped.ID == removed.ID {
		r.equipped = nil
		if r.mode == ModeSingleEquipped && len(r.items) > 0 {
			r.equipped = r.items[len(r.items)-1]
		}
	}
	r.apply(ItemRemoved, removed)
	return nil
}

// Equip makes a held item the active one in single-equipped mode. In
// cumulative mode every held item is already active and Equip only validates.
func (r *Registry) Equip(item *Item) error {
	if err := item.Validate(); err != nil {
		return oops.With("operation", "equip").Wrap(err)
	}
	idx := r.indexOf(item.ID)
	if idx < 0 {
		return oops.Code("ITEM_NOT_HELD").With("item_id", item.ID).Wrap(ErrItemNotHeld)
	}
	if r.mode != ModeSingleEquipped {
		return nil
	}
	if r.equipped != nil && r.equipped.ID == item.ID {
		return nil
	}
	r.equipped = r.items[idx]
	r.apply(ItemEquipped, r.equipped)
	return nil
}

// Reset revokes every held item, newest first.
func (r *Registry) Reset() {
	for len(r.items) > 0 {
		// Revoke cannot fail for an item that is held.
		_ = r.Revoke(r.items[len(r.items)-1])
	}
}

// Has returns true if ability a is currently active.
func (r *Registry) Has(a Ability) bool {
	return r.held.Has(a)
}

// CanWalkOverHazards returns true if holes can be crossed.
func (r *Registry) CanWalkOverHazards() bool {
	return r.Has(WalkOverHazards)
}

// CanSeeHidden returns true if hidden objects can be seen.
func (r *Registry) CanSeeHidden() bool {
	return r.Has(SeeHidden)
}

// CanPassWalls returns true if phantom walls can be crossed.
func (r *Registry) CanPassWalls() bool {
	return r.Has(PassThroughWalls)
}

// ActiveAbilities returns the active abilities in declaration order.
func (r *Registry) ActiveAbilities() []Ability {
	var out []Ability
	for _, a := range AllAbilities() {
		if r.held.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Items returns the held items in acquisition order.
func (r *Registry) Items() []*Item {
	return append([]*Item(nil), r.items...)
}

// HasItem returns true if an item with the given ID is held.
func (r *Registry) HasItem(id ItemID) bool {
	return r.indexOf(id) >= 0
}

// Equipped returns the active item in single-equipped mode, nil otherwise.
func (r *Registry) Equipped() *Item {
	return r.equipped
}

// Subscribe registers o for change events. Subscribing the same observer
// twice returns the original handle and logs ErrDuplicateSubscription.
func (r *Registry) Subscribe(o Observer) *event.Subscription {
	sub, added := r.bus.Subscribe(o)
	if !added && o != nil {
		r.logger.Warn("ignoring duplicate subscription",
			"error", oops.Code("DUPLICATE_SUBSCRIPTION").Wrap(ErrDuplicateSubscription))
	}
	return sub
}

// Unsubscribe removes o. Unknown observers are ignored.
func (r *Registry) Unsubscribe(o Observer) {
	r.bus.Unsubscribe(o)
}

// Subscribers returns the number of active subscriptions.
func (r *Registry) Subscribers() int {
	return r.bus.Len()
}

// apply recomputes the held set and publishes kind if it changed.
func (r *Registry) apply(kind EventKind, item *Item) {
	before := r.held
	r.held = r.compute()

	gained := diff(r.held, before)
	lost := diff(before, r.held)

	r.logger.Debug("inventory changed",
		"event", kind.String(),
		"item_id", item.ID,
		"items", len(r.items),
		"gained", len(gained),
		"lost", len(lost))

	if len(gained) == 0 && len(lost) == 0 {
		return
	}
	r.bus.Publish(Event{Kind: kind, Item: item, Gained: gained, Lost: lost})
}

// compute derives the active abilities from the held items.
func (r *Registry) compute() mapset.Set[Ability] {
	held := mapset.New[Ability]()
	if r.mode == ModeSingleEquipped {
		if r.equipped != nil {
			for _, a := range r.equipped.grants {
				held.Put(a)
			}
		}
		return held
	}
	for _, item := range r.items {
		for _, a := range item.grants {
			held.Put(a)
		}
	}
	return held
}

func (r *Registry) indexOf(id ItemID) int {
	for i, item := range r.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// diff returns the abilities in a but not in b, in declaration order.
func diff(a, b mapset.Set[Ability]) []Ability {
	var out []Ability
	for _, ab := range AllAbilities() {
		if a.Has(ab) && !b.Has(ab) {
			out = append(out, ab)
		}
	}
	return out
}
