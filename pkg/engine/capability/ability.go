// Package capability tracks the traversal and perception powers the player
// currently holds and tells interested world objects when they change.
//
// A Registry is created once per game session and handed to every object that
// needs it. Objects read it through the Query interface and learn about
// changes by subscribing an Observer.
package capability

import (
	"strings"

	"github.com/samber/oops"
)

// Ability is one unlockable traversal or perception power.
type Ability int

// Abilities in display order.
const (
	WalkOverHazards  Ability = iota // cross holes without falling
	SeeHidden                       // reveal hidden objects
	PassThroughWalls                // walk through phantom walls
)

var abilityKeys = map[Ability]string{
	WalkOverHazards:  "walk_over_hazards",
	SeeHidden:        "see_hidden",
	PassThroughWalls: "pass_through_walls",
}

// AllAbilities returns every ability in declaration order.
func AllAbilities() []Ability {
	return []Ability{WalkOverHazards, SeeHidden, PassThroughWalls}
}

// IsValid returns true if a names a declared ability.
func (a Ability) IsValid() bool {
	return a >= WalkOverHazards && a <= PassThroughWalls
}

// String returns the stable key for the ability (as used in level files).
func (a Ability) String() string {
	if key, ok := abilityKeys[a]; ok {
		return key
	}
	return "unknown"
}

// LabelKey returns the translation key for the ability's display name.
func (a Ability) LabelKey() string {
	return "ABILITY_" + strings.ToUpper(a.String())
}

// ParseAbility parses a key produced by String. Matching ignores case and
// accepts '-' in place of '_'.
func ParseAbility(s string) (Ability, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for a, key := range abilityKeys {
		if key == norm {
			return a, nil
		}
	}
	return 0, oops.Code("UNKNOWN_ABILITY").With("ability", s).Errorf("unknown ability %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Ability) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, oops.Code("UNKNOWN_ABILITY").With("ability", int(a)).Errorf("unknown ability %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Ability) UnmarshalText(text []byte) error {
	parsed, err := ParseAbility(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
