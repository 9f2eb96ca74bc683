package generator

import (
	"fmt"
	"math/rand/v2"
)

// Theme is the setting a generated level is named after.
type Theme int

const (
	Garden     Theme = iota // Lawns, borders, flagstones
	Orchard                 // Rows of fruit trees
	Greenhouse              // Glass, heat, potted things
	Graveyard               // Old stones and yews
	Ruins                   // Fallen walls and ivy
	Hedgerow                // Hedges and hidden gaps
)

// themeCount is the number of themes (for cycling).
const themeCount = 6

// ThemeFor returns the theme for n, cycling through every theme.
func ThemeFor(n int) Theme {
	if n < 0 {
		return Garden
	}
	return Theme(n % themeCount)
}

// String returns the theme's name.
func (t Theme) String() string {
	switch t {
	case Orchard:
		return "Orchard"
	case Greenhouse:
		return "Greenhouse"
	case Graveyard:
		return "Graveyard"
	case Ruins:
		return "Ruins"
	case Hedgerow:
		return "Hedgerow"
	default:
		return "Garden"
	}
}

var themeAdjectives = []string{
	"Overgrown", "Forgotten", "Misty", "Moonlit",
	"Quiet", "Sunken", "Tangled", "Whispering",
}

// names returns base names for the theme's titles.
func (t Theme) names() []string {
	switch t {
	case Orchard:
		return []string{"Orchard", "Apple Rows", "Pear Walk", "Cider Yard", "Plum Grove"}
	case Greenhouse:
		return []string{"Greenhouse", "Palm House", "Orangery", "Fern Room", "Glasshouse"}
	case Graveyard:
		return []string{"Graveyard", "Churchyard", "Yew Walk", "Ossuary Lawn", "Chapel Garden"}
	case Ruins:
		return []string{"Ruins", "Abbey Cloister", "Broken Keep", "Old Bailey", "Fallen Hall"}
	case Hedgerow:
		return []string{"Hedge Maze", "Box Garden", "Laurel Walk", "Privet Rows", "Knot Garden"}
	default:
		return []string{"Garden", "Rose Garden", "Kitchen Garden", "Walled Garden", "Herb Beds"}
	}
}

// Title returns a random title such as "Misty Orangery".
func (t Theme) Title(rng *rand.Rand) string {
	names := t.names()
	return fmt.Sprintf("The %s %s",
		themeAdjectives[rng.IntN(len(themeAdjectives))],
		names[rng.IntN(len(names))])
}

// Description returns the theme's flavour line.
func (t Theme) Description() string {
	switch t {
	case Orchard:
		return "Windfalls rot quietly between the trunks."
	case Greenhouse:
		return "Condensation runs down panes nobody has cleaned in years."
	case Graveyard:
		return "The names on the stones have worn away."
	case Ruins:
		return "Ivy holds up what the mortar no longer does."
	case Hedgerow:
		return "The hedges have grown taller than anyone remembers planting them."
	default:
		return "Moss-covered flagstones, damp and quiet."
	}
}

var chestNames = []string{
	"Old Trunk", "Dusty Hatbox", "Seed Chest", "Tool Box",
	"Potting Crate", "Picnic Hamper", "Tin Box", "Cedar Chest",
}

// ChestName returns a random chest name.
func (t Theme) ChestName(rng *rand.Rand) string {
	return chestNames[rng.IntN(len(chestNames))]
}

// Hints returns the hints every generated level carries.
func (t Theme) Hints() []string {
	return []string{
		"Chests open from the side. Walk up to one and press E.",
		"Whatever blocks the way, something in a chest nearby gets you past it.",
		"Some things only show themselves to those with the right eyes.",
	}
}
