// Package renderer defines the rendering backends interface and the view
// helpers shared by the terminal and Ebiten frontends.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// Map icons
const (
	PlayerIcon    = "@"
	IconWall      = "▒"
	IconUnvisited = "·"
	IconVisited   = "•"
	IconVoid      = " "
	IconExit      = "⌂"
	IconItem      = "?"
)

// markupPattern matches FUNCTION{operand} markup in messages.
var markupPattern = regexp.MustCompile(`([A-Z_]+){([^{}]*)}`)

// ExpandMarkup formats msg with args and replaces every FUNCTION{operand}
// with fn's result. GT{KEY} is translated before fn sees it.
func ExpandMarkup(msg string, args []any, fn func(function, operand string) string) string {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return markupPattern.ReplaceAllStringFunc(msg, func(m string) string {
		parts := markupPattern.FindStringSubmatch(m)
		function, operand := parts[1], parts[2]
		if function == "GT" {
			return locale.Get(operand)
		}
		return fn(function, operand)
	})
}

// StripMarkup removes markup, keeping the operands.
func StripMarkup(msg string) string {
	return ExpandMarkup(msg, nil, func(_, operand string) string { return operand })
}

// Tile is what a frontend draws on one map cell.
type Tile struct {
	Icon    string
	Overlay string // drawn on top of Icon, e.g. what the player is wearing
	Style   TextStyle
	Alpha   float64
	Known   bool // false for cells the player has never seen
}

// DescribeCell decides how a cell looks to the player right now.
func DescribeCell(g *state.Game, c *world.Cell) Tile {
	if c == nil {
		return Tile{Icon: IconVoid}
	}
	if g.CurrentCell == c {
		return Tile{Icon: PlayerIcon, Overlay: PlayerOverlay(g), Style: StylePlayer, Alpha: g.PlayerAlpha, Known: true}
	}
	if !c.Room {
		// Walls are never in sight themselves; show the ones bordering what was seen.
		if hasAdjacentDiscoveredRoom(c) {
			return Tile{Icon: IconWall, Style: StyleSubtle, Alpha: 1, Known: true}
		}
		return Tile{Icon: IconVoid}
	}
	if !c.Discovered && !c.Visited {
		return Tile{Icon: IconVoid}
	}

	data := gameworld.GetGameData(c)
	if tile, ok := gateTile(c, data); ok {
		return tile
	}
	if data.Chest != nil {
		style := StyleChest
		if data.Chest.Open {
			style = StyleChestOpen
		}
		return Tile{Icon: data.Chest.Icon, Style: style, Alpha: 1, Known: true}
	}
	if data.Pickup != nil {
		icon := data.Pickup.Icon
		if icon == "" {
			icon = IconItem
		}
		return Tile{Icon: icon, Style: StyleItem, Alpha: 1, Known: true}
	}
	if data.Teleporter != nil {
		style := StyleTeleporter
		if data.Teleporter.Busy {
			style = StyleSubtle
		}
		return Tile{Icon: entities.IconTeleporter, Style: style, Alpha: 1, Known: true}
	}
	if data.Checkpoint != nil {
		style := StyleCheckpoint
		if data.Checkpoint.Activated {
			style = StyleExitOpen
		}
		return Tile{Icon: entities.IconCheckpoint, Style: style, Alpha: 1, Known: true}
	}
	if c.ExitCell {
		return Tile{Icon: IconExit, Style: StyleExitOpen, Alpha: 1, Known: true}
	}
	if c.Visited {
		return Tile{Icon: IconVisited, Style: StyleCell, Alpha: 1, Known: true}
	}
	return Tile{Icon: IconUnvisited, Style: StyleSubtle, Alpha: 1, Known: true}
}

// PlayerOverlay returns the overlay of the item the player shows off: the
// equipped one in single mode, otherwise the newest item that has one.
func PlayerOverlay(g *state.Game) string {
	if g.Registry.Mode() == capability.ModeSingleEquipped {
		if item := g.Registry.Equipped(); item != nil {
			return item.Overlay
		}
		return ""
	}
	items := g.Registry.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Overlay != "" {
			return items[i].Overlay
		}
	}
	return ""
}

// gateTile draws holes, phantom walls and hidden objects with the alpha
// their gate wrote to the cell. Hidden chests fall through to the chest.
func gateTile(c *world.Cell, data *gameworld.GameCellData) (Tile, bool) {
	if data.Gate == nil {
		return Tile{}, false
	}
	info := entities.GateTypes[data.Gate.Kind()]
	switch gate := data.Gate.(type) {
	case *entities.HazardGate:
		if gate.Decision() == entities.Open {
			return Tile{Icon: info.IconOpen, Style: StyleHoleOpen, Alpha: data.Alpha, Known: true}, true
		}
		return Tile{Icon: info.Icon, Style: StyleHole, Alpha: data.Alpha, Known: true}, true
	case *entities.WallGate:
		if gameworld.HasSolidWall(c) {
			return Tile{Icon: info.Icon, Style: StyleWall, Alpha: data.Alpha, Known: true}, true
		}
		return Tile{Icon: info.IconOpen, Style: StyleWallOpen, Alpha: data.Alpha, Known: true}, true
	case *entities.VisibilityGate:
		if data.Chest != nil {
			if !data.Chest.Visible() {
				return Tile{Icon: IconVisited, Style: StyleCell, Alpha: 1, Known: true}, true
			}
			style := StyleChest
			if data.Chest.Open {
				style = StyleChestOpen
			}
			return Tile{Icon: data.Chest.Icon, Style: style, Alpha: gate.Alpha(), Known: true}, true
		}
		if gate.Revealed() {
			return Tile{Icon: info.IconOpen, Style: StyleHidden, Alpha: gate.Alpha(), Known: true}, true
		}
	}
	return Tile{}, false
}

// hasAdjacentDiscoveredRoom checks if any adjacent cell is a discovered or visited room
func hasAdjacentDiscoveredRoom(c *world.Cell) bool {
	neighbors := []*world.Cell{c.North, c.East, c.South, c.West}
	for _, n := range neighbors {
		if n != nil && n.Room && (n.Discovered || n.Visited) {
			return true
		}
	}
	return false
}

// InventoryNames lists held item names, marking the worn one in single mode.
func InventoryNames(g *state.Game) []string {
	equipped := g.Registry.Equipped()
	var names []string
	for _, item := range g.Registry.Items() {
		name := item.Name
		if equipped != nil && equipped.ID == item.ID {
			name += " *"
		}
		names = append(names, name)
	}
	return names
}

// AbilityLabels lists the translated names of the active abilities.
func AbilityLabels(g *state.Game) []string {
	var labels []string
	for _, a := range g.Registry.ActiveAbilities() {
		labels = append(labels, locale.Get(a.LabelKey()))
	}
	return labels
}

// StatusLine is the one-line summary shown under the map.
func StatusLine(g *state.Game) string {
	inv := InventoryNames(g)
	invText := locale.Get("INVENTORY_EMPTY")
	if len(inv) > 0 {
		invText = strings.Join(inv, ", ")
	}
	return fmt.Sprintf("%s: %s   %s: %s", locale.Get("INVENTORY"), invText, locale.Get("TIME"), g.Stopwatch.String())
}
