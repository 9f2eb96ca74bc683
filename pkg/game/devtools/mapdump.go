// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/logger"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// MapDumpFilename is where DumpMapToFile writes.
const MapDumpFilename = "map.txt"

// cellSymbol returns the single-character symbol for a cell (no player/exit overlay).
// If revealedOnly is true, cells never seen return '#'; otherwise they show their type.
// Symbols follow the level file glyphs.
func cellSymbol(cell *world.Cell, revealedOnly bool) rune {
	if cell == nil || !cell.Room {
		return '#'
	}
	if revealedOnly && !cell.Discovered && !cell.Visited {
		return '#'
	}
	data := gameworld.GetGameData(cell)
	switch {
	case data.Chest != nil && data.Chest.Gate != nil:
		return 'H'
	case data.Chest != nil:
		return 'C'
	case gameworld.HasClosedHole(cell):
		return 'O'
	case gameworld.HasHole(cell):
		return 'o'
	case gameworld.HasPhantomWall(cell):
		return 'W'
	case gameworld.Hidden(cell) != nil:
		return 'h'
	case data.Checkpoint != nil:
		return 'K'
	case data.Teleporter != nil:
		return 'T'
	case data.Pickup != nil:
		return '*'
	default:
		return '.'
	}
}

// writeMapGrid writes the grid to w with the player and goal overlaid.
func writeMapGrid(w io.Writer, g *state.Game, revealedOnly bool) {
	for row := 0; row < g.Grid.Rows(); row++ {
		for col := 0; col < g.Grid.Cols(); col++ {
			cell := g.Grid.GetCell(row, col)
			switch {
			case cell != nil && cell == g.CurrentCell:
				fmt.Fprint(w, "@")
			case cell != nil && cell.ExitCell:
				fmt.Fprint(w, "G")
			default:
				fmt.Fprintf(w, "%c", cellSymbol(cell, revealedOnly))
			}
		}
		fmt.Fprintln(w)
	}
}

// DumpMap writes a full debug dump to w: metadata, legend, revealed-only map,
// fully-revealed map, then every gate and entity with its state.
func DumpMap(w io.Writer, g *state.Game) error {
	if g.Grid == nil {
		return oops.Code("NO_LEVEL").Errorf("no level loaded")
	}

	player := "none"
	if g.CurrentCell != nil {
		player = g.CurrentCell.Name
	}
	title := ""
	if g.Definition != nil {
		title = g.Definition.Title()
	}

	fmt.Fprintln(w, "=== MAP DUMP ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "level: %q\n", title)
	fmt.Fprintf(w, "session: %s\n", g.SessionID)
	fmt.Fprintf(w, "grid: %dx%d (row:col, 0-based)\n", g.Grid.Rows(), g.Grid.Cols())
	fmt.Fprintf(w, "player_cell: %s\n", player)
	if checkpoint := g.Checkpoint; checkpoint != nil {
		fmt.Fprintf(w, "checkpoint: %s\n", checkpoint.Name)
	}
	fmt.Fprintf(w, "mode: %s\n", g.Registry.Mode())
	fmt.Fprintf(w, "time: %s\n", g.Stopwatch.String())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, ". = floor  # = wall or unseen  O = hole  o = open hole  W = phantom wall  h = hidden object  C = chest  H = hidden chest  K = checkpoint  T = teleporter  * = item  @ = player  G = goal")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Map (seen cells only) ---")
	writeMapGrid(w, g, true)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Map (full layout) ---")
	writeMapGrid(w, g, false)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Gates ---")
	for _, gate := range g.Board.Gates() {
		fmt.Fprintf(w, "  id: %s kind: %s decision: %s requires_ability: %v\n",
			gate.ID(), gate.Kind(), gate.Decision(), gate.RequiresAbility())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Entities ---")
	g.Grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if cell == nil {
			return
		}
		data := gameworld.GetGameData(cell)
		if c := data.Chest; c != nil {
			fmt.Fprintf(w, "  chest cell: %s name: %q item: %s open: %v visible: %v\n", cell.Name, c.Name, itemID(c.Item), c.Open, c.Visible())
		}
		if data.Pickup != nil {
			fmt.Fprintf(w, "  pickup cell: %s item: %s\n", cell.Name, itemID(data.Pickup))
		}
		if cp := data.Checkpoint; cp != nil {
			fmt.Fprintf(w, "  checkpoint cell: %s activated: %v\n", cell.Name, cp.Activated)
		}
		if pad := data.Teleporter; pad != nil {
			fmt.Fprintf(w, "  teleporter cell: %s id: %s destination: %s busy: %v\n", cell.Name, pad.ID, pad.Destination, pad.Busy)
		}
		if hole := gameworld.Hole(cell); hole != nil && hole.Respawn() != "" {
			fmt.Fprintf(w, "  hole cell: %s respawn: %s\n", cell.Name, hole.Respawn())
		}
	})
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Inventory ---")
	items := g.Registry.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, item := range items {
		fmt.Fprintf(w, "  item: %s abilities: %v\n", item.ID, item.Grants())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== END MAP DUMP ===")
	return nil
}

// DumpMapToFile writes DumpMap to map.txt in the working directory and
// returns its absolute path.
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(MapDumpFilename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", oops.Code("MAP_DUMP_FAILED").With("path", absPath).Wrapf(err, "create map dump")
	}
	defer f.Close()

	if err := DumpMap(f, g); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}

func itemID(item *capability.Item) string {
	if item == nil {
		return "none"
	}
	return string(item.ID)
}

// DumpMapAndAnnounce writes map.txt and tells the player where it went.
func DumpMapAndAnnounce(g *state.Game) {
	path, err := DumpMapToFile(g)
	if err != nil {
		logger.LogError(g.Logger, "map dump failed", err)
		return
	}
	g.Logger.Info("map dumped", "path", path)
	g.AddMessage(locale.Getf("MAP_DUMPED", path))
}
