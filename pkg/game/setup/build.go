package setup

import (
	"fmt"

	"github.com/samber/oops"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// DefaultChestName is used for chests the level leaves unnamed.
const DefaultChestName = "Chest"

// Build lays the level out on a fresh grid and attaches its entities to g.
// It is called again on every reset, so everything it creates is new.
func (l *Level) Build(g *state.Game) error {
	grid := world.NewGrid(l.Rows(), l.Cols())

	for r, row := range l.rows {
		for c, ch := range row {
			if ch == GlyphWall {
				continue
			}
			grid.MarkAsRoomWithDescription(r, c, l.Description)
			gameworld.InitGameData(grid.GetCell(r, c))
			switch ch {
			case GlyphStart:
				grid.SetStartCellAt(r, c)
			case GlyphGoal:
				grid.SetExitCellAt(r, c)
			}
		}
	}
	grid.BuildAllCellConnections()
	if err := grid.Validate(); err != nil {
		return oops.Code("INVALID_LEVEL").With("level", l.Name).Wrap(err)
	}

	chests := make(map[Pos]ChestSpec, len(l.Chests))
	for _, spec := range l.Chests {
		chests[spec.At] = spec
	}
	pickups := make(map[Pos]PickupSpec, len(l.Pickups))
	for _, spec := range l.Pickups {
		pickups[spec.At] = spec
	}
	respawns := make(map[Pos]Pos, len(l.Holes))
	for _, spec := range l.Holes {
		respawns[spec.At] = spec.Respawn
	}

	var err error
	grid.ForEachCell(func(r, c int, cell *world.Cell) {
		if err != nil || !cell.Room {
			return
		}
		p := Pos{Row: r, Col: c}
		data := gameworld.GetGameData(cell)
		switch l.Glyph(p) {
		case GlyphHole, GlyphOpenHole:
			hole := entities.NewHazardGate(gateID("hole", cell), l.Glyph(p) == GlyphHole, data, g.Logger)
			if rp, ok := respawns[p]; ok {
				hole.SetRespawn(rp.Name())
			}
			err = addGate(g, data, hole)
		case GlyphPhantom:
			err = addGate(g, data, entities.NewWallGate(gateID("wall", cell), true, data, g.Logger))
		case GlyphHidden:
			err = addGate(g, data, entities.NewVisibilityGate(gateID("hidden", cell), true, data, g.Logger))
		case GlyphChest, GlyphHiddenChest:
			data.Chest, err = newChest(chests[p])
			if err == nil && l.Glyph(p) == GlyphHiddenChest {
				vis := entities.NewVisibilityGate(gateID("hidden", cell), true, data, g.Logger)
				data.Chest.Gate = vis
				err = addGate(g, data, vis)
			}
		case GlyphCheckpoint:
			data.Checkpoint = entities.NewCheckpoint(fmt.Sprintf("checkpoint %s", cell.Name), cell.Name)
		case GlyphPickup:
			data.Pickup, err = newItem(pickups[p].Item)
		}
	})
	if err != nil {
		return oops.With("level", l.Name).Wrap(err)
	}

	l.buildTeleporters(g, grid)

	g.Grid = grid
	for _, hint := range l.Hints {
		g.AddHint(hint)
	}
	g.Logger.Debug("level built", "level", l.Name, "rows", l.Rows(), "cols", l.Cols(), "gates", g.Board.Len())
	return nil
}

// buildTeleporters creates every pad and links them. A link is one-way
// unless both pads name each other.
func (l *Level) buildTeleporters(g *state.Game, grid *world.Grid) {
	pads := make(map[string]*entities.Teleporter, len(l.Teleporters))
	for _, spec := range l.Teleporters {
		pad := entities.NewTeleporter(spec.ID, spec.At.Name())
		if spec.Sequence != nil {
			pad.Sequence = *spec.Sequence
		}
		pads[spec.ID] = pad
		g.Teleports.Add(pad)
		gameworld.GetGameData(grid.GetCellByName(pad.Cell)).Teleporter = pad
	}
	links := make(map[string]string, len(l.Teleporters))
	for _, spec := range l.Teleporters {
		if spec.Link != "" {
			links[spec.ID] = spec.Link
		}
	}
	for from, to := range links {
		if links[to] == from {
			entities.Link(pads[from], pads[to])
			continue
		}
		pads[from].Destination = pads[to].Cell
	}
}

func addGate(g *state.Game, data *gameworld.GameCellData, gate entities.Gate) error {
	if err := g.Board.Add(gate); err != nil {
		return err
	}
	data.Gate = gate
	return nil
}

func newChest(spec ChestSpec) (*entities.Chest, error) {
	item, err := newItem(spec.Item)
	if err != nil {
		return nil, err
	}
	name := spec.Name
	if name == "" {
		name = DefaultChestName
	}
	return entities.NewChest(name, item), nil
}

func newItem(key string) (*capability.Item, error) {
	t, err := entities.LookupItemType(key)
	if err != nil {
		return nil, err
	}
	return entities.NewItem(t), nil
}

func gateID(kind string, cell *world.Cell) entities.GateID {
	return entities.GateID(kind + ":" + cell.Name)
}
