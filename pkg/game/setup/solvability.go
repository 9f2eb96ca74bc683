package setup

import (
	"io"
	"log/slog"

	"github.com/samber/oops"
	"github.com/zyedidia/generic/mapset"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/state"
	gameworld "ghostgame/pkg/game/world"
)

// Report is the outcome of a solvability check.
type Report struct {
	Reachable int                  // cells the player can reach with every obtainable ability
	Abilities []capability.Ability // abilities the player can obtain
	Items     []string             // names of the items that grant them, in pickup order
	Solvable  bool
}

// CheckSolvable builds the level on a scratch game and works out whether the
// goal can be reached. Abilities only ever widen the reachable area, so it
// repeats the search with everything collected so far until nothing new turns up.
func CheckSolvable(l *Level) (*Report, error) {
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := l.Build(g); err != nil {
		return nil, err
	}

	held := mapset.New[capability.Ability]()
	collected := mapset.New[*world.Cell]()
	report := &Report{}
	var reachable *mapset.Set[*world.Cell]

	for {
		reachable = getReachableCells(g, g.Grid.StartCell(), &held)
		found := false
		reachable.Each(func(cell *world.Cell) {
			for _, source := range itemSources(cell, &held) {
				if collected.Has(source) {
					continue
				}
				collected.Put(source)
				item := itemAt(source)
				report.Items = append(report.Items, item.Name)
				for _, a := range item.Grants() {
					if !held.Has(a) {
						held.Put(a)
						found = true
					}
				}
			}
		})
		if !found {
			break
		}
	}

	report.Reachable = reachable.Size()
	report.Solvable = reachable.Has(g.Grid.ExitCell())
	for _, a := range capability.AllAbilities() {
		if held.Has(a) {
			report.Abilities = append(report.Abilities, a)
		}
	}
	return report, nil
}

// Solvable returns an error if the goal of l cannot be reached.
func Solvable(l *Level) error {
	report, err := CheckSolvable(l)
	if err != nil {
		return err
	}
	if !report.Solvable {
		return oops.Code("UNSOLVABLE_LEVEL").
			With("level", l.Name).
			With("reachable", report.Reachable).
			Wrapf(ErrInvalidLevel, "goal cannot be reached")
	}
	return nil
}

// getReachableCells returns all cells reachable from start by BFS with the
// given abilities, following teleporter links.
func getReachableCells(g *state.Game, start *world.Cell, held *mapset.Set[capability.Ability]) *mapset.Set[*world.Cell] {
	reachable := mapset.New[*world.Cell]()
	queue := []*world.Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == nil || reachable.Has(current) || !passable(current, held) {
			continue
		}
		reachable.Put(current)

		neighbors := []*world.Cell{current.North, current.East, current.South, current.West}
		if pad := gameworld.GetGameData(current).Teleporter; pad != nil && pad.Destination != "" {
			neighbors = append(neighbors, g.Grid.GetCellByName(pad.Destination))
		}
		for _, n := range neighbors {
			if n != nil && n.Room && !reachable.Has(n) {
				queue = append(queue, n)
			}
		}
	}

	return &reachable
}

// passable reports whether a player holding held can stand on cell. Hidden
// objects and hidden chests count as solid: revealing them makes them so,
// and the search must never shrink as abilities grow.
func passable(cell *world.Cell, held *mapset.Set[capability.Ability]) bool {
	if !cell.Room {
		return false
	}
	data := gameworld.GetGameData(cell)
	if data.Chest != nil {
		return false
	}
	gate := data.Gate
	if gate == nil || !gate.RequiresAbility() {
		return true
	}
	switch gate.Kind() {
	case entities.KindHazard:
		return held.Has(capability.WalkOverHazards)
	case entities.KindWall:
		return held.Has(capability.PassThroughWalls)
	default:
		return false
	}
}

// itemSources returns the cells whose item a player standing on cell can take.
func itemSources(cell *world.Cell, held *mapset.Set[capability.Ability]) []*world.Cell {
	var out []*world.Cell
	if gameworld.HasPickup(cell) {
		out = append(out, cell)
	}
	for _, n := range []*world.Cell{cell.North, cell.South, cell.East, cell.West} {
		if n == nil {
			continue
		}
		chest := gameworld.GetGameData(n).Chest
		if chest == nil || chest.Item == nil {
			continue
		}
		if chest.Gate != nil && !held.Has(capability.SeeHidden) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func itemAt(cell *world.Cell) *capability.Item {
	data := gameworld.GetGameData(cell)
	if data.Pickup != nil {
		return data.Pickup
	}
	return data.Chest.Item
}
