package generator

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/setup"
)

// plan is a level map under construction.
type plan struct {
	rows, cols int
	cells      [][]rune
	room       [][]bool // carved as part of a room rather than a corridor
	start      setup.Pos
	goal       setup.Pos
}

// newPlan returns a plan filled with walls.
func newPlan(rows, cols int) *plan {
	p := &plan{rows: rows, cols: cols}
	p.cells = make([][]rune, rows)
	p.room = make([][]bool, rows)
	for r := range rows {
		p.cells[r] = []rune(strings.Repeat(string(setup.GlyphWall), cols))
		p.room[r] = make([]bool, cols)
	}
	return p
}

// playable reports whether pos is inside the perimeter walls.
func (p *plan) playable(pos setup.Pos) bool {
	return pos.Row > 0 && pos.Row < p.rows-1 && pos.Col > 0 && pos.Col < p.cols-1
}

func (p *plan) at(pos setup.Pos) rune {
	if pos.Row < 0 || pos.Row >= p.rows || pos.Col < 0 || pos.Col >= p.cols {
		return setup.GlyphWall
	}
	return p.cells[pos.Row][pos.Col]
}

func (p *plan) set(pos setup.Pos, glyph rune) {
	p.cells[pos.Row][pos.Col] = glyph
}

func (p *plan) isRoom(pos setup.Pos) bool {
	return p.playable(pos) && p.room[pos.Row][pos.Col]
}

// carve opens pos as floor. Room cells stay room cells.
func (p *plan) carve(pos setup.Pos, room bool) {
	if !p.playable(pos) {
		return
	}
	p.cells[pos.Row][pos.Col] = setup.GlyphFloor
	p.room[pos.Row][pos.Col] = p.room[pos.Row][pos.Col] || room
}

// walkable reports whether a player could stand on pos with every ability.
func (p *plan) walkable(pos setup.Pos) bool {
	switch p.at(pos) {
	case setup.GlyphWall, setup.GlyphChest, setup.GlyphHiddenChest, setup.GlyphHidden:
		return false
	}
	return true
}

func neighbours(pos setup.Pos) []setup.Pos {
	return []setup.Pos{
		{Row: pos.Row - 1, Col: pos.Col},
		{Row: pos.Row, Col: pos.Col + 1},
		{Row: pos.Row + 1, Col: pos.Col},
		{Row: pos.Row, Col: pos.Col - 1},
	}
}

// search runs a BFS from start over walkable cells not in blocked and
// returns each reached cell's predecessor and distance.
func (p *plan) search(start setup.Pos, blocked []setup.Pos) (map[setup.Pos]setup.Pos, map[setup.Pos]int) {
	parent := map[setup.Pos]setup.Pos{start: start}
	dist := map[setup.Pos]int{start: 0}
	queue := []setup.Pos{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range neighbours(current) {
			if _, seen := parent[n]; seen || !p.walkable(n) || slices.Contains(blocked, n) {
				continue
			}
			parent[n] = current
			dist[n] = dist[current] + 1
			queue = append(queue, n)
		}
	}
	return parent, dist
}

// furthest returns the cell with the longest path from start, preferring
// room cells over corridors on ties.
func (p *plan) furthest(start setup.Pos) setup.Pos {
	_, dist := p.search(start, nil)
	best, bestDist := start, -1
	for r := range p.rows {
		for c := range p.cols {
			pos := setup.Pos{Row: r, Col: c}
			d, ok := dist[pos]
			if !ok {
				continue
			}
			if d > bestDist || (d == bestDist && p.isRoom(pos) && !p.isRoom(best)) {
				best, bestDist = pos, d
			}
		}
	}
	return best
}

// path returns the shortest route from start to goal, both included.
func (p *plan) path(blocked []setup.Pos) []setup.Pos {
	parent, _ := p.search(p.start, blocked)
	if _, ok := parent[p.goal]; !ok {
		return nil
	}
	var out []setup.Pos
	for pos := p.goal; pos != p.start; pos = parent[pos] {
		out = append(out, pos)
	}
	out = append(out, p.start)
	slices.Reverse(out)
	return out
}

// reaches reports whether goal can be reached with blocked cells shut.
func (p *plan) reaches(blocked []setup.Pos) bool {
	parent, _ := p.search(p.start, blocked)
	_, ok := parent[p.goal]
	return ok
}

// gateKind is a gate that can be dropped on a corridor, with the item that
// opens it.
type gateKind struct {
	glyph rune
	item  entities.ItemType
}

var pathGates = []gateKind{
	{setup.GlyphHole, entities.ItemHulaLei},
	{setup.GlyphPhantom, entities.ItemPartyHat},
}

// gate is a placed gate and its index on the start-to-goal path.
type gate struct {
	kind  gateKind
	pos   setup.Pos
	index int
}

// placeGates drops up to n gates on corridor cells that cut the goal off,
// spread evenly along the shortest path.
func (p *plan) placeGates(rng *rand.Rand, n int) []gate {
	if n == 0 {
		return nil
	}
	kinds := slices.Clone(pathGates)
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	route := p.path(nil)
	var placed []gate
	var blocked []setup.Pos
	lo := 2
	for i := range n {
		target := len(route) * (i + 1) / (n + 1)
		best := -1
		for idx := lo; idx < len(route)-2; idx++ {
			pos := route[idx]
			if p.isRoom(pos) || p.reaches(append(slices.Clone(blocked), pos)) {
				continue
			}
			if best < 0 || abs(idx-target) < abs(best-target) {
				best = idx
			}
		}
		if best < 0 {
			break
		}
		g := gate{kind: kinds[i], pos: route[best], index: best}
		placed = append(placed, g)
		blocked = append(blocked, g.pos)
		lo = best + 2
	}

	for _, g := range placed {
		p.set(g.pos, g.kind.glyph)
	}
	return placed
}

// furnish fills in what each gate needs: the chest with its item before it,
// a checkpoint after it and a respawn point for holes. With hideLast the
// last gate's chest is hidden and a chest of sun shades is added beside it.
func (p *plan) furnish(rng *rand.Rand, draft *setup.Level, theme Theme, gates []gate, hideLast bool) error {
	route := p.path(nil)
	onRoute := make(map[setup.Pos]bool, len(route))
	for _, pos := range route {
		onRoute[pos] = true
	}

	for i, g := range gates {
		// The region is what the player can reach holding the items of
		// every earlier gate.
		var shut []setup.Pos
		for _, later := range gates[i:] {
			shut = append(shut, later.pos)
		}

		glyph := setup.GlyphChest
		if hideLast && i == len(gates)-1 {
			glyph = setup.GlyphHiddenChest
			at, ok := p.placeChest(rng, shut, onRoute, setup.GlyphChest)
			if !ok {
				return errors.New("no room for the sun shades chest")
			}
			draft.Chests = append(draft.Chests, setup.ChestSpec{
				At: at, Item: entities.ItemTypes[entities.ItemSunShades].Key, Name: theme.ChestName(rng),
			})
		}
		at, ok := p.placeChest(rng, shut, onRoute, glyph)
		if !ok {
			return errors.New("no room for a chest")
		}
		draft.Chests = append(draft.Chests, setup.ChestSpec{
			At: at, Item: entities.ItemTypes[g.kind.item].Key, Name: theme.ChestName(rng),
		})

		if after := route[g.index+1]; p.at(after) == setup.GlyphFloor && after != p.goal {
			p.set(after, setup.GlyphCheckpoint)
		}
		if g.kind.glyph == setup.GlyphHole {
			draft.Holes = append(draft.Holes, setup.HoleSpec{At: g.pos, Respawn: route[g.index-1]})
		}
	}
	return nil
}

// placeChest puts a chest on a floor cell reachable with shut cells closed,
// off the route and without cutting any other cell off.
func (p *plan) placeChest(rng *rand.Rand, shut []setup.Pos, onRoute map[setup.Pos]bool, glyph rune) (setup.Pos, bool) {
	_, dist := p.search(p.start, shut)
	var rooms, corridors []setup.Pos
	for pos := range dist {
		if onRoute[pos] || p.at(pos) != setup.GlyphFloor {
			continue
		}
		if p.isRoom(pos) {
			rooms = append(rooms, pos)
		} else {
			corridors = append(corridors, pos)
		}
	}
	sortPositions(rooms)
	sortPositions(corridors)
	shuffle(rng, rooms)
	shuffle(rng, corridors)

	for _, pos := range append(rooms, corridors...) {
		p.set(pos, glyph)
		if _, after := p.search(p.start, shut); len(after) == len(dist)-1 {
			return pos, true
		}
		p.set(pos, setup.GlyphFloor)
	}
	return setup.Pos{}, false
}

// scatterHidden hides up to n objects in rooms where they block nothing.
// Cells in keep and cells next to a chest are left alone.
func (p *plan) scatterHidden(rng *rand.Rand, n int, keep []setup.Pos) {
	_, dist := p.search(p.start, nil)
	var cells []setup.Pos
	for pos := range dist {
		if !p.isRoom(pos) || p.at(pos) != setup.GlyphFloor || pos == p.start || pos == p.goal ||
			slices.Contains(keep, pos) || p.besideChest(pos) {
			continue
		}
		cells = append(cells, pos)
	}
	sortPositions(cells)
	shuffle(rng, cells)

	for _, pos := range cells {
		if n == 0 {
			return
		}
		p.set(pos, setup.GlyphHidden)
		if _, after := p.search(p.start, nil); len(after) == len(dist)-1 {
			dist = after
			n--
			continue
		}
		p.set(pos, setup.GlyphFloor)
	}
}

func (p *plan) besideChest(pos setup.Pos) bool {
	for _, n := range neighbours(pos) {
		if g := p.at(n); g == setup.GlyphChest || g == setup.GlyphHiddenChest {
			return true
		}
	}
	return false
}

// String renders the map, one row per line.
func (p *plan) String() string {
	var b strings.Builder
	for _, row := range p.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// sortPositions orders positions row-major so map iteration order never
// reaches the random stream.
func sortPositions(ps []setup.Pos) {
	slices.SortFunc(ps, func(a, b setup.Pos) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}

func shuffle(rng *rand.Rand, ps []setup.Pos) {
	rng.Shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
