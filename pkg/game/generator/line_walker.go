package generator

import (
	"math/rand/v2"

	"ghostgame/pkg/game/setup"
)

// LineWalkerLayout carves corridors by walking lines in random directions
// with a chance to branch at every step.
type LineWalkerLayout struct{}

// Name returns the name of this layout
func (l *LineWalkerLayout) Name() string {
	return "Line Walker"
}

var walkDirections = []setup.Pos{
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
}

// Carve walks a line in each direction from the centre, then a few more
// from near it. The centre is the start.
func (l *LineWalkerLayout) Carve(p *plan, rng *rand.Rand) {
	p.start = setup.Pos{Row: p.rows / 2, Col: p.cols / 2}

	// Bigger maps get longer, bushier corridors
	size := min(p.rows, p.cols)
	branchProb := min(0.25+float32(size)*0.01, 0.55)
	minDist := 2 + size/8
	maxDist := 4 + size/4

	for _, dir := range walkDirections {
		l.buildLine(p, rng, p.start, dir, branchProb, minDist, maxDist)
	}

	extra := size / 6
	for range extra {
		from := setup.Pos{Row: p.start.Row + rng.IntN(5) - 2, Col: p.start.Col + rng.IntN(5) - 2}
		if p.playable(from) {
			l.buildLine(p, rng, from, walkDirections[rng.IntN(len(walkDirections))], branchProb, minDist, maxDist)
		}
	}
}

// buildLine carves a line from pos in dir, branching at random. It stops at
// the perimeter.
func (l *LineWalkerLayout) buildLine(p *plan, rng *rand.Rand, pos, dir setup.Pos, branchProb float32, minDist, maxDist int) {
	distance := minDist + rng.IntN(maxDist-minDist+1)

	for range distance {
		p.carve(pos, false)

		next := setup.Pos{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
		if !p.playable(next) {
			return
		}

		if branchProb > 0 && rng.Float32() < branchProb {
			l.buildLine(p, rng, pos, walkDirections[rng.IntN(len(walkDirections))], branchProb-0.1, minDist, maxDist)
		}

		pos = next
	}
	p.carve(pos, false)
}
