package world

// FOVRadius is the default sight radius in cells (Chebyshev distance).
const FOVRadius = 4

// Opaque reports whether a cell stops line of sight.
type Opaque func(c *Cell) bool

// SolidOnly treats every non-room cell as opaque.
func SolidOnly(c *Cell) bool {
	return !c.Room
}

// CalculateFOV returns the cells visible from center within radius. A cell is
// visible when the Bresenham line to it crosses no opaque cell. Opaque cells
// can be seen themselves, they only hide what lies behind them.
func CalculateFOV(grid *Grid, center *Cell, radius int, opaque Opaque) []*Cell {
	if center == nil || grid == nil {
		return nil
	}
	if opaque == nil {
		opaque = SolidOnly
	}

	result := []*Cell{center}
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			cell := grid.GetCell(center.Row+dr, center.Col+dc)
			if cell == nil {
				continue
			}
			if lineOfSight(grid, center.Row, center.Col, cell.Row, cell.Col, opaque) {
				result = append(result, cell)
			}
		}
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// lineOfSight walks a Bresenham line from (r0,c0) to (r1,c1).
func lineOfSight(grid *Grid, r0, c0, r1, c1 int, opaque Opaque) bool {
	dr, dc := abs(r1-r0), abs(c1-c0)
	sr, sc := sign(r1-r0), sign(c1-c0)

	major, minor := dr, dc
	if dc > dr {
		major, minor = dc, dr
	}

	r, c := r0, c0
	err := 2*minor - major
	for step := 0; step < major; step++ {
		if dr >= dc {
			r += sr
			if err > 0 {
				c += sc
				err -= 2 * major
			}
		} else {
			c += sc
			if err > 0 {
				r += sr
				err -= 2 * major
			}
		}
		err += 2 * minor

		cell := grid.GetCell(r, c)
		if cell == nil {
			return false
		}
		if step < major-1 && opaque(cell) {
			return false
		}
	}
	return true
}

// RevealFOV marks every visible cell discovered, and visible floor visited.
func RevealFOV(grid *Grid, center *Cell, radius int, opaque Opaque) {
	for _, cell := range CalculateFOV(grid, center, radius, opaque) {
		cell.Discovered = true
		if cell.Room {
			cell.Visited = true
		}
	}
}
