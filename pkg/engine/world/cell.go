// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Cell represents a single cell/tile in the grid.
// This is a generic engine primitive that can be extended by games.
type Cell struct {
	// Basic identification
	Name        string
	Description string

	// Grid position
	Row int
	Col int

	// Navigation - links to adjacent cells
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell

	// Visibility state
	Visited    bool
	Discovered bool

	// Cell type flags
	Room     bool // Is this cell a walkable room/corridor?
	ExitCell bool // Is this the exit/goal cell?

	// GameData holds game-specific extensions.
	// Games should cast this to their specific type (e.g., *GameCellData).
	// This allows the engine Cell to remain generic while supporting
	// game-specific entities like holes, chests and teleporters.
	GameData interface{}
}

// NewCell creates a new cell at the given position
func NewCell(row, col int, name, description string) *Cell {
	return &Cell{
		Name:        name,
		Description: description,
		Row:         row,
		Col:         col,
	}
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(dir Direction) *Cell {
	if c == nil {
		return nil
	}
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// SetNeighbor sets the neighboring cell in the given direction
func (c *Cell) SetNeighbor(dir Direction, neighbor *Cell) {
	if c == nil {
		return
	}
	switch dir {
	case North:
		c.North = neighbor
	case East:
		c.East = neighbor
	case South:
		c.South = neighbor
	case West:
		c.West = neighbor
	}
}

// GetNeighbors returns the connected adjacent cells, clockwise from North.
func (c *Cell) GetNeighbors() []*Cell {
	var neighbors []*Cell
	for _, dir := range AllDirections() {
		if n := c.GetNeighbor(dir); n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
