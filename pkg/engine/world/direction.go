package world

// Direction is one of the four grid directions, clockwise from North.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"North", "East", "South", "West"}

// Row and column steps, indexed by Direction.
var directionSteps = [...][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// AllDirections returns the directions in clockwise order.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return directionNames[d]
}

// IsValid reports whether d is one of the four directions.
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the direction half a turn from d. Invalid directions
// are returned unchanged.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 2) % 4
}

// Delta returns the row and column step for d, or 0, 0 if d is invalid.
func (d Direction) Delta() (rowDelta, colDelta int) {
	if !d.IsValid() {
		return 0, 0
	}
	step := directionSteps[d]
	return step[0], step[1]
}
