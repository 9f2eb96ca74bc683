package entities

// Checkpoint becomes the respawn target when the player first steps on it.
type Checkpoint struct {
	Name      string
	Cell      string
	Activated bool
}

// IconCheckpoint marks a checkpoint on the map
const IconCheckpoint = "⚑"

// NewCheckpoint creates an inactive checkpoint on cell.
func NewCheckpoint(name, cell string) *Checkpoint {
	return &Checkpoint{Name: name, Cell: cell}
}

// Activate marks the checkpoint and reports whether this was the first time.
func (c *Checkpoint) Activate() bool {
	if c.Activated {
		return false
	}
	c.Activated = true
	return true
}
