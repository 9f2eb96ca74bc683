// Package setup loads authored levels and builds them into a game.
//
// A level is a YAML document with a character map and lists that attach
// items, respawn points and teleporter links to map cells:
//
//	#  wall            .  floor
//	S  start           G  goal
//	O  hole            o  hole that never blocks
//	W  phantom wall    h  hidden object
//	C  chest           H  hidden chest
//	K  checkpoint      T  teleporter pad
//	*  item on the floor
package setup

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"ghostgame/pkg/game/entities"
)

// ErrInvalidLevel is wrapped by every level validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// Map glyphs
const (
	GlyphWall        = '#'
	GlyphFloor       = '.'
	GlyphStart       = 'S'
	GlyphGoal        = 'G'
	GlyphHole        = 'O'
	GlyphOpenHole    = 'o'
	GlyphPhantom     = 'W'
	GlyphHidden      = 'h'
	GlyphChest       = 'C'
	GlyphHiddenChest = 'H'
	GlyphCheckpoint  = 'K'
	GlyphTeleporter  = 'T'
	GlyphPickup      = '*'
)

const knownGlyphs = "#.SGOoWhCHKT*"

//go:embed levels/*.yaml
var builtin embed.FS

// DefaultLevelFile is the embedded level played when none is configured.
const DefaultLevelFile = "levels/garden.yaml"

// Pos is a [row, col] map position.
type Pos struct {
	Row int
	Col int
}

// UnmarshalYAML reads a position written as a two-element sequence.
func (p *Pos) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: position must be [row, col], got %d values", node.Line, len(pair))
	}
	p.Row, p.Col = pair[0], pair[1]
	return nil
}

// MarshalYAML writes p as a flow sequence, e.g. [3, 4].
func (p Pos) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(p.Row)},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(p.Col)},
		},
	}, nil
}

// Name returns the cell name of p on a built grid.
func (p Pos) Name() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// ChestSpec puts an item in the chest at a C or H cell.
type ChestSpec struct {
	At   Pos    `yaml:"at"`
	Item string `yaml:"item"`
	Name string `yaml:"name"`
}

// PickupSpec puts an item on the floor at a * cell.
type PickupSpec struct {
	At   Pos    `yaml:"at"`
	Item string `yaml:"item"`
}

// HoleSpec sets where a player who falls into the hole at At lands.
type HoleSpec struct {
	At      Pos `yaml:"at"`
	Respawn Pos `yaml:"respawn"`
}

// TeleporterSpec describes the pad at a T cell. Sequence is the pad's
// position in a sequence puzzle; pads without one can be used in any order.
type TeleporterSpec struct {
	ID       string `yaml:"id"`
	At       Pos    `yaml:"at"`
	Link     string `yaml:"link"`
	Sequence *int   `yaml:"sequence,omitempty"`
}

// Level is an authored level. It implements state.LevelDefinition.
type Level struct {
	Name        string           `yaml:"title"`
	Description string           `yaml:"description"`
	Map         string           `yaml:"map"`
	Chests      []ChestSpec      `yaml:"chests,omitempty"`
	Pickups     []PickupSpec     `yaml:"pickups,omitempty"`
	Holes       []HoleSpec       `yaml:"holes,omitempty"`
	Teleporters []TeleporterSpec `yaml:"teleporters,omitempty"`
	Hints       []string         `yaml:"hints,omitempty"`

	rows [][]rune
}

// Title returns the level's display name.
func (l *Level) Title() string {
	return l.Name
}

// Rows returns the number of map rows.
func (l *Level) Rows() int {
	return len(l.rows)
}

// Cols returns the number of map columns.
func (l *Level) Cols() int {
	if len(l.rows) == 0 {
		return 0
	}
	return len(l.rows[0])
}

// Glyph returns the map character at p, or GlyphWall outside the map.
func (l *Level) Glyph(p Pos) rune {
	if p.Row < 0 || p.Row >= l.Rows() || p.Col < 0 || p.Col >= l.Cols() {
		return GlyphWall
	}
	return l.rows[p.Row][p.Col]
}

// Encode writes the level as a YAML document ParseLevel can read back.
func (l *Level) Encode() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, oops.Code("LEVEL_ENCODE_FAILED").With("level", l.Name).Wrapf(err, "encode level")
	}
	return data, nil
}

// LoadLevel reads and validates the level file at path.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("LEVEL_LOAD_FAILED").With("path", path).Wrapf(err, "read level")
	}
	l, err := ParseLevel(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return l, nil
}

// DefaultLevel returns the built-in level.
func DefaultLevel() (*Level, error) {
	data, err := builtin.ReadFile(DefaultLevelFile)
	if err != nil {
		return nil, oops.Code("LEVEL_LOAD_FAILED").With("path", DefaultLevelFile).Wrapf(err, "read built-in level")
	}
	return ParseLevel(data)
}

// ParseLevel decodes and validates a level document.
func ParseLevel(data []byte) (*Level, error) {
	if len(data) == 0 {
		return nil, invalid("level data is empty")
	}
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, oops.Code("INVALID_LEVEL").Wrapf(errors.Join(ErrInvalidLevel, err), "decode level")
	}
	l.rows = parseMap(l.Map)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// parseMap splits the map into rows, padding short rows with walls.
func parseMap(m string) [][]rune {
	lines := strings.Split(strings.Trim(m, "\n"), "\n")
	width := 0
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
		if n := len([]rune(lines[i])); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil
	}
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		row := []rune(line)
		for len(row) < width {
			row = append(row, GlyphWall)
		}
		rows[i] = row
	}
	return rows
}

// Validate checks that the map and the lists agree with each other.
func (l *Level) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return invalid("title is required")
	}
	if l.Rows() == 0 {
		return invalid("map is empty")
	}

	counts := make(map[rune]int)
	for r, row := range l.rows {
		for c, ch := range row {
			if !strings.ContainsRune(knownGlyphs, ch) {
				return invalid("unknown map character %q at [%d, %d]", ch, r, c)
			}
			counts[ch]++
		}
	}
	if counts[GlyphStart] != 1 {
		return invalid("map needs exactly one start, found %d", counts[GlyphStart])
	}
	if counts[GlyphGoal] != 1 {
		return invalid("map needs exactly one goal, found %d", counts[GlyphGoal])
	}

	if err := l.validateChests(counts); err != nil {
		return err
	}
	if err := l.validatePickups(counts); err != nil {
		return err
	}
	if err := l.validateHoles(); err != nil {
		return err
	}
	return l.validateTeleporters(counts)
}

func (l *Level) validateChests(counts map[rune]int) error {
	seen := make(map[Pos]bool)
	for _, spec := range l.Chests {
		if g := l.Glyph(spec.At); g != GlyphChest && g != GlyphHiddenChest {
			return invalid("chest at [%d, %d] is not on a C or H cell", spec.At.Row, spec.At.Col)
		}
		if seen[spec.At] {
			return invalid("two chests at [%d, %d]", spec.At.Row, spec.At.Col)
		}
		seen[spec.At] = true
		if _, err := entities.LookupItemType(spec.Item); err != nil {
			return invalidWrap(err, "chest at [%d, %d]", spec.At.Row, spec.At.Col)
		}
	}
	if want := counts[GlyphChest] + counts[GlyphHiddenChest]; len(seen) != want {
		return invalid("map has %d chests but %d are filled", want, len(seen))
	}
	return nil
}

func (l *Level) validatePickups(counts map[rune]int) error {
	seen := make(map[Pos]bool)
	for _, spec := range l.Pickups {
		if l.Glyph(spec.At) != GlyphPickup {
			return invalid("pickup at [%d, %d] is not on a * cell", spec.At.Row, spec.At.Col)
		}
		if seen[spec.At] {
			return invalid("two pickups at [%d, %d]", spec.At.Row, spec.At.Col)
		}
		seen[spec.At] = true
		if _, err := entities.LookupItemType(spec.Item); err != nil {
			return invalidWrap(err, "pickup at [%d, %d]", spec.At.Row, spec.At.Col)
		}
	}
	if len(seen) != counts[GlyphPickup] {
		return invalid("map has %d pickups but %d are filled", counts[GlyphPickup], len(seen))
	}
	return nil
}

func (l *Level) validateHoles() error {
	for _, spec := range l.Holes {
		if g := l.Glyph(spec.At); g != GlyphHole && g != GlyphOpenHole {
			return invalid("hole at [%d, %d] is not on an O or o cell", spec.At.Row, spec.At.Col)
		}
		if !l.standable(spec.Respawn) {
			return invalid("hole at [%d, %d] respawns on [%d, %d], which is not open floor",
				spec.At.Row, spec.At.Col, spec.Respawn.Row, spec.Respawn.Col)
		}
	}
	return nil
}

func (l *Level) validateTeleporters(counts map[rune]int) error {
	byID := make(map[string]TeleporterSpec)
	seen := make(map[Pos]bool)
	for _, spec := range l.Teleporters {
		if spec.ID == "" {
			return invalid("teleporter at [%d, %d] has no id", spec.At.Row, spec.At.Col)
		}
		if _, dup := byID[spec.ID]; dup {
			return invalid("duplicate teleporter id %q", spec.ID)
		}
		if l.Glyph(spec.At) != GlyphTeleporter {
			return invalid("teleporter %q is not on a T cell", spec.ID)
		}
		if seen[spec.At] {
			return invalid("two teleporters at [%d, %d]", spec.At.Row, spec.At.Col)
		}
		if spec.Sequence != nil && *spec.Sequence < 0 {
			return invalid("teleporter %q has a negative sequence number", spec.ID)
		}
		seen[spec.At] = true
		byID[spec.ID] = spec
	}
	for _, spec := range l.Teleporters {
		if spec.Link == "" {
			continue
		}
		if spec.Link == spec.ID {
			return invalid("teleporter %q links to itself", spec.ID)
		}
		if _, ok := byID[spec.Link]; !ok {
			return invalid("teleporter %q links to unknown teleporter %q", spec.ID, spec.Link)
		}
	}
	if len(seen) != counts[GlyphTeleporter] {
		return invalid("map has %d teleporters but %d are described", counts[GlyphTeleporter], len(seen))
	}
	return nil
}

// standable reports whether a player can be put on p.
func (l *Level) standable(p Pos) bool {
	switch l.Glyph(p) {
	case GlyphFloor, GlyphStart, GlyphGoal, GlyphCheckpoint, GlyphPickup:
		return true
	}
	return false
}

func invalid(format string, a ...any) error {
	return oops.Code("INVALID_LEVEL").Wrapf(ErrInvalidLevel, format, a...)
}

func invalidWrap(err error, format string, a ...any) error {
	return oops.Code("INVALID_LEVEL").Wrapf(errors.Join(ErrInvalidLevel, err), format, a...)
}
