// Package generator builds random levels. A layout carves rooms and
// corridors into a wall-filled map, then gates are dropped on corridors the
// goal cannot be reached without, with the chest holding each gate's item
// placed on the near side. Every level is checked for solvability before it
// is returned.
package generator

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/samber/oops"

	"ghostgame/pkg/game/setup"
)

// ErrGenerationFailed is wrapped when no solvable level turns up.
var ErrGenerationFailed = errors.New("level generation failed")

// Layout carves walkable cells into a plan and sets its start.
type Layout interface {
	Carve(p *plan, rng *rand.Rand)
	Name() string
}

// Available layouts
var (
	LineWalker = &LineWalkerLayout{}
	BSP        = &BSPLayout{}
)

// DefaultLayout is the layout used when none is chosen.
var DefaultLayout Layout = BSP

// Layouts returns every layout by name.
func Layouts() map[string]Layout {
	return map[string]Layout{
		"bsp":    BSP,
		"walker": LineWalker,
	}
}

// ParseLayout finds a layout by name.
func ParseLayout(name string) (Layout, error) {
	if name == "" {
		return DefaultLayout, nil
	}
	if l, ok := Layouts()[strings.ToLower(name)]; ok {
		return l, nil
	}
	return nil, oops.Code("UNKNOWN_LAYOUT").With("layout", name).Errorf("unknown layout %q (want bsp or walker)", name)
}

// Size limits, walls included
const (
	MinRows     = 12
	MinCols     = 16
	MaxRows     = 60
	MaxCols     = 100
	MaxGates    = 3
	maxAttempts = 32
)

// Options controls generation. Zero fields take their defaults.
type Options struct {
	Seed   uint64
	Rows   int
	Cols   int
	Gates  int // 0 to 3; the third hides a chest behind sun shades
	Layout Layout
}

// DefaultOptions returns a mid-sized BSP level with two gates.
func DefaultOptions() Options {
	return Options{Rows: 21, Cols: 41, Gates: 2, Layout: DefaultLayout}
}

func (o *Options) validate() error {
	if o.Rows == 0 {
		o.Rows = DefaultOptions().Rows
	}
	if o.Cols == 0 {
		o.Cols = DefaultOptions().Cols
	}
	if o.Layout == nil {
		o.Layout = DefaultLayout
	}
	if o.Rows < MinRows || o.Rows > MaxRows {
		return oops.Code("INVALID_OPTIONS").With("rows", o.Rows).Errorf("rows must be between %d and %d", MinRows, MaxRows)
	}
	if o.Cols < MinCols || o.Cols > MaxCols {
		return oops.Code("INVALID_OPTIONS").With("cols", o.Cols).Errorf("cols must be between %d and %d", MinCols, MaxCols)
	}
	if o.Gates < 0 || o.Gates > MaxGates {
		return oops.Code("INVALID_OPTIONS").With("gates", o.Gates).Errorf("gates must be between 0 and %d", MaxGates)
	}
	return nil
}

// Generate returns a solvable level. The same options always give the same
// level.
func Generate(opts Options) (*setup.Level, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := range maxAttempts {
		rng := rand.New(rand.NewPCG(opts.Seed, uint64(attempt)))
		l, err := attemptLevel(rng, opts)
		if err == nil {
			return l, nil
		}
		lastErr = err
	}
	return nil, oops.Code("GENERATION_FAILED").
		With("seed", opts.Seed).
		With("layout", opts.Layout.Name()).
		With("attempts", maxAttempts).
		Wrapf(errors.Join(ErrGenerationFailed, lastErr), "no solvable level")
}

func attemptLevel(rng *rand.Rand, opts Options) (*setup.Level, error) {
	p := newPlan(opts.Rows, opts.Cols)
	opts.Layout.Carve(p, rng)
	if !p.walkable(p.start) {
		return nil, errors.New("layout left no start")
	}
	p.goal = p.furthest(p.start)
	if p.goal == p.start {
		return nil, errors.New("layout too small")
	}

	theme := ThemeFor(rng.IntN(themeCount))
	draft := &setup.Level{
		Name:        theme.Title(rng),
		Description: theme.Description(),
		Hints:       theme.Hints(),
	}

	gates := p.placeGates(rng, min(opts.Gates, len(pathGates)))
	if opts.Gates > 0 && len(gates) == 0 {
		return nil, errors.New("no corridor cuts the goal off")
	}
	if err := p.furnish(rng, draft, theme, gates, opts.Gates >= MaxGates); err != nil {
		return nil, err
	}
	var respawns []setup.Pos
	for _, h := range draft.Holes {
		respawns = append(respawns, h.Respawn)
	}
	p.scatterHidden(rng, rng.IntN(3), respawns)

	p.set(p.start, setup.GlyphStart)
	p.set(p.goal, setup.GlyphGoal)
	draft.Map = p.String()

	data, err := draft.Encode()
	if err != nil {
		return nil, err
	}
	l, err := setup.ParseLevel(data)
	if err != nil {
		return nil, err
	}
	if err := setup.Solvable(l); err != nil {
		return nil, err
	}
	return l, nil
}
