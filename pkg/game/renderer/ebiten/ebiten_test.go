package ebiten

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/game/entities"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/renderer"
	"ghostgame/pkg/game/setup"
	"ghostgame/pkg/game/state"
)

func TestNew_Defaults(t *testing.T) {
	e := New(0)
	assert.Equal(t, DefaultRateHz, e.rate)

	rows, cols := e.GetViewportSize()
	assert.Equal(t, 1, rows%2, "rows stay odd so the player is centred")
	assert.Equal(t, 1, cols%2)
	assert.GreaterOrEqual(t, rows, minViewportRow)
	assert.GreaterOrEqual(t, cols, minViewportCol)
}

func TestZoom_Clamped(t *testing.T) {
	e := New(30)
	for i := 0; i < 100; i++ {
		e.increaseTileSize()
	}
	assert.Equal(t, maxTileSize, e.tileSize)

	for i := 0; i < 100; i++ {
		e.decreaseTileSize()
	}
	assert.Equal(t, minTileSize, e.tileSize)
	_, cols := e.GetViewportSize()
	assert.Greater(t, cols, minViewportCol, "small tiles fit more columns")
}

func TestLayout_ResizesViewport(t *testing.T) {
	e := New(30)
	_, before := e.GetViewportSize()
	w, h := e.Layout(3000, 2000)
	assert.Equal(t, 3000, w)
	assert.Equal(t, 2000, h)
	_, after := e.GetViewportSize()
	assert.Greater(t, after, before)
}

func TestRepeatFires(t *testing.T) {
	assert.False(t, repeatFires(0))
	assert.True(t, repeatFires(1))
	assert.False(t, repeatFires(2))
	assert.False(t, repeatFires(keyRepeatInitialDelay-1))
	assert.True(t, repeatFires(keyRepeatInitialDelay))
	assert.False(t, repeatFires(keyRepeatInitialDelay+1))
	assert.True(t, repeatFires(keyRepeatInitialDelay+keyRepeatInterval))
}

func TestWithAlpha(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, c, withAlpha(c, 1))
	assert.Equal(t, color.RGBA{}, withAlpha(c, 0))
	assert.Equal(t, color.RGBA{100, 50, 25, 127}, withAlpha(c, 0.5))
	assert.Equal(t, c, withAlpha(c, 3), "alpha is clamped")
}

func TestStyleColor(t *testing.T) {
	assert.Equal(t, colorHole, styleColor(renderer.StyleHole))
	assert.Equal(t, colorText, styleColor(renderer.TextStyle(999)))

	_, ok := tileBackground(renderer.Tile{Icon: renderer.IconWall})
	assert.True(t, ok)
	_, ok = tileBackground(renderer.Tile{Icon: "@", Style: renderer.StylePlayer})
	assert.False(t, ok)
}

func TestFormatText_StripsMarkup(t *testing.T) {
	e := New(30)
	assert.Equal(t, "Found Hula Lei", e.FormatText("Found ITEM{%s}", "Hula Lei"))

	e.ShowMessage("DENIED{no level}")
	assert.Equal(t, []string{"no level"}, e.notices)
	e.Clear()
	assert.Empty(t, e.notices)
}

func TestStatusLines(t *testing.T) {
	l, err := setup.DefaultLevel()
	require.NoError(t, err)
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, gameplay.StartLevel(g, l))

	assert.Equal(t, []string{"Inventory: (empty)", "Time: 00:00.00"}, statusLines(g))

	gameplay.AcquireItem(g, entities.NewItem(entities.ItemHulaLei))
	lines := statusLines(g)
	require.Len(t, lines, 3)
	assert.Equal(t, "Inventory: Hula Lei", lines[0])
	assert.Contains(t, lines[1], "walk over holes")
}

func TestKeyBindings_CoverLetters(t *testing.T) {
	codes := make(map[string]bool)
	for _, b := range keyBindings {
		codes[b.code] = true
	}
	for _, c := range []string{"a", "e", "m", "q", "z", "arrow_up", "f8"} {
		assert.True(t, codes[c], "missing key code %q", c)
	}
}

func TestRepeats_MovementOnly(t *testing.T) {
	assert.True(t, repeats("arrow_up"))
	assert.True(t, repeats("k"))
	assert.False(t, repeats("e"))
	assert.False(t, repeats("x"))
}
