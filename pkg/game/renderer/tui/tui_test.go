package tui

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/setup"
	"ghostgame/pkg/game/state"
)

func newTestRenderer(t *testing.T) (*TUIRenderer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := New(0)
	r.out = &out
	r.Init()
	return r, &out
}

func newTestGame(t *testing.T) *state.Game {
	t.Helper()
	l, err := setup.DefaultLevel()
	require.NoError(t, err)
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, gameplay.StartLevel(g, l))
	return g
}

func TestNew_DefaultRate(t *testing.T) {
	assert.Equal(t, DefaultRateHz, New(0).rate)
	assert.Equal(t, 60, New(60).rate)
}

func TestFormatText_Markup(t *testing.T) {
	r, _ := newTestRenderer(t)

	assert.Equal(t, "You found the Hula Lei!", color.ClearCode(r.FormatText("You found the ITEM{Hula Lei}!")))
	assert.Equal(t, "Inventory", color.ClearCode(r.FormatText("GT{INVENTORY}")))
	assert.Equal(t, "press e", color.ClearCode(r.FormatText("press ACTION{%s}", "e")))
	assert.Equal(t, "100% sure", r.FormatText("100% sure"), "messages without args are not passed through Sprintf")
}

func TestRenderFrame_DrawsMapStatusAndMessages(t *testing.T) {
	r, out := newTestRenderer(t)
	g := newTestGame(t)

	r.RenderFrame(g)
	frame := color.ClearCode(out.String())

	assert.Contains(t, frame, g.Definition.Title())
	assert.Contains(t, frame, "@")
	assert.Contains(t, frame, "Inventory: (empty)")
	assert.Contains(t, frame, "Time: 00:00.00")
	assert.Contains(t, frame, "Welcome to "+g.Definition.Title())
	assert.NotContains(t, frame, "ITEM{", "markup must be expanded")
}

func TestRenderFrame_NoLevel(t *testing.T) {
	r, out := newTestRenderer(t)
	g := state.NewGame(capability.ModeCumulative, nil)

	r.RenderFrame(g)
	assert.Empty(t, out.String())
}

func TestRenderCell_UnknownCellsAreBlank(t *testing.T) {
	r, _ := newTestRenderer(t)
	g := newTestGame(t)

	// The goal is far outside the starting view.
	assert.Equal(t, " ", r.renderCell(g, g.Grid.ExitCell()))
	assert.Equal(t, "@", color.ClearCode(r.renderCell(g, g.CurrentCell)))
}

func TestDirectionText_ShowsMissingAbility(t *testing.T) {
	r, _ := newTestRenderer(t)
	l, err := setup.ParseLevel([]byte("title: Wall\nmap: |\n  #######\n  #S.W.G#\n  #######\n"))
	require.NoError(t, err)
	g := state.NewGame(capability.ModeCumulative, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, gameplay.StartLevel(g, l))
	require.True(t, gameplay.MoveCell(g, g.CurrentCell.East))

	east := color.ClearCode(r.FormatText(r.getDirectionActionText(g, g.CurrentCell.East, "East")))
	assert.Equal(t, "East (pass through walls)", east)

	north := color.ClearCode(r.getDirectionActionText(g, g.CurrentCell.North, "North"))
	assert.Equal(t, "# Wall #", north)
}
