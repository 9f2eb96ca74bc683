// Package tui is the terminal frontend: ANSI colors via gookit/color, raw
// keyboard input and a fixed-rate simulation tick.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/input"
	"ghostgame/pkg/engine/terminal"
	"ghostgame/pkg/engine/world"
	"ghostgame/pkg/game/devtools"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/renderer"
	"ghostgame/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows    = 7
	ViewportMinCols    = 15
	ViewportSideMargin = 26 // Space for West/East labels
	// Lines needed outside viewport:
	// - Level title + blank (2)
	// - North label + blank (2)
	// - South label + blanks (3)
	// - Status bar (3)
	// - Actions (1)
	// - Messages pane (header + 5 messages + footer = 7)
	ViewportTopMargin = 18
)

// DefaultRateHz is the simulation rate used when none is given.
const DefaultRateHz = 30

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorCell        color.Style
	colorCellText    color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorItem        color.Style
	colorSubtle      color.Style
	colorPlayer      color.Style
	colorExitOpen    color.Style
	colorHole        color.Style
	colorHoleOpen    color.Style
	colorWall        color.Style
	colorWallOpen    color.Style
	colorHidden      color.Style
	colorChest       color.Style
	colorChestOpen   color.Style
	colorCheckpoint  color.Style
	colorTeleporter  color.Style

	rate int
	in   *os.File
	out  io.Writer
	buf  bytes.Buffer
}

// New creates a new TUI renderer ticking rateHz times a second.
func New(rateHz int) *TUIRenderer {
	if rateHz <= 0 {
		rateHz = DefaultRateHz
	}
	return &TUIRenderer{rate: rateHz, in: os.Stdin, out: os.Stdout}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorCell = color.Style{color.FgGray}
	t.colorCellText = color.Style{color.FgBlue}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgMagenta}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorPlayer = color.Style{color.FgWhite, color.BgBlack, color.OpBold}
	t.colorExitOpen = color.Style{color.FgGreen}
	t.colorHole = color.Style{color.FgRed, color.OpBold}
	t.colorHoleOpen = color.Style{color.FgCyan}
	t.colorWall = color.Style{color.FgBlue, color.OpBold}
	t.colorWallOpen = color.Style{color.FgBlue}
	t.colorHidden = color.Style{color.FgLightMagenta}
	t.colorChest = color.Style{color.FgYellow, color.OpBold}
	t.colorChestOpen = color.Style{color.FgYellow}
	t.colorCheckpoint = color.Style{color.FgLightGreen}
	t.colorTeleporter = color.Style{color.FgCyan, color.OpBold}
}

// Clear moves the cursor home and clears the screen.
func (t *TUIRenderer) Clear() {
	fmt.Fprint(t.out, "\x1b[H\x1b[2J")
}

// style returns the color style for a text style.
func (t *TUIRenderer) style(style renderer.TextStyle) (color.Style, bool) {
	switch style {
	case renderer.StyleCell:
		return t.colorCell, true
	case renderer.StyleCellText:
		return t.colorCellText, true
	case renderer.StyleItem:
		return t.colorItem, true
	case renderer.StyleAction:
		return t.colorAction, true
	case renderer.StyleActionShort:
		return t.colorActionShort, true
	case renderer.StyleDenied:
		return t.colorDenied, true
	case renderer.StyleHole:
		return t.colorHole, true
	case renderer.StyleHoleOpen:
		return t.colorHoleOpen, true
	case renderer.StyleWall:
		return t.colorWall, true
	case renderer.StyleWallOpen:
		return t.colorWallOpen, true
	case renderer.StyleHidden:
		return t.colorHidden, true
	case renderer.StyleChest:
		return t.colorChest, true
	case renderer.StyleChestOpen:
		return t.colorChestOpen, true
	case renderer.StyleCheckpoint:
		return t.colorCheckpoint, true
	case renderer.StyleTeleporter:
		return t.colorTeleporter, true
	case renderer.StyleSubtle:
		return t.colorSubtle, true
	case renderer.StylePlayer:
		return t.colorPlayer, true
	case renderer.StyleExitOpen:
		return t.colorExitOpen, true
	default:
		return nil, false
	}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if s, ok := t.style(style); ok {
		return s.Sprint(text)
	}
	return text
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.ExpandMarkup(msg, args, func(function, operand string) string {
		switch function {
		case "ITEM":
			return t.colorItem.Sprint(operand)
		case "ACTION":
			if operand == "" {
				return ""
			}
			return t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		case "DENIED":
			return t.colorDenied.Sprint(operand)
		default:
			return operand
		}
	})
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.FormatText(msg))
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	// Calculate available space
	cols = termWidth - (ViewportSideMargin * 2)
	rows = termHeight - ViewportTopMargin

	// Ensure minimum size
	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	// Keep rows odd for centering
	if rows%2 == 0 {
		rows--
	}
	// Keep cols odd for centering
	if cols%2 == 0 {
		cols--
	}

	return rows, cols
}

// Run reads keys in raw mode and advances the game at the configured rate
// until the player quits or ctx ends. Only this goroutine touches g.
func (t *TUIRenderer) Run(ctx context.Context, g *state.Game) error {
	term, err := input.OpenTerminal(t.in)
	if err != nil {
		return err
	}
	defer term.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := term.Events(ctx)

	frame := time.Second / time.Duration(t.rate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	fmt.Fprint(t.out, "\x1b[?25l") // hide cursor
	defer fmt.Fprint(t.out, "\x1b[?25h\r\n")
	t.Clear()

	for !g.Quit {
		t.RenderFrame(g)
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-events:
			if !ok {
				return nil
			}
			intent := input.MapToIntent(input.NewDebouncedInput(raw))
			g.Logger.Debug("key", "code", raw.Code, "action", input.ActionName(intent.Action))
			if intent.Action == input.ActionDebugMapDump {
				devtools.DumpMapAndAnnounce(g)
				continue
			}
			gameplay.ProcessIntent(g, intent)
		case <-ticker.C:
			gameplay.Tick(g, frame)
		}
	}
	return nil
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	if g.Grid == nil || g.CurrentCell == nil {
		return
	}
	t.buf.Reset()

	title := ""
	if g.Definition != nil {
		title = g.Definition.Title()
	}
	t.printString("%s\n\n", t.colorAction.Sprint(title))

	// Render the map
	t.printMap(g)

	// Status bar
	t.printStatusBar(g)

	// Actions
	t.printPossibleActions()

	// Messages pane
	t.printMessagesPane(g)

	// Raw mode needs explicit carriage returns; clearing to end of line
	// avoids flicker from a full-screen clear every tick.
	frame := strings.ReplaceAll(t.buf.String(), "\n", "\x1b[K\r\n")
	fmt.Fprint(t.out, "\x1b[H"+frame+"\x1b[J")
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	t.buf.WriteString(t.FormatText(msg, a...))
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(g *state.Game, r *world.Cell) string {
	tile := renderer.DescribeCell(g, r)
	if !tile.Known || tile.Alpha < 0.15 {
		return renderer.IconVoid
	}
	s, ok := t.style(tile.Style)
	if !ok {
		return tile.Icon
	}
	// Half-faded gates and a fading player are drawn faint.
	if tile.Alpha < 0.75 {
		s = append(color.Style{}, s...)
		s = append(s, color.OpFuzzy)
	}
	return s.Sprint(tile.Icon)
}

// getDirectionActionText returns the action text for a direction
func (t *TUIRenderer) getDirectionActionText(g *state.Game, c *world.Cell, direction string) string {
	if c == nil || !c.Room {
		return t.colorSubtle.Sprintf("# Wall #")
	}

	lockedText := ""

	if canEnter, missing := gameplay.CanEnter(g, c, false); !canEnter && missing.Size() > 0 {
		var labels []string
		missing.Each(func(a capability.Ability) {
			labels = append(labels, locale.Get(a.LabelKey()))
		})
		lockedText = t.colorDenied.Sprintf(" (%v)", strings.Join(labels, ","))
	}

	// Get the display key based on navigation style
	displayKey := direction
	if g.NavStyle == state.NavStyleVim {
		switch direction {
		case "North":
			displayKey = "k"
		case "South":
			displayKey = "j"
		case "East":
			displayKey = "l"
		case "West":
			displayKey = "h"
		}
	}

	return fmt.Sprintf("ACTION{%v}%v", displayKey, lockedText)
}

// printMap renders the game map
func (t *TUIRenderer) printMap(g *state.Game) {
	termWidth := terminal.GetWidth()
	viewportRows, viewportCols := t.GetViewportSize()

	// Calculate indent to center the map
	// West label area (24 chars) + map (viewportCols) + East label area (24 chars)
	westLabelWidth := 24
	totalMapWidth := westLabelWidth + viewportCols + westLabelWidth
	centerIndent := (termWidth - totalMapWidth) / 2
	if centerIndent < 0 {
		centerIndent = 0
	}
	indent := strings.Repeat(" ", centerIndent+westLabelWidth)

	// Calculate indent to center North/South labels over the map viewport
	mapStartCol := centerIndent + westLabelWidth

	// Calculate the top-left corner of the viewport, centered on the player
	startRow := g.CurrentCell.Row - viewportRows/2
	startCol := g.CurrentCell.Col - viewportCols/2

	// Print North direction label (centered over map)
	northText := t.FormatText("%s", t.getDirectionActionText(g, g.CurrentCell.North, "North"))
	northIndent := mapStartCol + (viewportCols-len(color.ClearCode(northText)))/2
	if northIndent < 0 {
		northIndent = 0
	}
	t.buf.WriteString(strings.Repeat(" ", northIndent) + northText + "\n\n")

	// Render the viewport
	for vRow := 0; vRow < viewportRows; vRow++ {
		mapRow := startRow + vRow

		// Print West label on the middle row
		if vRow == viewportRows/2 {
			txt := t.FormatText("%s", t.getDirectionActionText(g, g.CurrentCell.West, "West"))
			padding := centerIndent + westLabelWidth - len(color.ClearCode(txt)) - 1
			if padding > 0 {
				t.buf.WriteString(strings.Repeat(" ", padding))
			}
			t.buf.WriteString(txt + " ")
		} else {
			t.buf.WriteString(indent)
		}

		// Render cells in this row
		for vCol := 0; vCol < viewportCols; vCol++ {
			t.buf.WriteString(t.renderCell(g, g.Grid.GetCell(mapRow, startCol+vCol)))
		}

		// Print East label on the middle row
		if vRow == viewportRows/2 {
			t.printString(" %s", t.getDirectionActionText(g, g.CurrentCell.East, "East"))
		}

		t.buf.WriteString("\n")
	}

	// Print South direction label (centered under map)
	southText := t.FormatText("%s", t.getDirectionActionText(g, g.CurrentCell.South, "South"))
	southIndent := mapStartCol + (viewportCols-len(color.ClearCode(southText)))/2
	if southIndent < 0 {
		southIndent = 0
	}
	t.buf.WriteString("\n" + strings.Repeat(" ", southIndent) + southText + "\n")
}

// printPossibleActions prints the available actions
func (t *TUIRenderer) printPossibleActions() {
	t.printString("ACTION{e} open   ACTION{i} wear   ACTION{?} hint   ACTION{p} pause   ACTION{r} reset   ACTION{q} quit\n")
}

// printStatusBar renders inventory, abilities and the timer
func (t *TUIRenderer) printStatusBar(g *state.Game) {
	t.buf.WriteString("\n")

	t.buf.WriteString(t.colorSubtle.Sprint(locale.Get("INVENTORY") + ": "))
	if items := renderer.InventoryNames(g); len(items) == 0 {
		t.buf.WriteString(t.colorSubtle.Sprint(locale.Get("INVENTORY_EMPTY")))
	} else {
		for i, name := range items {
			if i > 0 {
				t.buf.WriteString(t.colorSubtle.Sprint(", "))
			}
			t.buf.WriteString(t.colorItem.Sprint(name))
		}
	}
	t.buf.WriteString("\n")

	t.buf.WriteString(t.colorSubtle.Sprint(locale.Get("ABILITIES") + ": "))
	if labels := renderer.AbilityLabels(g); len(labels) == 0 {
		t.buf.WriteString(t.colorSubtle.Sprint("-"))
	} else {
		t.buf.WriteString(t.colorExitOpen.Sprint(strings.Join(labels, ", ")))
	}
	t.buf.WriteString("\n")

	t.buf.WriteString(t.colorSubtle.Sprint(locale.Get("TIME") + ": "))
	clockText := g.Stopwatch.String()
	switch {
	case g.Finished:
		t.buf.WriteString(t.colorExitOpen.Sprint(clockText))
	case g.Clock.Paused():
		t.buf.WriteString(t.colorDenied.Sprint(clockText + " " + locale.Get("PAUSED")))
	default:
		t.buf.WriteString(clockText)
	}
	t.buf.WriteString("\n")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(g *state.Game) {
	width := terminal.GetWidth()

	label := " " + locale.Get("MESSAGES") + " "
	labelLen := len([]rune(label))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	t.buf.WriteString("\n")
	t.buf.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)) + "\n")

	if len(g.Messages) == 0 {
		t.buf.WriteString(t.colorSubtle.Sprint("  -") + "\n")
	} else {
		for _, msg := range g.Messages {
			t.buf.WriteString("  " + t.FormatText(msg) + "\n")
		}
	}

	t.buf.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + "\n")
}

var _ renderer.Renderer = (*TUIRenderer)(nil)
