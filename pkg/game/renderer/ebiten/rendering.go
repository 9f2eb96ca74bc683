package ebiten

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/renderer"
	"ghostgame/pkg/game/state"
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g := e.game
	if g == nil || g.Grid == nil || g.CurrentCell == nil || e.monoFontSource == nil {
		return
	}

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	headerHeight := int(e.getUIFontSize()) + 20

	mapAreaWidth := e.viewportCols * e.tileSize
	mapAreaHeight := e.viewportRows * e.tileSize
	mapX := (screenWidth - mapAreaWidth) / 2
	mapY := headerHeight + mapMargin

	e.drawHeader(screen, g)

	vector.DrawFilledRect(screen, float32(mapX-mapMargin), float32(mapY-mapMargin),
		float32(mapAreaWidth+mapMargin*2), float32(mapAreaHeight+mapMargin*2),
		colorMapBackground, false)

	e.drawMap(screen, g, mapX, mapY)
	e.drawStatusBar(screen, g, mapX+mapMargin, mapY+mapMargin)
	e.drawMessages(screen, g, screenWidth, screenHeight)
}

// drawHeader draws the level title and any notices.
func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, g *state.Game) {
	title := ""
	if g.Definition != nil {
		title = g.Definition.Title()
	}
	if g.Clock.Paused() {
		title += "  " + renderer.StripMarkup(locale.Get("PAUSED"))
	}
	e.drawColoredText(screen, title, mapMargin, 10, colorAction)

	e.noticesMutex.RLock()
	defer e.noticesMutex.RUnlock()
	if len(e.notices) > 0 {
		notice := e.notices[len(e.notices)-1]
		w, _ := text.Measure(notice, e.getSansFontFace(), 0)
		e.drawColoredText(screen, notice, screen.Bounds().Dx()-int(w)-mapMargin, 10, colorDenied)
	}
}

// viewportOrigin returns the grid cell drawn in the top-left corner, keeping
// the player centred.
func (e *EbitenRenderer) viewportOrigin(g *state.Game) (startRow, startCol int) {
	return g.CurrentCell.Row - e.viewportRows/2, g.CurrentCell.Col - e.viewportCols/2
}

// drawMap draws the visible part of the grid around the player.
func (e *EbitenRenderer) drawMap(screen *ebiten.Image, g *state.Game, mapX, mapY int) {
	startRow, startCol := e.viewportOrigin(g)
	for vRow := 0; vRow < e.viewportRows; vRow++ {
		for vCol := 0; vCol < e.viewportCols; vCol++ {
			cell := g.Grid.GetCell(startRow+vRow, startCol+vCol)
			if cell == nil {
				continue
			}
			tile := renderer.DescribeCell(g, cell)
			if !tile.Known {
				continue
			}
			x := mapX + vCol*e.tileSize
			y := mapY + vRow*e.tileSize
			e.drawTile(screen, tile, x, y)
		}
	}
}

// drawTile draws a single tile with its background block and alpha.
func (e *EbitenRenderer) drawTile(screen *ebiten.Image, tile renderer.Tile, x, y int) {
	if tile.Icon == renderer.IconVoid || tile.Icon == "" || tile.Alpha <= 0 {
		return
	}
	if bg, ok := tileBackground(tile); ok {
		margin := float32(2)
		vector.DrawFilledRect(screen, float32(x)+margin, float32(y)+margin,
			float32(e.tileSize)-margin*2, float32(e.tileSize)-margin*2,
			withAlpha(bg, tile.Alpha), false)
	}
	col := styleColor(tile.Style)
	if tile.Icon == renderer.IconWall {
		col = colorWall
	}
	e.drawColoredChar(screen, tile.Icon, x, y, withAlpha(col, tile.Alpha))
	if tile.Overlay != "" {
		e.drawColoredChar(screen, tile.Overlay, x, y-e.tileSize/4, withAlpha(styleColor(renderer.StyleItem), tile.Alpha))
	}
}

// drawStatusBar draws inventory, abilities and the timer over the map.
func (e *EbitenRenderer) drawStatusBar(screen *ebiten.Image, g *state.Game, x, y int) {
	lines := statusLines(g)
	lineHeight := int(e.getUIFontSize()) + 6

	width := 0.0
	for _, line := range lines {
		w, _ := text.Measure(line, e.getSansFontFace(), 0)
		width = max(width, w)
	}
	vector.DrawFilledRect(screen, float32(x-8), float32(y-6),
		float32(width+16), float32(len(lines)*lineHeight+12), colorPanelBackground, false)

	for i, line := range lines {
		e.drawColoredText(screen, line, x, y+i*lineHeight, colorText)
	}
}

// statusLines returns the status panel contents.
func statusLines(g *state.Game) []string {
	inv := renderer.InventoryNames(g)
	invText := locale.Get("INVENTORY_EMPTY")
	if len(inv) > 0 {
		invText = strings.Join(inv, ", ")
	}
	lines := []string{
		fmt.Sprintf("%s: %s", locale.Get("INVENTORY"), invText),
	}
	if abilities := renderer.AbilityLabels(g); len(abilities) > 0 {
		lines = append(lines, fmt.Sprintf("%s: %s", locale.Get("ABILITIES"), strings.Join(abilities, ", ")))
	}
	lines = append(lines, fmt.Sprintf("%s: %s", locale.Get("TIME"), g.Stopwatch.String()))
	return lines
}

// drawMessages draws the latest messages bottom-aligned, the
// newest brightest.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, g *state.Game, screenWidth, screenHeight int) {
	msgs := g.Messages
	if len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}
	if len(msgs) == 0 {
		return
	}
	lineHeight := int(e.getUIFontSize()) + 6
	y := screenHeight - mapMargin - len(msgs)*lineHeight

	vector.DrawFilledRect(screen, 0, float32(y-8), float32(screenWidth),
		float32(len(msgs)*lineHeight+16), colorPanelBackground, false)

	for i, msg := range msgs {
		fade := 0.4 + 0.6*float64(i+1)/float64(len(msgs))
		e.drawColoredText(screen, renderer.StripMarkup(msg), mapMargin, y+i*lineHeight, withAlpha(colorText, fade))
	}
}

// drawColoredChar draws a character centred in the tile at x, y (uses mono font)
func (e *EbitenRenderer) drawColoredChar(screen *ebiten.Image, char string, x, y int, col color.Color) {
	face := e.getMonoFontFace()
	w, h := text.Measure(char, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+(float64(e.tileSize)-w)/2, float64(y)+(float64(e.tileSize)-h)/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, char, face, op)
}

// drawColoredText draws UI text with its top-left corner at x, y.
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, e.getSansFontFace(), op)
}

// withAlpha scales c's alpha by a, clamped to [0, 1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = min(max(a, 0), 1)
	// Premultiplied: scale every channel.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
