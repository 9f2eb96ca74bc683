// Package ebiten provides an Ebiten-based 2D graphical renderer.
package ebiten

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/renderer"
	"ghostgame/pkg/game/state"
)

// DefaultRateHz is the update rate used when none is configured.
const DefaultRateHz = 60

// EbitenRenderer is the Ebiten-based graphical renderer. Update and Draw run
// on the same goroutine, so the game is only ever touched from Ebiten's loop.
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int

	// Tile size for rendering (adjustable with +/-)
	tileSize int

	// Viewport dimensions (in tiles), recalculated from window and tile size
	viewportRows int
	viewportCols int

	rate int

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource // map tiles
	sansFontSource *text.GoTextFaceSource // UI text

	// Cached font faces (recreated when tile size changes)
	cachedTileFontSize float64
	cachedUIFontSize   float64
	cachedMonoFace     *text.GoTextFace
	cachedSansFace     *text.GoTextFace

	game *state.Game
	ctx  context.Context

	// Messages shown outside the game frame, e.g. load errors
	notices      []string
	noticesMutex sync.RWMutex

	windowOpenedLogged bool
}

var _ renderer.Renderer = (*EbitenRenderer)(nil)

// New creates a new Ebiten renderer updating rateHz times a second.
func New(rateHz int) *EbitenRenderer {
	if rateHz <= 0 {
		rateHz = DefaultRateHz
	}
	e := &EbitenRenderer{
		windowWidth:  1024,
		windowHeight: 768,
		tileSize:     defaultTileSize,
		rate:         rateHz,
	}
	e.recalculateViewport()
	return e
}

// Init loads the fonts and sets up the window.
func (e *EbitenRenderer) Init() {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		panic(fmt.Sprintf("loading mono font: %v", err))
	}
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(fmt.Sprintf("loading sans font: %v", err))
	}
	e.monoFontSource = mono
	e.sansFontSource = sans

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(locale.Get("GAME_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.rate)
}

// Clear drops any notices. The screen itself is redrawn every frame.
func (e *EbitenRenderer) Clear() {
	e.noticesMutex.Lock()
	e.notices = nil
	e.noticesMutex.Unlock()
}

// StyleText returns text unchanged; colors are chosen per style at draw time.
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText expands markup to plain text.
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	return renderer.ExpandMarkup(msg, args, func(_, operand string) string {
		return operand
	})
}

// ShowMessage queues a notice drawn above the map.
func (e *EbitenRenderer) ShowMessage(msg string) {
	e.noticesMutex.Lock()
	e.notices = append(e.notices, e.FormatText(msg))
	e.noticesMutex.Unlock()
}

// GetViewportSize returns the current viewport dimensions
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	return e.viewportRows, e.viewportCols
}

// RenderFrame sets the game drawn on the next frame.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.game = g
}

// Run opens the window and blocks until the player quits, the window is
// closed or ctx is cancelled.
func (e *EbitenRenderer) Run(ctx context.Context, g *state.Game) error {
	if e.monoFontSource == nil {
		e.Init()
	}
	e.ctx = ctx
	e.RenderFrame(g)
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
