package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "ghostgame/pkg/engine/input"
	"ghostgame/pkg/game/devtools"
	"ghostgame/pkg/game/gameplay"
)

// Key repeat, in ticks
const (
	keyRepeatInitialDelay = 30
	keyRepeatInterval     = 6
)

// keyBinding ties an Ebiten key to the raw code the input bindings know.
type keyBinding struct {
	key  ebiten.Key
	code string
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyNumpadEnter, "enter"},
	{ebiten.KeyTab, "tab"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyF5, "f5"},
	{ebiten.KeyF8, "f8"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyEqual, "="},
	{ebiten.KeyNumpadAdd, "numpad_add"},
	{ebiten.KeyMinus, "-"},
	{ebiten.KeyNumpadSubtract, "numpad_subtract"},
}

var letterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
	ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
	ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
	ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
}

// Every letter sends its lower-case code so rebinding works for any of them.
func init() {
	for _, k := range letterKeys {
		keyBindings = append(keyBindings, keyBinding{k, strings.ToLower(k.String())})
	}
}

type buttonBinding struct {
	button ebiten.StandardGamepadButton
	code   string
}

var buttonBindings = []buttonBinding{
	{ebiten.StandardGamepadButtonLeftTop, "gamepad_dpad_up"},
	{ebiten.StandardGamepadButtonLeftBottom, "gamepad_dpad_down"},
	{ebiten.StandardGamepadButtonLeftLeft, "gamepad_dpad_left"},
	{ebiten.StandardGamepadButtonLeftRight, "gamepad_dpad_right"},
	{ebiten.StandardGamepadButtonRightBottom, "gamepad_a"},
	{ebiten.StandardGamepadButtonRightRight, "gamepad_b"},
	{ebiten.StandardGamepadButtonRightLeft, "gamepad_x"},
	{ebiten.StandardGamepadButtonCenterRight, "gamepad_start"},
}

// Update handles input and advances the game (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	g := e.game
	if g == nil {
		return nil
	}
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		g.Logger.Info("window opened", "width", w, "height", h)
	}
	if e.ctx != nil && e.ctx.Err() != nil {
		return ebiten.Termination
	}

	for _, intent := range e.checkInput() {
		switch intent.Action {
		case engineinput.ActionZoomIn:
			e.increaseTileSize()
		case engineinput.ActionZoomOut:
			e.decreaseTileSize()
		case engineinput.ActionDebugMapDump:
			devtools.DumpMapAndAnnounce(g)
		default:
			gameplay.ProcessIntent(g, intent)
		}
	}
	if g.Quit {
		return ebiten.Termination
	}

	gameplay.Tick(g, time.Second/time.Duration(ebiten.TPS()))
	return nil
}

// checkInput collects this tick's intents from the keyboard and gamepads.
func (e *EbitenRenderer) checkInput() []engineinput.Intent {
	var intents []engineinput.Intent
	emit := func(device engineinput.Device, code string) {
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device:    device,
			Code:      code,
			Timestamp: time.Now(),
		}))
		if intent.Action != engineinput.ActionNone {
			intents = append(intents, intent)
		}
	}

	for _, b := range keyBindings {
		if repeats(b.code) {
			if repeatFires(inpututil.KeyPressDuration(b.key)) {
				emit(engineinput.DeviceKeyboard, b.code)
			}
			continue
		}
		if inpututil.IsKeyJustPressed(b.key) {
			emit(engineinput.DeviceKeyboard, b.code)
		}
	}

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range buttonBindings {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b.button) {
				emit(engineinput.DeviceGamepad, b.code)
			}
		}
	}
	return intents
}

// repeats reports whether holding the key bound to code should repeat.
// Movement does.
func repeats(code string) bool {
	intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device: engineinput.DeviceKeyboard,
		Code:   code,
	}))
	switch intent.Action {
	case engineinput.ActionMoveNorth, engineinput.ActionMoveSouth,
		engineinput.ActionMoveWest, engineinput.ActionMoveEast:
		return true
	}
	return false
}

// repeatFires reports whether a key held for ticks should send an event:
// once on press, then steadily after the initial delay.
func repeatFires(ticks int) bool {
	switch {
	case ticks == 1:
		return true
	case ticks < keyRepeatInitialDelay:
		return false
	default:
		return (ticks-keyRepeatInitialDelay)%keyRepeatInterval == 0
	}
}

// increaseTileSize increases the tile/font size
func (e *EbitenRenderer) increaseTileSize() {
	if e.tileSize < maxTileSize {
		e.tileSize += tileSizeStep
		e.invalidateFontCache()
		e.recalculateViewport()
	}
}

// decreaseTileSize decreases the tile/font size
func (e *EbitenRenderer) decreaseTileSize() {
	if e.tileSize > minTileSize {
		e.tileSize -= tileSizeStep
		e.invalidateFontCache()
		e.recalculateViewport()
	}
}

// recalculateViewport fits the viewport to the window, keeping odd sizes so
// the player sits in the middle.
func (e *EbitenRenderer) recalculateViewport() {
	headerHeight := int(e.getUIFontSize()) + 20
	cols := (e.windowWidth - mapMargin*2) / e.tileSize
	rows := (e.windowHeight - headerHeight - mapMargin*2) / e.tileSize

	if cols < minViewportCol {
		cols = minViewportCol
	}
	if rows < minViewportRow {
		rows = minViewportRow
	}
	if cols%2 == 0 {
		cols--
	}
	if rows%2 == 0 {
		rows--
	}
	e.viewportCols = cols
	e.viewportRows = rows
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		e.recalculateViewport()
	}
	return outsideWidth, outsideHeight
}
