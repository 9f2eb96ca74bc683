package ebiten

import (
	"image/color"

	"ghostgame/pkg/game/renderer"
)

// Color palette for the game
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorPlayer          = color.RGBA{230, 240, 255, 255} // Ghostly white
	colorWall            = color.RGBA{180, 180, 200, 255} // Light gray-blue for wall text
	colorWallBg          = color.RGBA{60, 60, 80, 255}    // Darker background for walls
	colorFloor           = color.RGBA{100, 100, 120, 255} // Medium gray for unvisited
	colorFloorVisited    = color.RGBA{160, 160, 180, 255} // Lighter gray for visited
	colorItem            = color.RGBA{220, 170, 255, 255} // Bright purple
	colorHole            = color.RGBA{255, 80, 80, 255}   // Bright red
	colorHoleOpen        = color.RGBA{255, 180, 120, 255} // Soft orange
	colorPhantomWall     = color.RGBA{150, 150, 255, 255} // Pale blue
	colorPhantomWallOpen = color.RGBA{110, 110, 170, 255}
	colorHidden          = color.RGBA{255, 255, 150, 255} // Pale yellow sparkle
	colorChest           = color.RGBA{255, 200, 100, 255} // Orange
	colorChestOpen       = color.RGBA{120, 120, 140, 255} // Medium gray
	colorCheckpoint      = color.RGBA{100, 200, 255, 255}
	colorTeleporter      = color.RGBA{0, 220, 220, 255}
	colorExit            = color.RGBA{100, 255, 100, 255} // Bright green
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

// styleColors maps each text style to its draw color.
var styleColors = map[renderer.TextStyle]color.RGBA{
	renderer.StyleNormal:      colorText,
	renderer.StyleCell:        colorFloorVisited,
	renderer.StyleCellText:    colorText,
	renderer.StyleItem:        colorItem,
	renderer.StyleAction:      colorAction,
	renderer.StyleActionShort: colorAction,
	renderer.StyleDenied:      colorDenied,
	renderer.StyleHole:        colorHole,
	renderer.StyleHoleOpen:    colorHoleOpen,
	renderer.StyleWall:        colorPhantomWall,
	renderer.StyleWallOpen:    colorPhantomWallOpen,
	renderer.StyleHidden:      colorHidden,
	renderer.StyleChest:       colorChest,
	renderer.StyleChestOpen:   colorChestOpen,
	renderer.StyleCheckpoint:  colorCheckpoint,
	renderer.StyleTeleporter:  colorTeleporter,
	renderer.StyleSubtle:      colorSubtle,
	renderer.StylePlayer:      colorPlayer,
	renderer.StyleExitOpen:    colorExit,
}

// styleColor returns the color for style, or the text color if it has none.
func styleColor(style renderer.TextStyle) color.RGBA {
	if c, ok := styleColors[style]; ok {
		return c
	}
	return colorText
}

// tileBackground returns the block drawn behind a tile, if any.
func tileBackground(tile renderer.Tile) (color.RGBA, bool) {
	switch {
	case tile.Icon == renderer.IconWall:
		return colorWallBg, true
	case tile.Style == renderer.StyleWall:
		return colorWallBg, true
	}
	return color.RGBA{}, false
}

// Tile size constraints
const (
	defaultTileSize = 32
	minTileSize     = 12
	maxTileSize     = 144
	tileSizeStep    = 4
	baseFontSize    = 16.0 // Base font size at a 24px tile
)

// Layout
const (
	mapMargin      = 20
	minViewportCol = 15
	minViewportRow = 11
	maxMessages    = 5
)
