package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor window and the canvas
// decorations (grid, rulers, handles, crop overlay).
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the canvas
	Foreground color.RGBA // Status text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Toggled tool or mode
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CanvasFill   color.RGBA
	GridLine     color.RGBA
	RulerLine    color.RGBA
	RulerText    color.RGBA
	HandleStroke color.RGBA
	HandleFill   color.RGBA
	CropStroke   color.RGBA
	CropFill     color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{237, 242, 247, 255},
		ButtonBackground:      color.RGBA{255, 255, 255, 255},
		ButtonBackgroundHover: color.RGBA{226, 232, 240, 255},
		ButtonBackgroundPress: color.RGBA{203, 213, 224, 255},
		ButtonActive:          color.RGBA{190, 227, 248, 255},
		ButtonText:            color.RGBA{45, 55, 72, 255},
		ButtonBorder:          color.RGBA{160, 174, 192, 255},
		CanvasFill:            color.RGBA{255, 255, 255, 255},
		GridLine:              color.RGBA{0xf0, 0xf0, 0xf0, 255},
		RulerLine:             color.RGBA{0x66, 0x66, 0x66, 255},
		RulerText:             color.RGBA{0x66, 0x66, 0x66, 255},
		HandleStroke:          color.RGBA{0x00, 0x66, 0xcc, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		CropStroke:            color.RGBA{0x00, 0x66, 0xcc, 255},
		CropFill:              color.RGBA{0x00, 0x0a, 0x14, 0x1a},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
