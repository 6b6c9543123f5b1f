package render

import (
	"image"
	"image/color"
)

// Global render configuration for colors and logical canvas.
var (
	Background = color.RGBA{A: 0xFF}
	// Touch rings are white at ~70% opacity.
	TouchColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xB4}

	// Logical canvas size; scaled to the output device.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

const (
	Padding     = 40
	TouchRadius = 40
	TouchStroke = 3
)

func CanvasSize() image.Point { return image.Pt(CanvasWidth, CanvasHeight) }
