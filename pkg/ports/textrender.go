package ports

import (
	"image"
	"image/color"
)

// TextStyle defines caption rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextRenderer abstracts caption rendering.
type TextRenderer interface {
	// RenderCaption renders text onto a transparent width x height layer.
	// The returned raster is suitable for source-over compositing.
	RenderCaption(text string, width, height int, style TextStyle) (*image.NRGBA, error)
}
