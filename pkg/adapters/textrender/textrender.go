// Package textrender provides caption rendering using the gg library.
package textrender

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Renderer implements ports.TextRenderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// textPadding keeps captions off the canvas edge.
const textPadding = 8

// RenderCaption renders the text onto a transparent width x height layer so
// it can be source-over composited like any other layer.
func (r *Renderer) RenderCaption(text string, width, height int, style ports.TextStyle) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: caption layer %dx%d", pipeline.ErrInvalidDimensions, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(style.Color)

	if style.FontPath != "" {
		if err := dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
			return nil, fmt.Errorf("load font %q: %w", style.FontPath, err)
		}
	}

	x := float64(textPadding)
	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		x = float64(width) / 2
		ax = 0.5
	case ports.AlignRight:
		x = float64(width - textPadding)
		ax = 1.0
	}

	dc.DrawStringAnchored(text, x, float64(height)/2, ax, 0.5)

	// gg renders into a premultiplied RGBA buffer; the compositor works in
	// straight alpha, so convert on the way out.
	return imaging.Clone(dc.Image()), nil
}

// Ensure Renderer implements ports.TextRenderer
var _ ports.TextRenderer = (*Renderer)(nil)
