package mocks

import (
	"image"

	"github.com/user/brandkit/pkg/ports"
)

// TextRenderer is a mock implementation of ports.TextRenderer.
type TextRenderer struct {
	RenderCaptionFunc func(text string, width, height int, style ports.TextStyle) (*image.NRGBA, error)

	// Recorded calls for verification
	Captions []string
}

func (m *TextRenderer) RenderCaption(text string, width, height int, style ports.TextStyle) (*image.NRGBA, error) {
	m.Captions = append(m.Captions, text)
	if m.RenderCaptionFunc != nil {
		return m.RenderCaptionFunc(text, width, height, style)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height)), nil
}

// Ensure TextRenderer implements ports.TextRenderer
var _ ports.TextRenderer = (*TextRenderer)(nil)
