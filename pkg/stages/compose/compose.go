// Package compose implements the canvas composition stage.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Stage builds the background canvas and paints the layers onto it.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("compose"),
	}
}

// Execute builds the canvas and composites all layers in order.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	result := pipeline.ComposeResult{}

	canvas, err := NewCanvas(input.Width, input.Height, input.Background)
	if err != nil {
		return result, fmt.Errorf("build canvas: %w", err)
	}

	s.logger.Debug("Compositing %d layers onto %dx%d canvas", len(input.Layers), input.Width, input.Height)

	result.Image = Composite(canvas, input.Layers)

	if s.sink.Enabled() {
		s.sink.SaveComposed(result.Image)
	}

	return result, nil
}

// NewCanvas allocates a solid-color, fully opaque raster with (0,0) origin.
func NewCanvas(width, height int, rgb color.RGBA) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", pipeline.ErrInvalidDimensions, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill := color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	return img, nil
}

// Composite paints the layers over the canvas in order: earlier layers
// first, later layers on top. Blending is source-over per channel with the
// result alpha held at 255, since the canvas is always fully opaque.
//
// The input canvas is not modified; a new raster is returned. Layer regions
// outside the canvas bounds contribute nothing.
func Composite(canvas *image.NRGBA, layers []pipeline.Layer) *image.NRGBA {
	bounds := canvas.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			out.SetNRGBA(x, y, canvas.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	for _, layer := range layers {
		blendLayer(out, layer)
	}
	return out
}

// blendLayer source-over blends one layer into dst in place.
// dst is always (0,0)-origin and fully opaque.
func blendLayer(dst *image.NRGBA, layer pipeline.Layer) {
	if layer.Image == nil {
		return
	}
	src := layer.Image
	sb := src.Bounds()
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	// Clamp the blend region to the canvas; a fully off-canvas layer
	// yields an empty region and is a no-op.
	startY := max(0, -layer.Top)
	endY := min(sb.Dy(), h-layer.Top)
	startX := max(0, -layer.Left)
	endX := min(sb.Dx(), w-layer.Left)

	for sy := startY; sy < endY; sy++ {
		dy := layer.Top + sy
		for sx := startX; sx < endX; sx++ {
			s := src.NRGBAAt(sb.Min.X+sx, sb.Min.Y+sy)
			if s.A == 0 {
				continue
			}
			dx := layer.Left + sx
			if s.A == 255 {
				dst.SetNRGBA(dx, dy, color.NRGBA{R: s.R, G: s.G, B: s.B, A: 255})
				continue
			}
			d := dst.NRGBAAt(dx, dy)
			a := uint32(s.A)
			na := 255 - a
			dst.SetNRGBA(dx, dy, color.NRGBA{
				R: uint8((uint32(s.R)*a + uint32(d.R)*na + 127) / 255),
				G: uint8((uint32(s.G)*a + uint32(d.G)*na + 127) / 255),
				B: uint8((uint32(s.B)*a + uint32(d.B)*na + 127) / 255),
				A: 255,
			})
		}
	}
}

// Crop extracts a portion of src into a new raster with (0,0) origin,
// clamping the rectangle to the source bounds. Returns nil when the clamped
// region is empty.
func Crop(src *image.NRGBA, rect pipeline.Rect) *image.NRGBA {
	bounds := src.Bounds()

	srcX := bounds.Min.X + rect.X
	srcY := bounds.Min.Y + rect.Y
	width := rect.Width
	height := rect.Height

	if srcX < bounds.Min.X {
		srcX = bounds.Min.X
	}
	if srcY < bounds.Min.Y {
		srcY = bounds.Min.Y
	}
	if srcX+width > bounds.Max.X {
		width = bounds.Max.X - srcX
	}
	if srcY+height > bounds.Max.Y {
		height = bounds.Max.Y - srcY
	}

	if width <= 0 || height <= 0 {
		return nil
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetNRGBA(x, y, src.NRGBAAt(srcX+x, srcY+y))
		}
	}
	return out
}
