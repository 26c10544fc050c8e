// Package silhouette implements the silhouette recoloring stage.
package silhouette

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/brandkit/pkg/palette"
	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Stage turns a subject cutout into a flat-color drop silhouette.
type Stage struct {
	palette *palette.Palette
	shadows palette.ShadowTable
	sink    ports.DebugSink
	logger  ports.Logger
}

// NewStage creates a new silhouette stage.
func NewStage(p *palette.Palette, shadows palette.ShadowTable, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		palette: p,
		shadows: shadows,
		sink:    sink,
		logger:  logger.WithComponent("silhouette"),
	}
}

// Execute recolors the subject with the shadow color for the background.
func (s *Stage) Execute(ctx context.Context, input pipeline.SilhouetteInput) (pipeline.SilhouetteResult, error) {
	result := pipeline.SilhouetteResult{}

	if input.Subject == nil {
		return result, fmt.Errorf("silhouette: nil subject")
	}

	shadowName, shadow, err := s.shadows.ShadowFor(s.palette, input.Background)
	if err != nil {
		return result, fmt.Errorf("pick shadow color: %w", err)
	}

	s.logger.Debug("Recoloring %dx%d subject with shadow %s",
		input.Subject.Bounds().Dx(), input.Subject.Bounds().Dy(), shadowName)

	result.Image = Recolor(input.Subject, shadow)
	result.ShadowName = shadowName
	result.Shadow = shadow

	if s.sink.Enabled() {
		s.sink.SaveSilhouette(result.Image)
	}

	return result, nil
}

// Recolor replaces every pixel's RGB with the shadow color and copies the
// source alpha unchanged, so anti-aliased edges stay anti-aliased. The
// source is not modified; a new raster with (0,0) origin is returned.
func Recolor(src *image.NRGBA, shadow color.RGBA) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := src.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).A
			out.SetNRGBA(x, y, color.NRGBA{R: shadow.R, G: shadow.G, B: shadow.B, A: a})
		}
	}
	return out
}
