// Package placement implements the silhouette placement planning stage.
package placement

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/user/brandkit/pkg/pipeline"
)

// ErrEmptyVisibleRegion is returned when clipping leaves nothing of the
// silhouette on the canvas. With a silhouette multiplier above 1.0 and the
// default offset bands this cannot happen; hitting it means the constants
// are misconfigured.
var ErrEmptyVisibleRegion = errors.New("placement: empty visible region")

// Stage computes where the silhouette sits on the canvas.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new placement stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute computes the placement for the given input.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlacementInput) (pipeline.Placement, error) {
	return ComputePlacement(input)
}

// SilhouetteSize derives the square silhouette size from the canvas
// reference size. The result is clamped to at least 1.
func SilhouetteSize(ref int, multiplier float64) int {
	size := int(math.Floor(float64(ref) * multiplier))
	if size < 1 {
		size = 1
	}
	return size
}

// OffsetFor selects the offset band for the canvas reference size and
// returns the effective offset: max(MinOffset, round(ref * Multiplier)).
//
// Bands are scanned in ascending MaxSize order; the first band whose
// inclusive MaxSize covers ref wins. MaxSize 0 marks an unbounded band.
// If every band is bounded and ref exceeds them all, the last band applies.
func OffsetFor(ref int, bands []pipeline.OffsetBand) int {
	if len(bands) == 0 {
		return 0
	}
	band := bands[len(bands)-1]
	for _, b := range bands {
		if b.MaxSize == 0 || ref <= b.MaxSize {
			band = b
			break
		}
	}
	offset := int(math.Round(float64(ref) * band.Multiplier))
	if offset < band.MinOffset {
		offset = band.MinOffset
	}
	return offset
}

// ComputePlacement performs the placement calculation.
// This is exposed as a standalone function for testing and reuse.
//
// The silhouette is sized off the smaller canvas dimension, centered on the
// canvas, then shifted up-and-left by the band offset. Whatever spills
// outside the canvas is clipped; the visible sub-rectangle is reported in
// silhouette coordinates together with its final on-canvas position.
func ComputePlacement(input pipeline.PlacementInput) (pipeline.Placement, error) {
	w, h := input.CanvasWidth, input.CanvasHeight
	if w <= 0 || h <= 0 {
		return pipeline.Placement{}, fmt.Errorf("%w: canvas %dx%d", pipeline.ErrInvalidDimensions, w, h)
	}

	ref := min(w, h)
	size := SilhouetteSize(ref, input.SilhouetteMultiplier)
	offset := OffsetFor(ref, input.Bands)

	// Center the S x S silhouette, then shift up-left by the offset.
	placedX := floorDiv(w-size, 2) - offset
	placedY := floorDiv(h-size, 2) - offset

	cropLeft := max(0, -placedX)
	cropTop := max(0, -placedY)
	cropRight := min(size, w-placedX)
	cropBottom := min(size, h-placedY)

	visibleW := cropRight - cropLeft
	visibleH := cropBottom - cropTop
	if visibleW <= 0 || visibleH <= 0 {
		return pipeline.Placement{}, fmt.Errorf(
			"%w: canvas %dx%d, silhouette %d, offset %d", ErrEmptyVisibleRegion, w, h, size, offset)
	}

	return pipeline.Placement{
		SilhouetteSize: size,
		Offset:         offset,
		Placed:         pipeline.Point{X: placedX, Y: placedY},
		Visible: pipeline.Rect{
			X:      cropLeft,
			Y:      cropTop,
			Width:  visibleW,
			Height: visibleH,
		},
		Position: pipeline.Point{X: max(0, placedX), Y: max(0, placedY)},
	}, nil
}

// floorDiv divides a by b rounding toward negative infinity.
// Go's integer division truncates toward zero, which is wrong for the
// negative centering term when the silhouette is larger than the canvas.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
