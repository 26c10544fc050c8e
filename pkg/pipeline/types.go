package pipeline

import (
	"image"
	"image/color"

	"github.com/user/brandkit/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// Point represents an integer position on the canvas.
type Point struct {
	X int
	Y int
}

// Rect represents a rectangular area.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layer is a raster positioned on the canvas. Left/Top may be negative or
// place the raster partially or fully outside the canvas bounds; the
// compositor clips the blend region. Blending is always source-over.
type Layer struct {
	Image *image.NRGBA
	Left  int
	Top   int
}

// =============================================================================
// Silhouette Stage Types
// =============================================================================

// SilhouetteInput contains parameters for silhouette recoloring.
type SilhouetteInput struct {
	// Subject is the pre-cut subject raster, already cover-fit to the
	// silhouette's target size.
	Subject *image.NRGBA

	// Background is the palette name of the canvas background color. The
	// shadow color is derived from it via the shadow table.
	Background string
}

// SilhouetteResult contains the recolored silhouette.
type SilhouetteResult struct {
	Image      *image.NRGBA
	ShadowName string
	Shadow     color.RGBA
}

// =============================================================================
// Placement Stage Types
// =============================================================================

// OffsetBand defines the diagonal offset rule for one canvas-size band.
// Bands are evaluated in ascending MaxSize order and the first band with
// MaxSize >= the canvas reference size wins.
type OffsetBand struct {
	// MaxSize is the inclusive upper bound of canvas sizes in this band.
	MaxSize int `yaml:"max_size"`
	// Multiplier is the offset as a fraction of the canvas reference size.
	Multiplier float64 `yaml:"multiplier"`
	// MinOffset is the absolute floor for the effective offset in pixels.
	MinOffset int `yaml:"min_offset"`
}

// PlacementInput contains parameters for silhouette placement.
type PlacementInput struct {
	CanvasWidth  int
	CanvasHeight int

	// SilhouetteMultiplier scales the canvas reference size (the smaller
	// canvas dimension) into the silhouette size. Values above 1.0 make the
	// silhouette overflow the canvas on purpose.
	SilhouetteMultiplier float64

	// Bands is the ordered offset band table.
	Bands []OffsetBand
}

// DefaultPlacementInput returns PlacementInput with default brand constants.
func DefaultPlacementInput() PlacementInput {
	return PlacementInput{
		SilhouetteMultiplier: 1.2,
		Bands:                DefaultOffsetBands(),
	}
}

// DefaultOffsetBands returns the default small/medium/large offset table.
func DefaultOffsetBands() []OffsetBand {
	return []OffsetBand{
		{MaxSize: 256, Multiplier: 0.10, MinOffset: 16},
		{MaxSize: 1024, Multiplier: 0.08, MinOffset: 28},
		{MaxSize: 0, Multiplier: 0.06, MinOffset: 64}, // MaxSize 0 = unbounded
	}
}

// Placement describes where the silhouette sits on the canvas and which part
// of it is visible.
type Placement struct {
	// SilhouetteSize is the computed square silhouette size S.
	SilhouetteSize int

	// Offset is the effective up-left diagonal offset in pixels.
	Offset int

	// Placed is the raw placement before clipping; may be negative.
	Placed Point

	// Visible is the sub-rectangle of the silhouette that lands on the
	// canvas, in silhouette coordinates.
	Visible Rect

	// Position is the final on-canvas position of the visible region.
	Position Point
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains parameters for canvas composition.
type ComposeInput struct {
	Width      int
	Height     int
	Background color.RGBA

	// Layers are painted in order: earlier layers first, later layers on top.
	Layers []Layer
}

// ComposeResult contains the composited canvas.
type ComposeResult struct {
	Image *image.NRGBA
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for size-constrained encoding.
type EncodeInput struct {
	Image  image.Image
	Format ports.ImageFormat

	// ByteBudget is the maximum output size in bytes. Zero disables the
	// budget check.
	ByteBudget int

	// JPEGQuality / JPEGStrictQuality are the first-attempt and retry
	// qualities for JPEG output.
	JPEGQuality       int
	JPEGStrictQuality int

	// PNGLevel / PNGStrictLevel are zlib-style compression levels (0 =
	// encoder default, 9 = maximum) for PNG output.
	PNGLevel       int
	PNGStrictLevel int
}

// DefaultEncodeInput returns EncodeInput with default values.
func DefaultEncodeInput() EncodeInput {
	return EncodeInput{
		Format:            ports.FormatPNG,
		JPEGQuality:       90,
		JPEGStrictQuality: 60,
		PNGLevel:          0,
		PNGStrictLevel:    9,
	}
}

// EncodeResult contains the encoded output.
type EncodeResult struct {
	Data       []byte
	Format     ports.ImageFormat
	ByteLength int

	// Attempts is 1 for a first-try fit, 2 when the strict retry ran.
	Attempts int

	// BudgetExceeded is set when the output is still over budget after the
	// strict retry. It is a warning condition, not an error.
	BudgetExceeded bool
}
