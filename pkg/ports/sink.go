package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate composition results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlacementJSON saves the placement calculation result as JSON.
	SavePlacementJSON(data []byte) error

	// SaveSilhouette saves the recolored silhouette raster.
	SaveSilhouette(img image.Image) error

	// SaveComposed saves the final composited raster before encoding.
	SaveComposed(img image.Image) error

	// SaveEncoded saves the encoded output bytes.
	SaveEncoded(data []byte, format ImageFormat) error
}
