// Package imagingcodec provides an image codec implementation using the
// imaging library.
package imagingcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Codec implements ports.Codec using the imaging library for decoding and
// resizing and the standard library encoders for output.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// Decode decodes image data into an NRGBA raster.
func (c *Codec) Decode(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ports.ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptImage, err)
	}
	return imaging.Clone(img), nil
}

// DecodeCover decodes image data and resizes it to exactly width x height
// with a cover fit: scale to fill preserving aspect ratio, then crop the
// overflowing dimension symmetrically around the center.
func (c *Codec) DecodeCover(data []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", pipeline.ErrInvalidDimensions, width, height)
	}
	img, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos), nil
}

// Encode encodes an image to the specified format. For JPEG, quality is the
// usual 1-100 scale; for PNG it is a zlib-style level where 0 selects the
// default and 9 the best compression.
func (c *Codec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: pngLevel(quality)}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ports.ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// pngLevel maps the zlib-style 0-9 knob onto the stdlib's coarse levels.
func pngLevel(quality int) png.CompressionLevel {
	switch {
	case quality >= 9:
		return png.BestCompression
	case quality >= 5:
		return png.DefaultCompression
	case quality >= 1:
		return png.BestSpeed
	default:
		return png.DefaultCompression
	}
}

// Ensure Codec implements ports.Codec
var _ ports.Codec = (*Codec)(nil)
