package ports

import (
	"errors"
	"image"
)

// ImageFormat specifies the image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// String returns the file-extension style name of the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// ParseImageFormat parses a format name ("png", "jpeg", "jpg").
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return FormatPNG, ErrUnsupportedFormat
	}
}

var (
	// ErrUnsupportedFormat is returned when the input media format is not
	// one the codec can handle.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	// ErrCorruptImage is returned when the input media cannot be decoded.
	ErrCorruptImage = errors.New("codec: corrupt image")
)

// Codec abstracts image decoding and encoding.
// Decoding may be CPU-bound but never blocks on I/O.
type Codec interface {
	// Decode decodes image data into an RGBA raster.
	Decode(data []byte) (*image.NRGBA, error)

	// DecodeCover decodes image data and resizes it to exactly width x height
	// using a cover fit: aspect-preserving scale-to-fill with symmetric
	// center cropping of the larger dimension.
	DecodeCover(data []byte, width, height int) (*image.NRGBA, error)

	// Encode encodes a raster to the specified format. For JPEG, quality is
	// the usual 1-100 scale. For PNG, quality is a zlib-style level 0-9
	// where 0 selects the encoder default and 9 requests maximum compression.
	Encode(img image.Image, format ImageFormat, quality int) ([]byte, error)
}
