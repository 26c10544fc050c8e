// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/brandkit/pkg/ports"
)

// Sink saves intermediate composition results to files for inspection.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.Codec
}

// New creates a new Sink writing under baseDir.
func New(baseDir string, fs ports.FileSystem, codec ports.Codec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlacementJSON saves the placement calculation result as JSON.
func (s *Sink) SavePlacementJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "placement.json"), data)
}

// SaveSilhouette saves the recolored silhouette raster as PNG.
func (s *Sink) SaveSilhouette(img image.Image) error {
	return s.savePNG("silhouette.png", img)
}

// SaveComposed saves the final composited raster as PNG.
func (s *Sink) SaveComposed(img image.Image) error {
	return s.savePNG("composed.png", img)
}

// SaveEncoded saves the encoded output bytes.
func (s *Sink) SaveEncoded(data []byte, format ports.ImageFormat) error {
	name := fmt.Sprintf("output.%s", format)
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	data, err := s.codec.Encode(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
