// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/brandkit/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SavePlacementJSON does nothing.
func (s *Sink) SavePlacementJSON(data []byte) error {
	return nil
}

// SaveSilhouette does nothing.
func (s *Sink) SaveSilhouette(img image.Image) error {
	return nil
}

// SaveComposed does nothing.
func (s *Sink) SaveComposed(img image.Image) error {
	return nil
}

// SaveEncoded does nothing.
func (s *Sink) SaveEncoded(data []byte, format ports.ImageFormat) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
