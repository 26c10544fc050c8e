package mocks

import (
	"image"

	"github.com/user/brandkit/pkg/ports"
)

// Sink is a mock implementation of ports.DebugSink that records what was
// saved.
type Sink struct {
	EnabledValue bool

	PlacementJSON []byte
	Silhouettes   []image.Image
	Composed      []image.Image
	Encoded       [][]byte
}

func (m *Sink) Enabled() bool {
	return m.EnabledValue
}

func (m *Sink) SavePlacementJSON(data []byte) error {
	m.PlacementJSON = data
	return nil
}

func (m *Sink) SaveSilhouette(img image.Image) error {
	m.Silhouettes = append(m.Silhouettes, img)
	return nil
}

func (m *Sink) SaveComposed(img image.Image) error {
	m.Composed = append(m.Composed, img)
	return nil
}

func (m *Sink) SaveEncoded(data []byte, format ports.ImageFormat) error {
	m.Encoded = append(m.Encoded, data)
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
