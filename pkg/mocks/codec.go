// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"sync"

	"github.com/user/brandkit/pkg/ports"
)

// Codec is a mock implementation of ports.Codec.
// Call recording is mutex-protected so batch tests can share one instance.
type Codec struct {
	DecodeFunc      func(data []byte) (*image.NRGBA, error)
	DecodeCoverFunc func(data []byte, width, height int) (*image.NRGBA, error)
	EncodeFunc      func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	mu sync.Mutex

	// Recorded calls for verification
	DecodeCoverCalls []DecodeCoverCall
	EncodeCalls      []EncodeCall
}

// DecodeCoverCall records one DecodeCover invocation.
type DecodeCoverCall struct {
	Width  int
	Height int
}

// EncodeCall records one Encode invocation.
type EncodeCall struct {
	Format  ports.ImageFormat
	Quality int
}

func (m *Codec) Decode(data []byte) (*image.NRGBA, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (m *Codec) DecodeCover(data []byte, width, height int) (*image.NRGBA, error) {
	m.mu.Lock()
	m.DecodeCoverCalls = append(m.DecodeCoverCalls, DecodeCoverCall{Width: width, Height: height})
	m.mu.Unlock()
	if m.DecodeCoverFunc != nil {
		return m.DecodeCoverFunc(data, width, height)
	}
	return image.NewNRGBA(image.Rect(0, 0, width, height)), nil
}

func (m *Codec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{Format: format, Quality: quality})
	m.mu.Unlock()
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format, quality)
	}
	return []byte{0x89, 0x50}, nil
}

// Ensure Codec implements ports.Codec
var _ ports.Codec = (*Codec)(nil)
