// Package encode implements the size-constrained encoding stage.
package encode

import (
	"context"
	"fmt"

	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Stage encodes the composited raster under a byte budget.
//
// The budget policy is a bounded single retry, not a search: encode once at
// the normal setting, and if the output exceeds the budget re-encode exactly
// once at the strict setting and keep that result either way. A result that
// is still over budget is returned with BudgetExceeded set and a warning
// logged; it is never an error. This trades byte-exactness for predictable
// latency on purpose.
type Stage struct {
	codec  ports.Codec
	logger ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(codec ports.Codec, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		logger: logger.WithComponent("encode"),
	}
}

// Execute encodes the image, retrying once at the strict setting if the
// first attempt is over budget.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{Format: input.Format}

	if input.Image == nil {
		return result, fmt.Errorf("encode: nil image")
	}

	data, err := s.codec.Encode(input.Image, input.Format, s.normalQuality(input))
	if err != nil {
		return result, fmt.Errorf("encode %s: %w", input.Format, err)
	}
	result.Attempts = 1

	if input.ByteBudget > 0 && len(data) > input.ByteBudget {
		s.logger.Debug("Output %d bytes over %d byte budget, re-encoding", len(data), input.ByteBudget)

		data, err = s.codec.Encode(input.Image, input.Format, s.strictQuality(input))
		if err != nil {
			return result, fmt.Errorf("re-encode %s: %w", input.Format, err)
		}
		result.Attempts = 2

		if len(data) > input.ByteBudget {
			result.BudgetExceeded = true
			s.logger.Warn("Output is %d bytes, exceeding the %d byte budget", len(data), input.ByteBudget)
		}
	}

	result.Data = data
	result.ByteLength = len(data)
	return result, nil
}

func (s *Stage) normalQuality(input pipeline.EncodeInput) int {
	if input.Format == ports.FormatJPEG {
		return input.JPEGQuality
	}
	return input.PNGLevel
}

func (s *Stage) strictQuality(input pipeline.EncodeInput) int {
	if input.Format == ports.FormatJPEG {
		return input.JPEGStrictQuality
	}
	return input.PNGStrictLevel
}
