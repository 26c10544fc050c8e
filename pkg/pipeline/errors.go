package pipeline

import "errors"

// ErrInvalidDimensions is returned when a canvas or layer dimension is not a
// positive integer.
var ErrInvalidDimensions = errors.New("invalid dimensions")
