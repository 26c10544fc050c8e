// Package summarizer provides report generation for batch runs.
package summarizer

import "time"

// Summary contains all data collected during a batch generation run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Subject information
	Subject SubjectInfo

	// Generation settings
	Settings Settings

	// One entry per generated image, in request order
	Outputs []OutputInfo
}

// SubjectInfo describes the input cutout.
type SubjectInfo struct {
	Path string
}

// Settings contains the generation configuration.
type Settings struct {
	Colors               []string
	Sizes                []int
	SilhouetteEnabled    bool
	SilhouetteMultiplier float64
	Workers              int
}

// OutputInfo describes one generated image.
type OutputInfo struct {
	Path           string
	Background     string
	ShadowName     string
	CanvasWidth    int
	CanvasHeight   int
	Format         string
	ByteLength     int
	BudgetExceeded bool
	Err            error
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSubject sets subject information.
func (b *Builder) WithSubject(path string) *Builder {
	b.summary.Subject = SubjectInfo{Path: path}
	return b
}

// WithSettings sets generation settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddOutput appends one generated image's details.
func (b *Builder) AddOutput(output OutputInfo) *Builder {
	b.summary.Outputs = append(b.summary.Outputs, output)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// FailedCount returns the number of outputs that ended in an error.
func (s *Summary) FailedCount() int {
	failed := 0
	for _, out := range s.Outputs {
		if out.Err != nil {
			failed++
		}
	}
	return failed
}

// TotalBytes returns the combined size of all successful outputs.
func (s *Summary) TotalBytes() int64 {
	var total int64
	for _, out := range s.Outputs {
		if out.Err == nil {
			total += int64(out.ByteLength)
		}
	}
	return total
}
