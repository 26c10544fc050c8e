package placement

import (
	"context"
	"errors"
	"testing"

	"github.com/user/brandkit/pkg/pipeline"
)

func TestOffsetFor_BandSelection(t *testing.T) {
	bands := pipeline.DefaultOffsetBands()

	tests := []struct {
		name     string
		ref      int
		expected int
	}{
		// small band: max(16, round(ref * 0.10))
		{"tiny avatar", 64, 16},   // round(6.4) = 6 -> floor 16
		{"small avatar", 128, 16}, // round(12.8) = 13 -> floor 16
		{"band boundary small", 256, 26},
		// medium band: max(28, round(ref * 0.08))
		{"just above small", 257, 28}, // round(20.6) = 21 -> floor 28
		{"medium avatar", 512, 41},
		{"band boundary medium", 1024, 82},
		// large band: max(64, round(ref * 0.06))
		{"large canvas", 2048, 123},
		{"huge canvas", 4096, 246},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OffsetFor(tt.ref, bands)
			if got != tt.expected {
				t.Errorf("OffsetFor(%d): expected %d, got %d", tt.ref, tt.expected, got)
			}
		})
	}
}

func TestOffsetFor_MonotonicWithinBands(t *testing.T) {
	bands := pipeline.DefaultOffsetBands()

	ranges := []struct {
		name     string
		from, to int
	}{
		{"small", 16, 256},
		{"medium", 257, 1024},
		{"large", 1025, 4096},
	}

	for _, r := range ranges {
		t.Run(r.name, func(t *testing.T) {
			prev := 0
			for ref := r.from; ref <= r.to; ref++ {
				got := OffsetFor(ref, bands)
				if got < prev {
					t.Fatalf("offset decreased at ref %d: %d -> %d", ref, prev, got)
				}
				prev = got
			}
		})
	}
}

func TestOffsetFor_EdgeTables(t *testing.T) {
	if got := OffsetFor(512, nil); got != 0 {
		t.Errorf("empty table: expected 0, got %d", got)
	}

	// All bands bounded and ref beyond them: the last band applies.
	bounded := []pipeline.OffsetBand{
		{MaxSize: 100, Multiplier: 0.10, MinOffset: 4},
		{MaxSize: 200, Multiplier: 0.05, MinOffset: 8},
	}
	if got := OffsetFor(1000, bounded); got != 50 {
		t.Errorf("overflow ref: expected 50, got %d", got)
	}
}

func TestSilhouetteSize(t *testing.T) {
	tests := []struct {
		ref        int
		multiplier float64
		expected   int
	}{
		{512, 1.2, 614}, // floor(614.4)
		{256, 1.2, 307}, // floor(307.2)
		{100, 1.5, 150},
		{1, 0.1, 1}, // clamped to 1
		{0, 1.2, 1}, // clamped to 1
	}

	for _, tt := range tests {
		got := SilhouetteSize(tt.ref, tt.multiplier)
		if got != tt.expected {
			t.Errorf("SilhouetteSize(%d, %v): expected %d, got %d", tt.ref, tt.multiplier, tt.expected, got)
		}
	}
}

// TestComputePlacement_Medium512 pins the full geometry for the default
// 512px avatar: S = floor(512*1.2) = 614, medium band offset =
// max(28, round(512*0.08)) = 41, placed = floor((512-614)/2) - 41 = -92.
func TestComputePlacement_Medium512(t *testing.T) {
	input := pipeline.DefaultPlacementInput()
	input.CanvasWidth = 512
	input.CanvasHeight = 512

	got, err := ComputePlacement(input)
	if err != nil {
		t.Fatalf("ComputePlacement: %v", err)
	}

	if got.SilhouetteSize != 614 {
		t.Errorf("silhouette size: expected 614, got %d", got.SilhouetteSize)
	}
	if got.Offset != 41 {
		t.Errorf("offset: expected 41, got %d", got.Offset)
	}
	if got.Placed != (pipeline.Point{X: -92, Y: -92}) {
		t.Errorf("placed: expected (-92,-92), got %+v", got.Placed)
	}
	// Visible region: cropLeft = 92, cropRight = min(614, 512+92) = 604.
	expected := pipeline.Rect{X: 92, Y: 92, Width: 512, Height: 512}
	if got.Visible != expected {
		t.Errorf("visible: expected %+v, got %+v", expected, got.Visible)
	}
	if got.Position != (pipeline.Point{X: 0, Y: 0}) {
		t.Errorf("position: expected (0,0), got %+v", got.Position)
	}
}

func TestComputePlacement_NonSquareBanner(t *testing.T) {
	input := pipeline.DefaultPlacementInput()
	input.CanvasWidth = 1500
	input.CanvasHeight = 500

	got, err := ComputePlacement(input)
	if err != nil {
		t.Fatalf("ComputePlacement: %v", err)
	}

	// Reference size is the smaller dimension: S = floor(500*1.2) = 600,
	// medium band offset = max(28, round(500*0.08)) = 40.
	if got.SilhouetteSize != 600 {
		t.Errorf("silhouette size: expected 600, got %d", got.SilhouetteSize)
	}
	if got.Offset != 40 {
		t.Errorf("offset: expected 40, got %d", got.Offset)
	}
	// X: center = floor((1500-600)/2) = 450, placed = 410, fully inside.
	// Y: center = floor((500-600)/2) = -50, placed = -90.
	if got.Placed != (pipeline.Point{X: 410, Y: -90}) {
		t.Errorf("placed: expected (410,-90), got %+v", got.Placed)
	}
	expected := pipeline.Rect{X: 0, Y: 90, Width: 600, Height: 500}
	if got.Visible != expected {
		t.Errorf("visible: expected %+v, got %+v", expected, got.Visible)
	}
	if got.Position != (pipeline.Point{X: 410, Y: 0}) {
		t.Errorf("position: expected (410,0), got %+v", got.Position)
	}
}

func TestComputePlacement_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 512},
		{"zero height", 512, 0},
		{"negative width", -1, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := pipeline.DefaultPlacementInput()
			input.CanvasWidth = tt.width
			input.CanvasHeight = tt.height
			_, err := ComputePlacement(input)
			if !errors.Is(err, pipeline.ErrInvalidDimensions) {
				t.Fatalf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestComputePlacement_EmptyVisibleRegion(t *testing.T) {
	// A pathological offset pushes the silhouette entirely off-canvas.
	input := pipeline.PlacementInput{
		CanvasWidth:          256,
		CanvasHeight:         256,
		SilhouetteMultiplier: 1.2,
		Bands: []pipeline.OffsetBand{
			{MaxSize: 0, Multiplier: 0, MinOffset: 10000},
		},
	}

	_, err := ComputePlacement(input)
	if !errors.Is(err, ErrEmptyVisibleRegion) {
		t.Fatalf("expected ErrEmptyVisibleRegion, got %v", err)
	}
}

func TestComputePlacement_ClipAlwaysPositiveWithDefaults(t *testing.T) {
	// With the default multiplier > 1.0 and default bands, clipping must
	// never produce an empty region across the practical size range.
	input := pipeline.DefaultPlacementInput()
	for size := 16; size <= 4096; size *= 2 {
		input.CanvasWidth = size
		input.CanvasHeight = size
		got, err := ComputePlacement(input)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if got.Visible.Width <= 0 || got.Visible.Height <= 0 {
			t.Fatalf("size %d: empty visible region %+v", size, got.Visible)
		}
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage()
	input := pipeline.DefaultPlacementInput()
	input.CanvasWidth = 256
	input.CanvasHeight = 256

	got, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// small band: offset = max(16, round(256*0.10)) = 26
	if got.Offset != 26 {
		t.Errorf("offset: expected 26, got %d", got.Offset)
	}
}
