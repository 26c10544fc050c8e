package textrender

import (
	"image/color"
	"testing"

	"github.com/user/brandkit/pkg/ports"
)

func TestRenderCaption_TransparentBackground(t *testing.T) {
	r := New()

	img, err := r.RenderCaption("brandkit", 120, 32, ports.TextStyle{
		FontSize: 14,
		Color:    color.White,
		Align:    ports.AlignCenter,
	})
	if err != nil {
		t.Fatalf("RenderCaption: %v", err)
	}

	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 32 {
		t.Fatalf("expected 120x32 layer, got %v", img.Bounds())
	}
	// Corners stay transparent; only glyphs carry alpha.
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected transparent corner, alpha %d", a)
	}

	opaque := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 120; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				opaque++
			}
		}
	}
	if opaque == 0 {
		t.Error("expected some rendered glyph pixels")
	}
}

func TestRenderCaption_InvalidDimensions(t *testing.T) {
	r := New()

	if _, err := r.RenderCaption("x", 0, 32, ports.TextStyle{Color: color.White}); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestRenderCaption_MissingFont(t *testing.T) {
	r := New()

	_, err := r.RenderCaption("x", 64, 16, ports.TextStyle{
		FontSize: 12,
		FontPath: "/nonexistent/font.ttf",
		Color:    color.White,
	})
	if err == nil {
		t.Fatal("expected error for missing font file")
	}
}
