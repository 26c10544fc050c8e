package brandkit

import (
	"image/color"
	"testing"

	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

func TestGetPresetSettings(t *testing.T) {
	tests := []struct {
		preset   Preset
		expected PresetSettings
	}{
		{PresetAvatarSmall, PresetSettings{Width: 256, Height: 256, Format: ports.FormatPNG}},
		{PresetAvatar, PresetSettings{Width: 512, Height: 512, Format: ports.FormatPNG}},
		{PresetAvatarLarge, PresetSettings{Width: 1024, Height: 1024, Format: ports.FormatPNG}},
		{PresetXBanner, PresetSettings{Width: 1500, Height: 500, Format: ports.FormatJPEG, ByteBudget: 3145728}},
		{PresetOGPost, PresetSettings{Width: 1200, Height: 630, Format: ports.FormatJPEG, ByteBudget: 1048576}},
		{Preset("bogus"), PresetSettings{Width: 512, Height: 512, Format: ports.FormatPNG}},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			if got := GetPresetSettings(tt.preset); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder().Build()

	if cfg.Width != 512 || cfg.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Background != "navy" {
		t.Errorf("expected navy background, got %q", cfg.Background)
	}
	if !cfg.SilhouetteEnabled {
		t.Error("expected silhouette enabled by default")
	}
	if cfg.Format != ports.FormatPNG {
		t.Errorf("expected PNG format, got %v", cfg.Format)
	}
}

func TestConfigBuilder_Fluent(t *testing.T) {
	cfg := NewPresetConfigBuilder(PresetXBanner).
		WithBackground("coral").
		WithCaption("brandkit").
		WithCaptionStyle(64, 24, color.Black).
		WithSilhouette(false).
		Build()

	if cfg.Width != 1500 || cfg.Height != 500 {
		t.Errorf("expected 1500x500, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Background != "coral" {
		t.Errorf("expected coral, got %q", cfg.Background)
	}
	if cfg.Caption != "brandkit" || cfg.CaptionHeight != 64 {
		t.Errorf("caption not applied: %q height %d", cfg.Caption, cfg.CaptionHeight)
	}
	if cfg.SilhouetteEnabled {
		t.Error("expected silhouette disabled")
	}
	if cfg.ByteBudget != 3145728 {
		t.Errorf("expected 3 MiB budget from preset, got %d", cfg.ByteBudget)
	}
}

func TestConfigBuilder_BuildConstraints(t *testing.T) {
	cfg := NewConfigBuilder().
		WithSize(0, -5).
		WithSilhouetteMultiplier(-1).
		WithOffsetBands(nil).
		Build()

	if cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("expected 1x1 after clamping, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SilhouetteMultiplier != 1.2 {
		t.Errorf("expected multiplier fallback 1.2, got %f", cfg.SilhouetteMultiplier)
	}
	if len(cfg.OffsetBands) == 0 {
		t.Error("expected offset bands fallback")
	}
	if cfg.CaptionHeight != 1 {
		t.Errorf("expected caption height clamped to canvas, got %d", cfg.CaptionHeight)
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	cfg := NewPresetConfigBuilder(PresetOGPost).
		WithBackground("sand").
		WithCaption("launch day").
		WithByteBudget(500_000).
		Build()

	oc := cfg.ToOrchestratorConfig()

	if oc.CanvasWidth != 1200 || oc.CanvasHeight != 630 {
		t.Errorf("expected 1200x630, got %dx%d", oc.CanvasWidth, oc.CanvasHeight)
	}
	if oc.Background != "sand" {
		t.Errorf("expected sand, got %q", oc.Background)
	}
	if oc.Format != ports.FormatJPEG {
		t.Errorf("expected jpeg, got %v", oc.Format)
	}
	if oc.ByteBudget != 500_000 {
		t.Errorf("expected overridden budget, got %d", oc.ByteBudget)
	}
	if len(oc.OffsetBands) != len(pipeline.DefaultOffsetBands()) {
		t.Errorf("expected default bands, got %d", len(oc.OffsetBands))
	}
}
