// Package brandkit provides a high-level API for generating brand images.
package brandkit

import (
	"image/color"

	"github.com/user/brandkit/pkg/orchestrator"
	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Preset represents a platform target preset name.
type Preset string

const (
	PresetAvatarSmall Preset = "avatar-small"
	PresetAvatar      Preset = "avatar"
	PresetAvatarLarge Preset = "avatar-large"
	PresetXBanner     Preset = "x-banner"
	PresetOGPost      Preset = "og-post"
)

// PresetSettings contains the canvas and encoding parameters a platform
// mandates for one image slot.
type PresetSettings struct {
	Width      int
	Height     int
	Format     ports.ImageFormat
	ByteBudget int // 0 = unconstrained
}

// GetPresetSettings returns the settings for the given preset.
func GetPresetSettings(preset Preset) PresetSettings {
	switch preset {
	case PresetAvatarSmall:
		return PresetSettings{Width: 256, Height: 256, Format: ports.FormatPNG}
	case PresetAvatarLarge:
		return PresetSettings{Width: 1024, Height: 1024, Format: ports.FormatPNG}
	case PresetXBanner:
		return PresetSettings{
			Width:      1500,
			Height:     500,
			Format:     ports.FormatJPEG,
			ByteBudget: 3 * 1024 * 1024,
		}
	case PresetOGPost:
		return PresetSettings{
			Width:      1200,
			Height:     630,
			Format:     ports.FormatJPEG,
			ByteBudget: 1024 * 1024,
		}
	default: // avatar
		return PresetSettings{Width: 512, Height: 512, Format: ports.FormatPNG}
	}
}

// Config represents the configuration for one brand image.
type Config struct {
	// Canvas
	Width      int    // Canvas width (default: 512)
	Height     int    // Canvas height (default: 512)
	Background string // Palette color name for the background

	// Silhouette
	SilhouetteEnabled    bool
	SilhouetteMultiplier float64 // Silhouette size relative to the canvas
	OffsetBands          []pipeline.OffsetBand

	// Caption
	Caption       string      // Text shown along the bottom edge
	CaptionHeight int         // Caption strip height in pixels
	CaptionSize   float64     // Font size in points
	CaptionFont   string      // Path to a TTF file; empty uses the built-in face
	CaptionColor  color.Color // Caption text color

	// Encoding
	Format     ports.ImageFormat
	ByteBudget int // Maximum output size in bytes (0 = unconstrained)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with avatar preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return NewPresetConfigBuilder(PresetAvatar)
}

// NewPresetConfigBuilder creates a new ConfigBuilder seeded from a
// platform preset.
func NewPresetConfigBuilder(preset Preset) *ConfigBuilder {
	settings := GetPresetSettings(preset)
	return &ConfigBuilder{
		config: Config{
			Width:      settings.Width,
			Height:     settings.Height,
			Background: "navy",

			SilhouetteEnabled:    true,
			SilhouetteMultiplier: 1.2,
			OffsetBands:          pipeline.DefaultOffsetBands(),

			CaptionHeight: 48,
			CaptionSize:   18,
			CaptionColor:  color.White,

			Format:     settings.Format,
			ByteBudget: settings.ByteBudget,
		},
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.SilhouetteMultiplier <= 0 {
		cfg.SilhouetteMultiplier = 1.2
	}
	if len(cfg.OffsetBands) == 0 {
		cfg.OffsetBands = pipeline.DefaultOffsetBands()
	}
	if cfg.CaptionHeight < 1 || cfg.CaptionHeight > cfg.Height {
		cfg.CaptionHeight = min(48, cfg.Height)
	}

	return cfg
}

// WithSize sets the canvas width and height.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.Width = width
	b.config.Height = height
	return b
}

// WithBackground sets the background palette color name.
func (b *ConfigBuilder) WithBackground(name string) *ConfigBuilder {
	b.config.Background = name
	return b
}

// WithSilhouette enables or disables the drop silhouette.
func (b *ConfigBuilder) WithSilhouette(enabled bool) *ConfigBuilder {
	b.config.SilhouetteEnabled = enabled
	return b
}

// WithSilhouetteMultiplier sets the silhouette size relative to the canvas.
// Values at or below 0 will fall back to the default of 1.2.
func (b *ConfigBuilder) WithSilhouetteMultiplier(multiplier float64) *ConfigBuilder {
	b.config.SilhouetteMultiplier = multiplier
	return b
}

// WithOffsetBands sets the size-tiered offset bands.
func (b *ConfigBuilder) WithOffsetBands(bands []pipeline.OffsetBand) *ConfigBuilder {
	b.config.OffsetBands = bands
	return b
}

// WithCaption sets the text shown along the bottom edge.
func (b *ConfigBuilder) WithCaption(caption string) *ConfigBuilder {
	b.config.Caption = caption
	return b
}

// WithCaptionStyle sets the caption strip height, font size and color.
func (b *ConfigBuilder) WithCaptionStyle(height int, size float64, c color.Color) *ConfigBuilder {
	b.config.CaptionHeight = height
	b.config.CaptionSize = size
	b.config.CaptionColor = c
	return b
}

// WithCaptionFont sets the path to a TTF font file for the caption.
func (b *ConfigBuilder) WithCaptionFont(path string) *ConfigBuilder {
	b.config.CaptionFont = path
	return b
}

// WithFormat sets the output image format.
func (b *ConfigBuilder) WithFormat(format ports.ImageFormat) *ConfigBuilder {
	b.config.Format = format
	return b
}

// WithByteBudget sets the maximum output size in bytes. Use 0 for
// unconstrained output.
func (b *ConfigBuilder) WithByteBudget(budget int) *ConfigBuilder {
	b.config.ByteBudget = budget
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	oc := orchestrator.DefaultConfig()

	oc.CanvasWidth = c.Width
	oc.CanvasHeight = c.Height
	oc.Background = c.Background

	oc.SilhouetteEnabled = c.SilhouetteEnabled
	oc.SilhouetteMultiplier = c.SilhouetteMultiplier
	oc.OffsetBands = c.OffsetBands

	oc.Caption = c.Caption
	oc.CaptionHeight = c.CaptionHeight
	oc.CaptionSize = c.CaptionSize
	oc.CaptionFont = c.CaptionFont
	oc.CaptionColor = c.CaptionColor

	oc.Format = c.Format
	oc.ByteBudget = c.ByteBudget

	return oc
}
