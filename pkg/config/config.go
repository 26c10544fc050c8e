// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/brandkit/pkg/orchestrator"
	"github.com/user/brandkit/pkg/palette"
	"github.com/user/brandkit/pkg/pipeline"
	"github.com/user/brandkit/pkg/ports"
)

// Config represents the full configuration for brandkit.
type Config struct {
	// Input/Output
	SubjectPath string `yaml:"subject"`
	OutputPath  string `yaml:"output"`

	// Canvas
	CanvasWidth  int    `yaml:"canvas_width"`
	CanvasHeight int    `yaml:"canvas_height"`
	Background   string `yaml:"background"`

	// Brand colors. Hex values keyed by name; merged over the built-in
	// palette, so a config file only needs to list additions or overrides.
	Colors  map[string]string   `yaml:"colors"`
	Shadows map[string][]string `yaml:"shadows"`

	// Silhouette
	SilhouetteEnabled    bool                  `yaml:"silhouette"`
	SilhouetteMultiplier float64               `yaml:"silhouette_multiplier"`
	OffsetBands          []pipeline.OffsetBand `yaml:"offset_bands"`

	// Caption
	Caption      string      `yaml:"caption"`
	CaptionTheme ThemeConfig `yaml:"caption_theme"`

	// Encoding
	Format            string `yaml:"format"`
	ByteBudget        int    `yaml:"byte_budget"`
	JPEGQuality       int    `yaml:"jpeg_quality"`
	JPEGStrictQuality int    `yaml:"jpeg_strict_quality"`
	PNGLevel          int    `yaml:"png_level"`
	PNGStrictLevel    int    `yaml:"png_strict_level"`

	// Batch
	Workers int `yaml:"workers"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents caption theming options.
type ThemeConfig struct {
	Height    int     `yaml:"height"`
	FontSize  float64 `yaml:"font_size"`
	FontPath  string  `yaml:"font_path"`
	TextColor string  `yaml:"text_color"`
}

// DefaultColors returns the built-in brand palette.
func DefaultColors() map[string]string {
	return map[string]string{
		"navy":  "#1e2a45",
		"coral": "#ff6f61",
		"sand":  "#ede0c8",
		"moss":  "#4a6741",
		"white": "#ffffff",
	}
}

// DefaultShadows returns the built-in background-to-shadow mapping.
// Every color in DefaultColors has an entry; Validate enforces this
// for user-supplied tables.
func DefaultShadows() map[string][]string {
	return map[string][]string{
		"navy":  {"coral", "sand"},
		"coral": {"navy", "white"},
		"sand":  {"moss", "navy"},
		"moss":  {"sand", "white"},
		"white": {"navy", "coral"},
	}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		CanvasWidth:  512,
		CanvasHeight: 512,
		Background:   "navy",

		Colors:  DefaultColors(),
		Shadows: DefaultShadows(),

		SilhouetteEnabled:    true,
		SilhouetteMultiplier: 1.2,
		OffsetBands:          pipeline.DefaultOffsetBands(),

		CaptionTheme: ThemeConfig{
			Height:    48,
			FontSize:  18,
			TextColor: "#ffffff",
		},

		Format:            "png",
		JPEGQuality:       90,
		JPEGStrictQuality: 60,
		PNGLevel:          0,
		PNGStrictLevel:    9,

		Workers: 4,

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. The file is applied
// on top of Defaults, except that a non-empty colors or shadows section
// is merged entry by entry rather than replacing the built-ins.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	// yaml replaces maps wholesale; restore the built-ins underneath.
	cfg.Colors = DefaultColors()
	for name, hex := range overlay.Colors {
		cfg.Colors[name] = hex
	}
	cfg.Shadows = DefaultShadows()
	for name, candidates := range overlay.Shadows {
		cfg.Shadows[name] = candidates
	}

	return cfg, nil
}

// BuildPalette resolves the configured hex colors into a Palette and a
// normalized shadow table, validating that the two are consistent.
func (c Config) BuildPalette() (*palette.Palette, palette.ShadowTable, error) {
	p, err := palette.FromHex(c.Colors)
	if err != nil {
		return nil, nil, fmt.Errorf("palette: %w", err)
	}
	table := palette.ShadowTable(c.Shadows).Normalize()
	if _, err := palette.Validate(p, table); err != nil {
		return nil, nil, fmt.Errorf("palette: %w", err)
	}
	return p, table, nil
}

// ParseColor parses a hex color string, falling back to black on bad input.
func ParseColor(hex string) color.Color {
	c, err := palette.ParseHex(hex)
	if err != nil {
		return color.Black
	}
	return c
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	format, err := ports.ParseImageFormat(c.Format)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		SubjectPath: c.SubjectPath,
		OutputPath:  c.OutputPath,

		CanvasWidth:  c.CanvasWidth,
		CanvasHeight: c.CanvasHeight,
		Background:   c.Background,

		SilhouetteEnabled:    c.SilhouetteEnabled,
		SilhouetteMultiplier: c.SilhouetteMultiplier,
		OffsetBands:          c.OffsetBands,

		Caption:       c.Caption,
		CaptionHeight: c.CaptionTheme.Height,
		CaptionSize:   c.CaptionTheme.FontSize,
		CaptionFont:   c.CaptionTheme.FontPath,
		CaptionColor:  ParseColor(c.CaptionTheme.TextColor),

		Format:            format,
		ByteBudget:        c.ByteBudget,
		JPEGQuality:       c.JPEGQuality,
		JPEGStrictQuality: c.JPEGStrictQuality,
		PNGLevel:          c.PNGLevel,
		PNGStrictLevel:    c.PNGStrictLevel,
	}, nil
}
