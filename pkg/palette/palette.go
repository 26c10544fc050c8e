// Package palette maps named brand colors to RGB values and backgrounds to
// their shadow-silhouette colors.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnknownColor is returned when a color name is not in the palette.
	ErrUnknownColor = errors.New("palette: unknown color")
	// ErrNoShadowColor is returned when the shadow table has no candidate
	// for a background color. The table must be populated for every
	// recognized background; hitting this is a configuration defect.
	ErrNoShadowColor = errors.New("palette: no shadow color available")
)

// Palette resolves brand color names to opaque RGB values.
// Lookups are case-insensitive.
type Palette struct {
	colors map[string]color.RGBA
}

// New creates a Palette from a name to color mapping.
func New(colors map[string]color.RGBA) *Palette {
	normalized := make(map[string]color.RGBA, len(colors))
	for name, c := range colors {
		c.A = 255
		normalized[strings.ToLower(name)] = c
	}
	return &Palette{colors: normalized}
}

// FromHex creates a Palette from a name to hex string mapping
// (e.g. "navy": "#1e2a45").
func FromHex(colors map[string]string) (*Palette, error) {
	resolved := make(map[string]color.RGBA, len(colors))
	for name, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette: color %q: %w", name, err)
		}
		r, g, b := c.RGB255()
		resolved[name] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return New(resolved), nil
}

// ParseHex parses a single hex color string (e.g. "#ff6f61") into an
// opaque RGBA value.
func ParseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette: %w", err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Resolve maps a color name to its RGB value.
func (p *Palette) Resolve(name string) (color.RGBA, error) {
	c, ok := p.colors[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// Names returns the sorted-insensitive set of recognized color names.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	return names
}

// ShadowTable maps a background color name to its ordered shadow color
// candidates. The first candidate is always used; the rest document
// acceptable alternatives for manual overrides.
type ShadowTable map[string][]string

// ShadowFor returns the shadow color name and value for a background color.
// The choice is deterministic: the first candidate in the table.
func (t ShadowTable) ShadowFor(p *Palette, background string) (string, color.RGBA, error) {
	candidates, ok := t[strings.ToLower(background)]
	if !ok || len(candidates) == 0 {
		return "", color.RGBA{}, fmt.Errorf("%w: background %q", ErrNoShadowColor, background)
	}
	name := candidates[0]
	c, err := p.Resolve(name)
	if err != nil {
		return "", color.RGBA{}, fmt.Errorf("shadow for %q: %w", background, err)
	}
	return name, c, nil
}

// Normalize lowercases the table's background keys so lookups match the
// palette's case-insensitive behavior.
func (t ShadowTable) Normalize() ShadowTable {
	out := make(ShadowTable, len(t))
	for background, candidates := range t {
		out[strings.ToLower(background)] = candidates
	}
	return out
}

// Validate checks that every palette color has a usable shadow entry.
// It returns an error on a structural defect (missing or unresolvable
// entries) and a list of advisory warnings for shadow colors that are
// perceptually too close to their background.
func Validate(p *Palette, t ShadowTable) ([]string, error) {
	var warnings []string
	for _, name := range p.Names() {
		shadowName, shadow, err := t.ShadowFor(p, name)
		if err != nil {
			return warnings, err
		}
		background, _ := p.Resolve(name)
		if distance(background, shadow) < 0.05 {
			warnings = append(warnings,
				fmt.Sprintf("shadow %q is nearly identical to background %q", shadowName, name))
		}
	}
	return warnings, nil
}

// distance is the perceptual Lab distance between two colors.
func distance(a, b color.RGBA) float64 {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return ca.DistanceLab(cb)
}
