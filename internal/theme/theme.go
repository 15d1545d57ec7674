// Package theme provides color types and default-color resolution for the
// cursor renderer. Colors are true-color RGBA; parsing and blending are
// delegated to go-colorful.
package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a true-color value with alpha. It implements image/color.Color so
// the software canvas can use it directly.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black = Color{A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGB creates an opaque color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromHex parses a "#rrggbb" hex string.
func FromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 255}, nil
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return r, g, b, a
}

// Hex returns the "#rrggbb" representation, ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Blend mixes c toward other by t in [0,1] in RGB space.
func (c Color) Blend(other Color, t float64) Color {
	m := c.colorful().BlendRgb(other.colorful(), t)
	r, g, b := m.RGB255()
	return Color{R: r, G: g, B: b, A: c.A}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Colors holds the theme's default foreground and background.
type Colors struct {
	Foreground Color
	Background Color
}

// DefaultColors returns the fallback theme used when the session has not
// supplied defaults.
func DefaultColors() Colors {
	return Colors{Foreground: White, Background: Black}
}

// ResolveForeground returns the cursor's explicit foreground, or the default
// background when absent. The cursor draws in reverse video against the theme
// so a block cursor stays legible over any cell.
func (d Colors) ResolveForeground(override *Color) Color {
	if override != nil {
		return *override
	}
	return d.Background
}

// ResolveBackground returns the cursor's explicit background, or the default
// foreground when absent.
func (d Colors) ResolveBackground(override *Color) Color {
	if override != nil {
		return *override
	}
	return d.Foreground
}
