// Package config loads the cursor surface configuration: a TOML settings
// file, environment overrides, and an optional Lua options script that can
// rewrite settings programmatically. A missing file or script is not an
// error; defaults apply.
package config

import (
	"fmt"

	"github.com/dshills/smear/internal/editor"
)

// Cursor holds the cursor styling settings.
type Cursor struct {
	// Enabled gates cursor drawing entirely.
	Enabled bool `toml:"enabled"`

	// Shape names the cursor shape ("block", "vertical", "horizontal").
	Shape string `toml:"shape"`

	// CellPercentage is the bar thickness ratio in (0, 1]. Nil keeps the
	// renderer default.
	CellPercentage *float64 `toml:"cell_percentage"`

	// Blinkwait, Blinkon and Blinkoff are blink phase durations in
	// milliseconds. Nil leaves the phase unset; zero disables blinking.
	Blinkwait *uint64 `toml:"blinkwait"`
	Blinkon   *uint64 `toml:"blinkon"`
	Blinkoff  *uint64 `toml:"blinkoff"`
}

// Font holds the glyph shaping settings.
type Font struct {
	Name string  `toml:"name"`
	Size float64 `toml:"size"`
}

// Surface holds the cell metrics of the rendering surface.
type Surface struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// Config is the complete surface configuration.
type Config struct {
	Cursor  Cursor  `toml:"cursor"`
	Font    Font    `toml:"font"`
	Surface Surface `toml:"surface"`
}

// Default returns the built-in configuration: an enabled, steadily visible
// block cursor on 10x20 cells.
func Default() Config {
	return Config{
		Cursor: Cursor{
			Enabled:   true,
			Shape:     "block",
			Blinkwait: editor.Uint64(700),
			Blinkon:   editor.Uint64(400),
			Blinkoff:  editor.Uint64(250),
		},
		Font: Font{Size: 13},
		Surface: Surface{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// Validate checks the configuration for values the renderer cannot use.
func (c *Config) Validate() error {
	switch c.Cursor.Shape {
	case "block", "vertical", "bar", "line", "horizontal", "underline", "underscore":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidShape, c.Cursor.Shape)
	}
	if p := c.Cursor.CellPercentage; p != nil && (*p <= 0 || *p > 1) {
		return fmt.Errorf("%w: %v", ErrInvalidPercentage, *p)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, c.Font.Size)
	}
	if c.Surface.CellWidth <= 0 || c.Surface.CellHeight <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidCellSize, c.Surface.CellWidth, c.Surface.CellHeight)
	}
	return nil
}

// Mode converts the cursor settings into the editor mode applied to
// snapshots.
func (c *Cursor) Mode(name string) editor.Mode {
	return editor.Mode{
		Name:           name,
		Shape:          editor.ShapeFromString(c.Shape),
		CellPercentage: c.CellPercentage,
		Blinkwait:      c.Blinkwait,
		Blinkon:        c.Blinkon,
		Blinkoff:       c.Blinkoff,
	}
}
