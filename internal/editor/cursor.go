package editor

import "github.com/dshills/smear/internal/theme"

// Position is a cursor position in grid coordinates.
type Position struct {
	Row uint32
	Col uint32
}

// Cursor is the per-frame cursor snapshot supplied by the editing session.
// Optional fields are nil when the session has not configured them.
type Cursor struct {
	// Position in grid coordinates.
	Position Position

	// Shape is the visual form of the cursor.
	Shape Shape

	// CellPercentage controls bar thickness as a fraction of a cell in
	// (0, 1]. Nil means the renderer's default (1/8).
	CellPercentage *float64

	// Blinkwait, Blinkon and Blinkoff are blink phase durations in
	// milliseconds. Nil disables the corresponding phase transition; a zero
	// in any slot disables blinking entirely.
	Blinkwait *uint64
	Blinkon   *uint64
	Blinkoff  *uint64

	// Enabled gates drawing entirely. A disabled cursor never draws
	// regardless of blink state.
	Enabled bool

	// Foreground and Background override the theme's reverse-video cursor
	// colors when set.
	Foreground *theme.Color
	Background *theme.Color
}

// NewCursor returns an enabled block cursor at the origin.
func NewCursor() *Cursor {
	return &Cursor{Enabled: true}
}

// Equal reports structural equality between two snapshots. Any difference
// restarts the blink cycle, so every visually relevant field participates.
func (c *Cursor) Equal(other *Cursor) bool {
	if other == nil {
		return false
	}
	return c.Position == other.Position &&
		c.Shape == other.Shape &&
		c.Enabled == other.Enabled &&
		eqFloat(c.CellPercentage, other.CellPercentage) &&
		eqUint(c.Blinkwait, other.Blinkwait) &&
		eqUint(c.Blinkon, other.Blinkon) &&
		eqUint(c.Blinkoff, other.Blinkoff) &&
		eqColor(c.Foreground, other.Foreground) &&
		eqColor(c.Background, other.Background)
}

// Clone returns a deep copy of the snapshot.
func (c *Cursor) Clone() *Cursor {
	out := *c
	out.CellPercentage = cloneFloat(c.CellPercentage)
	out.Blinkwait = cloneUint(c.Blinkwait)
	out.Blinkon = cloneUint(c.Blinkon)
	out.Blinkoff = cloneUint(c.Blinkoff)
	out.Foreground = cloneColor(c.Foreground)
	out.Background = cloneColor(c.Background)
	return &out
}

// Mode describes the cursor styling for one editor mode, as supplied by the
// session's mode table. Unset fields fall back to the renderer defaults.
type Mode struct {
	Name           string
	Shape          Shape
	CellPercentage *float64
	Blinkwait      *uint64
	Blinkon        *uint64
	Blinkoff       *uint64
}

// Apply copies the mode's styling onto the cursor snapshot.
func (m *Mode) Apply(c *Cursor) {
	c.Shape = m.Shape
	c.CellPercentage = cloneFloat(m.CellPercentage)
	c.Blinkwait = cloneUint(m.Blinkwait)
	c.Blinkon = cloneUint(m.Blinkon)
	c.Blinkoff = cloneUint(m.Blinkoff)
}

func eqUint(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqColor(a, b *theme.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneUint(v *uint64) *uint64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneColor(v *theme.Color) *theme.Color {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Uint64 returns a pointer to v, for building optional blink durations.
func Uint64(v uint64) *uint64 { return &v }

// Float64 returns a pointer to v, for building optional cell percentages.
func Float64(v float64) *float64 { return &v }
