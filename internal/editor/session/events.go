package session

import "github.com/tidwall/sjson"

// Event builders for drivers and tests. Each returns one [name, args...]
// event as JSON; Batch wraps events into the payload Apply consumes.

// Batch combines events into a single JSON batch.
func Batch(events ...string) string {
	out := "[]"
	for _, e := range events {
		out, _ = sjson.SetRaw(out, "-1", e)
	}
	return out
}

func event(name string, args any) string {
	out, _ := sjson.Set("[]", "-1", name)
	if args != nil {
		out, _ = sjson.Set(out, "-1", args)
	}
	return out
}

// GridResize builds a grid_resize event.
func GridResize(rows, cols uint32) string {
	return event("grid_resize", []uint32{rows, cols})
}

// GridLine builds a grid_line event writing cells at (row, col).
func GridLine(row, col uint32, cells []string) string {
	return event("grid_line", []any{row, col, cells})
}

// GridClear builds a grid_clear event.
func GridClear() string {
	return event("grid_clear", nil)
}

// CursorGoto builds a grid_cursor_goto event.
func CursorGoto(row, col uint32) string {
	return event("grid_cursor_goto", []uint32{row, col})
}

// ModeChange builds a mode_change event.
func ModeChange(name string, index int) string {
	return event("mode_change", []any{name, index})
}

// DefaultColorsSet builds a default_colors_set event from hex colors.
func DefaultColorsSet(fg, bg string) string {
	return event("default_colors_set", []string{fg, bg})
}

// BusyStart builds a busy_start event.
func BusyStart() string {
	return event("busy_start", nil)
}

// BusyStop builds a busy_stop event.
func BusyStop() string {
	return event("busy_stop", nil)
}

// OptionSet builds an option_set event.
func OptionSet(name string, value any) string {
	return event("option_set", []any{name, value})
}

// ModeInfo describes one mode entry for ModeInfoSet.
type ModeInfo struct {
	Name           string   `json:"name"`
	CursorShape    string   `json:"cursor_shape"`
	CellPercentage *float64 `json:"cell_percentage,omitempty"`
	Blinkwait      *uint64  `json:"blinkwait,omitempty"`
	Blinkon        *uint64  `json:"blinkon,omitempty"`
	Blinkoff       *uint64  `json:"blinkoff,omitempty"`
}

// ModeInfoSet builds a mode_info_set event.
func ModeInfoSet(modes []ModeInfo) string {
	return event("mode_info_set", modes)
}
