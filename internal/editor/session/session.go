// Package session ingests editor redraw events and maintains the state the
// cursor renderer reads: the character grid, the mode table with per-mode
// cursor styling, the current cursor snapshot, and the default colors.
//
// Events arrive as a JSON batch, an array of [name, args...] arrays:
//
//	[["grid_cursor_goto", [5, 3]],
//	 ["mode_change", ["insert", 1]]]
//
// The session is safe for one writer (the event stream) and one reader (the
// render loop); the grid carries its own lock, everything else is guarded
// here.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/dshills/smear/internal/editor"
	"github.com/dshills/smear/internal/theme"
)

// Errors returned by event ingestion.
var (
	// ErrUnknownEvent indicates an event name the session does not handle.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrMalformedEvent indicates an event whose arguments do not match its
	// name.
	ErrMalformedEvent = errors.New("malformed event")
)

// Session is the editing-session state feeding the renderer.
type Session struct {
	mu       sync.Mutex
	grid     *editor.Grid
	position editor.Position
	modes    []editor.Mode
	mode     int
	busy     bool
	enabled  bool
	defaults theme.Colors
}

// New creates a session with a grid of the given dimensions, a single block
// mode, and the fallback theme.
func New(rows, cols uint32) *Session {
	return &Session{
		grid:     editor.NewGrid(rows, cols),
		modes:    []editor.Mode{{Name: "normal"}},
		enabled:  true,
		defaults: theme.DefaultColors(),
	}
}

// Grid returns the shared character grid.
func (s *Session) Grid() *editor.Grid {
	return s.grid
}

// Defaults returns the current default colors.
func (s *Session) Defaults() theme.Colors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// Cursor assembles the current cursor snapshot: position plus the styling of
// the active mode. A busy session disables the cursor.
func (s *Session) Cursor() *editor.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := editor.NewCursor()
	c.Position = s.position
	c.Enabled = s.enabled && !s.busy
	if s.mode >= 0 && s.mode < len(s.modes) {
		s.modes[s.mode].Apply(c)
	}
	return c
}

// Apply ingests one JSON batch of events. Events are applied in order; the
// first failure stops the batch.
func (s *Session) Apply(payload string) error {
	batch := gjson.Parse(payload)
	if !batch.IsArray() {
		return fmt.Errorf("%w: batch is not an array", ErrMalformedEvent)
	}

	var err error
	batch.ForEach(func(_, event gjson.Result) bool {
		err = s.applyEvent(event)
		return err == nil
	})
	return err
}

func (s *Session) applyEvent(event gjson.Result) error {
	if !event.IsArray() {
		return fmt.Errorf("%w: event is not an array", ErrMalformedEvent)
	}
	parts := event.Array()
	if len(parts) == 0 {
		return fmt.Errorf("%w: empty event", ErrMalformedEvent)
	}

	name := parts[0].String()
	var args gjson.Result
	if len(parts) > 1 {
		args = parts[1]
	}

	switch name {
	case "grid_resize":
		return s.gridResize(args)
	case "grid_line":
		return s.gridLine(args)
	case "grid_clear":
		s.grid.Clear()
		return nil
	case "grid_cursor_goto":
		return s.cursorGoto(args)
	case "mode_info_set":
		return s.modeInfoSet(args)
	case "mode_change":
		return s.modeChange(args)
	case "default_colors_set":
		return s.defaultColorsSet(args)
	case "busy_start":
		s.setBusy(true)
		return nil
	case "busy_stop":
		s.setBusy(false)
		return nil
	case "option_set":
		return s.optionSet(args)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

func (s *Session) gridResize(args gjson.Result) error {
	a := args.Array()
	if len(a) != 2 {
		return fmt.Errorf("%w: grid_resize wants [rows, cols]", ErrMalformedEvent)
	}
	s.grid.Resize(uint32(a[0].Uint()), uint32(a[1].Uint()))
	return nil
}

func (s *Session) gridLine(args gjson.Result) error {
	a := args.Array()
	if len(a) != 3 || !a[2].IsArray() {
		return fmt.Errorf("%w: grid_line wants [row, col, cells]", ErrMalformedEvent)
	}
	var texts []string
	a[2].ForEach(func(_, cell gjson.Result) bool {
		texts = append(texts, cell.String())
		return true
	})
	if err := s.grid.SetLine(uint32(a[0].Uint()), uint32(a[1].Uint()), texts); err != nil {
		return fmt.Errorf("grid_line: %w", err)
	}
	return nil
}

func (s *Session) cursorGoto(args gjson.Result) error {
	a := args.Array()
	if len(a) != 2 {
		return fmt.Errorf("%w: grid_cursor_goto wants [row, col]", ErrMalformedEvent)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = editor.Position{Row: uint32(a[0].Uint()), Col: uint32(a[1].Uint())}
	return nil
}

func (s *Session) modeInfoSet(args gjson.Result) error {
	if !args.IsArray() {
		return fmt.Errorf("%w: mode_info_set wants a mode list", ErrMalformedEvent)
	}

	var modes []editor.Mode
	args.ForEach(func(_, info gjson.Result) bool {
		mode := editor.Mode{
			Name:  info.Get("name").String(),
			Shape: editor.ShapeFromString(info.Get("cursor_shape").String()),
		}
		if v := info.Get("cell_percentage"); v.Exists() {
			mode.CellPercentage = editor.Float64(v.Float())
		}
		if v := info.Get("blinkwait"); v.Exists() {
			mode.Blinkwait = editor.Uint64(v.Uint())
		}
		if v := info.Get("blinkon"); v.Exists() {
			mode.Blinkon = editor.Uint64(v.Uint())
		}
		if v := info.Get("blinkoff"); v.Exists() {
			mode.Blinkoff = editor.Uint64(v.Uint())
		}
		modes = append(modes, mode)
		return true
	})
	if len(modes) == 0 {
		return fmt.Errorf("%w: mode_info_set with no modes", ErrMalformedEvent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = modes
	if s.mode >= len(s.modes) {
		s.mode = 0
	}
	return nil
}

func (s *Session) modeChange(args gjson.Result) error {
	a := args.Array()
	if len(a) != 2 {
		return fmt.Errorf("%w: mode_change wants [name, index]", ErrMalformedEvent)
	}
	index := int(a[1].Int())

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.modes) {
		return fmt.Errorf("%w: mode index %d out of range", ErrMalformedEvent, index)
	}
	s.mode = index
	return nil
}

func (s *Session) defaultColorsSet(args gjson.Result) error {
	a := args.Array()
	if len(a) != 2 {
		return fmt.Errorf("%w: default_colors_set wants [fg, bg]", ErrMalformedEvent)
	}
	fg, err := theme.FromHex(a[0].String())
	if err != nil {
		return fmt.Errorf("default_colors_set: %w", err)
	}
	bg, err := theme.FromHex(a[1].String())
	if err != nil {
		return fmt.Errorf("default_colors_set: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = theme.Colors{Foreground: fg, Background: bg}
	return nil
}

func (s *Session) optionSet(args gjson.Result) error {
	a := args.Array()
	if len(a) != 2 {
		return fmt.Errorf("%w: option_set wants [name, value]", ErrMalformedEvent)
	}
	switch a[0].String() {
	case "cursor_enabled":
		s.mu.Lock()
		defer s.mu.Unlock()
		s.enabled = a[1].Bool()
		return nil
	default:
		// Unknown options are ignored so sessions can carry options this
		// renderer does not consume.
		return nil
	}
}

func (s *Session) setBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}
