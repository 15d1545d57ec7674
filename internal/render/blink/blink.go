// Package blink implements the cursor blink state machine.
//
// A freshly placed cursor shows solid for the blinkwait grace period before
// the on/off cycle starts, matching conventional terminal behavior. Any
// change to the cursor snapshot restarts the cycle. Timing uses wall-clock
// deltas taken from the caller-supplied clock, so the blink rate is
// independent of the render frame rate.
package blink

import (
	"time"

	"github.com/dshills/smear/internal/editor"
)

// State is the blink cycle phase.
type State uint8

const (
	// StateWaiting is the solid grace period after a cursor change.
	StateWaiting State = iota
	// StateOn is the visible phase of the cycle.
	StateOn
	// StateOff is the hidden phase of the cycle.
	StateOff
)

// String returns the phase name.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateOn:
		return "on"
	case StateOff:
		return "off"
	default:
		return "unknown"
	}
}

// next returns the phase entered when the current phase's duration expires.
func next(s State) State {
	switch s {
	case StateWaiting:
		return StateOn
	case StateOn:
		return StateOff
	default:
		return StateOn
	}
}

// Scheduler decides cursor visibility each frame. It owns the blink phase
// exclusively; callers see only the boolean result of Update.
type Scheduler struct {
	state          State
	lastTransition time.Time
	previous       *editor.Cursor
}

// NewScheduler creates a scheduler in the waiting phase with no previous
// snapshot, so the first Update always restarts the cycle.
func NewScheduler() *Scheduler {
	return &Scheduler{state: StateWaiting}
}

// Update advances the blink cycle for the given snapshot and reports whether
// the cursor is visible now. It must be called at most once per rendered
// frame with a monotonic now.
func (s *Scheduler) Update(cursor *editor.Cursor, now time.Time) bool {
	if s.previous == nil || !cursor.Equal(s.previous) {
		s.previous = cursor.Clone()
		s.lastTransition = now
		if cursor.Blinkwait != nil && *cursor.Blinkwait != 0 {
			s.state = StateWaiting
		} else {
			s.state = StateOn
		}
	}

	// A zero in any slot disables blinking entirely.
	if isZero(cursor.Blinkwait) || isZero(cursor.Blinkoff) || isZero(cursor.Blinkon) {
		return true
	}

	var delay *uint64
	switch s.state {
	case StateWaiting:
		delay = cursor.Blinkwait
	case StateOff:
		delay = cursor.Blinkoff
	case StateOn:
		delay = cursor.Blinkon
	}

	// A missing or non-positive duration never expires.
	if delay != nil && *delay > 0 {
		if now.Sub(s.lastTransition) > time.Duration(*delay)*time.Millisecond {
			s.state = next(s.state)
			s.lastTransition = now
		}
	}

	return s.state == StateOn
}

func isZero(v *uint64) bool {
	return v != nil && *v == 0
}
