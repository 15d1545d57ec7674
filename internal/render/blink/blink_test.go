package blink

import (
	"testing"
	"time"

	"github.com/dshills/smear/internal/editor"
)

func blinkingCursor(wait, on, off uint64) *editor.Cursor {
	c := editor.NewCursor()
	c.Blinkwait = editor.Uint64(wait)
	c.Blinkon = editor.Uint64(on)
	c.Blinkoff = editor.Uint64(off)
	return c
}

func TestNextTransitions(t *testing.T) {
	tests := []struct {
		from State
		want State
	}{
		{StateWaiting, StateOn},
		{StateOn, StateOff},
		{StateOff, StateOn},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got := next(tt.from); got != tt.want {
				t.Errorf("next(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestUpdateFirstSnapshotEntersWaiting(t *testing.T) {
	s := NewScheduler()
	now := time.Now()

	visible := s.Update(blinkingCursor(700, 400, 250), now)

	if visible {
		t.Error("cursor with blinkwait should start invisible (waiting)")
	}
	if s.state != StateWaiting {
		t.Errorf("state = %v, want waiting", s.state)
	}
}

func TestUpdateNoWaitStartsOn(t *testing.T) {
	s := NewScheduler()
	now := time.Now()

	c := editor.NewCursor()
	c.Blinkon = editor.Uint64(400)
	c.Blinkoff = editor.Uint64(250)

	if !s.Update(c, now) {
		t.Error("cursor without blinkwait should start visible")
	}
	if s.state != StateOn {
		t.Errorf("state = %v, want on", s.state)
	}
}

func TestUpdateZeroDurationForcesSteady(t *testing.T) {
	tests := []struct {
		name string
		c    *editor.Cursor
	}{
		{"zero wait", blinkingCursor(0, 400, 250)},
		{"zero on", blinkingCursor(700, 0, 250)},
		{"zero off", blinkingCursor(700, 400, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			now := time.Now()
			for i := 0; i < 10; i++ {
				if !s.Update(tt.c, now) {
					t.Fatalf("call %d: visibility = false, want steady true", i)
				}
				now = now.Add(time.Second)
			}
		})
	}
}

func TestUpdateCycle(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	c := blinkingCursor(700, 400, 250)

	// During the wait grace period the cursor is hidden.
	if s.Update(c, start) {
		t.Error("visible during wait period")
	}
	if s.Update(c, start.Add(600*time.Millisecond)) {
		t.Error("visible before wait expires")
	}

	// Wait expires: on.
	if !s.Update(c, start.Add(701*time.Millisecond)) {
		t.Error("invisible after wait expired")
	}

	// On expires: off.
	if s.Update(c, start.Add(701*time.Millisecond+401*time.Millisecond)) {
		t.Error("visible after on expired")
	}

	// Off expires: on again, never back to waiting.
	if !s.Update(c, start.Add(701*time.Millisecond+401*time.Millisecond+251*time.Millisecond)) {
		t.Error("invisible after off expired")
	}
	if s.state != StateOn {
		t.Errorf("state = %v, want on", s.state)
	}
}

func TestUpdateSnapshotChangeRestartsCycle(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	c := blinkingCursor(700, 400, 250)

	// Run deep into the cycle.
	s.Update(c, start)
	s.Update(c, start.Add(800*time.Millisecond))  // on
	s.Update(c, start.Add(1300*time.Millisecond)) // off
	if s.state != StateOff {
		t.Fatalf("state = %v, want off before the move", s.state)
	}

	// Move the cursor: back to waiting, invisible immediately.
	moved := c.Clone()
	moved.Position.Col++
	if s.Update(moved, start.Add(1301*time.Millisecond)) {
		t.Error("moved cursor with blinkwait should re-enter waiting (invisible)")
	}
	if s.state != StateWaiting {
		t.Errorf("state = %v, want waiting", s.state)
	}
}

func TestUpdateBlinkTimingChangeRestartsCycle(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	c := blinkingCursor(700, 400, 250)

	s.Update(c, start)
	s.Update(c, start.Add(800*time.Millisecond)) // on

	changed := c.Clone()
	changed.Blinkoff = editor.Uint64(300)
	s.Update(changed, start.Add(801*time.Millisecond))
	if s.state != StateWaiting {
		t.Errorf("state after timing change = %v, want waiting", s.state)
	}
}

func TestUpdateRestartWithoutWaitIsVisible(t *testing.T) {
	s := NewScheduler()
	start := time.Now()

	c := editor.NewCursor()
	c.Blinkon = editor.Uint64(400)
	c.Blinkoff = editor.Uint64(250)

	s.Update(c, start)
	s.Update(c, start.Add(401*time.Millisecond)) // off

	moved := c.Clone()
	moved.Position.Row++
	if !s.Update(moved, start.Add(402*time.Millisecond)) {
		t.Error("restart without blinkwait should be immediately visible")
	}
}

func TestUpdateMissingDurationsNeverExpire(t *testing.T) {
	s := NewScheduler()
	start := time.Now()

	// Only blinkon set: once on, it stays on forever (off duration missing
	// would apply to the off phase; on expires into off, which never ends).
	c := editor.NewCursor()
	c.Blinkwait = editor.Uint64(100)

	s.Update(c, start)
	if s.state != StateWaiting {
		t.Fatalf("state = %v, want waiting", s.state)
	}

	// Wait expires into on; with no blinkon duration the cursor stays on.
	if !s.Update(c, start.Add(101*time.Millisecond)) {
		t.Error("invisible after wait expired")
	}
	if !s.Update(c, start.Add(time.Hour)) {
		t.Error("on phase with no duration should never expire")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateWaiting, "waiting"},
		{StateOn, "on"},
		{StateOff, "off"},
		{State(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
