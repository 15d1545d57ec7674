package cursor

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/smear/internal/editor"
	"github.com/dshills/smear/internal/geom"
	"github.com/dshills/smear/internal/render/animate"
	"github.com/dshills/smear/internal/render/canvas"
	"github.com/dshills/smear/internal/render/shaper"
	"github.com/dshills/smear/internal/theme"
)

// fakeGrid serves cells from a map and can simulate lock contention.
type fakeGrid struct {
	cells map[editor.Position]editor.Cell
	busy  bool
}

func (g *fakeGrid) CellAt(row, col uint32) (editor.Cell, error) {
	if g.busy {
		return editor.Cell{}, editor.ErrGridBusy
	}
	return g.cells[editor.Position{Row: row, Col: col}], nil
}

// recordingCanvas counts draw calls and remembers what was drawn.
type recordingCanvas struct {
	fills      int
	fillPaths  []*canvas.Path
	fillColors []theme.Color
	clips      int
	runs       int
	runTexts   []string
	runColors  []theme.Color
	runAts     []geom.Point
}

func (c *recordingCanvas) FillPath(p *canvas.Path, col theme.Color) {
	c.fills++
	c.fillPaths = append(c.fillPaths, p)
	c.fillColors = append(c.fillColors, col)
}

func (c *recordingCanvas) WithClip(p *canvas.Path, fn func(canvas.Canvas) error) error {
	c.clips++
	return fn(c)
}

func (c *recordingCanvas) DrawRun(run *shaper.Run, at geom.Point, col theme.Color) {
	c.runs++
	c.runTexts = append(c.runTexts, run.Text)
	c.runColors = append(c.runColors, col)
	c.runAts = append(c.runAts, at)
}

func testFrame(cur *editor.Cursor, grid GridReader, cv canvas.Canvas, now time.Time) Frame {
	return Frame{
		Cursor:     cur,
		Defaults:   theme.DefaultColors(),
		CellWidth:  10,
		CellHeight: 20,
		Grid:       grid,
		Shaper:     shaper.NewCaching(),
		Canvas:     cv,
		Now:        now,
	}
}

func steadyCursor() *editor.Cursor {
	c := editor.NewCursor()
	c.Blinkwait = editor.Uint64(0) // zero disables blinking entirely
	return c
}

func TestRenderDrawsFillAndGlyph(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{cells: map[editor.Position]editor.Cell{
		{Row: 0, Col: 0}: {Text: "A", Width: 1},
	}}

	_, err := r.Render(testFrame(steadyCursor(), grid, cv, time.Now()))
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}

	if cv.fills != 1 {
		t.Errorf("fills = %d, want 1", cv.fills)
	}
	if cv.clips != 1 {
		t.Errorf("clips = %d, want 1", cv.clips)
	}
	if cv.runs != 1 {
		t.Errorf("glyph draws = %d, want 1", cv.runs)
	}
	if cv.runTexts[0] != "A" {
		t.Errorf("drew glyph %q, want A", cv.runTexts[0])
	}
	if pts := cv.fillPaths[0].Points(); len(pts) != 4 || !cv.fillPaths[0].Closed() {
		t.Errorf("fill path = %d points closed=%v, want closed quad", len(pts), cv.fillPaths[0].Closed())
	}
}

func TestRenderDisabledCursorDrawsNothing(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	c := steadyCursor()
	c.Enabled = false

	if _, err := r.Render(testFrame(c, grid, cv, time.Now())); err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if cv.fills != 0 || cv.runs != 0 || cv.clips != 0 {
		t.Errorf("disabled cursor drew: fills=%d clips=%d runs=%d", cv.fills, cv.clips, cv.runs)
	}
}

func TestRenderInvisibleCursorDrawsNothing(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	// A fresh cursor with a long blinkwait starts in the hidden grace phase.
	c := editor.NewCursor()
	c.Blinkwait = editor.Uint64(10_000)
	c.Blinkon = editor.Uint64(400)
	c.Blinkoff = editor.Uint64(250)

	if _, err := r.Render(testFrame(c, grid, cv, time.Now())); err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if cv.fills != 0 || cv.runs != 0 {
		t.Errorf("waiting cursor drew: fills=%d runs=%d", cv.fills, cv.runs)
	}
}

func TestRenderGridBusyFailsFrame(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{busy: true}

	_, err := r.Render(testFrame(steadyCursor(), grid, cv, time.Now()))
	if !errors.Is(err, editor.ErrGridBusy) {
		t.Fatalf("Render error = %v, want ErrGridBusy", err)
	}
	if cv.fills != 0 || cv.runs != 0 {
		t.Error("failed frame must not draw")
	}
}

func TestRenderEmptyCellDrawsSpace(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	if _, err := r.Render(testFrame(steadyCursor(), grid, cv, time.Now())); err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if cv.runTexts[0] != " " {
		t.Errorf("empty cell drew %q, want space", cv.runTexts[0])
	}
}

func TestRenderReverseVideoColors(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	if _, err := r.Render(testFrame(steadyCursor(), grid, cv, time.Now())); err != nil {
		t.Fatalf("Render error = %v", err)
	}

	d := theme.DefaultColors()
	if cv.fillColors[0] != d.Foreground {
		t.Errorf("outline filled %+v, want default foreground (reverse video)", cv.fillColors[0])
	}
	if cv.runColors[0] != d.Background {
		t.Errorf("glyph drawn %+v, want default background (reverse video)", cv.runColors[0])
	}
}

func TestRenderExplicitColorOverrides(t *testing.T) {
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	c := steadyCursor()
	bg := theme.RGB(10, 20, 30)
	c.Background = &bg

	if _, err := r.Render(testFrame(c, grid, cv, time.Now())); err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if cv.fillColors[0] != bg {
		t.Errorf("outline filled %+v, want explicit background", cv.fillColors[0])
	}
}

func TestRenderMoveScenario(t *testing.T) {
	// Cell (0,0) Block with blinkwait=0, then cell (5,3)
	// Vertical with cell percentage 0.25 on the next frame.
	r := New(DefaultOptions())
	grid := &fakeGrid{}
	now := time.Now()

	first := steadyCursor()
	cv1 := &recordingCanvas{}
	if _, err := r.Render(testFrame(first, grid, cv1, now)); err != nil {
		t.Fatalf("frame 1 error = %v", err)
	}
	if cv1.fills != 1 {
		t.Error("frame 1 should be visible immediately (wait disabled)")
	}

	second := steadyCursor()
	second.Position = editor.Position{Row: 5, Col: 3}
	second.Shape = editor.ShapeVertical
	second.CellPercentage = editor.Float64(0.25)

	cv2 := &recordingCanvas{}
	animating, err := r.Render(testFrame(second, grid, cv2, now.Add(16*time.Millisecond)))
	if err != nil {
		t.Fatalf("frame 2 error = %v", err)
	}
	if cv2.fills != 1 {
		t.Error("frame 2 should be visible immediately (wait disabled)")
	}
	if !animating {
		t.Error("frame 2 should still be animating toward the new cell")
	}

	// Relative positions recomputed to the bar geometry.
	if r.corners[0].Relative.X != -0.5 {
		t.Errorf("left corner relative x = %v, want -0.5", r.corners[0].Relative.X)
	}
	if got := r.corners[1].Relative.X; got != -0.25 {
		t.Errorf("right corner relative x = %v, want -0.25 (bar width 0.25)", got)
	}

	// Current positions moved partway, not fully, toward the new targets.
	dims := geom.Pt(10, 20)
	center := geom.Pt(3*10+5, 5*20+10)
	for i, c := range r.corners {
		target := center.Add(c.Relative.Mul(dims))
		dist := target.Sub(c.Current).Length()
		if dist < animate.SettleEpsilon {
			t.Errorf("corner %d arrived in a single frame", i)
		}
	}
}

func TestRenderSettlesWhenHeld(t *testing.T) {
	r := New(DefaultOptions())
	grid := &fakeGrid{}
	now := time.Now()

	c := steadyCursor()
	c.Position = editor.Position{Row: 2, Col: 2}

	animating := true
	for i := 0; i < 100 && animating; i++ {
		cv := &recordingCanvas{}
		var err error
		animating, err = r.Render(testFrame(c, grid, cv, now))
		if err != nil {
			t.Fatalf("Render error = %v", err)
		}
		now = now.Add(16 * time.Millisecond)
	}
	if animating {
		t.Error("cursor never settled with a held snapshot")
	}
}

func TestRenderWideCellWidensBlock(t *testing.T) {
	r := New(DefaultOptions())
	grid := &fakeGrid{cells: map[editor.Position]editor.Cell{
		{Row: 1, Col: 1}: {Text: "世", Width: 2},
	}}
	now := time.Now()

	c := steadyCursor()
	c.Position = editor.Position{Row: 1, Col: 1}

	var animating = true
	for i := 0; i < 100 && animating; i++ {
		cv := &recordingCanvas{}
		var err error
		animating, err = r.Render(testFrame(c, grid, cv, now))
		if err != nil {
			t.Fatalf("Render error = %v", err)
		}
		now = now.Add(16 * time.Millisecond)
	}

	corners := r.Corners()
	width := corners[1].X - corners[0].X
	if width < 19.9 || width > 20.1 {
		t.Errorf("settled block width over wide cell = %v, want ~20 (two cells)", width)
	}
}

func TestRenderZeroCellSizeSkipsAnimation(t *testing.T) {
	// A zero-size surface puts the destination center at the exact origin,
	// which means "not yet placed": corners stay put.
	r := New(DefaultOptions())
	cv := &recordingCanvas{}
	grid := &fakeGrid{}

	frame := testFrame(steadyCursor(), grid, cv, time.Now())
	frame.CellWidth = 0
	frame.CellHeight = 0

	animating, err := r.Render(frame)
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if animating {
		t.Error("origin center must skip animation")
	}
	for i, c := range r.Corners() {
		if !c.IsZero() {
			t.Errorf("corner %d moved: %v", i, c)
		}
	}
}
