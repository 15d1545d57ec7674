// Package cursor renders the animated editor cursor. Each frame it advances
// blink state, recomputes the outline geometry for the snapshot's shape,
// eases the four outline corners toward the destination cell, and draws the
// filled outline with the covered glyph clipped inside it.
package cursor

import (
	"time"

	"github.com/dshills/smear/internal/editor"
	"github.com/dshills/smear/internal/geom"
	"github.com/dshills/smear/internal/render/animate"
	"github.com/dshills/smear/internal/render/blink"
	"github.com/dshills/smear/internal/render/canvas"
	"github.com/dshills/smear/internal/render/shape"
	"github.com/dshills/smear/internal/render/shaper"
	"github.com/dshills/smear/internal/theme"
)

// GridReader provides the single-cell read the renderer needs. The
// implementation must scope its lock to the call and may return
// editor.ErrGridBusy when the grid cannot be read this frame.
type GridReader interface {
	CellAt(row, col uint32) (editor.Cell, error)
}

// Frame carries the per-frame inputs to Render. All collaborators are passed
// per call; the renderer keeps no reference to them between frames.
type Frame struct {
	// Cursor is the snapshot from the editing session.
	Cursor *editor.Cursor
	// Defaults are the theme colors the cursor resolves against.
	Defaults theme.Colors
	// CellWidth and CellHeight are the cell dimensions in surface units.
	CellWidth  float64
	CellHeight float64
	// Grid supplies the character under the cursor.
	Grid GridReader
	// Shaper shapes that character into a drawable run.
	Shaper shaper.Shaper
	// Canvas receives the draw calls.
	Canvas canvas.Canvas
	// Now is the monotonic frame timestamp driving blink timing.
	Now time.Time
}

// Options configures the renderer.
type Options struct {
	// FontName selects the shaper face for the glyph under the cursor.
	FontName string
	// FontSize is the shaping size in surface units.
	FontSize float64
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{FontName: "", FontSize: 13}
}

// Renderer is the per-surface cursor renderer. It owns the blink scheduler
// and the four corner animators; a single render loop drives it one frame at
// a time, so it carries no locking.
type Renderer struct {
	opts    Options
	corners [4]animate.Corner
	blink   *blink.Scheduler
}

// New creates a renderer with block-shaped corner targets.
func New(opts Options) *Renderer {
	r := &Renderer{
		opts:  opts,
		blink: blink.NewScheduler(),
	}
	r.setShape(editor.ShapeBlock, shape.DefaultCellPercentage)
	return r
}

// setShape rewrites the corners' relative targets for the given shape,
// preserving their current positions.
func (r *Renderer) setShape(s editor.Shape, cellPercentage float64) {
	rel := shape.Corners(s, cellPercentage)
	for i := range r.corners {
		r.corners[i].Relative = rel[i]
	}
}

// Corners exposes the current corner positions, ordered top-left, top-right,
// bottom-right, bottom-left.
func (r *Renderer) Corners() [4]geom.Point {
	var out [4]geom.Point
	for i, c := range r.corners {
		out[i] = c.Current
	}
	return out
}

// Render draws one frame. It returns whether any corner is still animating,
// so the host can keep scheduling frames until the outline settles. The only
// error path is the grid read; a failed acquisition aborts the frame.
func (r *Renderer) Render(frame Frame) (bool, error) {
	cur := frame.Cursor
	visible := r.blink.Update(cur, frame.Now)

	// One short-lived grid acquisition per frame, released before any draw
	// call. The cell also decides whether a block cursor widens over a
	// double-width glyph.
	cell, err := frame.Grid.CellAt(cur.Position.Row, cur.Position.Col)
	if err != nil {
		return false, err
	}

	dims := geom.Pt(frame.CellWidth, frame.CellHeight)
	destination := geom.Pt(
		float64(cur.Position.Col)*frame.CellWidth,
		float64(cur.Position.Row)*frame.CellHeight,
	)
	if cur.Shape == editor.ShapeBlock && cell.Width > 1 {
		dims.X *= float64(cell.Width)
	}
	center := destination.Add(dims.Scale(0.5))

	cellPercentage := shape.DefaultCellPercentage
	if cur.CellPercentage != nil {
		cellPercentage = *cur.CellPercentage
	}
	r.setShape(cur.Shape, cellPercentage)

	// A center at the exact origin means the cursor has never been placed;
	// skip animation so the first placement does not glide in from (0,0).
	animating := false
	if !center.IsZero() {
		for i := range r.corners {
			cornerAnimating := r.corners[i].Update(dims, center)
			animating = animating || cornerAnimating
		}
	}

	if cur.Enabled && visible {
		if err := r.draw(frame, cell, destination); err != nil {
			return animating, err
		}
	}

	return animating, nil
}

// draw issues the outline fill and the clipped glyph.
func (r *Renderer) draw(frame Frame, cell editor.Cell, destination geom.Point) error {
	path := canvas.NewPath()
	path.MoveTo(r.corners[0].Current)
	path.LineTo(r.corners[1].Current)
	path.LineTo(r.corners[2].Current)
	path.LineTo(r.corners[3].Current)
	path.Close()

	background := frame.Defaults.ResolveBackground(frame.Cursor.Background)
	frame.Canvas.FillPath(path, background)

	text := cell.Text
	if text == "" {
		text = " "
	}
	run, err := frame.Shaper.Shape(text, r.opts.FontName, r.opts.FontSize)
	if err != nil {
		return err
	}

	foreground := frame.Defaults.ResolveForeground(frame.Cursor.Foreground)
	return frame.Canvas.WithClip(path, func(c canvas.Canvas) error {
		c.DrawRun(run, destination, foreground)
		return nil
	})
}
