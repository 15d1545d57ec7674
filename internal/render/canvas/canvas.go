// Package canvas defines the drawing surface consumed by the cursor renderer
// and provides a software implementation that rasterizes onto an image.
package canvas

import (
	"github.com/dshills/smear/internal/geom"
	"github.com/dshills/smear/internal/render/shaper"
	"github.com/dshills/smear/internal/theme"
)

// Canvas accepts the three drawing operations the cursor renderer needs:
// filling a closed path, drawing inside a path-scoped clip, and drawing a
// pre-shaped glyph run. WithClip guarantees the clip is removed when the
// callback returns, including on error.
type Canvas interface {
	FillPath(p *Path, c theme.Color)
	WithClip(p *Path, fn func(Canvas) error) error
	DrawRun(run *shaper.Run, at geom.Point, c theme.Color)
}

// Path is a polygonal path in surface coordinates.
type Path struct {
	points []geom.Point
	closed bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts the path at pt.
func (p *Path) MoveTo(pt geom.Point) {
	p.points = append(p.points[:0], pt)
	p.closed = false
}

// LineTo extends the path with a straight segment to pt.
func (p *Path) LineTo(pt geom.Point) {
	p.points = append(p.points, pt)
}

// Close closes the path back to its first point.
func (p *Path) Close() {
	p.closed = true
}

// Points returns the path's vertices in order.
func (p *Path) Points() []geom.Point {
	return p.points
}

// Closed reports whether the path has been closed.
func (p *Path) Closed() bool {
	return p.closed
}
