// Package shape maps a cursor shape and size ratio to the four corner
// offsets of the cursor outline, expressed as fractions of one cell and
// centered on the cell's midpoint.
package shape

import (
	"github.com/dshills/smear/internal/editor"
	"github.com/dshills/smear/internal/geom"
)

// DefaultCellPercentage is the bar thickness used when the snapshot does not
// configure one.
const DefaultCellPercentage = 1.0 / 8.0

// standardCorners are the unit-square corner offsets, ordered top-left,
// top-right, bottom-right, bottom-left.
var standardCorners = [4]geom.Point{
	{X: -0.5, Y: -0.5},
	{X: 0.5, Y: -0.5},
	{X: 0.5, Y: 0.5},
	{X: -0.5, Y: 0.5},
}

// Corners returns the relative corner offsets for the given shape, scaled by
// cellPercentage along the shape's shrink axis.
//
// Block keeps the full cell. Vertical pulls the right edge inward so the bar
// keeps the left cell boundary and is cellPercentage of a cell wide.
// Horizontal applies the same shrink to the y axis through a double sign
// flip, anchoring the bar at the bottom of the cell.
func Corners(s editor.Shape, cellPercentage float64) [4]geom.Point {
	var out [4]geom.Point
	for i, c := range standardCorners {
		switch s {
		case editor.ShapeVertical:
			out[i] = geom.Pt((c.X+0.5)*cellPercentage-0.5, c.Y)
		case editor.ShapeHorizontal:
			out[i] = geom.Pt(c.X, -((-c.Y+0.5)*cellPercentage-0.5))
		default:
			out[i] = c
		}
	}
	return out
}
