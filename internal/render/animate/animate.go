// Package animate implements the per-corner easing that smears the cursor
// outline between cells.
//
// Each corner eases toward its target at a rate weighted by how well its own
// offset direction aligns with the direction of travel. Leading corners move
// faster and trailing corners slower, so the quadrilateral stretches toward
// the destination instead of sliding rigidly. This is a purely visual easing
// model: no velocity is retained, only position.
package animate

import "github.com/dshills/smear/internal/geom"

const (
	// AverageMotionPercentage is the base fraction of the remaining distance
	// covered each update.
	AverageMotionPercentage = 0.7
	// MotionPercentageSpread scales the direction-alignment term around the
	// average.
	MotionPercentageSpread = 0.5
	// SettleEpsilon is the distance below which a corner counts as arrived.
	SettleEpsilon = 0.001
)

// Corner is one of the four tracked points of the cursor outline. Current is
// the absolute rendered position and persists across frames; Relative is the
// target offset from the cell center in cell fractions and is rewritten
// whenever the shape or size ratio changes.
type Corner struct {
	Current  geom.Point
	Relative geom.Point
}

// Update eases the corner toward center + Relative scaled by the cell
// dimensions and reports whether it is still in motion afterward.
func (c *Corner) Update(cellDims, center geom.Point) bool {
	scaled := c.Relative.Mul(cellDims)
	target := center.Add(scaled)

	delta := target.Sub(c.Current)
	length := delta.Length()
	if length == 0 {
		return false
	}

	// Project the corner's scaled offset onto the remaining distance vector.
	// Corners whose offset points along the direction of travel get a scale
	// near +1, corners pointing away get one near -1.
	scale := delta.Dot(scaled) / length / cellDims.Length()
	percentage := scale*MotionPercentageSpread + AverageMotionPercentage

	// Both the scale above and the step below derive from the same target
	// and the pre-update position.
	c.Current = c.Current.Add(delta.Scale(percentage))

	return target.Sub(c.Current).Length() > SettleEpsilon
}
