package canvas

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/dshills/smear/internal/geom"
	"github.com/dshills/smear/internal/render/shaper"
	"github.com/dshills/smear/internal/theme"
)

// Image is a software canvas backed by an RGBA image. Paths are rasterized
// with antialiased coverage; clipping composites through a coverage mask.
type Image struct {
	dst  *image.RGBA
	clip *image.Alpha // nil when unclipped
}

// NewImage creates a software canvas of the given pixel dimensions.
func NewImage(width, height int) *Image {
	return &Image{dst: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// RGBA exposes the backing image for presentation.
func (c *Image) RGBA() *image.RGBA {
	return c.dst
}

// Fill floods the whole surface with a color, clearing previous content.
func (c *Image) Fill(col theme.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillPath fills the closed path with the given color, honoring any active
// clip.
func (c *Image) FillPath(p *Path, col theme.Color) {
	mask := c.rasterize(p)
	if mask == nil {
		return
	}
	if c.clip != nil {
		intersectMask(mask, c.clip)
	}
	draw.DrawMask(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// WithClip runs fn against a canvas whose drawing is restricted to the
// path's coverage. The clip exists only on the derived canvas, so it is
// removed when fn returns no matter how fn exits.
func (c *Image) WithClip(p *Path, fn func(Canvas) error) error {
	mask := c.rasterize(p)
	if mask == nil {
		return nil
	}
	if c.clip != nil {
		intersectMask(mask, c.clip)
	}
	return fn(&Image{dst: c.dst, clip: mask})
}

// DrawRun draws a shaped glyph run with its top-left at the given position.
func (c *Image) DrawRun(run *shaper.Run, at geom.Point, col theme.Color) {
	dot := fixed.P(int(at.X), int(at.Y+run.Ascent))
	if c.clip == nil {
		d := font.Drawer{Dst: c.dst, Src: image.NewUniform(col), Face: run.Face, Dot: dot}
		d.DrawString(run.Text)
		return
	}

	// Draw the glyph offscreen, then composite through the clip coverage.
	tmp := image.NewRGBA(c.dst.Bounds())
	d := font.Drawer{Dst: tmp, Src: image.NewUniform(col), Face: run.Face, Dot: dot}
	d.DrawString(run.Text)
	draw.DrawMask(c.dst, c.dst.Bounds(), tmp, image.Point{}, c.clip, image.Point{}, draw.Over)
}

// rasterize converts a path to an antialiased coverage mask, or nil for a
// degenerate path.
func (c *Image) rasterize(p *Path) *image.Alpha {
	pts := p.Points()
	if len(pts) < 3 {
		return nil
	}

	b := c.dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		r.LineTo(float32(pt.X), float32(pt.Y))
	}
	r.ClosePath()

	mask := image.NewAlpha(b)
	r.Draw(mask, b, image.Opaque, image.Point{})
	return mask
}

// intersectMask multiplies dst's coverage by other's, in place.
func intersectMask(dst, other *image.Alpha) {
	for i := range dst.Pix {
		dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(other.Pix[i]) / 255)
	}
}
