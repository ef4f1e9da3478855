package grid

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/option"
)

// MinSize is the smallest width or height of the plotting rectangle.
const MinSize = 10.0

// Rect is the plotting rectangle in container pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// XEnd returns the right edge.
func (r Rect) XEnd() float64 { return r.X + r.Width }

// YEnd returns the bottom edge.
func (r Rect) YEnd() float64 { return r.Y + r.Height }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// BBox returns the top-left and bottom-right corners.
func (r Rect) BBox() [2][2]float64 {
	return [2][2]float64{{r.X, r.Y}, {r.XEnd(), r.YEnd()}}
}

// Contains reports whether (px, py) lies inside r, edges included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.XEnd() && py >= r.Y && py <= r.YEnd()
}

// ComputeRect derives the plotting rectangle from the container size and
// the grid option. Width and height default to the space left between the
// insets and are clamped to MinSize; x and y are aligned so a border of
// the configured width strokes on whole pixels.
func ComputeRect(width, height float64, g option.Grid) Rect {
	r := Rect{
		X: g.X.Resolve(width),
		Y: g.Y.Resolve(height),
	}
	if g.Width.Set {
		r.Width = g.Width.Resolve(width)
	} else {
		r.Width = width - r.X - g.X2.Resolve(width)
	}
	if g.Height.Set {
		r.Height = g.Height.Resolve(height)
	} else {
		r.Height = height - r.Y - g.Y2.Resolve(height)
	}
	if r.Width <= 0 {
		r.Width = MinSize
	}
	if r.Height <= 0 {
		r.Height = MinSize
	}

	bw := option.DefaultBorderWidth
	if g.BorderWidth != nil {
		bw = *g.BorderWidth
	}
	r.X = subPixel(r.X, bw)
	r.Y = subPixel(r.Y, bw)
	return r
}

// subPixel snaps pos to a half pixel for odd line widths and to a whole
// pixel otherwise.
func subPixel(pos, lineWidth float64) float64 {
	if math.Mod(lineWidth, 2) == 1 {
		return math.Floor(pos) + 0.5
	}
	return math.Round(pos)
}
