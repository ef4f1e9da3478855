package series

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/grid"
)

// Bar is the rectangle of one bar entry in container pixels.
type Bar struct {
	Series   int     `json:"series"`
	Index    int     `json:"index"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Bars lays out the rectangles of a bar series in its column of b.
//
// Each bar spans from its stacked value down to the total it was stacked
// on, or to the value axis zero (clamped into the axis extent) when it is
// the first of its sign. Missing entries produce no rectangle.
func Bars(s *grid.State, sr *grid.Series, b *Band) []Bar {
	if sr == nil || sr.Excluded || b == nil {
		return nil
	}
	col, ok := b.Column(StackID(sr))
	if !ok {
		return nil
	}
	c := s.CartesianByName(sr.Cartesian)
	cat, val := c.CategoryAxis(), c.ValueAxis()
	if cat == nil {
		return nil
	}
	zero := baseline(val)

	bars := make([]Bar, 0, len(sr.Data))
	for i, d := range sr.Data {
		if d.Missing {
			continue
		}
		rank := float64(i + 1)
		center := cat.DataToCoord(rank, false)
		top := val.DataToCoord(d.V, false)
		base := zero
		if sr.Base[i] != 0 {
			base = val.DataToCoord(sr.Base[i], false)
		}
		lo, length := math.Min(top, base), math.Abs(top-base)

		bar := Bar{Series: sr.Index, Index: i, Category: cat.Label(rank), Value: sr.Raw[i].V}
		if cat.IsHorizontal() {
			bar.X, bar.Y, bar.Width, bar.Height = center+col.Offset, lo, col.Width, length
		} else {
			bar.X, bar.Y, bar.Width, bar.Height = lo, center+col.Offset, length, col.Width
		}
		bars = append(bars, bar)
	}
	return bars
}

// baseline returns the pixel of the value axis zero, clamped into the
// axis extent.
func baseline(val *coord.Axis) float64 {
	lo, hi := val.Scale().Extent()
	return val.DataToCoord(math.Max(lo, math.Min(hi, 0)), false)
}
