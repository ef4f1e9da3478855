package series

import (
	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/grid"
)

// Segment is a run of consecutive present entries of a line series.
type Segment struct {
	// Start is the data index of the first point.
	Start  int           `json:"start"`
	Points []coord.Point `json:"points"`
}

// Points maps every entry of a series to a screen point. Missing entries
// keep their slot with Missing set.
func Points(s *grid.State, sr *grid.Series) []coord.Point {
	if sr == nil || sr.Excluded {
		return nil
	}
	return s.CartesianByName(sr.Cartesian).DataToCoords(sr.Data)
}

// Lines splits a series into segments at missing entries.
func Lines(s *grid.State, sr *grid.Series) []Segment {
	var (
		segs []Segment
		cur  *Segment
	)
	for i, p := range Points(s, sr) {
		if p.Missing {
			cur = nil
			continue
		}
		if cur == nil {
			segs = append(segs, Segment{Start: i})
			cur = &segs[len(segs)-1]
		}
		cur.Points = append(cur.Points, p)
	}
	return segs
}

// Area closes a segment into a polygon by projecting its last and first
// points onto the baseline axis: the category axis, or the x axis when
// the Cartesian has none.
func Area(s *grid.State, sr *grid.Series, seg Segment) []coord.Point {
	if len(seg.Points) == 0 || sr == nil || sr.Excluded {
		return nil
	}
	c := s.CartesianByName(sr.Cartesian)
	base := c.CategoryAxis()
	if base == nil {
		base = c.X()
	}

	project := func(p coord.Point) coord.Point {
		if base.IsHorizontal() {
			return coord.Point{X: p.X, Y: base.OtherCoord}
		}
		return coord.Point{X: base.OtherCoord, Y: p.Y}
	}
	first, last := seg.Points[0], seg.Points[len(seg.Points)-1]

	poly := make([]coord.Point, 0, len(seg.Points)+2)
	poly = append(poly, seg.Points...)
	return append(poly, project(last), project(first))
}
