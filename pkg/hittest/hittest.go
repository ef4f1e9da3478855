// Package hittest resolves a pointer position to the data under it.
//
// A pick clamps the pointer into the grid rectangle, inverts it through
// both axes of a Cartesian and, when one axis is a category axis, snaps to
// the nearest category. The result carries the snapped pixel position and
// the value of every series laid out on the Cartesian at that category.
//
// Picks read a committed [grid.State] and never modify it, so any number
// of them may run while a [grid.Grid] refreshes.
package hittest

import (
	"math"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
)

// Item is the value of one series at the picked category.
type Item struct {
	Series  int     `json:"series"`
	Name    string  `json:"name,omitempty"`
	Value   float64 `json:"value"`
	Stacked float64 `json:"stacked"`
	Missing bool    `json:"missing,omitempty"`
}

// Result is the outcome of a pick on one Cartesian.
type Result struct {
	Cartesian string `json:"cartesian"`

	// Inside reports whether the raw pointer lay inside the grid rectangle.
	Inside bool `json:"inside"`

	// X and Y are the picked pixel: on a category chart the category
	// centre along the category axis and the clamped pointer along the
	// other, otherwise the clamped pointer.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Data is the inverted (x, y) data pair. On a category axis the
	// component is the 1-based rank.
	Data [2]float64 `json:"data"`

	// Index is the 0-based category index, or -1 without a category axis.
	Index    int    `json:"index"`
	Category string `json:"category,omitempty"`
	Items    []Item `json:"items,omitempty"`
}

// Pick runs [PickCartesian] on every Cartesian of s.
func Pick(s *grid.State, px, py float64) []Result {
	cs := s.Cartesians()
	out := make([]Result, 0, len(cs))
	for _, c := range cs {
		out = append(out, pick(s, c, px, py))
	}
	return out
}

// PickCartesian picks on the named Cartesian.
func PickCartesian(s *grid.State, name string, px, py float64) (Result, error) {
	c := s.CartesianByName(name)
	if c == nil {
		return Result{}, errors.New(errors.ErrCodeNotFound, "no cartesian %q", name)
	}
	return pick(s, c, px, py), nil
}

func pick(s *grid.State, c *coord.Cartesian, px, py float64) Result {
	r := s.Rect()
	cx := math.Max(r.X, math.Min(r.XEnd(), px))
	cy := math.Max(r.Y, math.Min(r.YEnd(), py))

	res := Result{Cartesian: c.Name, Inside: r.Contains(px, py), X: cx, Y: cy, Index: -1}
	res.Data[0], res.Data[1] = c.PointToData(cx, cy, true)

	cat := c.CategoryAxis()
	if cat == nil || cat.Ordinal().Count() == 0 {
		return res
	}

	rank := res.Data[0]
	if cat.Dim == coord.DimY {
		rank = res.Data[1]
	}
	res.Index = int(rank) - 1
	res.Category = cat.Label(rank)
	if center := cat.DataToCoord(rank, false); cat.IsHorizontal() {
		res.X = center
	} else {
		res.Y = center
	}

	for _, i := range c.Series {
		sr := s.Series(i)
		if res.Index >= len(sr.Data) {
			continue
		}
		d := sr.Data[res.Index]
		res.Items = append(res.Items, Item{
			Series:  i,
			Name:    sr.Option.Name,
			Value:   sr.Raw[res.Index].V,
			Stacked: d.V,
			Missing: d.Missing,
		})
	}
	return res
}
