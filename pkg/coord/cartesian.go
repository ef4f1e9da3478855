package coord

import (
	"fmt"

	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
)

// Point is a pixel position. Missing marks an entry with no value; its
// coordinates are meaningless.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Missing bool    `json:"missing,omitempty"`
}

// Name returns the Cartesian name for an axis index pair, e.g. "x0y1".
func Name(xIndex, yIndex int) string {
	return fmt.Sprintf("x%dy%d", xIndex, yIndex)
}

// Cartesian is a named pair of one x and one y axis plus the indices of
// the series laid out on it. It does not own the series.
type Cartesian struct {
	Name   string
	Series []int

	axes  map[Dim]*Axis
	order []Dim
}

// NewCartesian returns an empty Cartesian.
func NewCartesian(name string) *Cartesian {
	return &Cartesian{Name: name, axes: make(map[Dim]*Axis, 2)}
}

// AddAxis registers a under its dim. A second axis for the same dim is
// rejected.
func (c *Cartesian) AddAxis(a *Axis) error {
	if _, ok := c.axes[a.Dim]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "cartesian %s already has a %s axis", c.Name, a.Dim)
	}
	c.axes[a.Dim] = a
	c.order = append(c.order, a.Dim)
	return nil
}

// Axis returns the axis registered under dim, or nil.
func (c *Cartesian) Axis(dim Dim) *Axis { return c.axes[dim] }

// X returns the x axis.
func (c *Cartesian) X() *Axis { return c.axes[DimX] }

// Y returns the y axis.
func (c *Cartesian) Y() *Axis { return c.axes[DimY] }

// Axes returns the axes in registration order.
func (c *Cartesian) Axes() []*Axis {
	out := make([]*Axis, 0, len(c.order))
	for _, d := range c.order {
		out = append(out, c.axes[d])
	}
	return out
}

// AxesByKind returns the registered axes of the given kind.
func (c *Cartesian) AxesByKind(k Kind) []*Axis {
	var out []*Axis
	for _, a := range c.Axes() {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// CategoryAxis returns the first category axis, or nil when both axes
// carry values.
func (c *Cartesian) CategoryAxis() *Axis {
	if axes := c.AxesByKind(KindCategory); len(axes) > 0 {
		return axes[0]
	}
	return nil
}

// ValueAxis returns the axis opposite the category axis. Without a
// category axis it returns the y axis.
func (c *Cartesian) ValueAxis() *Axis {
	cat := c.CategoryAxis()
	if cat != nil && cat.Dim == DimY {
		return c.X()
	}
	return c.Y()
}

// Valid reports whether the Cartesian has both axes with one horizontal and
// one vertical.
func (c *Cartesian) Valid() bool {
	x, y := c.X(), c.Y()
	return x != nil && y != nil && x.IsHorizontal() != y.IsHorizontal()
}

// Swapped reports whether the x axis runs vertically on screen.
func (c *Cartesian) Swapped() bool {
	y := c.Y()
	return y != nil && y.IsHorizontal()
}

// DataToPoint maps an (x, y) data pair to a screen point.
func (c *Cartesian) DataToPoint(xv, yv float64, clamp bool) Point {
	px := c.X().DataToCoord(xv, clamp)
	py := c.Y().DataToCoord(yv, clamp)
	if c.Swapped() {
		px, py = py, px
	}
	return Point{X: px, Y: py}
}

// PointToData maps a screen point back to an (x, y) data pair.
func (c *Cartesian) PointToData(px, py float64, clamp bool) (xv, yv float64) {
	if c.Swapped() {
		px, py = py, px
	}
	return c.X().CoordToData(px, clamp), c.Y().CoordToData(py, clamp)
}

// DataToCoords maps series data to screen points, preserving order.
//
// With a category axis, entry i is placed at rank i+1 on the category axis
// and at its value on the other axis. With two value axes each entry must
// be an (x, y) pair; plain values are reported as missing.
func (c *Cartesian) DataToCoords(data []datum.Datum) []Point {
	points := make([]Point, len(data))
	cat := c.CategoryAxis()
	for i, d := range data {
		switch {
		case d.Missing:
			points[i] = Point{Missing: true}
		case cat == nil && !d.Pair:
			points[i] = Point{Missing: true}
		case cat == nil:
			points[i] = c.DataToPoint(d.X, d.V, false)
		case cat.Dim == DimX:
			points[i] = c.DataToPoint(float64(i+1), d.V, false)
		default:
			points[i] = c.DataToPoint(d.V, float64(i+1), false)
		}
	}
	return points
}
