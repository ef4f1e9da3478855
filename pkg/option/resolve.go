package option

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
)

// Resolve validates c and returns a deep copy with every default applied.
// c itself is not modified.
//
// Defaults: container 800x600, grid insets 80/60/80/60 with a 1px border,
// one category x axis and one value y axis when none are given, x axes
// typed category and y axes typed value when the type is omitted, category
// boundary gaps on, and five tick intervals on value axes. A category axis
// without labels is labelled "1".."n" from the longest series on it.
//
// Axis indices are not checked here; a series pointing at a missing axis is
// excluded at layout time with an INVALID_AXIS_INDEX warning.
func Resolve(c *Chart) (*Chart, error) {
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart option is nil")
	}
	out := c.clone()

	if err := errors.ValidateDimension("width", out.Width); err != nil {
		return nil, err
	}
	if err := errors.ValidateDimension("height", out.Height); err != nil {
		return nil, err
	}
	if out.Width == 0 {
		out.Width = DefaultWidth
	}
	if out.Height == 0 {
		out.Height = DefaultHeight
	}

	if err := out.Grid.resolve(); err != nil {
		return nil, fieldErr("grid", err)
	}

	if len(out.XAxis) == 0 {
		out.XAxis = []Axis{{Type: AxisCategory}}
	}
	if len(out.YAxis) == 0 {
		out.YAxis = []Axis{{Type: AxisValue}}
	}
	for i := range out.XAxis {
		if err := out.XAxis[i].resolve(AxisCategory, out.seriesLength("x", i)); err != nil {
			return nil, fieldErr(fmt.Sprintf("x_axis[%d]", i), err)
		}
	}
	for i := range out.YAxis {
		if err := out.YAxis[i].resolve(AxisValue, out.seriesLength("y", i)); err != nil {
			return nil, fieldErr(fmt.Sprintf("y_axis[%d]", i), err)
		}
	}

	for i := range out.Series {
		if err := out.Series[i].validate(); err != nil {
			return nil, fieldErr(fmt.Sprintf("series[%d]", i), err)
		}
	}

	out.resolved = true
	return out, nil
}

func (g *Grid) resolve() error {
	g.X = g.X.Or(Px(DefaultGridX))
	g.Y = g.Y.Or(Px(DefaultGridY))
	g.X2 = g.X2.Or(Px(DefaultGridX2))
	g.Y2 = g.Y2.Or(Px(DefaultGridY2))
	if g.BorderWidth == nil {
		bw := DefaultBorderWidth
		g.BorderWidth = &bw
	}
	return errors.ValidateDimension("border_width", *g.BorderWidth)
}

func (a *Axis) resolve(defaultType string, seriesLen int) error {
	if err := errors.ValidateAxisType(a.Type); err != nil {
		return err
	}
	if err := errors.ValidatePosition(a.Position); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = defaultType
	}
	if a.SplitNumber < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "split_number cannot be negative")
	}
	if a.SplitNumber == 0 {
		a.SplitNumber = DefaultSplitNumber
	}
	if !finitePtr(a.Min) || !finitePtr(a.Max) {
		return errors.New(errors.ErrCodeInvalidOption, "min and max must be finite")
	}
	if a.Min != nil && a.Max != nil && *a.Min > *a.Max {
		return errors.New(errors.ErrCodeInvalidOption, "min %g is greater than max %g", *a.Min, *a.Max)
	}

	if !a.IsCategory() {
		return nil
	}
	if a.BoundaryGap == nil {
		gap := true
		a.BoundaryGap = &gap
	}
	if len(a.Data) == 0 {
		for i := 1; i <= seriesLen; i++ {
			a.Data = append(a.Data, strconv.Itoa(i))
		}
	}
	return errors.ValidateLabels(a.Data)
}

func (s *Series) validate() error {
	if err := errors.ValidateSeriesType(s.Type); err != nil {
		return err
	}
	if s.XAxisIndex < 0 || s.YAxisIndex < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "axis indices cannot be negative")
	}
	for _, l := range []struct {
		name string
		v    Length
	}{
		{"bar_width", s.BarWidth},
		{"bar_max_width", s.BarMaxWidth},
		{"bar_gap", s.BarGap},
		{"bar_category_gap", s.BarCategoryGap},
	} {
		if l.v.Set {
			if err := l.v.validate(); err != nil {
				return fieldErr(l.name, err)
			}
		}
	}
	return nil
}

// seriesLength returns the longest data length among series on the given axis.
func (c *Chart) seriesLength(dim string, index int) int {
	n := 0
	for _, s := range c.Series {
		idx := s.XAxisIndex
		if dim == "y" {
			idx = s.YAxisIndex
		}
		if idx == index {
			n = max(n, len(s.Data))
		}
	}
	return n
}

func (c *Chart) clone() *Chart {
	out := &Chart{
		Width:  c.Width,
		Height: c.Height,
		Grid:   c.Grid,
		XAxis:  cloneAxes(c.XAxis),
		YAxis:  cloneAxes(c.YAxis),
		Series: make([]Series, len(c.Series)),
	}
	if c.Grid.BorderWidth != nil {
		bw := *c.Grid.BorderWidth
		out.Grid.BorderWidth = &bw
	}
	for i, s := range c.Series {
		s.Data = append([]datum.Datum(nil), s.Data...)
		out.Series[i] = s
	}
	return out
}

func cloneAxes(in []Axis) []Axis {
	out := make([]Axis, len(in))
	for i, a := range in {
		a.Data = slices.Clone(a.Data)
		a.Min = clonePtr(a.Min)
		a.Max = clonePtr(a.Max)
		a.BoundaryGap = clonePtr(a.BoundaryGap)
		out[i] = a
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// fieldErr prefixes err's message with a field path and keeps its code.
func fieldErr(path string, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInvalidOption
	}
	return &errors.Error{Code: code, Message: path + ": " + errors.UserMessage(err)}
}

func finitePtr(v *float64) bool {
	return v == nil || (!math.IsNaN(*v) && !math.IsInf(*v, 0))
}
