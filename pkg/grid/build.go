package grid

import (
	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/option"
	"github.com/matzehuels/chartgrid/pkg/scale"
	"github.com/matzehuels/chartgrid/pkg/stack"
)

// Build computes a layout state without publishing it.
func Build(opt *option.Chart) (*State, error) {
	if !opt.Resolved() {
		var err error
		if opt, err = option.Resolve(opt); err != nil {
			return nil, err
		}
	}

	b := &builder{
		opt: opt,
		state: &State{
			option:     opt,
			rect:       ComputeRect(opt.Width, opt.Height, opt.Grid),
			cartesians: make(map[string]*coord.Cartesian),
			axes:       make(map[axisKey]*coord.Axis),
		},
		values: make(map[string]map[coord.Dim][]float64),
	}
	b.initCartesians()
	b.assignSeries()
	b.commitExtents()
	return b.state, nil
}

type builder struct {
	opt   *option.Chart
	state *State

	// values collects, per Cartesian and dim, every value the axis extent
	// must cover.
	values map[string]map[coord.Dim][]float64
}

func (b *builder) warn(code errors.Code, format string, args ...any) {
	b.state.warnings = append(b.state.warnings, errors.New(code, format, args...))
}

// positions assigns a side to every x and y option axis. Explicit
// positions are claimed first. The rest take the orientation of the first
// placed axis of their dim, or the one orthogonal to the other dim when none
// of theirs is placed, and claim the free side of it.
func positions(opt *option.Chart) (xs, ys []coord.Position) {
	xs = make([]coord.Position, len(opt.XAxis))
	ys = make([]coord.Position, len(opt.YAxis))
	taken := make(map[coord.Position]bool, 4)

	for i, a := range opt.XAxis {
		if a.Position != "" {
			xs[i] = coord.Position(a.Position)
			taken[xs[i]] = true
		}
	}
	for i, a := range opt.YAxis {
		if a.Position != "" {
			ys[i] = coord.Position(a.Position)
			taken[ys[i]] = true
		}
	}

	xH, xPlaced := placedOrientation(xs)
	yH, yPlaced := placedOrientation(ys)
	switch {
	case !xPlaced && !yPlaced:
		xH, yH = true, false
	case !xPlaced:
		xH = !yH
	case !yPlaced:
		yH = !xH
	}

	claim := func(horizontal bool) coord.Position {
		sides := []coord.Position{coord.Left, coord.Right}
		if horizontal {
			sides = []coord.Position{coord.Bottom, coord.Top}
		}
		for _, p := range sides {
			if !taken[p] {
				taken[p] = true
				return p
			}
		}
		return sides[len(sides)-1]
	}
	for i := range xs {
		if xs[i] == "" {
			xs[i] = claim(xH)
		}
	}
	for i := range ys {
		if ys[i] == "" {
			ys[i] = claim(yH)
		}
	}
	return xs, ys
}

// placedOrientation reports whether the first explicitly placed axis in ps
// is horizontal, and whether any axis is placed at all.
func placedOrientation(ps []coord.Position) (horizontal, placed bool) {
	for _, p := range ps {
		if p != "" {
			return p.Horizontal(), true
		}
	}
	return false, false
}

func (b *builder) initCartesians() {
	xPos, yPos := positions(b.opt)
	anchored := b.barValueAxes()
	for i, xo := range b.opt.XAxis {
		for j, yo := range b.opt.YAxis {
			if xPos[i].Horizontal() == yPos[j].Horizontal() {
				// Left unbuilt; series referencing the pair are excluded.
				continue
			}
			name := coord.Name(i, j)
			c := coord.NewCartesian(name)
			x := b.newAxis(coord.DimX, i, xo, xPos[i], anchored[axisKey{coord.DimX, i}])
			y := b.newAxis(coord.DimY, j, yo, yPos[j], anchored[axisKey{coord.DimY, j}])
			_ = c.AddAxis(x)
			_ = c.AddAxis(y)
			orient(x, y)

			b.state.cartesians[name] = c
			b.state.order = append(b.state.order, name)
			b.values[name] = make(map[coord.Dim][]float64, 2)
			for _, a := range []*coord.Axis{x, y} {
				k := axisKey{a.Dim, a.Index}
				if _, ok := b.state.axes[k]; !ok {
					b.state.axes[k] = a
				}
			}
		}
	}
}

// barValueAxes returns the value axes that bars are drawn along: the
// non-category axis of every pair with exactly one category axis and at
// least one bar series.
func (b *builder) barValueAxes() map[axisKey]bool {
	out := make(map[axisKey]bool)
	for _, so := range b.opt.Series {
		if so.Type != option.SeriesBar {
			continue
		}
		i, j := so.XAxisIndex, so.YAxisIndex
		if i < 0 || i >= len(b.opt.XAxis) || j < 0 || j >= len(b.opt.YAxis) {
			continue
		}
		xCat, yCat := b.opt.XAxis[i].IsCategory(), b.opt.YAxis[j].IsCategory()
		switch {
		case xCat && !yCat:
			out[axisKey{coord.DimY, j}] = true
		case yCat && !xCat:
			out[axisKey{coord.DimX, i}] = true
		}
	}
	return out
}

// newAxis builds one axis of a Cartesian. A value axis under bars is
// anchored at zero unless its option sets scale.
func (b *builder) newAxis(dim coord.Dim, index int, o option.Axis, pos coord.Position, bars bool) *coord.Axis {
	var s scale.Scale
	if o.IsCategory() {
		s = scale.NewOrdinal(o.Data)
	} else {
		s = scale.NewInterval(scale.IntervalOptions{
			Min:         o.Min,
			Max:         o.Max,
			SplitNumber: o.SplitNumber,
			Zero:        bars && !o.Scale,
		})
	}
	a := coord.NewAxis(dim, index, s, pos)
	if o.BoundaryGap != nil {
		a.BoundaryGap = *o.BoundaryGap && a.IsCategory()
	}

	r := b.state.rect
	switch pos {
	case coord.Top:
		a.SetExtent(r.X, r.XEnd())
		a.OtherCoord = r.Y
	case coord.Bottom:
		a.SetExtent(r.X, r.XEnd())
		a.OtherCoord = r.YEnd()
	case coord.Left:
		a.SetExtent(r.Y, r.YEnd())
		a.OtherCoord = r.X
	case coord.Right:
		a.SetExtent(r.Y, r.YEnd())
		a.OtherCoord = r.XEnd()
	}
	return a
}

// orient reverses axes so data grows away from the companion axis: a
// horizontal axis at the bottom makes the vertical axis grow upward, and a
// vertical axis on the right makes the horizontal axis grow leftward.
func orient(x, y *coord.Axis) {
	h, v := x, y
	if !x.IsHorizontal() {
		h, v = y, x
	}
	if h.Position == coord.Bottom {
		v.Reverse()
	}
	if v.Position == coord.Right {
		h.Reverse()
	}
}

func (b *builder) assignSeries() {
	stacker := stack.New()
	for i, so := range b.opt.Series {
		sr := &Series{Index: i, Option: so}
		b.state.series = append(b.state.series, sr)

		c := b.cartesianFor(i, so)
		if c == nil {
			sr.Excluded = true
			continue
		}
		sr.Cartesian = c.Name
		c.Series = append(c.Series, i)

		cat := c.CategoryAxis()
		sr.Raw = b.normalizeLength(i, so.Data, cat)
		sr.Key = stack.Key{Type: so.Type, Cartesian: c.Name, Stack: so.Stack}
		if cat == nil {
			if so.Stack != "" {
				b.warn(errors.ErrCodeMissingCategoryAxis, "series[%d]: stack %q ignored on %s, which has no category axis", i, so.Stack, c.Name)
			} else if so.Type == option.SeriesBar {
				b.warn(errors.ErrCodeMissingCategoryAxis, "series[%d]: bars on %s have no category axis and are laid out as points", i, c.Name)
			}
			sr.Key.Stack = ""
		}

		res := stacker.Stack(sr.Key, sr.Raw)
		sr.Data, sr.Base = res.Data, res.Base
		b.collect(c, sr.Data)
	}
}

func (b *builder) cartesianFor(i int, so option.Series) *coord.Cartesian {
	if err := errors.ValidateAxisIndex("x", so.XAxisIndex, len(b.opt.XAxis)); err != nil {
		b.warn(errors.ErrCodeInvalidAxisIndex, "series[%d]: %s", i, errors.UserMessage(err))
		return nil
	}
	if err := errors.ValidateAxisIndex("y", so.YAxisIndex, len(b.opt.YAxis)); err != nil {
		b.warn(errors.ErrCodeInvalidAxisIndex, "series[%d]: %s", i, errors.UserMessage(err))
		return nil
	}
	c := b.state.Cartesian(so.XAxisIndex, so.YAxisIndex)
	if c == nil {
		b.warn(errors.ErrCodeInvalidAxisIndex, "series[%d]: axes x%d and y%d share an orientation, no cartesian was created",
			i, so.XAxisIndex, so.YAxisIndex)
	}
	return c
}

// normalizeLength pads or truncates category series to the label count.
func (b *builder) normalizeLength(i int, data []datum.Datum, cat *coord.Axis) []datum.Datum {
	if cat == nil {
		return append([]datum.Datum(nil), data...)
	}
	n := cat.Ordinal().Count()
	if len(data) == n {
		return append([]datum.Datum(nil), data...)
	}
	b.warn(errors.ErrCodeDataLengthMismatch, "series[%d]: %d values for %d categories on %s%d",
		i, len(data), n, cat.Dim, cat.Index)
	out := make([]datum.Datum, n)
	for k := range out {
		if k < len(data) {
			out[k] = data[k]
		} else {
			out[k] = datum.Missing()
		}
	}
	return out
}

func (b *builder) collect(c *coord.Cartesian, data []datum.Datum) {
	vals := b.values[c.Name]
	if cat := c.CategoryAxis(); cat != nil {
		dim := c.ValueAxis().Dim
		for _, d := range data {
			if !d.Missing {
				vals[dim] = append(vals[dim], d.V)
			}
		}
		return
	}
	for _, d := range data {
		if !d.Missing && d.Pair {
			vals[coord.DimX] = append(vals[coord.DimX], d.X)
			vals[coord.DimY] = append(vals[coord.DimY], d.V)
		}
	}
}

// commitExtents sets every axis extent once all series are folded in. The
// Cartesians sharing an option axis each own an instance of it, but all
// instances get one extent covering the values of every such Cartesian, so
// the axis drawn once matches the geometry of each.
func (b *builder) commitExtents() {
	shared := make(map[axisKey][]float64)
	for _, name := range b.state.order {
		for _, a := range b.state.cartesians[name].Axes() {
			k := axisKey{a.Dim, a.Index}
			shared[k] = append(shared[k], b.values[name][a.Dim]...)
		}
	}
	for _, name := range b.state.order {
		for _, a := range b.state.cartesians[name].Axes() {
			if err := a.Scale().SetExtentFromData(shared[axisKey{a.Dim, a.Index}]); err != nil {
				b.warn(errors.GetCode(err), "%s%d on %s: %s", a.Dim, a.Index, name, errors.UserMessage(err))
			}
		}
	}
}
