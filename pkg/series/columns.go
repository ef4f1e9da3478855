// Package series turns the stacked series of a grid state into geometry.
//
// Bars are placed in columns: every stack id (or, for unstacked bars, every
// series) on a category Cartesian owns one column of each category band.
// [Columns] allocates the width and offset of every column; [Bars], [Lines]
// and [Points] then map the data to container pixels.
//
// # Column allocation
//
// Within one band of width W:
//
//  1. Fixed bar widths are taken first, each clamped to what is left.
//  2. The remaining columns share the rest evenly, separated by the bar
//     gap, after the category gap is set aside.
//  3. Auto columns wider than their max width are capped once and the
//     shared width is recomputed for the others.
//  4. If fixed and capped columns together overflow the band, every width
//     is scaled down until columns, gaps and category gap fit in W.
//
// Columns start at -W/2 + categoryGap/2 relative to the band centre and
// advance by width plus gap. The bar gap and category gap of a Cartesian
// are taken from the last bar series that sets them.
package series

import (
	"math"
	"strconv"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/option"
)

const seriesStackPrefix = "__series_"

// StackID returns the column id of a bar series: its stack id, or a
// per-series id when it is not stacked.
func StackID(sr *grid.Series) string {
	if sr.Key.Stack != "" {
		return sr.Key.Stack
	}
	return seriesStackPrefix + strconv.Itoa(sr.Index)
}

// Column is the slot of one stack within a category band. Offset is
// relative to the band centre.
type Column struct {
	Stack  string  `json:"stack"`
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
}

// Band is the column allocation of one category Cartesian.
type Band struct {
	Cartesian   string        `json:"cartesian"`
	Width       float64       `json:"band_width"`
	CategoryGap float64       `json:"category_gap"`
	Gap         option.Length `json:"bar_gap"`
	Columns     []Column      `json:"columns"`

	axis *coord.Axis
}

// Axis returns the category axis the band belongs to.
func (b *Band) Axis() *coord.Axis { return b.axis }

// Column returns the column of a stack id.
func (b *Band) Column(stack string) (Column, bool) {
	for _, c := range b.Columns {
		if c.Stack == stack {
			return c, true
		}
	}
	return Column{}, false
}

// Occupied returns the pixels taken by columns, bar gaps and the category
// gap. It never exceeds Width.
func (b *Band) Occupied() float64 {
	total := b.CategoryGap
	for i, c := range b.Columns {
		total += c.Width
		if i < len(b.Columns)-1 {
			total += b.gapAfter(c.Width)
		}
	}
	return total
}

func (b *Band) gapAfter(width float64) float64 {
	if b.Gap.Percent {
		return width * b.Gap.Fraction()
	}
	return b.Gap.Value
}

// autoWidth shares remained between n columns.
func (b *Band) autoWidth(remained float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	free := remained - b.CategoryGap
	var w float64
	if b.Gap.Percent {
		w = free / (float64(n) + float64(n-1)*b.Gap.Fraction())
	} else {
		w = (free - float64(n-1)*b.Gap.Value) / float64(n)
	}
	return math.Max(w, 0)
}

// fit scales widths down when the columns overflow the band.
func (b *Band) fit() {
	if len(b.Columns) == 0 {
		return
	}
	fixed, scaled := b.CategoryGap, 0.0
	for i, c := range b.Columns {
		scaled += c.Width
		if i == len(b.Columns)-1 {
			continue
		}
		if b.Gap.Percent {
			scaled += c.Width * b.Gap.Fraction()
		} else {
			fixed += b.Gap.Value
		}
	}
	if fixed > b.Width {
		// Pixel gaps alone do not fit: shrink them to share what the
		// category gap leaves.
		b.Gap = option.Px(math.Max(0, b.Width-b.CategoryGap) / float64(len(b.Columns)-1))
		fixed = b.Width
	}
	if scaled == 0 || fixed+scaled <= b.Width {
		return
	}
	f := (b.Width - fixed) / scaled
	for i := range b.Columns {
		b.Columns[i].Width *= f
	}
}

type column struct {
	Column
	fixed    bool
	capped   bool
	maxWidth float64
}

type allocation struct {
	band     *Band
	cols     []*column
	index    map[string]int
	remained float64
	gap      option.Length
	catGap   option.Length
}

func newAllocation(name string, axis *coord.Axis) *allocation {
	w := axis.BandWidth()
	return &allocation{
		band:     &Band{Cartesian: name, Width: w, axis: axis},
		index:    make(map[string]int),
		remained: w,
		gap:      option.DefaultBarGap,
		catGap:   option.DefaultBarCategoryGap,
	}
}

func (a *allocation) add(sr *grid.Series) {
	id := StackID(sr)
	i, ok := a.index[id]
	if !ok {
		i = len(a.cols)
		a.index[id] = i
		a.cols = append(a.cols, &column{Column: Column{Stack: id}})
	}
	col := a.cols[i]

	o, w := sr.Option, a.band.Width
	if o.BarWidth.Set && !col.fixed {
		col.Width = math.Min(a.remained, o.BarWidth.Resolve(w))
		col.fixed = true
		a.remained -= col.Width
	}
	if o.BarMaxWidth.Set {
		col.maxWidth = o.BarMaxWidth.Resolve(w)
	}
	if o.BarGap.Set {
		a.gap = o.BarGap
	}
	if o.BarCategoryGap.Set {
		a.catGap = o.BarCategoryGap
	}
}

func (a *allocation) finish() *Band {
	b := a.band
	b.Gap = a.gap
	b.CategoryGap = math.Min(a.catGap.Resolve(b.Width), b.Width)

	remained, auto := a.remained, 0
	for _, c := range a.cols {
		if !c.fixed {
			auto++
		}
	}

	width := b.autoWidth(remained, auto)
	for _, c := range a.cols {
		if !c.fixed && c.maxWidth > 0 && c.maxWidth < width {
			c.Width = math.Min(c.maxWidth, remained)
			c.capped = true
			remained -= c.Width
			auto--
		}
	}
	width = b.autoWidth(remained, auto)

	b.Columns = make([]Column, len(a.cols))
	for i, c := range a.cols {
		if !c.fixed && !c.capped {
			c.Width = width
		}
		b.Columns[i] = c.Column
	}
	b.fit()

	offset := -b.Width/2 + b.CategoryGap/2
	for i := range b.Columns {
		b.Columns[i].Offset = offset
		offset += b.Columns[i].Width + b.gapAfter(b.Columns[i].Width)
	}
	return b
}

// Columns allocates bar columns on every Cartesian with a category axis,
// keyed by Cartesian name. Stacks keep the order in which their first
// series was declared. Bars on Cartesians without a category axis get no
// band and are laid out with [Points].
func Columns(s *grid.State) map[string]*Band {
	allocs := make(map[string]*allocation)
	for _, sr := range s.AllSeries() {
		if sr.Excluded || sr.Option.Type != option.SeriesBar {
			continue
		}
		c := s.CartesianByName(sr.Cartesian)
		cat := c.CategoryAxis()
		if cat == nil {
			continue
		}
		a, ok := allocs[c.Name]
		if !ok {
			a = newAllocation(c.Name, cat)
			allocs[c.Name] = a
		}
		a.add(sr)
	}

	bands := make(map[string]*Band, len(allocs))
	for name, a := range allocs {
		bands[name] = a.finish()
	}
	return bands
}
