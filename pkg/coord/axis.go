package coord

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/chartgrid/pkg/scale"
)

// LabelMargin is the distance in pixels between an axis line and its tick
// label anchors.
const LabelMargin = 8

// Kind tags an axis as category (ordinal scale) or value (interval scale).
type Kind string

const (
	KindCategory Kind = "category"
	KindValue    Kind = "value"
)

// Dim is the role of an axis inside a Cartesian.
type Dim string

const (
	DimX Dim = "x"
	DimY Dim = "y"
)

// Position is the grid side an axis is attached to.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

// Horizontal reports whether p is top or bottom.
func (p Position) Horizontal() bool { return p == Top || p == Bottom }

// Tick is one axis tick: its data value, formatted label and pixel position.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Coord float64 `json:"coord"`
}

// Axis binds a scale to a pixel extent and a grid side.
//
// The pixel extent is stored as given, so after Reverse the first endpoint
// may be larger than the second. Category axes with BoundaryGap place ranks
// at band centres instead of on the extent endpoints.
type Axis struct {
	Dim      Dim
	Index    int
	Kind     Kind
	Position Position

	// OtherCoord is the pixel position of the axis line on the orthogonal
	// dimension (the y of a horizontal axis, the x of a vertical one).
	OtherCoord float64

	// BoundaryGap insets a category axis by half a band on each side.
	BoundaryGap bool

	scale  scale.Scale
	extent [2]float64
}

// NewAxis returns an axis over s. The kind is derived from the scale type.
func NewAxis(dim Dim, index int, s scale.Scale, pos Position) *Axis {
	a := &Axis{Dim: dim, Index: index, Position: pos, scale: s, Kind: KindValue}
	if _, ok := s.(*scale.Ordinal); ok {
		a.Kind = KindCategory
		a.BoundaryGap = true
	}
	return a
}

// Scale returns the axis scale.
func (a *Axis) Scale() scale.Scale { return a.scale }

// Ordinal returns the category scale, or nil for a value axis.
func (a *Axis) Ordinal() *scale.Ordinal {
	o, _ := a.scale.(*scale.Ordinal)
	return o
}

// SetExtent sets the pixel extent.
func (a *Axis) SetExtent(start, end float64) { a.extent = [2]float64{start, end} }

// Extent returns the pixel extent in stored order.
func (a *Axis) Extent() (start, end float64) { return a.extent[0], a.extent[1] }

// Reverse swaps the pixel extent endpoints.
func (a *Axis) Reverse() { a.extent[0], a.extent[1] = a.extent[1], a.extent[0] }

// IsHorizontal reports whether the axis runs along the x direction of the screen.
func (a *Axis) IsHorizontal() bool { return a.Position.Horizontal() }

// IsCategory reports whether the axis is backed by an ordinal scale.
func (a *Axis) IsCategory() bool { return a.Kind == KindCategory }

// Span returns the absolute pixel length of the axis.
func (a *Axis) Span() float64 { return math.Abs(a.extent[1] - a.extent[0]) }

// BandWidth returns the pixel width of one category slot. Value axes have
// no bands and report 0.
func (a *Axis) BandWidth() float64 {
	o := a.Ordinal()
	if o == nil {
		return 0
	}
	n := o.Count()
	switch {
	case a.BoundaryGap && n > 0:
		return a.Span() / float64(n)
	case n > 1:
		return a.Span() / float64(n-1)
	}
	return a.Span()
}

// mapping returns the linear map between the effective pixel extent and [0, 1].
func (a *Axis) mapping(clamp bool) mscale.Linear {
	start, end := a.extent[0], a.extent[1]
	if a.IsCategory() && a.BoundaryGap {
		half := a.BandWidth() / 2
		if end < start {
			half = -half
		}
		start, end = start+half, end-half
	}
	return mscale.Linear{Min: start, Max: end, Clamp: clamp}
}

// DataToCoord maps a data value (a rank on category axes) to a pixel.
// With clamp, positions outside the extent are pinned to its ends;
// otherwise they extrapolate linearly.
func (a *Axis) DataToCoord(v float64, clamp bool) float64 {
	t := a.scale.Normalize(v)
	if clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return a.mapping(false).Unmap(t)
}

// CoordToData maps a pixel back to a data value. Category axes return the
// nearest rank.
func (a *Axis) CoordToData(c float64, clamp bool) float64 {
	return a.scale.Denormalize(a.mapping(clamp).Map(c))
}

// TicksCoords maps every scale tick to its pixel position.
func (a *Axis) TicksCoords() []float64 {
	ticks := a.scale.Ticks()
	coords := make([]float64, len(ticks))
	for i, v := range ticks {
		coords[i] = a.DataToCoord(v, false)
	}
	return coords
}

// Ticks returns every tick with its label and pixel position.
func (a *Axis) Ticks() []Tick {
	p := message.NewPrinter(language.English)
	values := a.scale.Ticks()
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Label: a.label(p, v), Coord: a.DataToCoord(v, false)}
	}
	return ticks
}

// Label formats a data value the way tick labels are written: the category
// name on category axes, a grouped decimal on value axes.
func (a *Axis) Label(v float64) string {
	return a.label(message.NewPrinter(language.English), v)
}

func (a *Axis) label(p *message.Printer, v float64) string {
	if o := a.Ordinal(); o != nil {
		return o.Label(v)
	}
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(4)))
}

// LabelAnchor returns the anchor of the tick label at pixel c: LabelMargin
// pixels outside the axis line, on the side the axis is attached to.
func (a *Axis) LabelAnchor(c float64) (x, y float64) {
	switch a.Position {
	case Top:
		return c, a.OtherCoord - LabelMargin
	case Bottom:
		return c, a.OtherCoord + LabelMargin
	case Left:
		return a.OtherCoord - LabelMargin, c
	default:
		return a.OtherCoord + LabelMargin, c
	}
}
