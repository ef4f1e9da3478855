// Package layout flattens a committed grid state into a serializable
// description of everything a renderer needs: the plotting rectangle, the
// axes of every Cartesian with their ticks, the bar columns, and the
// pixel geometry of every series.
//
// A Layout is plain data. It holds no references into the grid state and
// can be cached, sent over the wire and rendered later by package sink.
package layout

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/option"
	"github.com/matzehuels/chartgrid/pkg/series"
)

// Layout is the complete geometry of one chart.
type Layout struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Grid       grid.Rect   `json:"grid"`
	Cartesians []Cartesian `json:"cartesians"`
	Series     []Series    `json:"series"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}

// Cartesian is one coordinate system with its two axes. Band is set when
// bar series were allocated columns on it.
type Cartesian struct {
	Name   string       `json:"name"`
	X      Axis         `json:"x"`
	Y      Axis         `json:"y"`
	Series []int        `json:"series,omitempty"`
	Band   *series.Band `json:"band,omitempty"`
}

// Axis is one axis of a Cartesian.
type Axis struct {
	Index      int        `json:"index"`
	Kind       coord.Kind `json:"kind"`
	Position   string     `json:"position"`
	Extent     [2]float64 `json:"extent"`
	Data       [2]float64 `json:"data_extent"`
	OtherCoord float64    `json:"other_coord"`
	BandWidth  float64    `json:"band_width,omitempty"`
	Ticks      []Tick     `json:"ticks"`
}

// Tick is one axis tick with the anchor of its label.
type Tick struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Coord  float64 `json:"coord"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// Series is the geometry of one series. Which fields are set depends on
// the series type: bars on a category Cartesian fill Bars, line series fill
// Points and Lines (and Areas when area filling is on), everything else
// fills Points.
type Series struct {
	Index     int              `json:"index"`
	Name      string           `json:"name,omitempty"`
	Type      string           `json:"type"`
	Cartesian string           `json:"cartesian,omitempty"`
	Stack     string           `json:"stack,omitempty"`
	Excluded  bool             `json:"excluded,omitempty"`
	Points    []coord.Point    `json:"points,omitempty"`
	Bars      []series.Bar     `json:"bars,omitempty"`
	Lines     []series.Segment `json:"lines,omitempty"`
	Areas     [][]coord.Point  `json:"areas,omitempty"`
}

// Warning is a recoverable problem found while laying out.
type Warning struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Build flattens s. It never fails; problems are already recorded as
// warnings of s.
func Build(s *grid.State) *Layout {
	opt := s.Option()
	bands := series.Columns(s)

	l := &Layout{Width: opt.Width, Height: opt.Height, Grid: s.Rect()}
	for _, c := range s.Cartesians() {
		lc := Cartesian{
			Name:   c.Name,
			X:      buildAxis(c.X()),
			Y:      buildAxis(c.Y()),
			Series: append([]int(nil), c.Series...),
			Band:   bands[c.Name],
		}
		l.Cartesians = append(l.Cartesians, lc)
	}

	for _, sr := range s.AllSeries() {
		l.Series = append(l.Series, buildSeries(s, sr, bands[sr.Cartesian]))
	}

	for _, w := range s.Warnings() {
		l.Warnings = append(l.Warnings, Warning{Code: w.Code, Message: w.Message})
	}
	return l
}

func buildAxis(a *coord.Axis) Axis {
	start, end := a.Extent()
	lo, hi := a.Scale().Extent()
	out := Axis{
		Index:      a.Index,
		Kind:       a.Kind,
		Position:   string(a.Position),
		Extent:     [2]float64{start, end},
		Data:       [2]float64{lo, hi},
		OtherCoord: a.OtherCoord,
	}
	if a.IsCategory() {
		out.BandWidth = a.BandWidth()
	}
	for _, t := range a.Ticks() {
		lx, ly := a.LabelAnchor(t.Coord)
		out.Ticks = append(out.Ticks, Tick{Value: t.Value, Label: t.Label, Coord: t.Coord, LabelX: lx, LabelY: ly})
	}
	return out
}

func buildSeries(s *grid.State, sr *grid.Series, band *series.Band) Series {
	out := Series{
		Index:     sr.Index,
		Name:      sr.Option.Name,
		Type:      sr.Option.Type,
		Cartesian: sr.Cartesian,
		Stack:     sr.Key.Stack,
		Excluded:  sr.Excluded,
	}
	if sr.Excluded {
		return out
	}

	switch sr.Option.Type {
	case option.SeriesBar:
		if band != nil {
			out.Bars = series.Bars(s, sr, band)
			return out
		}
		out.Points = series.Points(s, sr)
	case option.SeriesLine:
		out.Points = series.Points(s, sr)
		out.Lines = series.Lines(s, sr)
		if sr.Option.Area {
			for _, seg := range out.Lines {
				out.Areas = append(out.Areas, series.Area(s, sr, seg))
			}
		}
	default:
		out.Points = series.Points(s, sr)
	}
	return out
}

// CartesianByName returns the named Cartesian, or nil.
func (l *Layout) CartesianByName(name string) *Cartesian {
	for i := range l.Cartesians {
		if l.Cartesians[i].Name == name {
			return &l.Cartesians[i]
		}
	}
	return nil
}

// Counts returns the number of bars, line segments and scatter points
// laid out across all series.
func (l *Layout) Counts() (bars, lines, points int) {
	for _, sr := range l.Series {
		bars += len(sr.Bars)
		lines += len(sr.Lines)
		if sr.Type != option.SeriesLine {
			for _, p := range sr.Points {
				if !p.Missing {
					points++
				}
			}
		}
	}
	return bars, lines, points
}

// Marshal encodes l as indented JSON.
func Marshal(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a layout written by Marshal.
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return &l, nil
}
