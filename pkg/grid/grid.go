// Package grid owns the plotting rectangle and every Cartesian coordinate
// system of a chart.
//
// # Refresh
//
// [Grid.Refresh] rebuilds everything from the option on each call:
//
//  1. The rectangle is computed from the container size and the grid insets.
//  2. One Cartesian is created per (x axis, y axis) option pair, each with
//     its own axes and scales. Axis sides are assigned once per option axis.
//  3. Every series is attached to its Cartesian, length-normalized against
//     the category axis, and stacked through one [stack.Stacker].
//  4. After all series are folded in, each value axis commits its extent
//     from the collected (stacked) values.
//
// Layout problems never abort a refresh. They are recorded as warnings
// carrying the layout codes of package errors and the affected series or
// axis degrades to partial geometry.
//
// # Concurrency
//
// The built [State] is immutable and published with an atomic pointer swap.
// Readers such as hit-tests call [Grid.Snapshot] and work on one committed
// state while a refresh builds the next one.
package grid

import (
	"sync/atomic"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/option"
	"github.com/matzehuels/chartgrid/pkg/stack"
)

// Grid publishes the latest layout state of one chart option.
type Grid struct {
	state atomic.Pointer[State]
}

// New returns a Grid with no committed state.
func New() *Grid { return &Grid{} }

// Refresh rebuilds the layout state from opt and publishes it. Unresolved
// options are resolved first; a resolution error is returned and the
// previous state stays in place. Layout warnings do not cause an error.
func (g *Grid) Refresh(opt *option.Chart) error {
	s, err := Build(opt)
	if err != nil {
		return err
	}
	g.state.Store(s)
	return nil
}

// Snapshot returns the last committed state, or nil before the first
// successful Refresh.
func (g *Grid) Snapshot() *State { return g.state.Load() }

// Series is one series after grid assignment and stacking.
type Series struct {
	Index  int
	Option option.Series

	// Cartesian is the name of the coordinate system the series is laid out
	// on. Empty when the series was excluded.
	Cartesian string
	Excluded  bool

	// Key is the stack group the series was folded into.
	Key stack.Key

	// Raw is the series data normalized to the category count.
	Raw []datum.Datum
	// Data is Raw after stacking.
	Data []datum.Datum
	// Base is the stack total each entry of Data sits on.
	Base []float64
}

// State is one committed grid layout. It must not be modified.
type State struct {
	option     *option.Chart
	rect       Rect
	cartesians map[string]*coord.Cartesian
	order      []string
	axes       map[axisKey]*coord.Axis
	series     []*Series
	warnings   []*errors.Error
}

type axisKey struct {
	dim   coord.Dim
	index int
}

// Option returns the resolved option the state was built from.
func (s *State) Option() *option.Chart { return s.option }

// Rect returns the plotting rectangle.
func (s *State) Rect() Rect { return s.rect }

// Cartesian returns the coordinate system for an axis index pair, or nil.
func (s *State) Cartesian(xIndex, yIndex int) *coord.Cartesian {
	return s.cartesians[coord.Name(xIndex, yIndex)]
}

// CartesianByName returns a coordinate system by name, or nil.
func (s *State) CartesianByName(name string) *coord.Cartesian {
	return s.cartesians[name]
}

// Cartesians returns all coordinate systems, x index major.
func (s *State) Cartesians() []*coord.Cartesian {
	out := make([]*coord.Cartesian, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.cartesians[name])
	}
	return out
}

// Axis returns the axis built for option axis index of dim. Each Cartesian
// owns its own axis instances, all with the same data extent; this returns
// the one of the first Cartesian built with the index.
func (s *State) Axis(dim coord.Dim, index int) *coord.Axis {
	return s.axes[axisKey{dim, index}]
}

// Series returns the series at index i, or nil.
func (s *State) Series(i int) *Series {
	if i < 0 || i >= len(s.series) {
		return nil
	}
	return s.series[i]
}

// AllSeries returns every series in declaration order.
func (s *State) AllSeries() []*Series { return append([]*Series(nil), s.series...) }

// SeriesData returns the stacked, length-normalized data of series i.
func (s *State) SeriesData(i int) []datum.Datum {
	if sr := s.Series(i); sr != nil {
		return sr.Data
	}
	return nil
}

// DataToCoords maps data onto the Cartesian of an axis index pair.
func (s *State) DataToCoords(data []datum.Datum, xIndex, yIndex int) ([]coord.Point, error) {
	c := s.Cartesian(xIndex, yIndex)
	if c == nil {
		return nil, errors.New(errors.ErrCodeInvalidAxisIndex, "no cartesian %s", coord.Name(xIndex, yIndex))
	}
	return c.DataToCoords(data), nil
}

// Warnings returns the recoverable problems found while building the state.
func (s *State) Warnings() []*errors.Error { return append([]*errors.Error(nil), s.warnings...) }
