// Package stack accumulates series values into signed stack groups.
//
// Series sharing a [Key] are folded in declaration order. Each data index
// keeps two running totals: values >= 0 extend the positive total and
// negative values extend the negative one. Missing entries pass through and
// leave the totals untouched. A series with an empty stack id never
// interacts with other series.
//
// A [Stacker] lives for one layout pass. The grid runs it once and every
// consumer (axis extents, bar rectangles, line points) reads the same
// [Result]s.
package stack

import (
	"github.com/matzehuels/chartgrid/pkg/datum"
)

// Key identifies a stack group: series of the same chart type on the same
// Cartesian with the same stack id.
type Key struct {
	Type      string
	Cartesian string
	Stack     string
}

// String returns the group key in "type/cartesian/stack" form.
func (k Key) String() string { return k.Type + "/" + k.Cartesian + "/" + k.Stack }

// Stacked reports whether the key names a shared group.
func (k Key) Stacked() bool { return k.Stack != "" }

// Result is one series after stacking.
type Result struct {
	// Data holds the cumulative values; missing entries are preserved.
	Data []datum.Datum
	// Base holds, per index, the running total the value was stacked on.
	// It is 0 for the first contributor of each sign and for unstacked series.
	Base []float64
}

type totals struct {
	positive []float64
	negative []float64
}

func (t *totals) grow(n int) {
	for len(t.positive) < n {
		t.positive = append(t.positive, 0)
		t.negative = append(t.negative, 0)
	}
}

// Stacker folds series into their groups.
type Stacker struct {
	groups map[Key]*totals
	order  []Key
}

// New returns an empty Stacker.
func New() *Stacker {
	return &Stacker{groups: make(map[Key]*totals)}
}

// Stack folds data into the group named by key and returns the stacked
// series. Unstacked keys return a copy of data with zero bases.
func (s *Stacker) Stack(key Key, data []datum.Datum) Result {
	res := Result{
		Data: make([]datum.Datum, len(data)),
		Base: make([]float64, len(data)),
	}
	copy(res.Data, data)
	if !key.Stacked() {
		return res
	}

	g, ok := s.groups[key]
	if !ok {
		g = &totals{}
		s.groups[key] = g
		s.order = append(s.order, key)
	}
	g.grow(len(data))

	for i, d := range data {
		if d.Missing {
			continue
		}
		running := &g.negative[i]
		if d.V >= 0 {
			running = &g.positive[i]
		}
		res.Base[i] = *running
		*running += d.V
		res.Data[i].V = *running
	}
	return res
}

// Keys returns the stacked group keys in first-seen order.
func (s *Stacker) Keys() []Key { return append([]Key(nil), s.order...) }

// Totals returns copies of the positive and negative running totals of a
// group, or nil slices for an unknown key.
func (s *Stacker) Totals(key Key) (positive, negative []float64) {
	g, ok := s.groups[key]
	if !ok {
		return nil, nil
	}
	return append([]float64(nil), g.positive...), append([]float64(nil), g.negative...)
}
