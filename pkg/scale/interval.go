package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// padRatio is the relative margin added on both sides of a degenerate extent.
const padRatio = 0.1

// IntervalOptions configures an [Interval].
type IntervalOptions struct {
	// Min and Max fix the corresponding bound. Nil bounds follow the data.
	Min, Max *float64

	// SplitNumber is the number of tick intervals. Zero means DefaultSplitNumber.
	SplitNumber int

	// Zero widens a data-driven extent to include 0.
	Zero bool
}

// Interval is a continuous numeric scale.
type Interval struct {
	opts IntervalOptions
	lin  mscale.Linear
}

// NewInterval returns an interval scale with extent [0, 1] until data is set.
// Fixed bounds in opts apply immediately.
func NewInterval(opts IntervalOptions) *Interval {
	if opts.SplitNumber <= 0 {
		opts.SplitNumber = DefaultSplitNumber
	}
	s := &Interval{opts: opts}
	_ = s.SetExtentFromData(nil)
	return s
}

// SplitNumber returns the configured number of tick intervals.
func (s *Interval) SplitNumber() int { return s.opts.SplitNumber }

// Extent returns the current domain bounds.
func (s *Interval) Extent() (lo, hi float64) { return s.lin.Min, s.lin.Max }

// SetExtent sets the domain directly. Bounds are swapped if reversed and
// padded if equal.
func (s *Interval) SetExtent(lo, hi float64) error {
	if lo > hi {
		lo, hi = hi, lo
	}
	var err error
	if lo == hi {
		lo, hi = pad(lo)
		err = errors.New(errors.ErrCodeDegenerateScale, "zero-width extent at %g padded to [%g, %g]", (lo+hi)/2, lo, hi)
	}
	s.lin = mscale.Linear{Min: lo, Max: hi}
	return err
}

// SetExtentFromData takes [min, max] of the finite values, applies the zero
// and fixed-bound options, and pads a degenerate result. With no finite
// values the extent falls back to [0, 1] (subject to fixed bounds).
func (s *Interval) SetExtentFromData(values []float64) error {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	lo, hi := 0.0, 1.0
	if len(finite) > 0 {
		lo, hi = stats.Bounds(finite)
		if s.opts.Zero {
			lo, hi = math.Min(lo, 0), math.Max(hi, 0)
		}
	}
	if s.opts.Min != nil {
		lo = *s.opts.Min
	}
	if s.opts.Max != nil {
		hi = *s.opts.Max
	}
	return s.SetExtent(lo, hi)
}

// Normalize maps v linearly from the extent to [0, 1].
func (s *Interval) Normalize(v float64) float64 { return s.lin.Map(v) }

// Denormalize maps t linearly from [0, 1] back to the extent.
func (s *Interval) Denormalize(t float64) float64 { return s.lin.Unmap(t) }

// Ticks returns SplitNumber+1 evenly spaced values covering the extent,
// both ends included.
func (s *Interval) Ticks() []float64 {
	ticks := vec.Linspace(s.lin.Min, s.lin.Max, s.opts.SplitNumber+1)
	// Linspace accumulates rounding error; pin the last tick to the bound.
	ticks[len(ticks)-1] = s.lin.Max
	return ticks
}

// Contains reports whether v lies inside the extent.
func (s *Interval) Contains(v float64) bool {
	return v >= s.lin.Min && v <= s.lin.Max
}

func pad(v float64) (lo, hi float64) {
	d := math.Abs(v) * padRatio
	if d == 0 {
		d = 1
	}
	return v - d, v + d
}
