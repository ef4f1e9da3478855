package scale

// DefaultSplitNumber is the number of tick intervals of an [Interval]
// when none is configured.
const DefaultSplitNumber = 5

// Scale maps a data domain to [0, 1].
type Scale interface {
	// Normalize maps v into [0, 1] for values inside the extent.
	// Values outside the extent extrapolate linearly.
	Normalize(v float64) float64

	// Denormalize is the inverse of Normalize.
	Denormalize(t float64) float64

	// Extent returns the current domain bounds with lo <= hi.
	Extent() (lo, hi float64)

	// SetExtentFromData recomputes the extent from observed values.
	// A non-nil error is a recoverable warning; the extent is always valid.
	SetExtentFromData(values []float64) error

	// Ticks returns the tick values in ascending order.
	Ticks() []float64
}

var (
	_ Scale = (*Ordinal)(nil)
	_ Scale = (*Interval)(nil)
)
