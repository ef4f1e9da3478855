package scale

import "math"

// Ordinal is a scale over a fixed list of category labels.
// Rank r (1-based) identifies the r-th label.
type Ordinal struct {
	labels []string
	ranks  map[string]int
}

// NewOrdinal returns an ordinal scale over labels. The slice is copied.
// Duplicate labels keep the rank of their first occurrence.
func NewOrdinal(labels []string) *Ordinal {
	o := &Ordinal{
		labels: append([]string(nil), labels...),
		ranks:  make(map[string]int, len(labels)),
	}
	for i, l := range o.labels {
		if _, ok := o.ranks[l]; !ok {
			o.ranks[l] = i + 1
		}
	}
	return o
}

// Count returns the number of labels.
func (o *Ordinal) Count() int { return len(o.labels) }

// Labels returns a copy of the label list.
func (o *Ordinal) Labels() []string { return append([]string(nil), o.labels...) }

// Extent returns [1, n]. An empty list reports [1, 1].
func (o *Ordinal) Extent() (lo, hi float64) {
	return 1, float64(max(len(o.labels), 1))
}

// SetExtentFromData keeps the extent at [1, n]; data never changes an
// ordinal domain.
func (o *Ordinal) SetExtentFromData([]float64) error { return nil }

// Normalize maps a rank to (rank-1)/(n-1). A single-label scale places its
// only rank at 0.5.
func (o *Ordinal) Normalize(rank float64) float64 {
	lo, hi := o.Extent()
	if hi == lo {
		return 0.5
	}
	return (rank - lo) / (hi - lo)
}

// Denormalize maps t back to the nearest rank in [1, n].
func (o *Ordinal) Denormalize(t float64) float64 {
	lo, hi := o.Extent()
	if hi == lo {
		return lo
	}
	r := math.Round(t*(hi-lo) + lo)
	return math.Max(lo, math.Min(hi, r))
}

// Rank returns the 1-based rank of label.
func (o *Ordinal) Rank(label string) (float64, bool) {
	r, ok := o.ranks[label]
	return float64(r), ok
}

// Label returns the label at the rank nearest to r, or "" for an empty scale.
func (o *Ordinal) Label(r float64) string {
	if len(o.labels) == 0 {
		return ""
	}
	i := int(math.Round(r)) - 1
	i = max(0, min(len(o.labels)-1, i))
	return o.labels[i]
}

// Ticks returns every rank 1..n.
func (o *Ordinal) Ticks() []float64 {
	ticks := make([]float64, len(o.labels))
	for i := range ticks {
		ticks[i] = float64(i + 1)
	}
	return ticks
}
