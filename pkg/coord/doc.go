// Package coord implements axes and the two-dimensional Cartesian
// coordinate system built from them.
//
// An [Axis] is a single struct tagged by [Kind] (category or value) and
// [Dim] (x or y). It maps data to pixels by normalizing through its scale
// and remapping [0, 1] onto its pixel extent:
//
//	px := axis.DataToCoord(v, false)
//	v  := axis.CoordToData(px, false)
//
// On category axes the data value is the 1-based rank of a label.
//
// A [Cartesian] pairs one horizontal and one vertical axis. The x axis is
// normally horizontal; when the option places it left or right the pair is
// "swapped" and [Cartesian.DataToPoint] exchanges screen coordinates.
// [Cartesian.DataToCoords] is the single bridge from series data to screen
// points used by series layout and hit-testing.
package coord
