// Package scale maps data values to the normalized range [0, 1] and back.
//
// # Variants
//
// Two scales are provided:
//
//   - [Ordinal]: a fixed list of category labels. The extent is the rank range
//     [1, n]; rank r normalizes to (r-1)/(n-1).
//   - [Interval]: a continuous numeric extent computed from observed data
//     unless fixed by the caller.
//
// Both satisfy [Scale], which is what an axis holds. A scale is owned by
// exactly one axis and is recomputed on every grid refresh through
// [Scale.SetExtentFromData].
//
// # Degenerate Extents
//
// An interval whose data collapses to a single value is padded symmetrically
// before first use (10 becomes [9, 11], 0 becomes [-1, 1]), so normalizing
// never divides by zero. SetExtentFromData reports the padding with an
// error carrying [errors.ErrCodeDegenerateScale]; the scale is still usable.
//
// [errors.ErrCodeDegenerateScale]: github.com/matzehuels/chartgrid/pkg/errors
package scale
