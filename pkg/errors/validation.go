package errors

import (
	"math"
	"slices"
	"strings"
)

// ValidAxisTypes lists the axis types the option resolver accepts.
// "log" is recognised but rejected by [ValidateAxisType] as unsupported.
var ValidAxisTypes = []string{"category", "value"}

// ValidSeriesTypes lists the series types laid out on a Cartesian grid.
var ValidSeriesTypes = []string{"bar", "line", "scatter"}

// ValidPositions lists the sides an axis may be attached to.
var ValidPositions = []string{"top", "bottom", "left", "right"}

// ValidateAxisType validates an axis type string.
// An empty type is accepted; the resolver fills in the per-dimension default.
func ValidateAxisType(typ string) error {
	if typ == "" || slices.Contains(ValidAxisTypes, typ) {
		return nil
	}
	if typ == "log" {
		return New(ErrCodeUnsupported, "log axes are not supported")
	}
	return New(ErrCodeInvalidOption, "invalid axis type: %q (must be one of: %s)", typ, strings.Join(ValidAxisTypes, ", "))
}

// ValidateSeriesType validates a series type string.
func ValidateSeriesType(typ string) error {
	if slices.Contains(ValidSeriesTypes, typ) {
		return nil
	}
	return New(ErrCodeInvalidOption, "invalid series type: %q (must be one of: %s)", typ, strings.Join(ValidSeriesTypes, ", "))
}

// ValidatePosition validates an axis position. Empty means "pick a default".
func ValidatePosition(pos string) error {
	if pos == "" || slices.Contains(ValidPositions, pos) {
		return nil
	}
	return New(ErrCodeInvalidPosition, "invalid axis position: %q (must be one of: %s)", pos, strings.Join(ValidPositions, ", "))
}

// ValidateAxisIndex checks that a series references an existing axis.
func ValidateAxisIndex(dim string, index, count int) error {
	if index < 0 || index >= count {
		return New(ErrCodeInvalidAxisIndex, "%s axis index %d out of range (have %d)", dim, index, count)
	}
	return nil
}

// ValidateDimension validates a container or rectangle dimension in pixels.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateLabels rejects category lists containing empty or control-character labels.
func ValidateLabels(labels []string) error {
	for i, l := range labels {
		if l == "" {
			return New(ErrCodeInvalidOption, "category label %d is empty", i)
		}
		for _, r := range l {
			if r < 0x20 {
				return New(ErrCodeInvalidOption, "category label %d contains control characters", i)
			}
		}
	}
	return nil
}
