// Package datum defines the value carried by one series entry.
//
// A series entry is either a plain number (category series), an (x, y) pair
// (series on two value axes) or the missing sentinel. Option files write the
// sentinel as "-", matching the original chart option format:
//
//	data = [120, "-", 150, [3.5, 7]]
//
// Missing entries are kept in place so downstream layout can leave a gap at
// their index; they never contribute to extents or stack totals. Non-finite
// numbers (NaN, ±Inf) are read as missing.
package datum

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MissingToken is the textual sentinel for "no value".
const MissingToken = "-"

// Datum is one series entry.
type Datum struct {
	// V is the value of a plain entry, or the y component of a pair.
	V float64
	// X is the x component of a pair.
	X float64
	// Pair reports whether the entry is an (x, y) pair.
	Pair bool
	// Missing marks the "no value" sentinel.
	Missing bool
}

// Of returns a plain value, or Missing when v is not finite.
func Of(v float64) Datum {
	if !finite(v) {
		return Missing()
	}
	return Datum{V: v}
}

// XY returns an (x, y) pair, or Missing when either component is not finite.
func XY(x, y float64) Datum {
	if !finite(x) || !finite(y) {
		return Missing()
	}
	return Datum{X: x, V: y, Pair: true}
}

// Missing returns the "no value" sentinel.
func Missing() Datum { return Datum{Missing: true} }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Values builds plain entries from a float slice. Non-finite values become
// Missing.
func Values(vs ...float64) []Datum {
	out := make([]Datum, len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

// Valid reports whether d carries a value.
func (d Datum) Valid() bool { return !d.Missing }

// String formats d the way option files write it.
func (d Datum) String() string {
	switch {
	case d.Missing:
		return MissingToken
	case d.Pair:
		return fmt.Sprintf("[%s, %s]", formatFloat(d.X), formatFloat(d.V))
	default:
		return formatFloat(d.V)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// MarshalJSON encodes d as a number, a two-element array or "-".
func (d Datum) MarshalJSON() ([]byte, error) {
	switch {
	case d.Missing:
		return json.Marshal(MissingToken)
	case d.Pair:
		return json.Marshal([2]float64{d.X, d.V})
	default:
		return json.Marshal(d.V)
	}
}

// UnmarshalJSON decodes a number, a numeric string, a two-element array,
// "-" or null.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := fromAny(raw)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Datum) UnmarshalTOML(raw any) error {
	v, err := fromAny(raw)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func fromAny(raw any) (Datum, error) {
	switch v := raw.(type) {
	case nil:
		return Missing(), nil
	case string:
		if v == MissingToken || v == "" {
			return Missing(), nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Datum{}, fmt.Errorf("datum: invalid value %q", v)
		}
		return Of(f), nil
	case []any:
		if len(v) != 2 {
			return Datum{}, fmt.Errorf("datum: pair must have 2 elements, got %d", len(v))
		}
		x, okX := toFloat(v[0])
		y, okY := toFloat(v[1])
		if !okX || !okY {
			return Missing(), nil
		}
		return XY(x, y), nil
	default:
		if f, ok := toFloat(v); ok {
			return Of(f), nil
		}
		return Datum{}, fmt.Errorf("datum: unsupported value of type %T", raw)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
