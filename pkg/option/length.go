package option

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/chartgrid/pkg/errors"
)

// Length is a size in pixels or a percentage of a reference size.
// The zero Length is unset.
type Length struct {
	Value   float64
	Percent bool
	Set     bool
}

// Px returns an absolute pixel length.
func Px(v float64) Length { return Length{Value: v, Set: true} }

// Pct returns a percentage length; Pct(20) is "20%".
func Pct(v float64) Length { return Length{Value: v, Percent: true, Set: true} }

// ParseLength parses "12", "12.5" or "20%". An empty string is unset.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, nil
	}
	pct := strings.HasSuffix(s, "%")
	num := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, errors.New(errors.ErrCodeInvalidLength, "invalid length %q", s)
	}
	l := Length{Value: v, Percent: pct, Set: true}
	return l, l.validate()
}

func (l Length) validate() error {
	if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
		return errors.New(errors.ErrCodeInvalidLength, "length must be finite")
	}
	if l.Value < 0 {
		return errors.New(errors.ErrCodeInvalidLength, "length cannot be negative (got %s)", l)
	}
	return nil
}

// Resolve returns the length in pixels relative to total.
func (l Length) Resolve(total float64) float64 {
	if l.Percent {
		return l.Value / 100 * total
	}
	return l.Value
}

// Or returns l if set and def otherwise.
func (l Length) Or(def Length) Length {
	if l.Set {
		return l
	}
	return def
}

// Fraction returns a percentage as a fraction (30% is 0.3). Pixel values are
// returned unchanged.
func (l Length) Fraction() float64 {
	if l.Percent {
		return l.Value / 100
	}
	return l.Value
}

// String formats l the way option files write it.
func (l Length) String() string {
	if !l.Set {
		return ""
	}
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if l.Percent {
		return s + "%"
	}
	return s
}

// MarshalJSON writes pixels as a number and percentages as a string.
func (l Length) MarshalJSON() ([]byte, error) {
	switch {
	case !l.Set:
		return []byte("null"), nil
	case l.Percent:
		return json.Marshal(l.String())
	default:
		return json.Marshal(l.Value)
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (l *Length) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return l.UnmarshalTOML(raw)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Length) UnmarshalTOML(raw any) error {
	var (
		v   Length
		err error
	)
	switch n := raw.(type) {
	case nil:
	case string:
		v, err = ParseLength(n)
	case float64:
		v = Px(n)
		err = v.validate()
	case int64:
		v = Px(float64(n))
		err = v.validate()
	default:
		err = errors.New(errors.ErrCodeInvalidLength, "length must be a number or string, got %T", raw)
	}
	if err != nil {
		return err
	}
	*l = v
	return nil
}
